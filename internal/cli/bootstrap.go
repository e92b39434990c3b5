package cli

import (
	"fmt"
	"strings"

	"friendloan-backend/internal/adapter/repository/mysql"
	"friendloan-backend/internal/usecase/access"
	"friendloan-backend/internal/usecase/ledger"
	"friendloan-backend/pkg/id"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bootstrapCmd)

	bootstrapCmd.Flags().String("owner", "", "Owner identity (32 hex chars); defaults to OWNER_ID")
	bootstrapCmd.Flags().Uint32("max-nb-payments", 0, "Payment ceiling; defaults to MAX_NB_PAYMENTS")
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the loan registry",
	Long: `Create the loan registry with its owner and payment ceiling.
Running it against an already bootstrapped database changes nothing.`,
	Args: cobra.NoArgs,
	RunE: runBootstrap,
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	owner, _ := cmd.Flags().GetString("owner")
	if owner == "" {
		owner = cfg.OwnerID
	}
	owner = strings.ToLower(owner)
	if !id.Valid(owner) {
		return fmt.Errorf("invalid owner %q: want 32 hex chars", owner)
	}
	maxNb := cfg.MaxNbPayments
	if cmd.Flags().Changed("max-nb-payments") {
		maxNb, _ = cmd.Flags().GetUint32("max-nb-payments")
	}

	gdb, err := openDB(cfg)
	if err != nil {
		return err
	}
	u := mysql.NewGormUoW(gdb)
	reg, created, err := access.NewUsecase(u, ledger.NewRunner(u)).Bootstrap(cmd.Context(), owner, maxNb)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !created {
		fmt.Fprintf(out, "registry already bootstrapped, owner %s\n", reg.Owner)
		return nil
	}
	fmt.Fprintf(out, "registry bootstrapped, owner %s, max payments %d\n", reg.Owner, reg.MaxNbPayments)
	return nil
}
