package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"friendloan-backend/internal/config"
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/testutil/ledgertest"
	"friendloan-backend/internal/usecase/token"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gorm.io/gorm"
)

func stub(t *testing.T, env *ledgertest.Env, cfg config.Config) {
	t.Helper()
	prevLoad, prevOpen := loadConfig, openDB
	loadConfig = func() (*config.Config, error) { c := cfg; return &c, nil }
	openDB = func(*config.Config) (*gorm.DB, error) { return env.DB, nil }
	t.Cleanup(func() { loadConfig, openDB = prevLoad, prevOpen })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestBootstrap(t *testing.T) {
	env := ledgertest.New(t)
	stub(t, env, config.Config{OwnerID: ledgertest.Owner, MaxNbPayments: 36})

	out, err := run(t, "bootstrap", "--max-nb-payments", "24")
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if !strings.Contains(out, "owner "+ledgertest.Owner) || !strings.Contains(out, "max payments 24") {
		t.Fatalf("output = %q", out)
	}
	reg, err := env.Repos().Registry.GetRegistry(context.Background())
	if err != nil || reg.MaxNbPayments != 24 {
		t.Fatalf("registry = (%+v, %v)", reg, err)
	}

	out, err = run(t, "bootstrap", "--owner", ledgertest.Stranger)
	if err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if !strings.Contains(out, "already bootstrapped, owner "+ledgertest.Owner) {
		t.Fatalf("output = %q", out)
	}
}

func TestBootstrap_DefaultsFromConfig(t *testing.T) {
	env := ledgertest.New(t)
	stub(t, env, config.Config{OwnerID: ledgertest.Owner, MaxNbPayments: 12})

	if _, err := run(t, "bootstrap"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	reg, err := env.Repos().Registry.GetRegistry(context.Background())
	if err != nil || reg.Owner != ledgertest.Owner || reg.MaxNbPayments != 12 {
		t.Fatalf("registry = (%+v, %v)", reg, err)
	}
}

func TestBootstrap_InvalidOwner(t *testing.T) {
	env := ledgertest.New(t)
	stub(t, env, config.Config{})

	if _, err := run(t, "bootstrap", "--owner", "nope"); err == nil {
		t.Fatal("expected error for invalid owner")
	}
}

func TestAuditVerify(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	stub(t, env, config.Config{})
	env.Bootstrap(t, ledgertest.Owner, 36)
	tok := token.NewUsecase(env.UoW, env.Runner)
	for i := 1; i <= 3; i++ {
		if err := tok.Mint(ctx, ledgertest.Owner, ledgertest.LenderOne, uint64(i)); err != nil {
			t.Fatalf("Mint: %v", err)
		}
	}

	out, err := run(t, "audit", "verify")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.HasPrefix(out, "ok: 3 records") {
		t.Fatalf("output = %q", out)
	}

	out, err = run(t, "audit", "verify", "--json")
	if err != nil || !strings.Contains(out, `"valid": true`) {
		t.Fatalf("json verify = (%q, %v)", out, err)
	}

	if err := env.DB.Model(&audit.Record{}).Where("seq = ?", 3).Update("actor", ledgertest.Stranger).Error; err != nil {
		t.Fatalf("tamper: %v", err)
	}
	out, err = run(t, "audit", "verify")
	if !errors.Is(err, errChainInvalid) {
		t.Fatalf("err = %v, want errChainInvalid", err)
	}
	if !strings.Contains(out, "broken after record 2") {
		t.Fatalf("output = %q", out)
	}
}

func TestMigrate(t *testing.T) {
	var calls []string
	prevLoad, prevUp, prevDn := loadConfig, migrateUp, migrateDn
	t.Cleanup(func() { loadConfig, migrateUp, migrateDn = prevLoad, prevUp, prevDn })
	loadConfig = func() (*config.Config, error) {
		return &config.Config{MySQLHost: "db", MySQLPort: "3306", MySQLDB: "ledger", MySQLUser: "u"}, nil
	}
	migrateUp = func(dsn string) error { calls = append(calls, "up "+dsn); return nil }
	migrateDn = func(string) error { calls = append(calls, "down"); return errors.New("boom") }

	out, err := run(t, "migrate", "up")
	if err != nil || !strings.Contains(out, "migrations applied") {
		t.Fatalf("migrate up = (%q, %v)", out, err)
	}
	if _, err := run(t, "migrate", "down"); err == nil {
		t.Fatal("expected migrate down error")
	}
	if len(calls) != 2 || !strings.HasPrefix(calls[0], "up u:@tcp(db:3306)/ledger") || calls[1] != "down" {
		t.Fatalf("calls = %v", calls)
	}
}
