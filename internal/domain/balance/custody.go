package balance

import (
	"context"
	"fmt"
)

// Custody applies lock and refund transfers against a Repository. It must
// run on the same transaction as the ledger update it backs.
type Custody struct{ accounts Repository }

func NewCustody(r Repository) *Custody { return &Custody{accounts: r} }

func (c *Custody) Apply(ctx context.Context, transfers ...Transfer) error {
	for _, t := range transfers {
		if t.Amount == 0 {
			continue
		}
		from, to := t.Holder, CustodyAccount
		if t.Kind == Refund {
			from, to = CustodyAccount, t.Holder
		}
		if err := c.accounts.Debit(ctx, from, t.Amount); err != nil {
			return fmt.Errorf("%s %d from %s: %w", t.Kind, t.Amount, from, err)
		}
		if err := c.accounts.Credit(ctx, to, t.Amount); err != nil {
			return fmt.Errorf("%s %d to %s: %w", t.Kind, t.Amount, to, err)
		}
	}
	return nil
}
