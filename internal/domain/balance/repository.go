package balance

import "context"

type Repository interface {
	// BalanceOf is zero for unknown holders.
	BalanceOf(ctx context.Context, holder string) (uint64, error)
	Credit(ctx context.Context, holder string, amount uint64) error
	// Debit fails with ErrInsufficientFunds and leaves the balance untouched.
	Debit(ctx context.Context, holder string, amount uint64) error
}
