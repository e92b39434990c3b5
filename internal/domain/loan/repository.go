package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID uint64) (*Loan, error)
	// Locks the row until the surrounding transaction ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID uint64) (*Loan, error)
	ListByBorrower(ctx context.Context, borrower string) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}
