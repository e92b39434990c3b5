package guarantor

import "context"

type Repository interface {
	// GetByLoanID returns gorm.ErrRecordNotFound when nobody is engaged.
	GetByLoanID(ctx context.Context, loanID uint64) (*Commitment, error)
	Save(ctx context.Context, c *Commitment) error
	Delete(ctx context.Context, c *Commitment) error
}
