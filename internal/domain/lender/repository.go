package lender

import "context"

type Repository interface {
	// ListByLoanID returns every offer of the loan ordered by Seq.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Offer, error)
	Save(ctx context.Context, o *Offer) error
	Delete(ctx context.Context, o *Offer) error
}
