package activation

import (
	"context"

	"friendloan-backend/internal/domain/funding"
	"friendloan-backend/internal/infrastructure/metrics"
	"friendloan-backend/internal/usecase/ledger"
)

type Usecase struct{ runner *ledger.Runner }

func NewUsecase(r *ledger.Runner) *Usecase { return &Usecase{runner: r} }

// Start activates the loan once it is fully collateralized and funded.
func (u *Usecase) Start(ctx context.Context, caller string, loanID uint64) error {
	err := u.runner.Apply(ctx, "start_loan", caller, loanID, func(s funding.State, a funding.Actor) (funding.Outcome, error) {
		return funding.Start(s, a, u.runner.Now())
	})
	if err != nil {
		return err
	}
	metrics.LoansStarted.Inc()
	return nil
}
