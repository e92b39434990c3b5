package funding

import (
	"time"

	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/authz"
)

// Start flips a fully collateralized and fully funded loan to started.
// Started loans reject every further transition.
func Start(s State, a Actor, now time.Time) (Outcome, error) {
	if err := s.open(authz.StartLoan, a, ""); err != nil {
		return Outcome{}, err
	}
	if !s.Ready() {
		return Outcome{}, ErrNotReady
	}

	next := s.clone()
	at := now.UTC()
	next.Loan.Started = true
	next.Loan.StartedAt = &at

	approved := s.ApprovedList()
	return Outcome{
		State: next,
		Event: s.event(audit.ActionLoanStarted, a, map[string]any{
			"borrower":   s.Loan.Borrower,
			"collateral": s.Collateral(),
			"funded":     s.Approved(),
			"lenders":    approved.Lenders,
		}),
	}, nil
}
