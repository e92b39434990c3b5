package funding

import (
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/authz"
	"friendloan-backend/internal/domain/balance"
	"friendloan-backend/internal/domain/guarantor"
)

// AppendGuarantor engages the caller as guarantor, or tops up the
// commitment of the already engaged caller.
func AppendGuarantor(s State, a Actor, amount uint64) (Outcome, error) {
	if err := s.open(authz.AppendGuarantor, a, ""); err != nil {
		return Outcome{}, err
	}
	total := s.Loan.TotalAmount
	if amount == 0 || amount > total {
		return Outcome{}, guarantor.ErrInvalidAmount
	}

	next := s.clone()
	switch {
	case next.Guarantor == nil:
		next.Guarantor = &guarantor.Commitment{LoanID: s.Loan.LoanID, Guarantor: a.ID, Amount: amount}
	case next.Guarantor.Guarantor != a.ID:
		return Outcome{}, guarantor.ErrAlreadyEngaged
	case next.Guarantor.Amount > total-amount:
		return Outcome{}, guarantor.ErrOverCommitted
	default:
		next.Guarantor.Amount += amount
	}

	return Outcome{
		State:     next,
		Transfers: []balance.Transfer{{Kind: balance.Lock, Holder: a.ID, Amount: amount}},
		Event: s.event(audit.ActionGuarantorAppended, a, map[string]any{
			"guarantor": a.ID,
			"amount":    amount,
			"committed": next.Guarantor.Amount,
		}),
	}, nil
}

// RemoveGuarantor lets the engaged guarantor withdraw and refunds it.
func RemoveGuarantor(s State, a Actor) (Outcome, error) {
	if err := s.open(authz.RemoveGuarantor, a, ""); err != nil {
		return Outcome{}, err
	}
	return release(s, a, audit.ActionGuarantorRemoved)
}

// ForceRemoveGuarantor is the owner's override of RemoveGuarantor.
func ForceRemoveGuarantor(s State, a Actor, target string) (Outcome, error) {
	if err := s.open(authz.ForceRemoveGuarantor, a, target); err != nil {
		return Outcome{}, err
	}
	if !s.IsGuarantorEngaged(target) {
		return Outcome{}, guarantor.ErrNotEngaged
	}
	return release(s, a, audit.ActionGuarantorForced)
}

func release(s State, a Actor, action string) (Outcome, error) {
	g := *s.Guarantor
	next := s.clone()
	next.Guarantor = nil
	return Outcome{
		State:     next,
		Transfers: []balance.Transfer{{Kind: balance.Refund, Holder: g.Guarantor, Amount: g.Amount}},
		Event: s.event(action, a, map[string]any{
			"guarantor": g.Guarantor,
			"amount":    g.Amount,
		}),
	}, nil
}

// ReplaceGuarantor swaps outgoing for the caller in one step. A zero
// amount carries over the outgoing commitment.
func ReplaceGuarantor(s State, a Actor, outgoing string, amount uint64) (Outcome, error) {
	if err := s.open(authz.ReplaceGuarantor, a, outgoing); err != nil {
		return Outcome{}, err
	}
	if !s.IsGuarantorEngaged(outgoing) {
		return Outcome{}, guarantor.ErrNotEngaged
	}
	old := *s.Guarantor
	if amount == 0 {
		amount = old.Amount
	}
	if amount > s.Loan.TotalAmount {
		return Outcome{}, guarantor.ErrInvalidAmount
	}

	next := s.clone()
	next.Guarantor.Guarantor = a.ID
	next.Guarantor.Amount = amount

	return Outcome{
		State: next,
		Transfers: []balance.Transfer{
			{Kind: balance.Refund, Holder: old.Guarantor, Amount: old.Amount},
			{Kind: balance.Lock, Holder: a.ID, Amount: amount},
		},
		Event: s.event(audit.ActionGuarantorReplaced, a, map[string]any{
			"outgoing":        old.Guarantor,
			"outgoing_amount": old.Amount,
			"guarantor":       a.ID,
			"amount":          amount,
		}),
	}, nil
}
