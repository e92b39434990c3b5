package funding

import (
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/authz"
	"friendloan-backend/internal/domain/balance"
	"friendloan-backend/internal/domain/lender"
)

// AppendLender records a pending offer and locks its amount.
func AppendLender(s State, a Actor, amount, rate uint64) (Outcome, error) {
	if err := s.open(authz.AppendLender, a, ""); err != nil {
		return Outcome{}, err
	}
	switch {
	case s.offer(a.ID) >= 0:
		return Outcome{}, lender.ErrDuplicateOffer
	case amount == 0:
		return Outcome{}, lender.ErrInvalidAmount
	case rate > s.Loan.MaxInterestRate:
		return Outcome{}, lender.ErrRateAboveCeiling
	}

	next := s.clone()
	o := lender.Offer{
		LoanID:       s.Loan.LoanID,
		Lender:       a.ID,
		Amount:       amount,
		InterestRate: rate,
		Status:       lender.StatusPending,
		Seq:          s.nextSeq(),
	}
	next.Offers = append(next.Offers, o)

	return Outcome{
		State:     next,
		Transfers: []balance.Transfer{{Kind: balance.Lock, Holder: a.ID, Amount: amount}},
		Event: s.event(audit.ActionLenderAppended, a, map[string]any{
			"lender":        a.ID,
			"amount":        amount,
			"interest_rate": rate,
		}),
	}, nil
}

// RemoveLender withdraws the caller's offer, pending or approved.
func RemoveLender(s State, a Actor) (Outcome, error) {
	if err := s.open(authz.RemoveLender, a, ""); err != nil {
		return Outcome{}, err
	}
	i := s.offer(a.ID)
	o := s.Offers[i]

	next := s.clone()
	next.Offers = append(next.Offers[:i], next.Offers[i+1:]...)

	return Outcome{
		State:     next,
		Transfers: []balance.Transfer{{Kind: balance.Refund, Holder: a.ID, Amount: o.Amount}},
		Event: s.event(audit.ActionLenderRemoved, a, map[string]any{
			"lender": a.ID,
			"amount": o.Amount,
			"status": string(o.Status),
		}),
	}, nil
}

// ApproveLender moves a pending offer into the funded set. The loan must
// be fully collateralized first.
func ApproveLender(s State, a Actor, identity string) (Outcome, error) {
	if err := s.open(authz.ApproveLender, a, identity); err != nil {
		return Outcome{}, err
	}
	if s.Collateral() != s.Loan.TotalAmount {
		return Outcome{}, lender.ErrNotCollateralized
	}
	i := s.offer(identity)
	if i < 0 {
		return Outcome{}, lender.ErrOfferNotFound
	}
	o := s.Offers[i]
	if o.Status == lender.StatusApproved {
		return Outcome{}, lender.ErrAlreadyApproved
	}
	approved := s.Approved()
	if o.Amount > s.Loan.TotalAmount-approved {
		return Outcome{}, lender.ErrOverfunded
	}

	next := s.clone()
	next.Offers[i].Status = lender.StatusApproved

	return Outcome{
		State: next,
		Event: s.event(audit.ActionLenderApproved, a, map[string]any{
			"lender":   identity,
			"amount":   o.Amount,
			"approved": approved + o.Amount,
		}),
	}, nil
}

// RemoveApprovedLender sends an approved offer back to pending. The amount
// kept on the offer is capped by what the remaining approvals leave room
// for; the rest is refunded.
func RemoveApprovedLender(s State, a Actor, identity string) (Outcome, error) {
	if err := s.open(authz.RemoveApprovedLender, a, identity); err != nil {
		return Outcome{}, err
	}
	i := s.offer(identity)
	if i < 0 {
		return Outcome{}, lender.ErrOfferNotFound
	}
	o := s.Offers[i]
	if o.Status != lender.StatusApproved {
		return Outcome{}, lender.ErrNotApproved
	}

	remaining := s.Approved() - o.Amount
	kept := min(o.Amount, s.Loan.TotalAmount-remaining)
	refund := o.Amount - kept

	next := s.clone()
	next.Offers[i].Status = lender.StatusPending
	next.Offers[i].Amount = kept

	var transfers []balance.Transfer
	if refund > 0 {
		transfers = append(transfers, balance.Transfer{Kind: balance.Refund, Holder: identity, Amount: refund})
	}
	return Outcome{
		State:     next,
		Transfers: transfers,
		Event: s.event(audit.ActionLenderUnapproved, a, map[string]any{
			"lender":   identity,
			"amount":   kept,
			"refunded": refund,
		}),
	}, nil
}
