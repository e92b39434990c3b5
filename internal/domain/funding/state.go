// Package funding holds the loan funding state machine as pure functions.
//
// Every transition takes the current State of one loan and returns either
// an error (state untouched) or an Outcome: the next State, the custody
// transfers that must accompany it and the audit event describing it.
// Callers persist the Outcome inside a single transaction.
package funding

import (
	"fmt"

	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/authz"
	"friendloan-backend/internal/domain/balance"
	"friendloan-backend/internal/domain/errs"
	"friendloan-backend/internal/domain/guarantor"
	"friendloan-backend/internal/domain/lender"
	"friendloan-backend/internal/domain/loan"
)

var ErrNotReady = fmt.Errorf("loan is not fully collateralized and funded: %w", errs.ErrInvalidState)

// Actor is the authenticated caller plus the current registry owner.
type Actor struct {
	ID    string
	Owner string
}

// State is everything the ledger knows about one loan. Offers are kept in
// Seq order.
type State struct {
	Loan      loan.Loan
	Guarantor *guarantor.Commitment
	Offers    []lender.Offer
}

type Outcome struct {
	State     State
	Transfers []balance.Transfer
	Event     audit.Event
}

func (s State) clone() State {
	out := State{Loan: s.Loan}
	if s.Guarantor != nil {
		g := *s.Guarantor
		out.Guarantor = &g
	}
	out.Offers = append([]lender.Offer(nil), s.Offers...)
	return out
}

// Collateral is the amount the engaged guarantor has locked.
func (s State) Collateral() uint64 {
	if s.Guarantor == nil {
		return 0
	}
	return s.Guarantor.Amount
}

func (s State) GuarantorsCount() int {
	if s.Guarantor == nil {
		return 0
	}
	return 1
}

func (s State) IsGuarantorEngaged(identity string) bool {
	return s.Guarantor != nil && s.Guarantor.Guarantor == identity
}

// Approved is the sum of approved offer amounts.
func (s State) Approved() uint64 {
	var sum uint64
	for _, o := range s.Offers {
		if o.Status == lender.StatusApproved {
			sum += o.Amount
		}
	}
	return sum
}

func (s State) Pending() lender.List { return lender.NewList(s.Offers, lender.StatusPending) }

func (s State) ApprovedList() lender.List { return lender.NewList(s.Offers, lender.StatusApproved) }

// Ready reports whether the loan may be started.
func (s State) Ready() bool {
	return s.Collateral() == s.Loan.TotalAmount && s.Approved() == s.Loan.TotalAmount
}

func (s State) offer(identity string) int {
	for i, o := range s.Offers {
		if o.Lender == identity {
			return i
		}
	}
	return -1
}

func (s State) nextSeq() uint64 {
	var next uint64
	for _, o := range s.Offers {
		if o.Seq >= next {
			next = o.Seq + 1
		}
	}
	return next
}

func (s State) subject(a Actor, target string) authz.Subject {
	sub := authz.Subject{
		Caller:     a.ID,
		Owner:      a.Owner,
		Borrower:   s.Loan.Borrower,
		Target:     target,
		HoldsOffer: s.offer(a.ID) >= 0,
	}
	if s.Guarantor != nil {
		sub.Guarantor = s.Guarantor.Guarantor
	}
	return sub
}

// open runs the authorization and lifecycle checks shared by every
// transition, in that order.
func (s State) open(action authz.Action, a Actor, target string) error {
	if err := authz.Check(action, s.subject(a, target)); err != nil {
		return err
	}
	if s.Loan.Started {
		return loan.ErrAlreadyStarted
	}
	return nil
}

func (s State) event(action string, a Actor, params map[string]any) audit.Event {
	loanID := s.Loan.LoanID
	params["loan_id"] = loanID
	return audit.Event{Action: action, Actor: a.ID, LoanID: &loanID, Params: params}
}
