// Package authz is the role table for every mutating ledger operation.
//
// Each Action maps to a list of rules; a caller is allowed when every rule
// holds for the Subject built from the current registry and loan state.
// Rules are plain predicates so the table can be tested without storage.
package authz

import (
	"fmt"

	"friendloan-backend/internal/domain/errs"
)

type Action string

const (
	TransferOwnership    Action = "registry.transfer_ownership"
	SetMaxNbPayments     Action = "registry.set_max_nb_payments"
	UpdateWhitelist      Action = "whitelist.update"
	MintTokens           Action = "token.mint"
	BurnTokens           Action = "token.burn"
	CreateLoan           Action = "loan.create"
	StartLoan            Action = "loan.start"
	AppendGuarantor      Action = "guarantor.append"
	RemoveGuarantor      Action = "guarantor.remove"
	ForceRemoveGuarantor Action = "guarantor.force_remove"
	ReplaceGuarantor     Action = "guarantor.replace"
	AppendLender         Action = "lender.append"
	RemoveLender         Action = "lender.remove"
	ApproveLender        Action = "lender.approve"
	RemoveApprovedLender Action = "lender.remove_approved"
)

// Subject is everything a rule may look at. Borrower, Guarantor and
// HoldsOffer are only meaningful for loan-scoped actions.
type Subject struct {
	Caller      string
	Owner       string
	Whitelisted bool
	Borrower    string
	Guarantor   string
	// Target is the identity the action is aimed at, e.g. the outgoing
	// guarantor of a replacement.
	Target     string
	HoldsOffer bool
}

type Rule struct {
	Name  string
	Allow func(s Subject) bool
}

var (
	Owner = Rule{"owner", func(s Subject) bool { return s.Caller == s.Owner }}

	Whitelisted = Rule{"whitelisted", func(s Subject) bool { return s.Whitelisted }}

	Borrower = Rule{"borrower", func(s Subject) bool { return s.Caller == s.Borrower }}

	NotBorrower = Rule{"not the borrower", func(s Subject) bool { return s.Caller != s.Borrower }}

	EngagedGuarantor = Rule{"engaged guarantor", func(s Subject) bool {
		return s.Guarantor != "" && s.Caller == s.Guarantor
	}}

	NotTarget = Rule{"not the target", func(s Subject) bool { return s.Caller != s.Target }}

	OfferHolder = Rule{"offer holder", func(s Subject) bool { return s.HoldsOffer }}
)

var table = map[Action][]Rule{
	TransferOwnership:    {Owner},
	SetMaxNbPayments:     {Owner},
	UpdateWhitelist:      {Owner},
	MintTokens:           {Owner},
	BurnTokens:           {Owner},
	CreateLoan:           {Whitelisted},
	StartLoan:            {Borrower},
	AppendGuarantor:      {NotBorrower},
	RemoveGuarantor:      {EngagedGuarantor},
	ForceRemoveGuarantor: {Owner},
	ReplaceGuarantor:     {NotBorrower, NotTarget},
	AppendLender:         {NotBorrower},
	RemoveLender:         {OfferHolder},
	ApproveLender:        {Borrower},
	RemoveApprovedLender: {Borrower},
}

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Result carries the decision and, on deny, the first rule that failed.
type Result struct {
	Decision Decision
	Failed   string
}

// Evaluate runs the rules for action. Anonymous callers and unknown
// actions are always denied.
func Evaluate(action Action, s Subject) Result {
	rules, ok := table[action]
	if !ok {
		return Result{Decision: Deny, Failed: "unknown action"}
	}
	if s.Caller == "" {
		return Result{Decision: Deny, Failed: "anonymous"}
	}
	for _, r := range rules {
		if !r.Allow(s) {
			return Result{Decision: Deny, Failed: r.Name}
		}
	}
	return Result{Decision: Allow}
}

// Check is Evaluate folded into an error wrapping errs.ErrUnauthorized.
func Check(action Action, s Subject) error {
	res := Evaluate(action, s)
	if res.Decision == Allow {
		return nil
	}
	return fmt.Errorf("%s denied for %q: %s: %w", action, s.Caller, res.Failed, errs.ErrUnauthorized)
}
