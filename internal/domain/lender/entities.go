package lender

import (
	"fmt"
	"time"

	"friendloan-backend/internal/domain/errs"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

var (
	ErrOfferNotFound     = fmt.Errorf("lender offer not found: %w", errs.ErrNotFound)
	ErrDuplicateOffer    = fmt.Errorf("lender already holds an offer: %w", errs.ErrInvalidArgument)
	ErrInvalidAmount     = fmt.Errorf("offer amount must be greater than zero: %w", errs.ErrInvalidArgument)
	ErrRateAboveCeiling  = fmt.Errorf("interest rate above the loan maximum: %w", errs.ErrInvalidArgument)
	ErrAlreadyApproved   = fmt.Errorf("offer already approved: %w", errs.ErrInvalidState)
	ErrNotApproved       = fmt.Errorf("offer is not approved: %w", errs.ErrInvalidState)
	ErrNotCollateralized = fmt.Errorf("guarantee does not cover the loan total: %w", errs.ErrInvalidState)
	ErrOverfunded        = fmt.Errorf("approved funding would exceed the loan total: %w", errs.ErrCapacityExceeded)
)

// Offer is a lender's funding proposal for a loan. Seq orders offers
// within a loan and survives approval round trips.
type Offer struct {
	ID           uint64    `gorm:"primaryKey;column:id;autoIncrement" json:"-"`
	LoanID       uint64    `gorm:"column:loan_id;not null;uniqueIndex:ux_lender_offers_loan_lender,priority:1" json:"loan_id"`
	Lender       string    `gorm:"column:lender;size:32;not null;uniqueIndex:ux_lender_offers_loan_lender,priority:2" json:"lender"`
	Amount       uint64    `gorm:"column:amount;not null" json:"amount"`
	InterestRate uint64    `gorm:"column:interest_rate;not null" json:"interest_rate"`
	Status       Status    `gorm:"column:status;size:16;not null" json:"status"`
	Seq          uint64    `gorm:"column:seq;not null" json:"seq"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Offer) TableName() string { return "lender_offers" }

// List is the parallel-sequence view returned by the pending and approved
// listings.
type List struct {
	Lenders       []string `json:"lenders"`
	Amounts       []uint64 `json:"amounts"`
	InterestRates []uint64 `json:"interest_rates"`
}

// NewList keeps offers with the given status, in input order.
func NewList(offers []Offer, status Status) List {
	out := List{Lenders: []string{}, Amounts: []uint64{}, InterestRates: []uint64{}}
	for _, o := range offers {
		if o.Status != status {
			continue
		}
		out.Lenders = append(out.Lenders, o.Lender)
		out.Amounts = append(out.Amounts, o.Amount)
		out.InterestRates = append(out.InterestRates, o.InterestRate)
	}
	return out
}
