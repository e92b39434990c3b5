package loan

import (
	"fmt"
	"time"

	"friendloan-backend/internal/domain/errs"
)

var (
	ErrNotFound           = fmt.Errorf("loan not found: %w", errs.ErrNotFound)
	ErrAlreadyStarted     = fmt.Errorf("loan already started: %w", errs.ErrInvalidState)
	ErrCreationDisabled   = fmt.Errorf("loan creation disabled: max nb payments is zero: %w", errs.ErrInvalidState)
	ErrInvalidAmount      = fmt.Errorf("total amount must be greater than zero: %w", errs.ErrInvalidArgument)
	ErrInvalidNbPayments  = fmt.Errorf("nb payments must be between 1 and the configured maximum: %w", errs.ErrInvalidArgument)
	ErrInvalidPaymentType = fmt.Errorf("unknown payment type: %w", errs.ErrInvalidArgument)
)

// PaymentType is the period between two repayments.
type PaymentType uint8

const (
	PaymentWeek PaymentType = iota
	PaymentMonth
	PaymentYear
)

func (p PaymentType) Valid() bool { return p <= PaymentYear }

func (p PaymentType) String() string {
	switch p {
	case PaymentWeek:
		return "week"
	case PaymentMonth:
		return "month"
	case PaymentYear:
		return "year"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// Loan is a borrower's funding request. LoanID is the public sequential
// identifier handed out by the registry; ID is the storage key.
type Loan struct {
	ID              uint64      `gorm:"primaryKey;column:id;autoIncrement" json:"-"`
	LoanID          uint64      `gorm:"column:loan_id;not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	Borrower        string      `gorm:"column:borrower;size:32;not null;index:idx_loans_borrower" json:"borrower"`
	TotalAmount     uint64      `gorm:"column:total_amount;not null" json:"total_amount"`
	MaxInterestRate uint64      `gorm:"column:max_interest_rate;not null" json:"max_interest_rate"`
	NbPayments      uint32      `gorm:"column:nb_payments;not null" json:"nb_payments"`
	PaymentType     PaymentType `gorm:"column:payment_type;not null" json:"payment_type"`
	Started         bool        `gorm:"column:started;not null" json:"started"`
	StartedAt       *time.Time  `gorm:"column:started_at" json:"started_at,omitempty"`
	CreatedAt       time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Terms are the borrower-chosen parameters of a new loan.
type Terms struct {
	TotalAmount     uint64
	MaxInterestRate uint64
	NbPayments      uint32
	PaymentType     PaymentType
}

// Validate checks the terms against the registry ceiling. A zero ceiling
// disables creation altogether.
func (t Terms) Validate(maxNbPayments uint32) error {
	switch {
	case maxNbPayments == 0:
		return ErrCreationDisabled
	case t.TotalAmount == 0:
		return ErrInvalidAmount
	case t.NbPayments == 0 || t.NbPayments > maxNbPayments:
		return ErrInvalidNbPayments
	case !t.PaymentType.Valid():
		return ErrInvalidPaymentType
	}
	return nil
}
