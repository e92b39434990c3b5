package loan

import (
	"time"

	"friendloan-backend/internal/domain/loan"
)

type CreateLoanInput struct {
	TotalAmount     uint64 `json:"total_amount"`
	MaxInterestRate uint64 `json:"max_interest_rate"`
	NbPayments      uint32 `json:"nb_payments"`
	PaymentType     uint8  `json:"payment_type"`
}

type LoanDTO struct {
	LoanID          uint64     `json:"loan_id"`
	Borrower        string     `json:"borrower"`
	TotalAmount     uint64     `json:"total_amount"`
	MaxInterestRate uint64     `json:"max_interest_rate"`
	NbPayments      uint32     `json:"nb_payments"`
	PaymentType     string     `json:"payment_type"`
	Started         bool       `json:"started"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		Borrower:        l.Borrower,
		TotalAmount:     l.TotalAmount,
		MaxInterestRate: l.MaxInterestRate,
		NbPayments:      l.NbPayments,
		PaymentType:     l.PaymentType.String(),
		Started:         l.Started,
		StartedAt:       l.StartedAt,
		CreatedAt:       l.CreatedAt,
	}
}
