package access

import (
	"time"

	"friendloan-backend/internal/domain/access"
)

type RegistryDTO struct {
	Owner         string    `json:"owner"`
	MaxNbPayments uint32    `json:"max_nb_payments"`
	LoansCount    uint64    `json:"loans_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toDTO(r *access.Registry) *RegistryDTO {
	return &RegistryDTO{
		Owner:         r.Owner,
		MaxNbPayments: r.MaxNbPayments,
		LoansCount:    r.LoansCount,
		UpdatedAt:     r.UpdatedAt,
	}
}
