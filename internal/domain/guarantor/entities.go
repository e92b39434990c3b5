package guarantor

import (
	"fmt"
	"time"

	"friendloan-backend/internal/domain/errs"
)

var (
	ErrNotEngaged     = fmt.Errorf("guarantor not engaged: %w", errs.ErrNotFound)
	ErrAlreadyEngaged = fmt.Errorf("another guarantor is engaged: %w", errs.ErrInvalidState)
	ErrInvalidAmount  = fmt.Errorf("guarantee amount must be between 1 and the loan total: %w", errs.ErrInvalidArgument)
	ErrOverCommitted  = fmt.Errorf("guarantee would exceed the loan total: %w", errs.ErrCapacityExceeded)
)

// Commitment is the collateral a single guarantor has locked for a loan.
type Commitment struct {
	ID        uint64    `gorm:"primaryKey;column:id;autoIncrement" json:"-"`
	LoanID    uint64    `gorm:"column:loan_id;not null;uniqueIndex:ux_guarantor_commitments_loan" json:"loan_id"`
	Guarantor string    `gorm:"column:guarantor;size:32;not null;index:idx_guarantor_commitments_guarantor" json:"guarantor"`
	Amount    uint64    `gorm:"column:amount;not null" json:"amount"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Commitment) TableName() string { return "guarantor_commitments" }
