package uow

import (
	"context"

	"friendloan-backend/internal/domain/access"
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/balance"
	"friendloan-backend/internal/domain/guarantor"
	"friendloan-backend/internal/domain/lender"
	"friendloan-backend/internal/domain/loan"
)

type Repos struct {
	Registry   access.Repository
	Loans      loan.Repository
	Guarantors guarantor.Repository
	Lenders    lender.Repository
	Balances   balance.Repository
	Audit      audit.Repository
}

type UnitOfWork interface {
	// Repos outside any transaction, for reads.
	Repos() Repos
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// locks the registry row first; every mutation is serialized on it
	WithinRegistryTx(ctx context.Context, fn func(r Repos, reg *access.Registry) error) error
	// registry lock, then the loan row
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, reg *access.Registry, l *loan.Loan) error) error
}
