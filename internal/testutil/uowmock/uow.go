package uowmock

import (
	"context"
	"errors"

	"friendloan-backend/internal/domain/access"
	"friendloan-backend/internal/domain/loan"
	"friendloan-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	ReposValue         uow.Repos
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinRegistryTxFn func(ctx context.Context, fn func(r uow.Repos, reg *access.Registry) error) error
	WithinLoanTxFn     func(ctx context.Context, loanID uint64, fn func(r uow.Repos, reg *access.Registry, l *loan.Loan) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough wires every method to run fn directly on repos with the
// given registry and loan, as if the transaction committed.
func Passthrough(repos uow.Repos, reg *access.Registry, l *loan.Loan) *UoW {
	return &UoW{
		ReposValue: repos,
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinRegistryTxFn: func(_ context.Context, fn func(uow.Repos, *access.Registry) error) error {
			return fn(repos, reg)
		},
		WithinLoanTxFn: func(_ context.Context, _ uint64, fn func(uow.Repos, *access.Registry, *loan.Loan) error) error {
			return fn(repos, reg, l)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) Repos() uow.Repos { return m.ReposValue }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinRegistryTx(ctx context.Context, fn func(r uow.Repos, reg *access.Registry) error) error {
	if m.WithinRegistryTxFn != nil {
		return m.WithinRegistryTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, reg *access.Registry, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}
