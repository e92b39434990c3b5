package mysql

import (
	"context"

	"friendloan-backend/internal/domain/access"
	"friendloan-backend/internal/domain/loan"
	"friendloan-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Registry:   &RegistryRepository{db: db},
		Loans:      &LoanRepository{db: db},
		Guarantors: &GuarantorRepository{db: db},
		Lenders:    &LenderRepository{db: db},
		Balances:   &BalanceRepository{db: db},
		Audit:      &AuditRepository{db: db},
	}
}

func (u *GormUoW) Repos() uow.Repos { return reposFor(u.db) }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinRegistryTx(ctx context.Context, fn func(r uow.Repos, reg *access.Registry) error) error {
	return u.WithinTx(ctx, func(r uow.Repos) error {
		reg, err := r.Registry.GetRegistryForUpdate(ctx)
		if err != nil {
			return err
		}
		return fn(r, reg)
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, reg *access.Registry, l *loan.Loan) error) error {
	return u.WithinRegistryTx(ctx, func(r uow.Repos, reg *access.Registry) error {
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, reg, l)
	})
}
