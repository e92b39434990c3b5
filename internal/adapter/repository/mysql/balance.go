package mysql

import (
	"context"
	"fmt"

	balanceDomain "friendloan-backend/internal/domain/balance"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BalanceRepository struct{ db *gorm.DB }

func NewBalanceRepository(db *gorm.DB) *BalanceRepository { return &BalanceRepository{db: db} }

func (r *BalanceRepository) BalanceOf(ctx context.Context, holder string) (uint64, error) {
	var accounts []balanceDomain.Account
	err := r.db.WithContext(ctx).Where("holder = ?", holder).Limit(1).Find(&accounts).Error
	if err != nil || len(accounts) == 0 {
		return 0, err
	}
	return accounts[0].Balance, nil
}

func (r *BalanceRepository) Credit(ctx context.Context, holder string, amount uint64) error {
	acc := balanceDomain.Account{Holder: holder, Balance: amount}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "holder"}},
		DoUpdates: clause.Assignments(map[string]any{
			"balance": gorm.Expr("balance + ?", amount),
		}),
	}).Create(&acc).Error
}

// Debit is a single conditional update, so a short balance never goes
// negative even without a prior read.
func (r *BalanceRepository) Debit(ctx context.Context, holder string, amount uint64) error {
	res := r.db.WithContext(ctx).
		Model(&balanceDomain.Account{}).
		Where("holder = ? AND balance >= ?", holder, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", holder, balanceDomain.ErrInsufficientFunds)
	}
	return nil
}
