package mysql

import (
	"context"

	lenderDomain "friendloan-backend/internal/domain/lender"

	"gorm.io/gorm"
)

type LenderRepository struct{ db *gorm.DB }

func NewLenderRepository(db *gorm.DB) *LenderRepository { return &LenderRepository{db: db} }

func (r *LenderRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]lenderDomain.Offer, error) {
	var out []lenderDomain.Offer
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("seq ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *LenderRepository) Save(ctx context.Context, o *lenderDomain.Offer) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *LenderRepository) Delete(ctx context.Context, o *lenderDomain.Offer) error {
	return r.db.WithContext(ctx).Delete(&lenderDomain.Offer{}, o.ID).Error
}
