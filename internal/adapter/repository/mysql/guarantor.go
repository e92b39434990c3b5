package mysql

import (
	"context"

	guarantorDomain "friendloan-backend/internal/domain/guarantor"

	"gorm.io/gorm"
)

type GuarantorRepository struct{ db *gorm.DB }

func NewGuarantorRepository(db *gorm.DB) *GuarantorRepository {
	return &GuarantorRepository{db: db}
}

func (r *GuarantorRepository) GetByLoanID(ctx context.Context, loanID uint64) (*guarantorDomain.Commitment, error) {
	var out guarantorDomain.Commitment
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *GuarantorRepository) Save(ctx context.Context, c *guarantorDomain.Commitment) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *GuarantorRepository) Delete(ctx context.Context, c *guarantorDomain.Commitment) error {
	return r.db.WithContext(ctx).Delete(&guarantorDomain.Commitment{}, c.ID).Error
}
