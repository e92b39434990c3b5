package mysql

import (
	"context"

	auditDomain "friendloan-backend/internal/domain/audit"

	"gorm.io/gorm"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Last(ctx context.Context) (*auditDomain.Record, error) {
	var out []auditDomain.Record
	if err := r.db.WithContext(ctx).Order("seq DESC").Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *AuditRepository) Append(ctx context.Context, rec *auditDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *AuditRepository) List(ctx context.Context, afterSeq uint64, limit int) ([]auditDomain.Record, error) {
	var out []auditDomain.Record
	err := r.db.WithContext(ctx).
		Where("seq > ?", afterSeq).
		Order("seq ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
