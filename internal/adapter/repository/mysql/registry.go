package mysql

import (
	"context"
	"errors"

	accessDomain "friendloan-backend/internal/domain/access"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegistryRepository struct{ db *gorm.DB }

func NewRegistryRepository(db *gorm.DB) *RegistryRepository { return &RegistryRepository{db: db} }

func (r *RegistryRepository) GetRegistry(ctx context.Context) (*accessDomain.Registry, error) {
	return r.get(r.db.WithContext(ctx))
}

func (r *RegistryRepository) GetRegistryForUpdate(ctx context.Context) (*accessDomain.Registry, error) {
	return r.get(forUpdate(r.db.WithContext(ctx)))
}

func (r *RegistryRepository) get(db *gorm.DB) (*accessDomain.Registry, error) {
	var out accessDomain.Registry
	err := db.Where("id = ?", accessDomain.RegistryID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accessDomain.ErrNotBootstrapped
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RegistryRepository) CreateRegistry(ctx context.Context, reg *accessDomain.Registry) error {
	reg.ID = accessDomain.RegistryID
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *RegistryRepository) SaveRegistry(ctx context.Context, reg *accessDomain.Registry) error {
	return r.db.WithContext(ctx).Save(reg).Error
}

func (r *RegistryRepository) IsWhitelisted(ctx context.Context, identity string) (bool, error) {
	var entries []accessDomain.WhitelistEntry
	err := r.db.WithContext(ctx).Where("identity = ?", identity).Limit(1).Find(&entries).Error
	if err != nil {
		return false, err
	}
	return len(entries) == 1 && entries[0].Whitelisted, nil
}

func (r *RegistryRepository) SetWhitelisted(ctx context.Context, identity string, whitelisted bool) error {
	entry := accessDomain.WhitelistEntry{Identity: identity, Whitelisted: whitelisted}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity"}},
		DoUpdates: clause.AssignmentColumns([]string{"whitelisted", "updated_at"}),
	}).Create(&entry).Error
}
