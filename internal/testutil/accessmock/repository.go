package accessmock

import (
	"context"

	domain "friendloan-backend/internal/domain/access"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetRegistryFn          func(ctx context.Context) (*domain.Registry, error)
	GetRegistryForUpdateFn func(ctx context.Context) (*domain.Registry, error)
	CreateRegistryFn       func(ctx context.Context, r *domain.Registry) error
	SaveRegistryFn         func(ctx context.Context, r *domain.Registry) error
	IsWhitelistedFn        func(ctx context.Context, identity string) (bool, error)
	SetWhitelistedFn       func(ctx context.Context, identity string, whitelisted bool) error
}

func (m *Repo) GetRegistry(ctx context.Context) (*domain.Registry, error) {
	if m.GetRegistryFn != nil {
		return m.GetRegistryFn(ctx)
	}
	return nil, domain.ErrNotBootstrapped
}

func (m *Repo) GetRegistryForUpdate(ctx context.Context) (*domain.Registry, error) {
	if m.GetRegistryForUpdateFn != nil {
		return m.GetRegistryForUpdateFn(ctx)
	}
	return nil, domain.ErrNotBootstrapped
}

func (m *Repo) CreateRegistry(ctx context.Context, r *domain.Registry) error {
	if m.CreateRegistryFn != nil {
		return m.CreateRegistryFn(ctx, r)
	}
	return nil
}

func (m *Repo) SaveRegistry(ctx context.Context, r *domain.Registry) error {
	if m.SaveRegistryFn != nil {
		return m.SaveRegistryFn(ctx, r)
	}
	return nil
}

func (m *Repo) IsWhitelisted(ctx context.Context, identity string) (bool, error) {
	if m.IsWhitelistedFn != nil {
		return m.IsWhitelistedFn(ctx, identity)
	}
	return false, nil
}

func (m *Repo) SetWhitelisted(ctx context.Context, identity string, whitelisted bool) error {
	if m.SetWhitelistedFn != nil {
		return m.SetWhitelistedFn(ctx, identity, whitelisted)
	}
	return nil
}
