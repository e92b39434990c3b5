package access

import "context"

type Repository interface {
	// GetRegistry returns ErrNotBootstrapped when the singleton row is absent.
	GetRegistry(ctx context.Context) (*Registry, error)
	GetRegistryForUpdate(ctx context.Context) (*Registry, error)
	CreateRegistry(ctx context.Context, r *Registry) error
	SaveRegistry(ctx context.Context, r *Registry) error

	IsWhitelisted(ctx context.Context, identity string) (bool, error)
	SetWhitelisted(ctx context.Context, identity string, whitelisted bool) error
}
