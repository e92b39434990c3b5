package accessmock

import (
	"context"
	"errors"
	"testing"

	domain "friendloan-backend/internal/domain/access"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if _, err := m.GetRegistry(ctx); !errors.Is(err, domain.ErrNotBootstrapped) {
		t.Fatalf("GetRegistry default: %v", err)
	}
	if _, err := m.GetRegistryForUpdate(ctx); !errors.Is(err, domain.ErrNotBootstrapped) {
		t.Fatalf("GetRegistryForUpdate default: %v", err)
	}
	if err := m.CreateRegistry(ctx, &domain.Registry{}); err != nil {
		t.Fatalf("CreateRegistry default: %v", err)
	}
	if err := m.SaveRegistry(ctx, &domain.Registry{}); err != nil {
		t.Fatalf("SaveRegistry default: %v", err)
	}
	if ok, err := m.IsWhitelisted(ctx, "x"); ok || err != nil {
		t.Fatalf("IsWhitelisted default: (%v, %v)", ok, err)
	}
	if err := m.SetWhitelisted(ctx, "x", true); err != nil {
		t.Fatalf("SetWhitelisted default: %v", err)
	}
}

func TestRepo_Forwards(t *testing.T) {
	ctx := context.Background()
	reg := &domain.Registry{Owner: "o", MaxNbPayments: 3}
	var whitelisted []string

	m := &Repo{
		GetRegistryFn:          func(context.Context) (*domain.Registry, error) { return reg, nil },
		GetRegistryForUpdateFn: func(context.Context) (*domain.Registry, error) { return reg, nil },
		IsWhitelistedFn:        func(_ context.Context, id string) (bool, error) { return id == "w", nil },
		SetWhitelistedFn: func(_ context.Context, id string, on bool) error {
			if on {
				whitelisted = append(whitelisted, id)
			}
			return nil
		},
	}

	if got, _ := m.GetRegistry(ctx); got != reg {
		t.Fatalf("GetRegistry not forwarded")
	}
	if got, _ := m.GetRegistryForUpdate(ctx); got != reg {
		t.Fatalf("GetRegistryForUpdate not forwarded")
	}
	if ok, _ := m.IsWhitelisted(ctx, "w"); !ok {
		t.Fatalf("IsWhitelisted not forwarded")
	}
	_ = m.SetWhitelisted(ctx, "w", true)
	if len(whitelisted) != 1 || whitelisted[0] != "w" {
		t.Fatalf("SetWhitelisted not forwarded: %v", whitelisted)
	}
}
