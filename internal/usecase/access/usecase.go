package access

import (
	"context"
	"errors"

	"friendloan-backend/internal/domain/access"
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/authz"
	"friendloan-backend/internal/domain/uow"
	"friendloan-backend/internal/usecase/ledger"
)

type Usecase struct {
	uow    uow.UnitOfWork
	runner *ledger.Runner
}

func NewUsecase(u uow.UnitOfWork, r *ledger.Runner) *Usecase { return &Usecase{uow: u, runner: r} }

// Bootstrap creates the registry with owner as its owner. When a registry
// already exists it is returned untouched and created is false.
func (u *Usecase) Bootstrap(ctx context.Context, owner string, maxNbPayments uint32) (dto *RegistryDTO, created bool, err error) {
	if access.IsNull(owner) {
		return nil, false, access.ErrNullIdentity
	}
	err = u.runner.InTx(ctx, "bootstrap", func(repos uow.Repos) (*audit.Event, error) {
		existing, err := repos.Registry.GetRegistry(ctx)
		if err == nil {
			dto = toDTO(existing)
			return nil, nil
		}
		if !errors.Is(err, access.ErrNotBootstrapped) {
			return nil, err
		}

		reg := &access.Registry{Owner: owner, MaxNbPayments: maxNbPayments}
		if err := repos.Registry.CreateRegistry(ctx, reg); err != nil {
			return nil, err
		}
		dto, created = toDTO(reg), true
		return &audit.Event{
			Action: audit.ActionRegistryBootstrapped,
			Actor:  owner,
			Params: map[string]any{"owner": owner, "max_nb_payments": uint64(maxNbPayments)},
		}, nil
	})
	if err != nil {
		return nil, false, err
	}
	return dto, created, nil
}

func (u *Usecase) TransferOwnership(ctx context.Context, caller, newOwner string) error {
	return u.runner.InRegistryTx(ctx, "transfer_ownership", func(repos uow.Repos, reg *access.Registry) (*audit.Event, error) {
		if err := authz.Check(authz.TransferOwnership, authz.Subject{Caller: caller, Owner: reg.Owner}); err != nil {
			return nil, err
		}
		if access.IsNull(newOwner) {
			return nil, access.ErrNullIdentity
		}
		previous := reg.Owner
		reg.Owner = newOwner
		if err := repos.Registry.SaveRegistry(ctx, reg); err != nil {
			return nil, err
		}
		return &audit.Event{
			Action: audit.ActionOwnershipTransferred,
			Actor:  caller,
			Params: map[string]any{"previous_owner": previous, "new_owner": newOwner},
		}, nil
	})
}

// SetMaxNbPayments sets the payment-count ceiling; zero disables creation.
func (u *Usecase) SetMaxNbPayments(ctx context.Context, caller string, n uint32) error {
	return u.runner.InRegistryTx(ctx, "set_max_nb_payments", func(repos uow.Repos, reg *access.Registry) (*audit.Event, error) {
		if err := authz.Check(authz.SetMaxNbPayments, authz.Subject{Caller: caller, Owner: reg.Owner}); err != nil {
			return nil, err
		}
		reg.MaxNbPayments = n
		if err := repos.Registry.SaveRegistry(ctx, reg); err != nil {
			return nil, err
		}
		return &audit.Event{
			Action: audit.ActionMaxNbPaymentsSet,
			Actor:  caller,
			Params: map[string]any{"max_nb_payments": uint64(n)},
		}, nil
	})
}

func (u *Usecase) SetWhitelisted(ctx context.Context, caller, identity string, whitelisted bool) error {
	return u.runner.InRegistryTx(ctx, "update_whitelist", func(repos uow.Repos, reg *access.Registry) (*audit.Event, error) {
		if err := authz.Check(authz.UpdateWhitelist, authz.Subject{Caller: caller, Owner: reg.Owner}); err != nil {
			return nil, err
		}
		if access.IsNull(identity) {
			return nil, access.ErrNullIdentity
		}
		if err := repos.Registry.SetWhitelisted(ctx, identity, whitelisted); err != nil {
			return nil, err
		}
		return &audit.Event{
			Action: audit.ActionWhitelistUpdated,
			Actor:  caller,
			Params: map[string]any{"identity": identity, "whitelisted": whitelisted},
		}, nil
	})
}

func (u *Usecase) Registry(ctx context.Context) (*RegistryDTO, error) {
	reg, err := u.uow.Repos().Registry.GetRegistry(ctx)
	if err != nil {
		return nil, err
	}
	return toDTO(reg), nil
}

func (u *Usecase) IsWhitelisted(ctx context.Context, identity string) (bool, error) {
	return u.uow.Repos().Registry.IsWhitelisted(ctx, identity)
}
