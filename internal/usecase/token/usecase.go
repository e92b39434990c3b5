package token

import (
	"context"

	"friendloan-backend/internal/domain/access"
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/authz"
	"friendloan-backend/internal/domain/balance"
	"friendloan-backend/internal/domain/uow"
	"friendloan-backend/internal/usecase/ledger"
)

// Usecase is the currency side of the ledger: balances plus the owner's
// mint and burn.
type Usecase struct {
	uow    uow.UnitOfWork
	runner *ledger.Runner
}

func NewUsecase(u uow.UnitOfWork, r *ledger.Runner) *Usecase { return &Usecase{uow: u, runner: r} }

func (u *Usecase) Info() balance.Token { return balance.FriendLoanCoin }

func (u *Usecase) BalanceOf(ctx context.Context, holder string) (uint64, error) {
	return u.uow.Repos().Balances.BalanceOf(ctx, holder)
}

func (u *Usecase) Mint(ctx context.Context, caller, to string, amount uint64) error {
	return u.runner.InRegistryTx(ctx, "mint", func(repos uow.Repos, reg *access.Registry) (*audit.Event, error) {
		if err := authz.Check(authz.MintTokens, authz.Subject{Caller: caller, Owner: reg.Owner}); err != nil {
			return nil, err
		}
		if err := checkHolder(to, amount); err != nil {
			return nil, err
		}
		if err := repos.Balances.Credit(ctx, to, amount); err != nil {
			return nil, err
		}
		return &audit.Event{
			Action: audit.ActionTokenMinted,
			Actor:  caller,
			Params: map[string]any{"to": to, "amount": amount},
		}, nil
	})
}

func (u *Usecase) Burn(ctx context.Context, caller, from string, amount uint64) error {
	return u.runner.InRegistryTx(ctx, "burn", func(repos uow.Repos, reg *access.Registry) (*audit.Event, error) {
		if err := authz.Check(authz.BurnTokens, authz.Subject{Caller: caller, Owner: reg.Owner}); err != nil {
			return nil, err
		}
		if err := checkHolder(from, amount); err != nil {
			return nil, err
		}
		if err := repos.Balances.Debit(ctx, from, amount); err != nil {
			return nil, err
		}
		return &audit.Event{
			Action: audit.ActionTokenBurned,
			Actor:  caller,
			Params: map[string]any{"from": from, "amount": amount},
		}, nil
	})
}

// custody only moves through lock and refund.
func checkHolder(holder string, amount uint64) error {
	if access.IsNull(holder) || holder == balance.CustodyAccount {
		return access.ErrNullIdentity
	}
	if amount == 0 {
		return balance.ErrInvalidAmount
	}
	return nil
}
