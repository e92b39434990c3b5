package funding

import (
	"context"
	"errors"

	"friendloan-backend/internal/domain/errs"
	"friendloan-backend/internal/domain/funding"
	"friendloan-backend/internal/domain/lender"
	"friendloan-backend/internal/domain/uow"
	"friendloan-backend/internal/usecase/ledger"
)

// Usecase exposes the guarantor and lender ledgers of every loan.
type Usecase struct {
	uow    uow.UnitOfWork
	runner *ledger.Runner
}

func NewUsecase(u uow.UnitOfWork, r *ledger.Runner) *Usecase {
	return &Usecase{uow: u, runner: r}
}

func (u *Usecase) AppendGuarantor(ctx context.Context, caller string, loanID, amount uint64) error {
	return u.runner.Apply(ctx, "append_guarantor", caller, loanID, func(s funding.State, a funding.Actor) (funding.Outcome, error) {
		return funding.AppendGuarantor(s, a, amount)
	})
}

func (u *Usecase) RemoveGuarantor(ctx context.Context, caller string, loanID uint64) error {
	return u.runner.Apply(ctx, "remove_guarantor", caller, loanID, funding.RemoveGuarantor)
}

func (u *Usecase) ForceRemoveGuarantor(ctx context.Context, caller string, loanID uint64, guarantor string) error {
	return u.runner.Apply(ctx, "force_remove_guarantor", caller, loanID, func(s funding.State, a funding.Actor) (funding.Outcome, error) {
		return funding.ForceRemoveGuarantor(s, a, guarantor)
	})
}

func (u *Usecase) ReplaceGuarantor(ctx context.Context, caller string, loanID uint64, outgoing string, amount uint64) error {
	return u.runner.Apply(ctx, "replace_guarantor", caller, loanID, func(s funding.State, a funding.Actor) (funding.Outcome, error) {
		return funding.ReplaceGuarantor(s, a, outgoing, amount)
	})
}

func (u *Usecase) AppendLender(ctx context.Context, caller string, loanID, amount, rate uint64) error {
	return u.runner.Apply(ctx, "append_lender", caller, loanID, func(s funding.State, a funding.Actor) (funding.Outcome, error) {
		return funding.AppendLender(s, a, amount, rate)
	})
}

func (u *Usecase) RemoveLender(ctx context.Context, caller string, loanID uint64) error {
	return u.runner.Apply(ctx, "remove_lender", caller, loanID, funding.RemoveLender)
}

func (u *Usecase) ApproveLender(ctx context.Context, caller string, loanID uint64, identity string) error {
	return u.runner.Apply(ctx, "approve_lender", caller, loanID, func(s funding.State, a funding.Actor) (funding.Outcome, error) {
		return funding.ApproveLender(s, a, identity)
	})
}

func (u *Usecase) RemoveApprovedLender(ctx context.Context, caller string, loanID uint64, identity string) error {
	return u.runner.Apply(ctx, "remove_approved_lender", caller, loanID, func(s funding.State, a funding.Actor) (funding.Outcome, error) {
		return funding.RemoveApprovedLender(s, a, identity)
	})
}

// state loads a loan's funding state outside any transaction. Unknown
// loans yield an empty state.
func (u *Usecase) state(ctx context.Context, loanID uint64) (funding.State, error) {
	repos := u.uow.Repos()
	l, err := repos.Loans.GetByLoanID(ctx, loanID)
	if errors.Is(err, errs.ErrNotFound) {
		return funding.State{}, nil
	}
	if err != nil {
		return funding.State{}, err
	}
	return ledger.LoadState(ctx, repos, *l)
}

func (u *Usecase) IsGuarantorEngaged(ctx context.Context, loanID uint64, identity string) (bool, error) {
	s, err := u.state(ctx, loanID)
	if err != nil {
		return false, err
	}
	return s.IsGuarantorEngaged(identity), nil
}

func (u *Usecase) GuarantorsCount(ctx context.Context, loanID uint64) (int, error) {
	s, err := u.state(ctx, loanID)
	if err != nil {
		return 0, err
	}
	return s.GuarantorsCount(), nil
}

func (u *Usecase) PendingLenders(ctx context.Context, loanID uint64) (lender.List, error) {
	s, err := u.state(ctx, loanID)
	if err != nil {
		return lender.List{}, err
	}
	return s.Pending(), nil
}

func (u *Usecase) ApprovedLenders(ctx context.Context, loanID uint64) (lender.List, error) {
	s, err := u.state(ctx, loanID)
	if err != nil {
		return lender.List{}, err
	}
	return s.ApprovedList(), nil
}

// Summary is the funding position of one loan.
type Summary struct {
	LoanID     uint64 `json:"loan_id"`
	Total      uint64 `json:"total_amount"`
	Collateral uint64 `json:"collateral"`
	Approved   uint64 `json:"approved"`
	Ready      bool   `json:"ready"`
	Started    bool   `json:"started"`
}

func (u *Usecase) Summary(ctx context.Context, loanID uint64) (*Summary, error) {
	repos := u.uow.Repos()
	l, err := repos.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	s, err := ledger.LoadState(ctx, repos, *l)
	if err != nil {
		return nil, err
	}
	return &Summary{
		LoanID:     l.LoanID,
		Total:      l.TotalAmount,
		Collateral: s.Collateral(),
		Approved:   s.Approved(),
		Ready:      s.Ready(),
		Started:    l.Started,
	}, nil
}
