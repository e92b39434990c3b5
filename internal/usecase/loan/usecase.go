package loan

import (
	"context"
	"errors"

	"friendloan-backend/internal/domain/access"
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/authz"
	"friendloan-backend/internal/domain/errs"
	"friendloan-backend/internal/domain/loan"
	"friendloan-backend/internal/domain/uow"
	"friendloan-backend/internal/usecase/ledger"
)

type Usecase struct {
	uow    uow.UnitOfWork
	runner *ledger.Runner
}

func NewUsecase(u uow.UnitOfWork, r *ledger.Runner) *Usecase { return &Usecase{uow: u, runner: r} }

// Create registers a loan for a whitelisted caller under the next id.
// A rejected call consumes no id.
func (u *Usecase) Create(ctx context.Context, caller string, in CreateLoanInput) (*LoanDTO, error) {
	var created loan.Loan
	err := u.runner.InRegistryTx(ctx, "create_loan", func(repos uow.Repos, reg *access.Registry) (*audit.Event, error) {
		whitelisted, err := repos.Registry.IsWhitelisted(ctx, caller)
		if err != nil {
			return nil, err
		}
		if err := authz.Check(authz.CreateLoan, authz.Subject{Caller: caller, Owner: reg.Owner, Whitelisted: whitelisted}); err != nil {
			return nil, err
		}

		terms := loan.Terms{
			TotalAmount:     in.TotalAmount,
			MaxInterestRate: in.MaxInterestRate,
			NbPayments:      in.NbPayments,
			PaymentType:     loan.PaymentType(in.PaymentType),
		}
		if err := terms.Validate(reg.MaxNbPayments); err != nil {
			return nil, err
		}

		l := &loan.Loan{
			LoanID:          reg.LoansCount,
			Borrower:        caller,
			TotalAmount:     terms.TotalAmount,
			MaxInterestRate: terms.MaxInterestRate,
			NbPayments:      terms.NbPayments,
			PaymentType:     terms.PaymentType,
		}
		if err := repos.Loans.Create(ctx, l); err != nil {
			return nil, err
		}
		reg.LoansCount++
		if err := repos.Registry.SaveRegistry(ctx, reg); err != nil {
			return nil, err
		}
		created = *l

		loanID := l.LoanID
		return &audit.Event{
			Action: audit.ActionLoanCreated,
			Actor:  caller,
			LoanID: &loanID,
			Params: map[string]any{
				"loan_id":           loanID,
				"borrower":          caller,
				"total_amount":      l.TotalAmount,
				"max_interest_rate": l.MaxInterestRate,
				"nb_payments":       uint64(l.NbPayments),
				"payment_type":      l.PaymentType.String(),
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(&created), nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.uow.Repos().Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Count is the number of loans ever created, which is also the next id.
func (u *Usecase) Count(ctx context.Context) (uint64, error) {
	reg, err := u.uow.Repos().Registry.GetRegistry(ctx)
	if errors.Is(err, access.ErrNotBootstrapped) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return reg.LoansCount, nil
}

// IsStarted is false for unknown loans.
func (u *Usecase) IsStarted(ctx context.Context, loanID uint64) (bool, error) {
	l, err := u.uow.Repos().Loans.GetByLoanID(ctx, loanID)
	if errors.Is(err, errs.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return l.Started, nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrower string) ([]LoanDTO, error) {
	loans, err := u.uow.Repos().Loans.ListByBorrower(ctx, borrower)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, *toDTO(&loans[i]))
	}
	return out, nil
}
