// Package ledger runs every mutating operation: one transaction, the
// audit append, metrics and the post-commit publish.
package ledger

import (
	"context"
	"errors"
	"log"
	"time"

	"friendloan-backend/internal/domain/access"
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/balance"
	"friendloan-backend/internal/domain/errs"
	"friendloan-backend/internal/domain/funding"
	"friendloan-backend/internal/domain/loan"
	"friendloan-backend/internal/domain/uow"
	"friendloan-backend/internal/infrastructure/metrics"

	"gorm.io/gorm"
)

// Transition is a pure funding step bound to its arguments.
type Transition func(s funding.State, a funding.Actor) (funding.Outcome, error)

type Runner struct {
	uow uow.UnitOfWork
	pub audit.Publisher
	now func() time.Time
}

type Option func(*Runner)

func WithPublisher(p audit.Publisher) Option { return func(r *Runner) { r.pub = p } }

func WithClock(now func() time.Time) Option { return func(r *Runner) { r.now = now } }

func NewRunner(u uow.UnitOfWork, opts ...Option) *Runner {
	r := &Runner{uow: u, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Runner) Now() time.Time { return r.now().UTC() }

// InTx runs fn in a plain transaction. A nil event records nothing.
func (r *Runner) InTx(ctx context.Context, op string, fn func(repos uow.Repos) (*audit.Event, error)) error {
	start := time.Now()
	var rec *audit.Record
	err := r.uow.WithinTx(ctx, func(repos uow.Repos) error {
		ev, err := fn(repos)
		if err != nil || ev == nil {
			return err
		}
		rec, err = audit.Append(ctx, repos.Audit, *ev, r.Now())
		return err
	})
	return r.done(ctx, op, start, rec, err)
}

// InRegistryTx is InTx with the registry row locked for the duration.
func (r *Runner) InRegistryTx(ctx context.Context, op string, fn func(repos uow.Repos, reg *access.Registry) (*audit.Event, error)) error {
	start := time.Now()
	var rec *audit.Record
	err := r.uow.WithinRegistryTx(ctx, func(repos uow.Repos, reg *access.Registry) error {
		ev, err := fn(repos, reg)
		if err != nil || ev == nil {
			return err
		}
		rec, err = audit.Append(ctx, repos.Audit, *ev, r.Now())
		return err
	})
	return r.done(ctx, op, start, rec, err)
}

// Apply loads the loan's funding state, applies t and persists the outcome
// with its custody transfers and audit record.
func (r *Runner) Apply(ctx context.Context, op, caller string, loanID uint64, t Transition) error {
	start := time.Now()
	var rec *audit.Record
	err := r.uow.WithinLoanTx(ctx, loanID, func(repos uow.Repos, reg *access.Registry, l *loan.Loan) error {
		before, err := LoadState(ctx, repos, *l)
		if err != nil {
			return err
		}
		out, err := t(before, funding.Actor{ID: caller, Owner: reg.Owner})
		if err != nil {
			return err
		}
		if err := Persist(ctx, repos, before, out.State); err != nil {
			return err
		}
		if err := balance.NewCustody(repos.Balances).Apply(ctx, out.Transfers...); err != nil {
			return err
		}
		rec, err = audit.Append(ctx, repos.Audit, out.Event, r.Now())
		return err
	})
	return r.done(ctx, op, start, rec, err)
}

func (r *Runner) done(ctx context.Context, op string, start time.Time, rec *audit.Record, err error) error {
	metrics.Observe(op, start, err)
	if err != nil {
		log.Printf("ledger: %s: %s: %v", op, errs.Label(err), err)
		return err
	}
	if rec != nil && r.pub != nil {
		if perr := r.pub.Publish(ctx, rec); perr != nil {
			metrics.AuditPublishFailures.Inc()
			log.Printf("ledger: publish audit record %d: %v", rec.Seq, perr)
		}
	}
	return nil
}

// LoadState reads the guarantor commitment and offers of l.
func LoadState(ctx context.Context, repos uow.Repos, l loan.Loan) (funding.State, error) {
	st := funding.State{Loan: l}

	g, err := repos.Guarantors.GetByLoanID(ctx, l.LoanID)
	switch {
	case err == nil:
		st.Guarantor = g
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return st, err
	}

	offers, err := repos.Lenders.ListByLoanID(ctx, l.LoanID)
	if err != nil {
		return st, err
	}
	st.Offers = offers
	return st, nil
}

// Persist writes the difference between before and after.
func Persist(ctx context.Context, repos uow.Repos, before, after funding.State) error {
	if before.Loan.Started != after.Loan.Started {
		l := after.Loan
		if err := repos.Loans.Save(ctx, &l); err != nil {
			return err
		}
	}

	switch {
	case after.Guarantor == nil && before.Guarantor != nil:
		if err := repos.Guarantors.Delete(ctx, before.Guarantor); err != nil {
			return err
		}
	case after.Guarantor != nil && (before.Guarantor == nil || *before.Guarantor != *after.Guarantor):
		if err := repos.Guarantors.Save(ctx, after.Guarantor); err != nil {
			return err
		}
	}

	kept := make(map[string]bool, len(after.Offers))
	for _, o := range after.Offers {
		kept[o.Lender] = true
	}
	prev := make(map[string]int, len(before.Offers))
	for i := range before.Offers {
		o := &before.Offers[i]
		prev[o.Lender] = i
		if !kept[o.Lender] {
			if err := repos.Lenders.Delete(ctx, o); err != nil {
				return err
			}
		}
	}
	for i := range after.Offers {
		o := &after.Offers[i]
		if j, ok := prev[o.Lender]; ok && before.Offers[j] == *o {
			continue
		}
		if err := repos.Lenders.Save(ctx, o); err != nil {
			return err
		}
	}
	return nil
}
