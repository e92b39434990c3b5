package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/funding"
	"friendloan-backend/internal/domain/guarantor"
	"friendloan-backend/internal/domain/lender"
	"friendloan-backend/internal/domain/uow"
	"friendloan-backend/internal/infrastructure/metrics"
	"friendloan-backend/internal/testutil/ledgertest"
	"friendloan-backend/internal/usecase/ledger"
)

func TestApply_PersistsDiff(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	env.Bootstrap(t, ledgertest.Owner, 36)
	env.Fund(t, ledgertest.LenderOne, 100)
	env.Fund(t, ledgertest.LenderTwo, 100)
	loanID := env.CreateLoan(t, ledgertest.Borrower, 100, 10)

	offer := func(id string, amount uint64) ledger.Transition {
		return func(s funding.State, _ funding.Actor) (funding.Outcome, error) {
			return funding.AppendLender(s, funding.Actor{ID: id}, amount, 1)
		}
	}
	if err := env.Runner.Apply(ctx, "append_lender", ledgertest.LenderOne, loanID, offer(ledgertest.LenderOne, 30)); err != nil {
		t.Fatal(err)
	}
	if err := env.Runner.Apply(ctx, "append_lender", ledgertest.LenderTwo, loanID, offer(ledgertest.LenderTwo, 20)); err != nil {
		t.Fatal(err)
	}

	offers, err := env.Repos().Lenders.ListByLoanID(ctx, loanID)
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 2 || offers[0].Seq != 0 || offers[1].Seq != 1 {
		t.Fatalf("offers = %+v", offers)
	}
	if env.Balance(t, ledgertest.LenderOne) != 70 {
		t.Fatalf("lock not applied")
	}
	if env.Published.Len() != 2 {
		t.Fatalf("published = %d", env.Published.Len())
	}
}

func TestApply_TransitionErrorRollsBack(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	env.Bootstrap(t, ledgertest.Owner, 36)
	loanID := env.CreateLoan(t, ledgertest.Borrower, 100, 10)

	before := testutil.ToFloat64(metrics.OperationsTotal.WithLabelValues("test_op", "invalid_argument"))
	err := env.Runner.Apply(ctx, "test_op", ledgertest.GuarOne, loanID, func(s funding.State, a funding.Actor) (funding.Outcome, error) {
		return funding.AppendGuarantor(s, a, 0)
	})
	if !errors.Is(err, guarantor.ErrInvalidAmount) {
		t.Fatalf("err = %v", err)
	}
	if got := testutil.ToFloat64(metrics.OperationsTotal.WithLabelValues("test_op", "invalid_argument")); got != before+1 {
		t.Fatalf("operations counter = %v, want %v", got, before+1)
	}
	if len(env.AuditRecords(t)) != 0 || env.Published.Len() != 0 {
		t.Fatalf("failed transition left a trace")
	}
}

func TestApply_CustodyFailureUndoesState(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	env.Bootstrap(t, ledgertest.Owner, 36)
	env.Fund(t, ledgertest.LenderOne, 10)
	loanID := env.CreateLoan(t, ledgertest.Borrower, 100, 10)

	err := env.Runner.Apply(ctx, "append_lender", ledgertest.LenderOne, loanID, func(s funding.State, a funding.Actor) (funding.Outcome, error) {
		return funding.AppendLender(s, a, 50, 1)
	})
	if err == nil {
		t.Fatal("expected insufficient funds")
	}
	offers, _ := env.Repos().Lenders.ListByLoanID(ctx, loanID)
	if len(offers) != 0 {
		t.Fatalf("offer persisted: %+v", offers)
	}
}

func TestInTx_NilEventRecordsNothing(t *testing.T) {
	env := ledgertest.New(t)
	err := env.Runner.InTx(context.Background(), "noop", func(uow.Repos) (*audit.Event, error) { return nil, nil })
	if err != nil {
		t.Fatal(err)
	}
	if len(env.AuditRecords(t)) != 0 || env.Published.Len() != 0 {
		t.Fatalf("noop produced a record")
	}
}

func TestPersist_RemovesDroppedOffers(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	env.Bootstrap(t, ledgertest.Owner, 36)
	loanID := env.CreateLoan(t, ledgertest.Borrower, 100, 10)
	repos := env.Repos()

	l, err := repos.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatal(err)
	}
	empty := funding.State{Loan: *l}
	full := funding.State{
		Loan:      *l,
		Guarantor: &guarantor.Commitment{LoanID: loanID, Guarantor: ledgertest.GuarOne, Amount: 40},
		Offers: []lender.Offer{
			{LoanID: loanID, Lender: ledgertest.LenderOne, Amount: 10, Status: lender.StatusPending, Seq: 0},
		},
	}
	if err := ledger.Persist(ctx, repos, empty, full); err != nil {
		t.Fatalf("Persist insert: %v", err)
	}
	loaded, err := ledger.LoadState(ctx, repos, *l)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Collateral() != 40 || len(loaded.Offers) != 1 {
		t.Fatalf("loaded = %+v", loaded)
	}

	if err := ledger.Persist(ctx, repos, loaded, empty); err != nil {
		t.Fatalf("Persist delete: %v", err)
	}
	loaded, err = ledger.LoadState(ctx, repos, *l)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Guarantor != nil || len(loaded.Offers) != 0 {
		t.Fatalf("rows survived: %+v", loaded)
	}
}
