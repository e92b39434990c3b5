// Package ledgertest wires a Runner over a migrated SQLite database for
// use case tests.
package ledgertest

import (
	"context"
	"sync"
	"testing"
	"time"

	"friendloan-backend/internal/adapter/repository/mysql"
	"friendloan-backend/internal/domain/access"
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/loan"
	"friendloan-backend/internal/domain/uow"
	"friendloan-backend/internal/testutil/dbtest"
	"friendloan-backend/internal/usecase/ledger"

	"gorm.io/gorm"
)

const (
	Owner     = "00000000000000000000000000000001"
	Borrower  = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	GuarOne   = "c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1c1"
	GuarTwo   = "c2c2c2c2c2c2c2c2c2c2c2c2c2c2c2c2"
	LenderOne = "d1d1d1d1d1d1d1d1d1d1d1d1d1d1d1d1"
	LenderTwo = "d2d2d2d2d2d2d2d2d2d2d2d2d2d2d2d2"
	Stranger  = "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
)

// Now is the fixed clock every Env runs on.
var Now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Recorder is an audit.Publisher that keeps what it was given.
type Recorder struct {
	mu      sync.Mutex
	Records []audit.Record
	Err     error
}

func (r *Recorder) Publish(_ context.Context, rec *audit.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Records = append(r.Records, *rec)
	return nil
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Records)
}

type Env struct {
	DB        *gorm.DB
	UoW       *mysql.GormUoW
	Runner    *ledger.Runner
	Published *Recorder
}

func New(t *testing.T) *Env {
	t.Helper()
	db := dbtest.Open(t)
	u := mysql.NewGormUoW(db)
	rec := &Recorder{}
	return &Env{
		DB:        db,
		UoW:       u,
		Runner:    ledger.NewRunner(u, ledger.WithPublisher(rec), ledger.WithClock(func() time.Time { return Now })),
		Published: rec,
	}
}

func (e *Env) Repos() uow.Repos { return e.UoW.Repos() }

// Bootstrap stores the registry row directly.
func (e *Env) Bootstrap(t *testing.T, owner string, maxNbPayments uint32) {
	t.Helper()
	reg := &access.Registry{Owner: owner, MaxNbPayments: maxNbPayments}
	if err := e.Repos().Registry.CreateRegistry(context.Background(), reg); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
}

func (e *Env) Whitelist(t *testing.T, identity string) {
	t.Helper()
	if err := e.Repos().Registry.SetWhitelisted(context.Background(), identity, true); err != nil {
		t.Fatalf("whitelist %s: %v", identity, err)
	}
}

func (e *Env) Fund(t *testing.T, holder string, amount uint64) {
	t.Helper()
	if err := e.Repos().Balances.Credit(context.Background(), holder, amount); err != nil {
		t.Fatalf("credit %s: %v", holder, err)
	}
}

func (e *Env) Balance(t *testing.T, holder string) uint64 {
	t.Helper()
	b, err := e.Repos().Balances.BalanceOf(context.Background(), holder)
	if err != nil {
		t.Fatalf("balance %s: %v", holder, err)
	}
	return b
}

// CreateLoan inserts a loan under the next registry id and returns it.
func (e *Env) CreateLoan(t *testing.T, borrower string, total, maxRate uint64) uint64 {
	t.Helper()
	ctx := context.Background()
	var id uint64
	err := e.UoW.WithinRegistryTx(ctx, func(r uow.Repos, reg *access.Registry) error {
		l := &loan.Loan{
			LoanID:          reg.LoansCount,
			Borrower:        borrower,
			TotalAmount:     total,
			MaxInterestRate: maxRate,
			NbPayments:      12,
			PaymentType:     loan.PaymentMonth,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		reg.LoansCount++
		id = l.LoanID
		return r.Registry.SaveRegistry(ctx, reg)
	})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	return id
}

func (e *Env) AuditRecords(t *testing.T) []audit.Record {
	t.Helper()
	recs, err := e.Repos().Audit.List(context.Background(), 0, 10_000)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	return recs
}
