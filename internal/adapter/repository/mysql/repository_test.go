package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"friendloan-backend/internal/domain/access"
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/balance"
	"friendloan-backend/internal/domain/guarantor"
	"friendloan-backend/internal/domain/lender"
	"friendloan-backend/internal/testutil/dbtest"
)

func TestRegistryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistryRepository(dbtest.Open(t))

	if _, err := repo.GetRegistry(ctx); !errors.Is(err, access.ErrNotBootstrapped) {
		t.Fatalf("empty registry err = %v", err)
	}
	reg := &access.Registry{Owner: "o1", MaxNbPayments: 36}
	if err := repo.CreateRegistry(ctx, reg); err != nil {
		t.Fatalf("CreateRegistry: %v", err)
	}
	if reg.ID != access.RegistryID {
		t.Fatalf("registry id = %d", reg.ID)
	}

	reg.LoansCount = 5
	if err := repo.SaveRegistry(ctx, reg); err != nil {
		t.Fatalf("SaveRegistry: %v", err)
	}
	got, err := repo.GetRegistryForUpdate(ctx)
	if err != nil || got.LoansCount != 5 || got.Owner != "o1" {
		t.Fatalf("GetRegistryForUpdate = (%+v, %v)", got, err)
	}

	if ok, err := repo.IsWhitelisted(ctx, "w1"); err != nil || ok {
		t.Fatalf("unknown identity whitelisted = (%v, %v)", ok, err)
	}
	for _, v := range []bool{true, false, true} {
		if err := repo.SetWhitelisted(ctx, "w1", v); err != nil {
			t.Fatalf("SetWhitelisted(%v): %v", v, err)
		}
		if ok, _ := repo.IsWhitelisted(ctx, "w1"); ok != v {
			t.Fatalf("IsWhitelisted = %v, want %v", ok, v)
		}
	}
}

func TestBalanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBalanceRepository(dbtest.Open(t))

	if b, err := repo.BalanceOf(ctx, "h1"); err != nil || b != 0 {
		t.Fatalf("unknown holder = (%d, %v)", b, err)
	}
	if err := repo.Credit(ctx, "h1", 50); err != nil {
		t.Fatal(err)
	}
	if err := repo.Credit(ctx, "h1", 25); err != nil {
		t.Fatal(err)
	}
	if err := repo.Debit(ctx, "h1", 70); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if err := repo.Debit(ctx, "h1", 6); !errors.Is(err, balance.ErrInsufficientFunds) {
		t.Fatalf("overdraw err = %v", err)
	}
	if err := repo.Debit(ctx, "h2", 1); !errors.Is(err, balance.ErrInsufficientFunds) {
		t.Fatalf("unknown holder debit err = %v", err)
	}
	if b, _ := repo.BalanceOf(ctx, "h1"); b != 5 {
		t.Fatalf("balance = %d, want 5", b)
	}
}

func TestGuarantorRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGuarantorRepository(dbtest.Open(t))

	if _, err := repo.GetByLoanID(ctx, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing commitment err = %v", err)
	}
	c := &guarantor.Commitment{LoanID: 1, Guarantor: "g1", Amount: 10}
	if err := repo.Save(ctx, c); err != nil {
		t.Fatal(err)
	}
	c.Guarantor, c.Amount = "g2", 40
	if err := repo.Save(ctx, c); err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetByLoanID(ctx, 1)
	if err != nil || got.Guarantor != "g2" || got.Amount != 40 || got.ID != c.ID {
		t.Fatalf("GetByLoanID = (%+v, %v)", got, err)
	}
	if err := repo.Delete(ctx, got); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, &guarantor.Commitment{LoanID: 1, Guarantor: "g3", Amount: 1}); err != nil {
		t.Fatalf("re-engage after delete: %v", err)
	}
}

func TestLenderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLenderRepository(dbtest.Open(t))

	for i, l := range []string{"l2", "l1", "l3"} {
		o := &lender.Offer{LoanID: 9, Lender: l, Amount: 10, Status: lender.StatusPending, Seq: uint64(i)}
		if err := repo.Save(ctx, o); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Save(ctx, &lender.Offer{LoanID: 8, Lender: "l1", Amount: 1, Status: lender.StatusPending}); err != nil {
		t.Fatal(err)
	}

	offers, err := repo.ListByLoanID(ctx, 9)
	if err != nil || len(offers) != 3 {
		t.Fatalf("ListByLoanID = (%+v, %v)", offers, err)
	}
	if offers[0].Lender != "l2" || offers[2].Lender != "l3" {
		t.Fatalf("offers not in seq order: %+v", offers)
	}

	offers[1].Status = lender.StatusApproved
	if err := repo.Save(ctx, &offers[1]); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, &offers[0]); err != nil {
		t.Fatal(err)
	}
	offers, _ = repo.ListByLoanID(ctx, 9)
	if len(offers) != 2 || offers[0].Status != lender.StatusApproved {
		t.Fatalf("after update = %+v", offers)
	}

	if err := repo.Save(ctx, &lender.Offer{LoanID: 9, Lender: "l1", Amount: 5, Status: lender.StatusPending, Seq: 7}); err == nil {
		t.Fatal("expected unique violation on (loan_id, lender)")
	}
}

func TestAuditRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAuditRepository(dbtest.Open(t))

	last, err := repo.Last(ctx)
	if err != nil || last != nil {
		t.Fatalf("empty Last = (%v, %v)", last, err)
	}
	for i := 0; i < 3; i++ {
		if _, err := audit.Append(ctx, repo, audit.Event{Action: audit.ActionTokenMinted, Actor: "o", Params: map[string]any{"n": uint64(i)}}, testTime); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	last, err = repo.Last(ctx)
	if err != nil || last.Seq != 3 {
		t.Fatalf("Last = (%+v, %v)", last, err)
	}
	recs, err := repo.List(ctx, 1, 10)
	if err != nil || len(recs) != 2 || recs[0].Seq != 2 {
		t.Fatalf("List = (%d, %v)", len(recs), err)
	}
	if err := repo.Append(ctx, &recs[0]); err == nil {
		t.Fatal("expected duplicate seq to fail")
	}
}
