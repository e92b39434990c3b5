package audit

import (
	"context"
	"testing"

	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/testutil/ledgertest"
	"friendloan-backend/internal/usecase/token"
)

func seed(t *testing.T, n int) (*ledgertest.Env, *Usecase) {
	t.Helper()
	env := ledgertest.New(t)
	env.Bootstrap(t, ledgertest.Owner, 36)
	tok := token.NewUsecase(env.UoW, env.Runner)
	for i := 0; i < n; i++ {
		if err := tok.Mint(context.Background(), ledgertest.Owner, ledgertest.LenderOne, uint64(i+1)); err != nil {
			t.Fatalf("Mint: %v", err)
		}
	}
	return env, NewUsecase(env.UoW)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	_, uc := seed(t, 5)

	all, err := uc.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 5 || all[0].Seq != 1 || all[0].PrevHash != audit.GenesisHash {
		t.Fatalf("List = %+v", all)
	}
	if all[1].PrevHash != all[0].Hash {
		t.Fatalf("records not linked")
	}
	if all[4].Params["amount"] != uint64(5) {
		t.Fatalf("params = %v", all[4].Params)
	}

	page, err := uc.List(ctx, 3, 1)
	if err != nil {
		t.Fatalf("List page: %v", err)
	}
	if len(page) != 1 || page[0].Seq != 4 {
		t.Fatalf("page = %+v", page)
	}
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	env, uc := seed(t, 3)

	res, err := uc.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.Valid || res.Checked != 3 || res.Head.Seq != 3 {
		t.Fatalf("Verify = %+v", res)
	}

	if err := env.DB.Model(&audit.Record{}).Where("seq = ?", 2).Update("actor", ledgertest.Stranger).Error; err != nil {
		t.Fatalf("tamper: %v", err)
	}
	res, err = uc.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify after tamper: %v", err)
	}
	if res.Valid || res.Error == "" {
		t.Fatalf("tampered chain reported valid: %+v", res)
	}
}

func TestVerify_Empty(t *testing.T) {
	env := ledgertest.New(t)
	res, err := NewUsecase(env.UoW).Verify(context.Background())
	if err != nil || !res.Valid || res.Checked != 0 {
		t.Fatalf("Verify = (%+v, %v)", res, err)
	}
}
