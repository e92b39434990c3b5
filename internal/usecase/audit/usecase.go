package audit

import (
	"context"

	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/uow"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
	verifyPage   = 500
)

type RecordDTO struct {
	Seq        uint64         `json:"seq"`
	RecordID   string         `json:"record_id"`
	Action     string         `json:"action"`
	Actor      string         `json:"actor"`
	LoanID     *uint64        `json:"loan_id,omitempty"`
	Params     map[string]any `json:"params"`
	OccurredAt int64          `json:"occurred_at"`
	PrevHash   string         `json:"prev_hash"`
	Hash       string         `json:"hash"`
}

type VerifyResult struct {
	Valid   bool         `json:"valid"`
	Checked uint64       `json:"checked"`
	Head    audit.Cursor `json:"head"`
	Error   string       `json:"error,omitempty"`
}

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(u uow.UnitOfWork) *Usecase { return &Usecase{uow: u} }

// List pages through the chain after the given seq.
func (u *Usecase) List(ctx context.Context, after uint64, limit int) ([]RecordDTO, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	records, err := u.uow.Repos().Audit.List(ctx, after, limit)
	if err != nil {
		return nil, err
	}
	out := make([]RecordDTO, 0, len(records))
	for _, r := range records {
		params, err := r.Params()
		if err != nil {
			return nil, err
		}
		out = append(out, RecordDTO{
			Seq:        r.Seq,
			RecordID:   r.RecordID,
			Action:     r.Action,
			Actor:      r.Actor,
			LoanID:     r.LoanID,
			Params:     params,
			OccurredAt: r.OccurredAt,
			PrevHash:   r.PrevHash,
			Hash:       r.Hash,
		})
	}
	return out, nil
}

// Verify walks the whole chain from genesis. A broken chain is reported in
// the result; only storage failures are returned as errors.
func (u *Usecase) Verify(ctx context.Context) (*VerifyResult, error) {
	repo := u.uow.Repos().Audit
	cur := audit.Genesis
	for {
		page, err := repo.List(ctx, cur.Seq, verifyPage)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return &VerifyResult{Valid: true, Checked: cur.Seq, Head: cur}, nil
		}
		next, err := audit.Verify(cur, page)
		if err != nil {
			return &VerifyResult{Valid: false, Checked: next.Seq, Head: next, Error: err.Error()}, nil
		}
		cur = next
	}
}
