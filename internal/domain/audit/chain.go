package audit

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"friendloan-backend/pkg/codec"
	"friendloan-backend/pkg/id"
)

// GenesisHash is the PrevHash of the first record.
var GenesisHash = strings.Repeat("0", 64)

var chainKey = [32]byte{
	'f', 'r', 'i', 'e', 'n', 'd', 'l', 'o', 'a', 'n', '.', 'a', 'u', 'd', 'i', 't',
	'.', 'c', 'h', 'a', 'i', 'n', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

type digestInput struct {
	Seq        uint64  `cbor:"seq"`
	RecordID   string  `cbor:"record_id"`
	Action     string  `cbor:"action"`
	Actor      string  `cbor:"actor"`
	LoanID     *uint64 `cbor:"loan_id"`
	Payload    []byte  `cbor:"payload"`
	OccurredAt int64   `cbor:"occurred_at"`
	PrevHash   string  `cbor:"prev_hash"`
}

// Digest is the keyed BLAKE3 hash of every field except Hash itself.
func Digest(r *Record) (string, error) {
	raw, err := codec.Marshal(digestInput{
		Seq:        r.Seq,
		RecordID:   r.RecordID,
		Action:     r.Action,
		Actor:      r.Actor,
		LoanID:     r.LoanID,
		Payload:    r.Payload,
		OccurredAt: r.OccurredAt,
		PrevHash:   r.PrevHash,
	})
	if err != nil {
		return "", fmt.Errorf("encode record %d: %w", r.Seq, err)
	}
	h, err := blake3.NewKeyed(chainKey[:])
	if err != nil {
		return "", err
	}
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Seal links ev after prev (nil for the first record).
func Seal(prev *Record, ev Event, at time.Time) (*Record, error) {
	payload, err := codec.Marshal(ev.Params)
	if err != nil {
		return nil, fmt.Errorf("encode %s params: %w", ev.Action, err)
	}
	r := &Record{
		Seq:        1,
		RecordID:   id.NewID32(),
		Action:     ev.Action,
		Actor:      ev.Actor,
		LoanID:     ev.LoanID,
		Payload:    payload,
		OccurredAt: at.UTC().UnixNano(),
		PrevHash:   GenesisHash,
	}
	if prev != nil {
		r.Seq = prev.Seq + 1
		r.PrevHash = prev.Hash
	}
	if r.Hash, err = Digest(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Append seals ev onto the tail stored in repo. Callers hold the registry
// lock, so the tail cannot move underneath.
func Append(ctx context.Context, repo Repository, ev Event, at time.Time) (*Record, error) {
	last, err := repo.Last(ctx)
	if err != nil {
		return nil, err
	}
	r, err := Seal(last, ev, at)
	if err != nil {
		return nil, err
	}
	if err := repo.Append(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Cursor is the position reached by Verify.
type Cursor struct {
	Seq  uint64 `json:"seq"`
	Hash string `json:"hash"`
}

var Genesis = Cursor{Seq: 0, Hash: GenesisHash}

// Verify checks that records continue the chain at from and returns the
// new tail.
func Verify(from Cursor, records []Record) (Cursor, error) {
	cur := from
	for i := range records {
		r := &records[i]
		if r.Seq != cur.Seq+1 {
			return cur, fmt.Errorf("record %d follows %d: %w", r.Seq, cur.Seq, ErrChainBroken)
		}
		if r.PrevHash != cur.Hash {
			return cur, fmt.Errorf("record %d prev hash mismatch: %w", r.Seq, ErrChainBroken)
		}
		want, err := Digest(r)
		if err != nil {
			return cur, err
		}
		if want != r.Hash {
			return cur, fmt.Errorf("record %d hash mismatch: %w", r.Seq, ErrChainBroken)
		}
		cur = Cursor{Seq: r.Seq, Hash: r.Hash}
	}
	return cur, nil
}
