package audit

import (
	"context"
	"fmt"

	"friendloan-backend/internal/domain/errs"
	"friendloan-backend/pkg/codec"
)

const (
	ActionRegistryBootstrapped = "registry.bootstrapped"
	ActionOwnershipTransferred = "registry.ownership_transferred"
	ActionMaxNbPaymentsSet     = "registry.max_nb_payments_set"
	ActionWhitelistUpdated     = "whitelist.updated"
	ActionTokenMinted          = "token.minted"
	ActionTokenBurned          = "token.burned"
	ActionLoanCreated          = "loan.created"
	ActionLoanStarted          = "loan.started"
	ActionGuarantorAppended    = "guarantor.appended"
	ActionGuarantorRemoved     = "guarantor.removed"
	ActionGuarantorForced      = "guarantor.force_removed"
	ActionGuarantorReplaced    = "guarantor.replaced"
	ActionLenderAppended       = "lender.appended"
	ActionLenderRemoved        = "lender.removed"
	ActionLenderApproved       = "lender.approved"
	ActionLenderUnapproved     = "lender.approval_removed"
)

var ErrChainBroken = fmt.Errorf("audit chain broken: %w", errs.ErrInvalidState)

// Event is what a successful mutation reports before it is sealed into
// the chain.
type Event struct {
	Action string
	Actor  string
	LoanID *uint64
	Params map[string]any
}

// Record is one sealed link of the audit chain. Seq starts at 1.
type Record struct {
	Seq        uint64  `gorm:"primaryKey;column:seq;autoIncrement:false" json:"seq"`
	RecordID   string  `gorm:"column:record_id;size:32;not null;uniqueIndex:ux_audit_records_record_id" json:"record_id"`
	Action     string  `gorm:"column:action;size:64;not null" json:"action"`
	Actor      string  `gorm:"column:actor;size:32;not null" json:"actor"`
	LoanID     *uint64 `gorm:"column:loan_id;index:idx_audit_records_loan" json:"loan_id,omitempty"`
	Payload    []byte  `gorm:"column:payload" json:"-"`
	OccurredAt int64   `gorm:"column:occurred_at;not null" json:"occurred_at"`
	PrevHash   string  `gorm:"column:prev_hash;size:64;not null" json:"prev_hash"`
	Hash       string  `gorm:"column:hash;size:64;not null" json:"hash"`
}

func (Record) TableName() string { return "audit_records" }

// Params decodes the CBOR payload.
func (r Record) Params() (map[string]any, error) {
	out := map[string]any{}
	if len(r.Payload) == 0 {
		return out, nil
	}
	if err := codec.Unmarshal(r.Payload, &out); err != nil {
		return nil, fmt.Errorf("decode payload of record %d: %w", r.Seq, err)
	}
	return out, nil
}

type Repository interface {
	// Last returns nil, nil on an empty chain.
	Last(ctx context.Context) (*Record, error)
	Append(ctx context.Context, r *Record) error
	// List returns up to limit records with Seq > afterSeq in Seq order.
	List(ctx context.Context, afterSeq uint64, limit int) ([]Record, error)
}

// Publisher fans committed records out to subscribers.
type Publisher interface {
	Publish(ctx context.Context, r *Record) error
}
