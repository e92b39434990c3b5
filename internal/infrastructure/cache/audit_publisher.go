package cache

import (
	"context"
	"encoding/json"

	"friendloan-backend/internal/domain/audit"

	"github.com/redis/go-redis/v9"
)

const DefaultAuditChannel = "friendloan:audit"

type auditMessage struct {
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

// AuditPublisher pushes committed audit records to a Redis channel.
type AuditPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewAuditPublisher(rdb *redis.Client, channel string) *AuditPublisher {
	if channel == "" {
		channel = DefaultAuditChannel
	}
	return &AuditPublisher{rdb: rdb, channel: channel}
}

func (p *AuditPublisher) Publish(ctx context.Context, r *audit.Record) error {
	params, err := r.Params()
	if err != nil {
		return err
	}
	b, err := json.Marshal(auditMessage{
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
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, b).Err()
}
