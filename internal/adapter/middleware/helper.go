package middleware

import (
	"context"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"friendloan-backend/pkg/codec"
	"friendloan-backend/pkg/id"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/zeebo/blake3"
)

const keyPrefix = "friendloan:idemp:"

// entry is stored per request id. Done is false while the first request
// is still being handled.
type entry struct {
	Done      bool   `cbor:"done"`
	Status    int    `cbor:"status"`
	Body      []byte `cbor:"body"`
	Digest    string `cbor:"digest"`
	RequestAt int64  `cbor:"request_at"`
}

func digest(b []byte) string { s := blake3.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

func idempKey(method, route, caller, requestID string) string {
	return keyPrefix + strings.Join([]string{strings.ToLower(method), route, caller, requestID}, ":")
}

// validRequestID accepts a 32-char lowercase hex id or a lowercase RFC 4122
// UUID in its dashed form.
func validRequestID(s string) bool {
	if id.Valid(s) {
		return true
	}
	if len(s) != 36 || s != strings.ToLower(s) {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.Variant() == uuid.RFC4122 && u.Version() >= 1 && u.Version() <= 5
}

// parseRequestAt reads epoch seconds, epoch milliseconds or an RFC 3339
// timestamp carrying a zone. Zoneless timestamps are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing Ax-Request-At")
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, errors.New("Ax-Request-At must be epoch (s/ms) or RFC3339 with timezone")
	}
	return t.UTC(), nil
}

type store struct {
	rdb *redis.Client
	ttl time.Duration
}

// reserve claims key for an in-flight request. It reports false when the
// key already exists.
func (s store) reserve(ctx context.Context, key string, e entry) (bool, error) {
	raw, err := codec.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, raw, inFlightTTL).Result()
}

func (s store) get(ctx context.Context, key string) (entry, error) {
	var e entry
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	return e, codec.Unmarshal(raw, &e)
}

func (s store) finish(ctx context.Context, key string, e entry) error {
	raw, err := codec.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, s.ttl).Err()
}

func (s store) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
