package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"friendloan-backend/internal/infrastructure/metrics"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// inFlightTTL bounds how long a crashed request keeps its id reserved.
	inFlightTTL  = 60 * time.Second
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second
)

// capture tees the response so it can be stored for replay.
type capture struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *capture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capture) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func reject(c echo.Context, status int, outcome, msg string) error {
	metrics.IdempotencyOutcomes.WithLabelValues(outcome).Inc()
	return c.JSON(status, echo.Map{"error": msg})
}

// IdempotencyMiddleware makes mutating requests replayable by Ax-Request-Id.
// It must run after Auth: the key is method, route, caller and request id.
// A finished response is replayed for ttl; 5xx responses are not kept so
// the client can retry.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	st := store{rdb: rdb, ttl: ttl}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID := strings.TrimSpace(req.Header.Get("Ax-Request-Id"))
			if reqID == "" {
				return reject(c, http.StatusBadRequest, "bad_request", "missing Ax-Request-Id")
			}
			if !validRequestID(reqID) {
				return reject(c, http.StatusBadRequest, "bad_request", "invalid Ax-Request-Id format")
			}
			reqAt, err := parseRequestAt(req.Header.Get("Ax-Request-At"))
			if err != nil {
				return reject(c, http.StatusBadRequest, "bad_request", err.Error())
			}
			if now := nowUTC(); reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return reject(c, http.StatusBadRequest, "bad_request", "Ax-Request-At too skewed")
			}

			caller := CallerFrom(c)
			if caller == "" {
				return reject(c, http.StatusUnauthorized, "unauthorized", "missing caller")
			}

			var body []byte
			if req.Body != nil {
				if body, err = io.ReadAll(req.Body); err != nil {
					return reject(c, http.StatusBadRequest, "bad_request", "unreadable body")
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			sum := digest(body)

			key := idempKey(req.Method, c.Path(), caller, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			fresh, err := st.reserve(ctx, key, entry{Digest: sum, RequestAt: reqAt.UnixMilli()})
			if err != nil {
				log.Printf("idempotency: reserve %s: %v", key, err)
				return reject(c, http.StatusServiceUnavailable, "unavailable", "idempotency store unavailable")
			}
			if !fresh {
				prev, err := st.get(ctx, key)
				if err != nil {
					log.Printf("idempotency: load %s: %v", key, err)
				}
				if prev.Digest != "" && prev.Digest != sum {
					return reject(c, http.StatusConflict, "conflict", "Ax-Request-Id reused with different body")
				}
				if prev.Done && len(prev.Body) > 0 {
					metrics.IdempotencyOutcomes.WithLabelValues("replayed").Inc()
					return c.Blob(prev.Status, echo.MIMEApplicationJSON, prev.Body)
				}
				return reject(c, http.StatusConflict, "in_progress", "request is already in progress")
			}

			w := &capture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = w
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may already be gone; finish on a fresh one
			saveCtx, saveCancel := context.WithTimeout(context.Background(), storeTimeout)
			defer saveCancel()
			if w.status >= http.StatusInternalServerError {
				metrics.IdempotencyOutcomes.WithLabelValues("released").Inc()
				if err := st.release(saveCtx, key); err != nil {
					log.Printf("idempotency: release %s: %v", key, err)
				}
				return nil
			}
			metrics.IdempotencyOutcomes.WithLabelValues("stored").Inc()
			final := entry{Done: true, Status: w.status, Body: w.buf.Bytes(), Digest: sum, RequestAt: reqAt.UnixMilli()}
			if err := st.finish(saveCtx, key, final); err != nil {
				log.Printf("idempotency: store %s: %v", key, err)
			}
			return nil
		}
	}
}
