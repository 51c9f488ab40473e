// internal/api/middleware/idempotency.go
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"wallet-ledger/internal/api/types"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	idempotencyPrefix    = "idempotency:v1:"
	inProgressMarker     = "__in_progress__"
	redisOpTimeout       = 2 * time.Second
)

type storedResponse struct {
	Status  int               `json:"status"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers"`
}

// Idempotency replays the stored response of a request that carries an
// Idempotency-Key already seen on the same route. The header is optional and
// a nil client disables the middleware. Responses with a 5xx status are not
// stored, so the client may retry them.
func Idempotency(client *redis.Client, ttl time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if client == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			cacheKey := idempotencyPrefix + r.Method + ":" + r.URL.Path + ":" + key

			ctx, cancel := context.WithTimeout(r.Context(), redisOpTimeout)
			defer cancel()

			cached, err := client.Get(ctx, cacheKey).Result()
			if err == nil {
				replay(w, cached, key, logger)
				return
			}
			if !errors.Is(err, redis.Nil) {
				logger.Error("idempotency lookup failed", slog.String("key", key), slog.Any("error", err))
				writeError(w, http.StatusInternalServerError, "idempotency store failure")
				return
			}

			reserved, err := client.SetNX(ctx, cacheKey, inProgressMarker, ttl).Result()
			if err != nil {
				logger.Error("idempotency reservation failed", slog.String("key", key), slog.Any("error", err))
				writeError(w, http.StatusInternalServerError, "idempotency reservation failure")
				return
			}
			if !reserved {
				writeError(w, http.StatusConflict, "duplicate request currently processing")
				return
			}

			// The marker is released on every path that does not store a
			// response, including a panic in next.
			persisted := false
			defer func() {
				if persisted {
					return
				}
				delCtx, delCancel := context.WithTimeout(context.Background(), redisOpTimeout)
				defer delCancel()
				if err := client.Del(delCtx, cacheKey).Err(); err != nil {
					logger.Error("failed to release idempotency key", slog.String("key", key), slog.Any("error", err))
				}
			}()

			var body bytes.Buffer
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if status >= http.StatusInternalServerError {
				return
			}

			stored := storedResponse{Status: status, Body: body.String(), Headers: map[string]string{}}
			for header := range ww.Header() {
				stored.Headers[header] = ww.Header().Get(header)
			}
			payload, err := json.Marshal(stored)
			if err == nil {
				persistCtx, persistCancel := context.WithTimeout(context.Background(), redisOpTimeout)
				err = client.Set(persistCtx, cacheKey, payload, ttl).Err()
				persistCancel()
			}
			if err != nil {
				logger.Error("failed to persist idempotent response", slog.String("key", key), slog.Any("error", err))
				return
			}
			persisted = true
		})
	}
}

func replay(w http.ResponseWriter, cached, key string, logger *slog.Logger) {
	if cached == inProgressMarker {
		writeError(w, http.StatusConflict, "duplicate request currently processing")
		return
	}

	var stored storedResponse
	if err := json.Unmarshal([]byte(cached), &stored); err != nil {
		logger.Warn("failed to decode stored idempotent response", slog.String("key", key), slog.Any("error", err))
		writeError(w, http.StatusConflict, "duplicate request")
		return
	}

	for header, value := range stored.Headers {
		if strings.EqualFold(header, "Content-Length") {
			continue
		}
		w.Header().Set(header, value)
	}
	w.Header().Set("Idempotent-Replayed", "true")
	w.WriteHeader(stored.Status)
	_, _ = w.Write([]byte(stored.Body))
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: message})
}
