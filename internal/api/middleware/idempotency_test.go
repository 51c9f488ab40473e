// internal/api/middleware/idempotency_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-ledger/internal/util"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func countingHandler(calls *int32, status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Call", strings.Repeat("I", int(n)))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func post(h http.Handler, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	_, client := setupRedis(t)
	var calls int32
	h := Idempotency(client, time.Hour, util.DiscardLogger())(countingHandler(&calls, http.StatusCreated, `{"id":1}`))

	first := post(h, "/deposits", "abc")
	second := post(h, "/deposits", "abc")

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, `{"id":1}`, second.Body.String())
	assert.Equal(t, "I", second.Header().Get("X-Call"))
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Empty(t, first.Header().Get("Idempotent-Replayed"))
}

func TestIdempotency_KeysAreScopedByRoute(t *testing.T) {
	_, client := setupRedis(t)
	var calls int32
	h := Idempotency(client, time.Hour, util.DiscardLogger())(countingHandler(&calls, http.StatusCreated, `{}`))

	post(h, "/deposits", "abc")
	post(h, "/withdrawals", "abc")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_WithoutHeaderPassesThrough(t *testing.T) {
	_, client := setupRedis(t)
	var calls int32
	h := Idempotency(client, time.Hour, util.DiscardLogger())(countingHandler(&calls, http.StatusCreated, `{}`))

	post(h, "/deposits", "")
	post(h, "/deposits", "")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_NilClientPassesThrough(t *testing.T) {
	var calls int32
	h := Idempotency(nil, time.Hour, util.DiscardLogger())(countingHandler(&calls, http.StatusCreated, `{}`))

	post(h, "/deposits", "abc")
	post(h, "/deposits", "abc")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_InProgressReturnsConflict(t *testing.T) {
	mr, client := setupRedis(t)
	require.NoError(t, mr.Set(idempotencyPrefix+"POST:/deposits:abc", inProgressMarker))
	var calls int32
	h := Idempotency(client, time.Hour, util.DiscardLogger())(countingHandler(&calls, http.StatusCreated, `{}`))

	rec := post(h, "/deposits", "abc")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestIdempotency_ServerErrorsAreNotStored(t *testing.T) {
	mr, client := setupRedis(t)
	var calls int32
	h := Idempotency(client, time.Hour, util.DiscardLogger())(countingHandler(&calls, http.StatusInternalServerError, `{"error":"boom"}`))

	first := post(h, "/deposits", "abc")
	second := post(h, "/deposits", "abc")

	assert.Equal(t, http.StatusInternalServerError, first.Code)
	assert.Equal(t, http.StatusInternalServerError, second.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.False(t, mr.Exists(idempotencyPrefix+"POST:/deposits:abc"))
}

func TestIdempotency_ClientErrorsAreReplayed(t *testing.T) {
	_, client := setupRedis(t)
	var calls int32
	h := Idempotency(client, time.Hour, util.DiscardLogger())(countingHandler(&calls, http.StatusBadRequest, `{"error":"insufficient funds"}`))

	post(h, "/withdrawals", "k1")
	second := post(h, "/withdrawals", "k1")

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, http.StatusBadRequest, second.Code)
}

func TestIdempotency_StoredEntryExpires(t *testing.T) {
	mr, client := setupRedis(t)
	var calls int32
	h := Idempotency(client, time.Minute, util.DiscardLogger())(countingHandler(&calls, http.StatusCreated, `{}`))

	post(h, "/deposits", "abc")
	ttl := client.TTL(context.Background(), idempotencyPrefix+"POST:/deposits:abc").Val()
	assert.Greater(t, ttl, time.Duration(0))

	mr.FastForward(2 * time.Minute)
	post(h, "/deposits", "abc")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_RedisDownFailsClosed(t *testing.T) {
	mr, client := setupRedis(t)
	mr.Close()
	var calls int32
	h := Idempotency(client, time.Hour, util.DiscardLogger())(countingHandler(&calls, http.StatusCreated, `{}`))

	rec := post(h, "/deposits", "abc")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestIdempotency_PanicReleasesKey(t *testing.T) {
	mr, client := setupRedis(t)
	mw := Idempotency(client, time.Hour, util.DiscardLogger())
	panicking := mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("handler exploded")
	}))

	assert.PanicsWithValue(t, "handler exploded", func() { post(panicking, "/deposits", "abc") })
	assert.False(t, mr.Exists(idempotencyPrefix+"POST:/deposits:abc"))

	var calls int32
	retry := post(mw(countingHandler(&calls, http.StatusCreated, `{"id":1}`)), "/deposits", "abc")

	assert.Equal(t, http.StatusCreated, retry.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, mr.Exists(idempotencyPrefix+"POST:/deposits:abc"))
}
