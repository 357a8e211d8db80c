package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"registrar/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := controller.NewRateLimiter(0.5, 2)
	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		return rec
	}

	require.Equal(t, http.StatusOK, do("1.1.1.1").Code)
	require.Equal(t, http.StatusOK, do("1.1.1.1").Code)

	rec := do("1.1.1.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "2", rec.Header().Get("Retry-After"))
	var body controller.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "RATE_LIMITED", body.Code)

	// other clients have their own bucket
	require.Equal(t, http.StatusOK, do("2.2.2.2").Code)
	require.Equal(t, 2, limiter.Len())
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := controller.NewRateLimiter(0, 0)
	for range 100 {
		require.True(t, limiter.Allow("k"))
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter := controller.NewRateLimiter(10, 10)
	require.True(t, limiter.Allow("k"))
	require.Equal(t, 1, limiter.Len())
	limiter.Cleanup()
	require.Equal(t, 1, limiter.Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter.StartJanitor(ctx, time.Millisecond)
}
