package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterStoreAllow(t *testing.T) {
	s := NewLimiterStore(60, 2, time.Minute)
	defer s.Stop()

	// burst of 2 allowed, third immediate call denied
	require.True(t, s.Allow("k"))
	require.True(t, s.Allow("k"))
	require.False(t, s.Allow("k"))

	// independent keys have independent budgets
	require.True(t, s.Allow("other"))
}

func TestRateLimitMiddleware(t *testing.T) {
	s := NewLimiterStore(60, 1, time.Minute)
	defer s.Stop()

	var hits int
	h := RateLimit(s)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:4321"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, 1, hits)

	// a different client IP is not throttled by the first one's budget
	req2 := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req2.RemoteAddr = "10.0.0.2:4321"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req2)
	require.Equal(t, http.StatusOK, rec.Code)
}
