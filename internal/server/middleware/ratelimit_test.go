package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callpace/callpace/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_Disabled(t *testing.T) {
	handler := RateLimit(config.LimiterConfig{Enabled: false})(okHandler())

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/version", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_ExceedsBurst(t *testing.T) {
	cfg := config.LimiterConfig{Enabled: true, RPS: 1, Burst: 2}
	handler := RateLimit(cfg)(okHandler())

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest("GET", "/version", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}

func TestRateLimit_PerClientBuckets(t *testing.T) {
	cfg := config.LimiterConfig{Enabled: true, RPS: 1, Burst: 1}
	handler := RateLimit(cfg)(okHandler())

	first := httptest.NewRequest("GET", "/version", nil)
	first.RemoteAddr = "10.0.0.1:4000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	exhausted := httptest.NewRequest("GET", "/version", nil)
	exhausted.RemoteAddr = "10.0.0.1:4001"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, exhausted)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "same IP shares one bucket")

	other := httptest.NewRequest("GET", "/version", nil)
	other.RemoteAddr = "10.0.0.2:4000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "distinct IP gets its own bucket")
}

func TestRateLimit_ResponseBody(t *testing.T) {
	cfg := config.LimiterConfig{Enabled: true, RPS: 1, Burst: 1}
	handler := RateLimit(cfg)(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/version", nil)
		req.RemoteAddr = "10.0.0.3:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if i == 1 {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
		}
	}
}
