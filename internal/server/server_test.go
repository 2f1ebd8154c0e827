package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/callpace/callpace/internal/config"
	apperrors "github.com/callpace/callpace/internal/errors"
	"github.com/callpace/callpace/internal/server/handlers"
)

func newTestServer() *Server {
	return New(
		config.ServerConfig{Host: "127.0.0.1", Port: 0},
		config.LimiterConfig{Enabled: false},
	)
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var body apperrors.HTTPErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if body.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected error code NOT_FOUND, got %s", body.Error.Code)
	}
}

func TestServerRoutesLimitsEndpoint(t *testing.T) {
	handlers.SetPacingConfig(&config.PacingConfig{
		DefaultRate: 120,
		HostRates:   map[string]float64{"api.example.com": 12},
	})
	t.Cleanup(func() { handlers.SetPacingConfig(nil) })

	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/limits", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp handlers.LimitsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Default.MinIntervalMS != 500 {
		t.Fatalf("expected default interval 500ms, got %v", resp.Default.MinIntervalMS)
	}
}

func TestServerRejectsUnknownMethod(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodDelete, "/version", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestServerAppliesInboundRateLimit(t *testing.T) {
	srv := New(
		config.ServerConfig{Host: "127.0.0.1", Port: 0},
		config.LimiterConfig{Enabled: true, RPS: 1, Burst: 1},
	)

	first := httptest.NewRequest(http.MethodGet, "/version", nil)
	first.RemoteAddr = "10.1.1.1:5000"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/version", nil)
	second.RemoteAddr = "10.1.1.1:5001"
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, second)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be limited, got %d", rec.Code)
	}
}
