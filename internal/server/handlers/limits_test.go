package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/callpace/callpace/internal/config"
)

func TestLimitsHandlerReportsEffectiveCeilings(t *testing.T) {
	SetPacingConfig(&config.PacingConfig{
		DefaultRate: 60,
		HostRates: map[string]float64{
			"api.example.com":  30,
			"slow.example.com": 6,
		},
	})
	t.Cleanup(func() { SetPacingConfig(nil) })

	req := httptest.NewRequest(http.MethodGet, "/v1/limits", nil)
	rec := httptest.NewRecorder()

	LimitsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp LimitsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Default.MaxPerMinute != 60 {
		t.Fatalf("expected default rate 60, got %v", resp.Default.MaxPerMinute)
	}

	if resp.Default.MinIntervalMS != 1000 {
		t.Fatalf("expected default interval 1000ms, got %v", resp.Default.MinIntervalMS)
	}

	if len(resp.Hosts) != 2 {
		t.Fatalf("expected 2 host entries, got %d", len(resp.Hosts))
	}

	// Hosts are sorted by name.
	if resp.Hosts[0].Host != "api.example.com" || resp.Hosts[0].MinIntervalMS != 2000 {
		t.Fatalf("unexpected first host entry: %+v", resp.Hosts[0])
	}

	if resp.Hosts[1].Host != "slow.example.com" || resp.Hosts[1].MinIntervalMS != 10000 {
		t.Fatalf("unexpected second host entry: %+v", resp.Hosts[1])
	}
}

func TestLimitsHandlerWithoutConfigReturnsError(t *testing.T) {
	SetPacingConfig(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/limits", nil)
	rec := httptest.NewRecorder()

	LimitsHandler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
