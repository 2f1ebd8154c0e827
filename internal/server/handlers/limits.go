package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/callpace/callpace/internal/config"
	"github.com/callpace/callpace/internal/core/pace"
	apperrors "github.com/callpace/callpace/internal/errors"
)

var pacingConfig *config.PacingConfig

// SetPacingConfig injects the effective pacing configuration for the
// limits endpoint. Called once at server startup.
func SetPacingConfig(cfg *config.PacingConfig) {
	pacingConfig = cfg
}

// LimitEntry describes one configured ceiling and its derived spacing.
type LimitEntry struct {
	Host          string  `json:"host,omitempty"`
	MaxPerMinute  float64 `json:"max_per_minute"`
	MinIntervalMS float64 `json:"min_interval_ms"`
}

// LimitsResponse is the body served at /v1/limits.
type LimitsResponse struct {
	Default LimitEntry   `json:"default"`
	Hosts   []LimitEntry `json:"hosts,omitempty"`
}

// LimitsHandler reports the effective pacing ceilings: the default
// requests-per-minute rate plus any per-host overrides, each with the
// minimum interval the pacer enforces between calls.
func LimitsHandler(w http.ResponseWriter, r *http.Request) {
	if pacingConfig == nil {
		respondWithError(w, r,
			apperrors.NewInternalError("pacing configuration not initialized"))
		return
	}

	defaultEntry, err := limitEntry("", pacingConfig.DefaultRate)
	if err != nil {
		respondWithError(w, r,
			apperrors.WrapConfigInvalid(r.Context(), err, "invalid default rate"))
		return
	}

	response := LimitsResponse{Default: defaultEntry}

	hosts := make([]string, 0, len(pacingConfig.HostRates))
	for host := range pacingConfig.HostRates {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	for _, host := range hosts {
		entry, err := limitEntry(host, pacingConfig.HostRates[host])
		if err != nil {
			respondWithError(w, r,
				apperrors.WrapConfigInvalid(r.Context(), err, "invalid rate for host "+host))
			return
		}
		response.Hosts = append(response.Hosts, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

func limitEntry(host string, maxPerMinute float64) (LimitEntry, error) {
	interval, err := pace.MinInterval(maxPerMinute)
	if err != nil {
		return LimitEntry{}, err
	}

	return LimitEntry{
		Host:          host,
		MaxPerMinute:  maxPerMinute,
		MinIntervalMS: float64(interval.Milliseconds()),
	}, nil
}
