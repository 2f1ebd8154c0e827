package core

import (
	"encoding/json"
	"time"
)

// Outcome classifies how a paced fetch resolved.
type Outcome int

const (
	OutcomeUnknown     Outcome = 0
	OutcomeOK          Outcome = 1
	OutcomeRateLimited Outcome = 2
	OutcomeHTTPError   Outcome = 3
	OutcomeError       Outcome = 4
)

// String returns the label used in rendered output.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRateLimited:
		return "rate-limited"
	case OutcomeHTTPError:
		return "http-error"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the outcome label rather than the numeric value.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Provenance captures metadata about how a fetch was resolved.
type Provenance struct {
	RequestedAt time.Time `json:"requested_at"`
	ResolvedAt  time.Time `json:"resolved_at"`
	ToolVersion string    `json:"tool_version"`
}

// FetchResult reports the outcome of a single paced request.
type FetchResult struct {
	URL        string         `json:"url"`
	Host       string         `json:"host"`
	StatusCode int            `json:"status_code,omitempty"`
	Outcome    Outcome        `json:"outcome"`
	Bytes      int64          `json:"bytes,omitempty"`
	Waited     time.Duration  `json:"waited_ns"`
	Message    string         `json:"message,omitempty"`
	ExtraData  map[string]any `json:"extra_data,omitempty"`
	Provenance Provenance     `json:"provenance"`
}

// RunSummary aggregates the results of a paced run.
type RunSummary struct {
	Results     []*FetchResult `json:"results"`
	OK          int            `json:"ok"`
	RateLimited int            `json:"rate_limited"`
	Errors      int            `json:"errors"`
	TotalWaited time.Duration  `json:"total_waited_ns"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
}

// Summarize tallies a result list into a RunSummary.
func Summarize(results []*FetchResult, startedAt, completedAt time.Time) *RunSummary {
	summary := &RunSummary{
		Results:     results,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
	}

	for _, r := range results {
		if r == nil {
			continue
		}
		summary.TotalWaited += r.Waited
		switch r.Outcome {
		case OutcomeOK:
			summary.OK++
		case OutcomeRateLimited:
			summary.RateLimited++
		default:
			summary.Errors++
		}
	}

	return summary
}
