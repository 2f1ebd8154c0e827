package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/callpace/callpace/internal/core"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func sampleSummary() *core.RunSummary {
	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	results := []*core.FetchResult{
		{
			URL:        "https://api.example.com/v1/items",
			Host:       "api.example.com",
			StatusCode: 200,
			Outcome:    core.OutcomeOK,
			Bytes:      512,
			Waited:     time.Second,
		},
		{
			URL:        "https://api.example.com/v1/users",
			Host:       "api.example.com",
			StatusCode: 429,
			Outcome:    core.OutcomeRateLimited,
			Waited:     time.Second,
			ExtraData:  map[string]any{"retry_after": "30s"},
		},
		{
			URL:     "https://down.example.com/",
			Host:    "down.example.com",
			Outcome: core.OutcomeError,
			Message: "connection refused",
		},
	}
	return core.Summarize(results, started, started.Add(3*time.Second))
}

func TestFormatters(t *testing.T) {
	summary := sampleSummary()

	tableRendered, err := NewFormatter(FormatTable).FormatRun(summary)
	require.NoError(t, err)
	require.Contains(t, tableRendered, "URL")
	require.Contains(t, tableRendered, "api.example.com/v1/items")
	require.Contains(t, tableRendered, "rate-limited")
	require.Contains(t, tableRendered, "1/3 ok")

	jsonRendered, err := NewFormatter(FormatJSON).FormatRun(summary)
	require.NoError(t, err)
	require.Contains(t, jsonRendered, "\"outcome\": \"ok\"")
	require.Contains(t, jsonRendered, "\"status_code\": 429")

	markdownRendered, err := NewFormatter(FormatMarkdown).FormatRun(summary)
	require.NoError(t, err)
	require.Contains(t, markdownRendered, "| URL | Status | Outcome | Waited | Bytes |")
	require.Contains(t, markdownRendered, "connection refused")
}

func TestSummaryLineCounts(t *testing.T) {
	summary := sampleSummary()

	line := summaryLine(summary)
	require.Contains(t, line, "1/3 ok")
	require.Contains(t, line, "1 rate-limited")
	require.Contains(t, line, "1 failed")
	require.Contains(t, line, "waited 2s")
}

func TestFormatNotesRateLimited(t *testing.T) {
	notes := formatNotes(&core.FetchResult{
		Outcome:   core.OutcomeRateLimited,
		ExtraData: map[string]any{"retry_after": "10s"},
	})
	require.Contains(t, notes, "retry after 10s")
}

func TestMarkdownEscaping(t *testing.T) {
	started := time.Now()
	summary := core.Summarize([]*core.FetchResult{
		{
			URL:     "https://example.com/a|b",
			Host:    "example.com",
			Outcome: core.OutcomeOK,
		},
	}, started, started)

	rendered, err := NewFormatter(FormatMarkdown).FormatRun(summary)
	require.NoError(t, err)
	require.Contains(t, rendered, "a\\|b")
}

func TestStatusLabelWithoutStatusCode(t *testing.T) {
	require.Equal(t, "-", statusLabel(&core.FetchResult{Outcome: core.OutcomeError}))
	require.Equal(t, "502", statusLabel(&core.FetchResult{StatusCode: 502}))
}
