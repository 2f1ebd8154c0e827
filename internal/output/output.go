package output

import (
	"fmt"
	"strings"

	"github.com/callpace/callpace/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders run summaries.
type Formatter interface {
	FormatRun(summary *core.RunSummary) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown):
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

func statusLabel(r *core.FetchResult) string {
	if r.StatusCode > 0 {
		return fmt.Sprintf("%d", r.StatusCode)
	}
	return "-"
}

func formatNotes(r *core.FetchResult) string {
	if r.Message != "" {
		return r.Message
	}
	if retry, ok := r.ExtraData["retry_after"]; ok {
		return fmt.Sprintf("retry after %v", retry)
	}
	return ""
}

func summaryLine(summary *core.RunSummary) string {
	total := len(summary.Results)
	line := fmt.Sprintf("%d/%d ok", summary.OK, total)
	if summary.RateLimited > 0 {
		line += fmt.Sprintf(", %d rate-limited", summary.RateLimited)
	}
	if summary.Errors > 0 {
		line += fmt.Sprintf(", %d failed", summary.Errors)
	}
	line += fmt.Sprintf(", waited %s", summary.TotalWaited.Round(summaryWaitPrecision))
	return line
}
