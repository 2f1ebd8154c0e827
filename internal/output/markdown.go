package output

import (
	"fmt"
	"strings"

	"github.com/callpace/callpace/internal/core"
)

// MarkdownFormatter renders run summaries as a markdown table.
type MarkdownFormatter struct{}

// FormatRun renders a run summary as Markdown.
func (f *MarkdownFormatter) FormatRun(summary *core.RunSummary) (string, error) {
	if summary == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("## Paced run results\n\n")
	sb.WriteString("| URL | Status | Outcome | Waited | Bytes |\n")
	sb.WriteString("|-----|--------|---------|--------|-------|\n")

	for _, r := range summary.Results {
		if r == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d |\n",
			escapeMarkdownCell(r.URL),
			escapeMarkdownCell(statusLabel(r)),
			escapeMarkdownCell(r.Outcome.String()),
			escapeMarkdownCell(r.Waited.Round(summaryWaitPrecision).String()),
			r.Bytes,
		))
	}

	if len(summary.Results) > 0 {
		sb.WriteString(fmt.Sprintf("\n**Summary**: %s\n", summaryLine(summary)))
	}

	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
