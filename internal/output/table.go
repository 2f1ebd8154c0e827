package output

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/callpace/callpace/internal/core"
)

const summaryWaitPrecision = time.Millisecond

// TableFormatter renders run summaries as an ASCII table.
type TableFormatter struct{}

// FormatRun renders a run summary as a table.
func (f *TableFormatter) FormatRun(summary *core.RunSummary) (string, error) {
	if summary == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"URL", "Status", "Outcome", "Waited", "Bytes"})

	for _, r := range summary.Results {
		if r == nil {
			continue
		}
		t.AppendRow(table.Row{
			r.URL,
			statusLabel(r),
			r.Outcome.String(),
			r.Waited.Round(summaryWaitPrecision).String(),
			r.Bytes,
		})
	}

	if len(summary.Results) > 0 {
		t.AppendFooter(table.Row{
			"",
			"",
			summaryLine(summary),
			"",
			"",
		})
	}

	return t.Render(), nil
}
