package output

import (
	"encoding/json"

	"github.com/callpace/callpace/internal/core"
)

// JSONFormatter renders run summaries as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatRun renders a run summary as JSON.
func (f *JSONFormatter) FormatRun(summary *core.RunSummary) (string, error) {
	if summary == nil {
		return "", nil
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(summary, "", "  ")
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
