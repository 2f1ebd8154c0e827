package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLastTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "empty means no prior request", input: "", want: time.Time{}},
		{name: "whitespace only", input: "   ", want: time.Time{}},
		{name: "zero seconds means no prior request", input: "0", want: time.Time{}},
		{
			name:  "rfc3339",
			input: "2026-08-30T10:00:00Z",
			want:  time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "unix seconds",
			input: "1700000000",
			want:  time.Unix(1700000000, 0),
		},
		{
			name:  "fractional unix seconds",
			input: "1700000000.5",
			want:  time.Unix(1700000000, int64(500*time.Millisecond)),
		},
		{name: "negative", input: "-5", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLastTimestamp(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}
