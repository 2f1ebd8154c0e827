package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/callpace/callpace/internal/core/pace"
	apperrors "github.com/callpace/callpace/internal/errors"
	"github.com/callpace/callpace/internal/observability"
)

var (
	waitRate float64
	waitLast string
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until the next request slot is available",
	Long: `Blocks until enough time has passed since the last request to stay under
the requests-per-minute ceiling, then prints the slot timestamp.

Without --last there is nothing to space against and the command returns
immediately. The printed timestamp is what a caller should pass as --last
on the next invocation.`,
	Example: `  callpace wait --rate 60
  callpace wait --rate 30 --last 2026-08-30T10:00:00Z
  callpace wait --rate 90 --last 1787479200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		last, err := parseLastTimestamp(waitLast)
		if err != nil {
			return apperrors.WrapInvalidInput(cmd.Context(), err, "invalid --last timestamp")
		}

		interval, err := pace.MinInterval(waitRate)
		if err != nil {
			return apperrors.WrapInvalidInput(cmd.Context(), err, "invalid --rate")
		}

		if observability.CLILogger != nil {
			observability.CLILogger.Debug("Waiting for slot",
				zap.Float64("rate", waitRate),
				zap.Duration("min_interval", interval),
				zap.Time("last", last))
		}

		ts, err := pace.WaitForSlot(waitRate, last)
		if err != nil {
			return apperrors.WrapInvalidInput(cmd.Context(), err, "invalid --rate")
		}

		fmt.Printf("%s\n", ts.UTC().Format(time.RFC3339Nano))
		return nil
	},
}

// parseLastTimestamp accepts RFC3339 or Unix seconds (integer or decimal).
// An empty value means no prior request, so the wait returns immediately.
func parseLastTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, nil
	}

	if ts, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return ts, nil
	}

	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or Unix seconds, got %q", value)
	}
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return time.Time{}, fmt.Errorf("timestamp out of range: %q", value)
	}
	if seconds == 0 {
		return time.Time{}, nil
	}

	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))), nil
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().Float64Var(&waitRate, "rate", 0, "Maximum requests per minute (required)")
	waitCmd.Flags().StringVar(&waitLast, "last", "", "Timestamp of the previous request (RFC3339 or Unix seconds)")
	_ = waitCmd.MarkFlagRequired("rate")
}
