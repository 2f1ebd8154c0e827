package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/callpace/callpace/internal/config"
	"github.com/callpace/callpace/internal/core"
	"github.com/callpace/callpace/internal/core/fetch"
	"github.com/callpace/callpace/internal/metrics"
	"github.com/callpace/callpace/internal/observability"
	"github.com/callpace/callpace/internal/output"
)

var runCmd = &cobra.Command{
	Use:   "run [urls...]",
	Short: "Fetch URLs sequentially, paced per host",
	Long: `Fetches the given URLs with GET requests, spacing consecutive calls to
the same host so each host stays under its requests-per-minute ceiling.

URLs come from positional arguments or --urls-file (one per line, # for
comments, - for stdin). Ceilings come from pacing.default_rate and
pacing.host_rates in config; --rate overrides the default for the run.`,
	Example: `  callpace run https://api.example.com/v1/items https://api.example.com/v1/users
  callpace run --urls-file urls.txt --rate 30 --output-format json
  cat urls.txt | callpace run --urls-file -`,
	RunE: runPaced,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("urls-file", "", "Read URLs from file (one per line, - for stdin)")
	runCmd.Flags().Float64("rate", 0, "Override the default requests-per-minute ceiling")
	runCmd.Flags().String("output-format", string(output.FormatTable), "Output format: table|json|markdown")
	runCmd.Flags().String("out", "", "Write output to a file (default stdout)")
	runCmd.Flags().String("out-dir", "", "Write output to a directory")
}

func runPaced(cmd *cobra.Command, args []string) error {
	format, err := resolveOutputFormat(cmd)
	if err != nil {
		return err
	}

	urlsFile, err := cmd.Flags().GetString("urls-file")
	if err != nil {
		return err
	}

	urls, err := resolveURLs(args, urlsFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	rateOverride, err := cmd.Flags().GetFloat64("rate")
	if err != nil {
		return err
	}

	defaultRate := cfg.Pacing.DefaultRate
	if cmd.Flags().Changed("rate") {
		defaultRate = rateOverride
	}

	client := &fetch.Client{
		HTTPClient:  &http.Client{Timeout: cfg.Fetch.Timeout},
		DefaultRate: defaultRate,
		HostRates:   cfg.Pacing.HostRates,
		UserAgent:   cfg.Fetch.UserAgent,
		ToolVersion: versionInfo.Version,
	}

	ctx := cmd.Context()
	startedAt := time.Now()
	results := make([]*core.FetchResult, 0, len(urls))

	for _, rawURL := range urls {
		result, err := client.Fetch(ctx, rawURL)
		if err != nil {
			return err
		}

		metrics.RecordSlotWait(result.Host, result.Waited)
		metrics.RecordFetch(result.Host, result.Outcome.String())

		if observability.CLILogger != nil {
			observability.CLILogger.Debug("Fetched",
				zap.String("url", result.URL),
				zap.String("outcome", result.Outcome.String()),
				zap.Int("status", result.StatusCode),
				zap.Duration("waited", result.Waited))
		}

		results = append(results, result)
	}

	summary := core.Summarize(results, startedAt, time.Now())

	outPath, outDir, err := resolveOutputTargets(cmd)
	if err != nil {
		return err
	}
	if outDir != "" {
		outDir, err = ensureOutDir(outDir)
		if err != nil {
			return err
		}
		outPath = filepath.Join(outDir, fmt.Sprintf("run.%s", outputExtension(format)))
	}

	sink, err := openSink(outPath)
	if err != nil {
		return err
	}
	defer func() { _ = sink.close() }()

	rendered, err := output.NewFormatter(format).FormatRun(summary)
	if err != nil {
		return err
	}
	if strings.TrimSpace(rendered) != "" {
		if _, err := fmt.Fprintln(sink.writer, rendered); err != nil {
			return err
		}
	}

	logThroughput(len(results), startedAt)

	if summary.Errors > 0 {
		return errors.New("one or more fetches failed")
	}
	return nil
}

func logThroughput(count int, startedAt time.Time) {
	if count <= 0 || observability.CLILogger == nil {
		return
	}
	elapsed := time.Since(startedAt)
	if elapsed <= 0 {
		return
	}
	rate := float64(count) / elapsed.Seconds()
	observability.CLILogger.Info(
		"Run throughput",
		zap.Int("requests", count),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rate_per_sec", rate),
	)
}
