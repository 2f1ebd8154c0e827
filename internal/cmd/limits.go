package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/callpace/callpace/internal/config"
	"github.com/callpace/callpace/internal/core/pace"
	apperrors "github.com/callpace/callpace/internal/errors"
)

var limitsFormat string

type limitRow struct {
	Host         string  `json:"host" yaml:"host"`
	MaxPerMinute float64 `json:"max_per_minute" yaml:"max_per_minute"`
	MinInterval  string  `json:"min_interval" yaml:"min_interval"`
}

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show effective pacing ceilings",
	Long: `Shows the requests-per-minute ceiling applied to each configured host,
plus the default applied to everything else, with the minimum interval
the pacer enforces between consecutive calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		rows, err := limitRows(&cfg.Pacing)
		if err != nil {
			return apperrors.WrapConfigInvalid(cmd.Context(), err, "invalid pacing configuration")
		}

		switch strings.ToLower(strings.TrimSpace(limitsFormat)) {
		case "", "table":
			printLimitsTable(rows)
		case "yaml":
			data, err := yaml.Marshal(rows)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
		case "json":
			data, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		default:
			return fmt.Errorf("unsupported output format: %s", limitsFormat)
		}
		return nil
	},
}

func limitRows(pacing *config.PacingConfig) ([]limitRow, error) {
	defaultInterval, err := pace.MinInterval(pacing.DefaultRate)
	if err != nil {
		return nil, fmt.Errorf("default rate: %w", err)
	}

	rows := []limitRow{{
		Host:         "(default)",
		MaxPerMinute: pacing.DefaultRate,
		MinInterval:  defaultInterval.Round(time.Millisecond).String(),
	}}

	hosts := make([]string, 0, len(pacing.HostRates))
	for host := range pacing.HostRates {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	for _, host := range hosts {
		interval, err := pace.MinInterval(pacing.HostRates[host])
		if err != nil {
			return nil, fmt.Errorf("host %s: %w", host, err)
		}
		rows = append(rows, limitRow{
			Host:         host,
			MaxPerMinute: pacing.HostRates[host],
			MinInterval:  interval.Round(time.Millisecond).String(),
		})
	}

	return rows, nil
}

func printLimitsTable(rows []limitRow) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Host", "Max/Min", "Min Interval"})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Host, row.MaxPerMinute, row.MinInterval})
	}
	fmt.Println(t.Render())
}

func init() {
	rootCmd.AddCommand(limitsCmd)
	limitsCmd.Flags().StringVar(&limitsFormat, "output-format", "table", "Output format: table|yaml|json")
}
