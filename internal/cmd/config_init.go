package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/callpace/callpace/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long:  "Writes a commented starter config to the XDG config path. Refuses to overwrite an existing file unless --force is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		identity := GetAppIdentity()
		if identity == nil {
			return fmt.Errorf("app identity not loaded")
		}

		path := config.DefaultConfigPath(identity.ConfigName)
		if path == "" {
			return fmt.Errorf("could not resolve config directory")
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		starter := map[string]any{
			"pacing": map[string]any{
				"default_rate": 60.0,
				"host_rates": map[string]float64{
					"api.example.com": 30,
				},
			},
			"fetch": map[string]any{
				"timeout":    "30s",
				"user_agent": "",
			},
			"server": map[string]any{
				"host": "localhost",
				"port": 8080,
			},
			"limiter": map[string]any{
				"enabled": true,
				"rps":     10.0,
				"burst":   20,
			},
			"logging": map[string]any{
				"level": "info",
			},
			"metrics": map[string]any{
				"enabled": true,
				"port":    9090,
			},
		}

		data, err := yaml.Marshal(starter)
		if err != nil {
			return err
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
}
