// Package config provides centralized configuration management for callpace.
// Values are collected on a viper instance (defaults, config file, env,
// flags) and decoded into the typed Config with mapstructure hooks.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// Load decodes the viper state into a typed Config and stores it for
// GetConfig. Safe to call again on config reload.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToFloat64HookFunc(),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	normalizeHostRates(cfg)
	setConfig(cfg)

	return cfg, nil
}

// GetConfig returns the current application configuration (thread-safe).
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// normalizeHostRates lowercases host keys and drops empty ones so lookups by
// URL host always hit.
func normalizeHostRates(cfg *Config) {
	if len(cfg.Pacing.HostRates) == 0 {
		return
	}

	normalized := make(map[string]float64, len(cfg.Pacing.HostRates))
	for host, rate := range cfg.Pacing.HostRates {
		key := strings.ToLower(strings.TrimSpace(host))
		if key == "" {
			continue
		}
		normalized[key] = rate
	}
	cfg.Pacing.HostRates = normalized
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath(configName string) string {
	configDir := gfconfig.GetAppConfigDir(configName)
	if strings.TrimSpace(configDir) == "" {
		return ""
	}
	return filepath.Join(configDir, "config.yaml")
}

// DefaultDataDir returns the XDG-compliant data directory for the app.
func DefaultDataDir(configName string) string {
	return gfconfig.GetAppDataDir(configName)
}
