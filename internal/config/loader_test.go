package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadDecodesTypedConfig(t *testing.T) {
	v := viper.New()
	v.Set("server.host", "0.0.0.0")
	v.Set("server.port", 9000)
	v.Set("server.shutdown_timeout", "15s")
	v.Set("pacing.default_rate", 90)
	v.Set("pacing.host_rates", map[string]any{
		"API.Example.com": 30,
		"slow.example.io": "10",
	})
	v.Set("fetch.timeout", "45s")
	v.Set("limiter.enabled", true)
	v.Set("limiter.rps", 2.5)
	v.Set("limiter.burst", 4)

	cfg, err := Load(v)
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, float64(90), cfg.Pacing.DefaultRate)
	require.Equal(t, 45*time.Second, cfg.Fetch.Timeout)
	require.True(t, cfg.Limiter.Enabled)
	require.Equal(t, 2.5, cfg.Limiter.RPS)
	require.Equal(t, 4, cfg.Limiter.Burst)
}

func TestLoadNormalizesHostRateKeys(t *testing.T) {
	v := viper.New()
	v.Set("pacing.host_rates", map[string]any{
		"API.Example.com": 30,
		"  ":              5,
	})

	cfg, err := Load(v)
	require.NoError(t, err)

	require.Equal(t, float64(30), cfg.Pacing.HostRates["api.example.com"])
	require.NotContains(t, cfg.Pacing.HostRates, "  ")
	require.Len(t, cfg.Pacing.HostRates, 1)
}

func TestLoadStoresForGetConfig(t *testing.T) {
	v := viper.New()
	v.Set("pacing.default_rate", 60)

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Same(t, cfg, GetConfig())
}
