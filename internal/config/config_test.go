package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(viper.New())
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 60, cfg.Cache.AnalyticsTTLSeconds)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	assert.Equal(t, uint64(0), cfg.Engine.Seed)
	assert.Equal(t, "store1", cfg.Engine.DefaultLocation)
	assert.Equal(t, 4.0, cfg.Engine.DefaultTemperatureC)
	assert.Equal(t, 3, cfg.Engine.DefaultLeadTimeDays)
	assert.Equal(t, 100, cfg.Engine.DefaultCurrentStock)
	assert.Equal(t, 7.0, cfg.Engine.DefaultShelfLifeDays)
	assert.Equal(t, 150.0, cfg.Engine.DefaultDemandPrediction)

	assert.Equal(t, 5000.0, cfg.Report.WasteReductionKg)
	assert.Equal(t, 2450.0, cfg.Report.FoodRedirectedKg)
	assert.Equal(t, 1200, cfg.Report.Beneficiaries)
}

func TestFromViperEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENGINE_SEED", "42")
	t.Setenv("ENGINE_DEFAULT_LEAD_TIME_DAYS", "5")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")

	v := viper.New()
	v.AutomaticEnv()
	cfg := FromViper(v)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, uint64(42), cfg.Engine.Seed)
	assert.Equal(t, 5, cfg.Engine.DefaultLeadTimeDays)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis://cache:6379/1", cfg.Cache.RedisURL)
}
