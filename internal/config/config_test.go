package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	expansionConfigPath   = "testdata/expansion_config.yaml"
	partialConfigPath     = "testdata/partial_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
	predictorName         = "f1-2026-predictor"
	developmentEnv        = "development"
	jolpicaURL            = "https://api.jolpi.ca/ergast/f1"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, predictorName, cfg.App.Name)
	assert.Equal(t, developmentEnv, cfg.App.Environment)
	assert.Equal(t, int64(2026), cfg.Simulation.Seed)
	assert.Equal(t, IterationBounds{Default: 8000, Min: 100, Max: 20000}, cfg.Simulation.Race)
	assert.Equal(t, 2024, cfg.Backtest.Season)
	assert.Equal(t, jolpicaURL, cfg.DataSource.BaseURL)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Ratings.CacheTTL())
	assert.Equal(t, ":8000", cfg.Server.Addr())

	assert.NoError(t, Validate(cfg))
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	assert.Error(t, err)
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("F1_PREDICTOR_APP_NAME", "test-app")
	t.Setenv("F1_PREDICTOR_SERVER_PORT", "9999")

	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	assert.Equal(t, "test-app", cfg.App.Name)
	assert.Equal(t, 9999, cfg.Server.Port)
}

// TestLoadConfigEnvironmentVariableExpansion tests ${VAR} placeholders
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	t.Setenv("TEST_APP_NAME", "expanded-app")
	t.Setenv("TEST_JOLPICA_URL", "http://localhost:9000/ergast/f1")

	cfg, err := Load(expansionConfigPath)
	require.NoError(t, err)

	assert.Equal(t, "expanded-app", cfg.App.Name)
	assert.Equal(t, "http://localhost:9000/ergast/f1", cfg.DataSource.BaseURL)
}

// TestLoadWithDefaultsMissingFile falls back to built-in defaults
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.NoError(t, Validate(cfg))
	assert.Equal(t, 500, cfg.Simulation.Championship.Default)
	assert.Equal(t, 0.09, cfg.Simulation.NoiseStdDev)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

// TestLoadWithDefaultsPartialFile merges file values over defaults
func TestLoadWithDefaultsPartialFile(t *testing.T) {
	cfg, err := LoadWithDefaults(partialConfigPath)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, predictorName, cfg.App.Name)
	assert.Equal(t, 4000, cfg.Simulation.Race.Default)
	assert.Equal(t, 20000, cfg.Simulation.Race.Max)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.NoError(t, Validate(cfg))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"invalid environment", func(c *Config) { c.App.Environment = "invalid" }, "Environment"},
		{"invalid log level", func(c *Config) { c.App.LogLevel = "trace" }, "LogLevel"},
		{"invalid url", func(c *Config) { c.DataSource.BaseURL = "not a url" }, "BaseURL"},
		{"invalid cron", func(c *Config) { c.Ratings.RefreshSchedule = "every hour" }, "RefreshSchedule"},
		{"page size too large", func(c *Config) { c.DataSource.PageSize = 1000 }, "PageSize"},
		{"default above max", func(c *Config) { c.Simulation.Race.Default = 50000 }, "default iterations"},
		{"min above max", func(c *Config) { c.Simulation.Backtest.Min = 5000 }, "exceeds max"},
		{"season order", func(c *Config) { c.Ratings.PreviousSeason = 2025 }, "previous_season"},
		{"weights", func(c *Config) { c.Ratings.CurrentWeight = 0.7 }, "sum to 1"},
		{"metrics path", func(c *Config) { c.Metrics.Path = "" }, "Path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateNil(t *testing.T) {
	assert.Error(t, Validate(nil))
}

func TestValidateEnvironment(t *testing.T) {
	cfg := Default()
	assert.NoError(t, ValidateEnvironment(cfg))

	cfg.App.Environment = "production"
	cfg.App.LogLevel = "debug"
	assert.Error(t, ValidateEnvironment(cfg))

	cfg.App.LogLevel = "info"
	cfg.DataSource.Enabled = false
	assert.Error(t, ValidateEnvironment(cfg))
}

func TestEnvironmentHelpers(t *testing.T) {
	tests := []struct {
		env                      string
		dev, staging, production bool
	}{
		{"development", true, false, false},
		{"staging", false, true, false},
		{"production", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{App: AppConfig{Environment: tt.env}}
			assert.Equal(t, tt.dev, cfg.IsDevelopment())
			assert.Equal(t, tt.staging, cfg.IsStaging())
			assert.Equal(t, tt.production, cfg.IsProduction())
		})
	}
}

func TestIterationBoundsContains(t *testing.T) {
	b := IterationBounds{Default: 500, Min: 50, Max: 2000}
	assert.True(t, b.Contains(50))
	assert.True(t, b.Contains(2000))
	assert.False(t, b.Contains(49))
	assert.False(t, b.Contains(2001))
}
