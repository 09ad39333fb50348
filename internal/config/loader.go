package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variable overrides, e.g. F1_PREDICTOR_SERVER_PORT.
const EnvPrefix = "F1_PREDICTOR"

const defaultConfigPath = "config/config.yaml"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for every field.
// A missing file is not an error: defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	SetDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := newViper()
	SetDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic("config: invalid defaults: " + err.Error())
	}
	return cfg
}

// SetDefaults registers a default for every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "f1-2026-predictor")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.noise_stddev", 0.09)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.race.default", 8000)
	v.SetDefault("simulation.race.min", 100)
	v.SetDefault("simulation.race.max", 20000)
	v.SetDefault("simulation.championship.default", 500)
	v.SetDefault("simulation.championship.min", 50)
	v.SetDefault("simulation.championship.max", 2000)
	v.SetDefault("simulation.backtest.default", 1000)
	v.SetDefault("simulation.backtest.min", 100)
	v.SetDefault("simulation.backtest.max", 3000)

	v.SetDefault("backtest.season", 2024)
	v.SetDefault("backtest.max_rounds", 20)
	v.SetDefault("backtest.min_known_positions", 5)
	v.SetDefault("backtest.output_path", "")

	v.SetDefault("ratings.cache_ttl_seconds", 3600)
	v.SetDefault("ratings.refresh_schedule", "@hourly")
	v.SetDefault("ratings.previous_season", 2024)
	v.SetDefault("ratings.current_season", 2025)
	v.SetDefault("ratings.previous_weight", 0.45)
	v.SetDefault("ratings.current_weight", 0.55)

	v.SetDefault("datasource.enabled", true)
	v.SetDefault("datasource.base_url", "https://api.jolpi.ca/ergast/f1")
	v.SetDefault("datasource.timeout_seconds", 12)
	v.SetDefault("datasource.max_retries", 2)
	v.SetDefault("datasource.rate_limit", 4.0)
	v.SetDefault("datasource.page_size", 100)
	v.SetDefault("datasource.circuit_breaker_max", 5)
	v.SetDefault("datasource.circuit_breaker_cooldown_seconds", 60)

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 120)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
