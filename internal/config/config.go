// Package config provides configuration management for the F1 predictor.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Backtest   BacktestConfig   `mapstructure:"backtest" validate:"required"`
	Ratings    RatingsConfig    `mapstructure:"ratings" validate:"required"`
	DataSource DataSourceConfig `mapstructure:"datasource" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// IterationBounds is the default and allowed range of trial counts for one operation
type IterationBounds struct {
	Default int `mapstructure:"default" validate:"required,gt=0"`
	Min     int `mapstructure:"min" validate:"required,gt=0"`
	Max     int `mapstructure:"max" validate:"required,gt=0"`
}

// Contains reports whether n lies within the bounds.
func (b IterationBounds) Contains(n int) bool {
	return n >= b.Min && n <= b.Max
}

// SimulationConfig represents Monte Carlo settings
type SimulationConfig struct {
	// Seed fixes the random stream; 0 reseeds from the clock on every run.
	Seed         int64           `mapstructure:"seed"`
	NoiseStdDev  float64         `mapstructure:"noise_stddev" validate:"gte=0,lte=1"`
	Workers      int             `mapstructure:"workers" validate:"gte=0,lte=64"`
	Race         IterationBounds `mapstructure:"race" validate:"required"`
	Championship IterationBounds `mapstructure:"championship" validate:"required"`
	Backtest     IterationBounds `mapstructure:"backtest" validate:"required"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	Season            int    `mapstructure:"season" validate:"required,gte=1950"`
	MaxRounds         int    `mapstructure:"max_rounds" validate:"required,gt=0"`
	MinKnownPositions int    `mapstructure:"min_known_positions" validate:"required,gte=2"`
	OutputPath        string `mapstructure:"output_path"`
}

// RatingsConfig represents ratings computation and caching configuration
type RatingsConfig struct {
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	RefreshSchedule string  `mapstructure:"refresh_schedule" validate:"cron"`
	PreviousSeason  int     `mapstructure:"previous_season" validate:"required,gte=1950"`
	CurrentSeason   int     `mapstructure:"current_season" validate:"required,gte=1950"`
	PreviousWeight  float64 `mapstructure:"previous_weight" validate:"gte=0,lte=1"`
	CurrentWeight   float64 `mapstructure:"current_weight" validate:"gte=0,lte=1"`
}

// CacheTTL returns the ratings cache lifetime.
func (r RatingsConfig) CacheTTL() time.Duration {
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

// DataSourceConfig represents the historical data API configuration
type DataSourceConfig struct {
	Enabled                       bool    `mapstructure:"enabled"`
	BaseURL                       string  `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds                int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries                    int     `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RateLimit                     float64 `mapstructure:"rate_limit" validate:"gt=0"`
	PageSize                      int     `mapstructure:"page_size" validate:"required,gt=0,lte=100"`
	CircuitBreakerMax             int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
	CircuitBreakerCooldownSeconds int     `mapstructure:"circuit_breaker_cooldown_seconds" validate:"gte=0"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Port                int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins      []string `mapstructure:"allowed_origins" validate:"required,min=1"`
	ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
