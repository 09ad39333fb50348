package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/netoph/f1-2026-predictor/internal/config"
)

// HTTPClientConfigFrom maps data source settings onto HTTP client settings.
func HTTPClientConfigFrom(cfg config.DataSourceConfig) HTTPClientConfig {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimit
	httpCfg.CircuitBreakerMax = cfg.CircuitBreakerMax
	httpCfg.CircuitBreakerCooldown = time.Duration(cfg.CircuitBreakerCooldownSeconds) * time.Second
	return httpCfg
}

// NewFromConfig creates the historical data client described by cfg.
// A disabled source returns nil so callers serve fallback ratings.
func NewFromConfig(cfg config.DataSourceConfig, logger *logrus.Logger) (*JolpicaClient, error) {
	if !cfg.Enabled {
		if logger != nil {
			logger.Info("Historical data source disabled")
		}
		return nil, nil
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("data source base_url is required")
	}

	httpClient := NewRateLimitedHTTPClient(HTTPClientConfigFrom(cfg), logger)
	return NewJolpicaClient(httpClient, cfg.BaseURL, cfg.PageSize, logger), nil
}
