package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL        = "https://invest-public-api.tinkoff.ru/rest"
	DefaultAPITimeout     = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultCacheBackend   = "file"
	DefaultCacheDir       = ".candle-cache"
	DefaultMaxChunkDays   = 2000
	DefaultDBPort         = 5432
	DefaultDBSSLMode      = "prefer"
	DefaultMaxConns       = 10
	DefaultMinConns       = 2
	DefaultCurrency       = "rub"
	DefaultCommissionRate = "0.003"
	DefaultInterval       = "1min"
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}

	// Cache defaults
	if c.Cache.Backend == "" {
		c.Cache.Backend = DefaultCacheBackend
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = DefaultCacheDir
	}
	if c.Cache.MaxChunkDays == 0 {
		c.Cache.MaxChunkDays = DefaultMaxChunkDays
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Backtest defaults
	if c.Backtest.Currency == "" {
		c.Backtest.Currency = DefaultCurrency
	}
	if c.Backtest.CommissionRate == "" {
		c.Backtest.CommissionRate = DefaultCommissionRate
	}
	if c.Backtest.Interval == "" {
		c.Backtest.Interval = DefaultInterval
	}
}
