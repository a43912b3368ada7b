package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	yaml := `
api:
  base_url: https://sandbox-invest-public-api.tinkoff.ru/rest
  token: test-token
cache:
  backend: file
  dir: /tmp/candles
backtest:
  initial_capital: 100000
  instruments:
    - BBG004730N88
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "https://sandbox-invest-public-api.tinkoff.ru/rest" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "https://sandbox-invest-public-api.tinkoff.ru/rest")
	}
	if cfg.Cache.Dir != "/tmp/candles" {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, "/tmp/candles")
	}
	if cfg.Backtest.InitialCapital != 100000 {
		t.Errorf("Backtest.InitialCapital = %d, want %d", cfg.Backtest.InitialCapital, 100000)
	}
	if len(cfg.Backtest.Instruments) != 1 || cfg.Backtest.Instruments[0] != "BBG004730N88" {
		t.Errorf("Backtest.Instruments = %v, want [BBG004730N88]", cfg.Backtest.Instruments)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_INVEST_TOKEN", "secret123")

	yaml := `
api:
  token: ${TEST_INVEST_TOKEN}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.Token != "secret123" {
		t.Errorf("API.Token = %q, want %q", cfg.API.Token, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
backtest:
  initial_capital: 100000
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want default %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Timeout != DefaultAPITimeout {
		t.Errorf("API.Timeout = %v, want default %v", cfg.API.Timeout, DefaultAPITimeout)
	}
	if cfg.Cache.Backend != DefaultCacheBackend {
		t.Errorf("Cache.Backend = %q, want default %q", cfg.Cache.Backend, DefaultCacheBackend)
	}
	if cfg.Cache.MaxChunkDays != DefaultMaxChunkDays {
		t.Errorf("Cache.MaxChunkDays = %d, want default %d", cfg.Cache.MaxChunkDays, DefaultMaxChunkDays)
	}
	if cfg.Backtest.CommissionRate != DefaultCommissionRate {
		t.Errorf("Backtest.CommissionRate = %q, want default %q", cfg.Backtest.CommissionRate, DefaultCommissionRate)
	}
	if cfg.Backtest.Currency != DefaultCurrency {
		t.Errorf("Backtest.Currency = %q, want default %q", cfg.Backtest.Currency, DefaultCurrency)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Cache: CacheConfig{Backend: "file", Dir: ".candle-cache", MaxChunkDays: 2000},
		Backtest: BacktestConfig{
			InitialCapital: 100000,
			Currency:       "rub",
			CommissionRate: "0.003",
			Interval:       "1min",
		},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "unknown cache backend",
			mutate:  func(c *Config) { c.Cache.Backend = "s3" },
			wantErr: `cache.backend must be "file" or "postgres", got "s3"`,
		},
		{
			name:    "file backend without dir",
			mutate:  func(c *Config) { c.Cache.Dir = "" },
			wantErr: "cache.dir is required for the file backend",
		},
		{
			name:    "postgres backend without host",
			mutate:  func(c *Config) { c.Cache.Backend = "postgres" },
			wantErr: "database.host is required",
		},
		{
			name: "postgres min_conns exceeds max_conns",
			mutate: func(c *Config) {
				c.Cache.Backend = "postgres"
				c.Database = DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 5, MinConns: 10}
			},
			wantErr: "database.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name:    "zero initial capital",
			mutate:  func(c *Config) { c.Backtest.InitialCapital = 0 },
			wantErr: "backtest.initial_capital must be > 0, got 0",
		},
		{
			name:    "commission rate out of range",
			mutate:  func(c *Config) { c.Backtest.CommissionRate = "1.5" },
			wantErr: "backtest.commission_rate must be in [0, 1), got 1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func TestValidateCommissionRateNotDecimal(t *testing.T) {
	cfg := Config{
		Cache:    CacheConfig{Backend: "file", Dir: "x", MaxChunkDays: 1},
		Backtest: BacktestConfig{InitialCapital: 1, CommissionRate: "three bps"},
	}
	// Error text comes from the decimal parser; only check presence.
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error, got nil")
	}
}

func TestCommissionRate(t *testing.T) {
	cfg := Config{Backtest: BacktestConfig{CommissionRate: "0.003"}}
	if got := cfg.CommissionRate().String(); got != "0.003" {
		t.Errorf("CommissionRate() = %s, want 0.003", got)
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
