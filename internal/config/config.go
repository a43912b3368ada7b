package config

import "time"

// Config is the root configuration for the backtest tools.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Cache    CacheConfig    `yaml:"cache"`
	Database DBConfig       `yaml:"database"`
	Backtest BacktestConfig `yaml:"backtest"`
}

// APIConfig holds broker API settings for fetching historical candles.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Token      string        `yaml:"token"` // bearer token, usually ${INVEST_TOKEN}
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// CacheConfig holds candle cache settings.
type CacheConfig struct {
	Backend      string `yaml:"backend"`        // "file" or "postgres"
	Dir          string `yaml:"dir"`            // file backend root
	MaxChunkDays int    `yaml:"max_chunk_days"` // ceiling on the backward day walk
}

// DBConfig holds the PostgreSQL connection for the shared candle archive.
// Only used when cache.backend is "postgres".
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// BacktestConfig holds simulation parameters.
type BacktestConfig struct {
	InitialCapital  int64     `yaml:"initial_capital"` // whole currency units
	Currency        string    `yaml:"currency"`
	CommissionRate  string    `yaml:"commission_rate"` // decimal string, e.g. "0.003"
	Interval        string    `yaml:"interval"`        // candle interval
	Instruments     []string  `yaml:"instruments"`     // FIGIs to replay
	InstrumentsFile string    `yaml:"instruments_file"`
	From            time.Time `yaml:"from"`
	To              time.Time `yaml:"to"`
	MinCandles      int       `yaml:"min_candles"` // alternative to from
}
