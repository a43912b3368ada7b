package config

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "file":
		if c.Cache.Dir == "" {
			return errors.New("cache.dir is required for the file backend")
		}
	case "postgres":
		if err := c.Database.validate("database"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cache.backend must be \"file\" or \"postgres\", got %q", c.Cache.Backend)
	}

	if c.Cache.MaxChunkDays < 1 {
		return errors.New("cache.max_chunk_days must be >= 1")
	}

	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be > 0, got %d", c.Backtest.InitialCapital)
	}

	rate, err := decimal.NewFromString(c.Backtest.CommissionRate)
	if err != nil {
		return fmt.Errorf("backtest.commission_rate is not a decimal: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.New(1, 0)) {
		return fmt.Errorf("backtest.commission_rate must be in [0, 1), got %s", rate)
	}

	if !c.Backtest.From.IsZero() && !c.Backtest.To.IsZero() && !c.Backtest.To.After(c.Backtest.From) {
		return errors.New("backtest.to must be after backtest.from")
	}

	return nil
}

// CommissionRate returns the parsed commission rate. Call Validate first.
func (c *Config) CommissionRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Backtest.CommissionRate)
	return rate
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
