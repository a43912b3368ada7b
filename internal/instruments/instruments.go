// Package instruments resolves instrument metadata: lot size, settlement
// currency and identifiers, by FIGI or ticker.
package instruments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rickgao/invest-backtest/internal/model"
)

// ErrNotFound means no instrument matches the requested identifier.
var ErrNotFound = errors.New("instrument not found")

// Provider looks up instrument metadata.
type Provider interface {
	GetByFIGI(ctx context.Context, figi string) (model.Instrument, error)
	GetByTicker(ctx context.Context, ticker string) (model.Instrument, error)
}

// Registry is an in-memory Provider, loaded from a fixture file or a
// static list. Backtests use it so instrument resolution never touches
// the network.
type Registry struct {
	byFIGI   map[string]model.Instrument
	byTicker map[string]model.Instrument
}

// NewRegistry builds a Registry from a static list.
func NewRegistry(list []model.Instrument) *Registry {
	r := &Registry{
		byFIGI:   make(map[string]model.Instrument, len(list)),
		byTicker: make(map[string]model.Instrument, len(list)),
	}
	for _, in := range list {
		r.byFIGI[in.FIGI] = in
		r.byTicker[in.Ticker] = in
	}
	return r
}

// LoadFile reads a JSON array of instruments into a Registry.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instruments file: %w", err)
	}

	var list []model.Instrument
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse instruments file %s: %w", path, err)
	}

	return NewRegistry(list), nil
}

func (r *Registry) GetByFIGI(_ context.Context, figi string) (model.Instrument, error) {
	in, ok := r.byFIGI[figi]
	if !ok {
		return model.Instrument{}, fmt.Errorf("figi %s: %w", figi, ErrNotFound)
	}
	return in, nil
}

func (r *Registry) GetByTicker(_ context.Context, ticker string) (model.Instrument, error) {
	in, ok := r.byTicker[ticker]
	if !ok {
		return model.Instrument{}, fmt.Errorf("ticker %s: %w", ticker, ErrNotFound)
	}
	return in, nil
}

var _ Provider = (*Registry)(nil)
