package candles

import (
	"context"
	"time"

	"github.com/rickgao/invest-backtest/internal/model"
)

// Source fetches candles from the live API for a half-open range
// [from, to), ascending by time. Implemented by api.Client.
type Source interface {
	GetCandles(ctx context.Context, figi string, interval model.CandleInterval, from, to time.Time) ([]model.Candle, error)
}

// SourceFunc is a function adapter for Source.
type SourceFunc func(ctx context.Context, figi string, interval model.CandleInterval, from, to time.Time) ([]model.Candle, error)

func (f SourceFunc) GetCandles(ctx context.Context, figi string, interval model.CandleInterval, from, to time.Time) ([]model.Candle, error) {
	return f(ctx, figi, interval, from, to)
}
