package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rickgao/invest-backtest/internal/model"
)

// CandlesResponse from GET /marketdata/candles
type CandlesResponse struct {
	Candles []model.Candle `json:"candles"`
}

// GetCandles fetches candles for the half-open range [from, to), ascending
// by time. Satisfies the candle loader's Source contract.
func (c *Client) GetCandles(ctx context.Context, figi string, interval model.CandleInterval, from, to time.Time) ([]model.Candle, error) {
	query := url.Values{}
	query.Set("figi", figi)
	query.Set("interval", string(interval))
	query.Set("from", from.UTC().Format(time.RFC3339))
	query.Set("to", to.UTC().Format(time.RFC3339))

	var resp CandlesResponse
	if err := c.get(ctx, "/marketdata/candles", query, &resp); err != nil {
		return nil, fmt.Errorf("get candles %s: %w", figi, err)
	}

	return resp.Candles, nil
}
