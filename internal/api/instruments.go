package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rickgao/invest-backtest/internal/model"
)

// InstrumentResponse from GET /instruments/by-figi and /instruments/by-ticker
type InstrumentResponse struct {
	Instrument model.Instrument `json:"instrument"`
}

// GetInstrumentByFIGI fetches instrument metadata (lot size, currency) by FIGI.
func (c *Client) GetInstrumentByFIGI(ctx context.Context, figi string) (model.Instrument, error) {
	query := url.Values{}
	query.Set("figi", figi)

	var resp InstrumentResponse
	if err := c.get(ctx, "/instruments/by-figi", query, &resp); err != nil {
		return model.Instrument{}, fmt.Errorf("get instrument %s: %w", figi, err)
	}

	return resp.Instrument, nil
}

// GetInstrumentByTicker fetches instrument metadata by ticker and class code.
func (c *Client) GetInstrumentByTicker(ctx context.Context, ticker, classCode string) (model.Instrument, error) {
	query := url.Values{}
	query.Set("ticker", ticker)
	query.Set("class_code", classCode)

	var resp InstrumentResponse
	if err := c.get(ctx, "/instruments/by-ticker", query, &resp); err != nil {
		return model.Instrument{}, fmt.Errorf("get instrument %s: %w", ticker, err)
	}

	return resp.Instrument, nil
}
