package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rickgao/invest-backtest/internal/broker"
)

// PortfolioResponse from GET /operations/portfolio
type PortfolioResponse struct {
	Portfolio broker.Portfolio `json:"portfolio"`
}

// PositionsResponse from GET /operations/positions
type PositionsResponse struct {
	Positions []broker.Position `json:"positions"`
}

// OperationsResponse from GET /operations
type OperationsResponse struct {
	Operations []broker.Operation `json:"operations"`
}

// AccountsResponse from GET /accounts
type AccountsResponse struct {
	Accounts []broker.AccountInfo `json:"accounts"`
}

// GetAccounts lists accounts available to the token.
func (c *Client) GetAccounts(ctx context.Context) ([]broker.AccountInfo, error) {
	var resp AccountsResponse
	if err := c.get(ctx, "/accounts", nil, &resp); err != nil {
		return nil, fmt.Errorf("get accounts: %w", err)
	}
	return resp.Accounts, nil
}

// GetPortfolio fetches the account portfolio snapshot.
func (c *Client) GetPortfolio(ctx context.Context, accountID string) (broker.Portfolio, error) {
	query := url.Values{}
	query.Set("account_id", accountID)

	var resp PortfolioResponse
	if err := c.get(ctx, "/operations/portfolio", query, &resp); err != nil {
		return broker.Portfolio{}, fmt.Errorf("get portfolio: %w", err)
	}
	return resp.Portfolio, nil
}

// GetPositions fetches the account's open positions.
func (c *Client) GetPositions(ctx context.Context, accountID string) ([]broker.Position, error) {
	query := url.Values{}
	query.Set("account_id", accountID)

	var resp PositionsResponse
	if err := c.get(ctx, "/operations/positions", query, &resp); err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	return resp.Positions, nil
}

// GetOperations fetches operations matching the filter.
func (c *Client) GetOperations(ctx context.Context, accountID string, filter broker.OperationsFilter) ([]broker.Operation, error) {
	query := url.Values{}
	query.Set("account_id", accountID)
	if filter.FIGI != "" {
		query.Set("figi", filter.FIGI)
	}
	if filter.State != "" {
		query.Set("state", string(filter.State))
	}
	if !filter.From.IsZero() {
		query.Set("from", filter.From.UTC().Format(time.RFC3339))
	}
	if !filter.To.IsZero() {
		query.Set("to", filter.To.UTC().Format(time.RFC3339))
	}

	var resp OperationsResponse
	if err := c.get(ctx, "/operations", query, &resp); err != nil {
		return nil, fmt.Errorf("get operations: %w", err)
	}
	return resp.Operations, nil
}
