package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rickgao/invest-backtest/internal/broker"
)

// OrdersResponse from GET /orders
type OrdersResponse struct {
	Orders []broker.OrderState `json:"orders"`
}

// OrderStateResponse from GET /orders/state and POST /orders
type OrderStateResponse struct {
	Order broker.OrderState `json:"order"`
}

// postOrderRequest is the body for POST /orders.
type postOrderRequest struct {
	AccountID string `json:"account_id"`
	broker.OrderSpec
}

// cancelOrderRequest is the body for POST /orders/cancel.
type cancelOrderRequest struct {
	AccountID string `json:"account_id"`
	OrderID   string `json:"order_id"`
}

// GetOrders lists the account's active orders.
func (c *Client) GetOrders(ctx context.Context, accountID string) ([]broker.OrderState, error) {
	query := url.Values{}
	query.Set("account_id", accountID)

	var resp OrdersResponse
	if err := c.get(ctx, "/orders", query, &resp); err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}

	return resp.Orders, nil
}

// GetOrderState fetches one order by id.
func (c *Client) GetOrderState(ctx context.Context, accountID, orderID string) (broker.OrderState, error) {
	query := url.Values{}
	query.Set("account_id", accountID)
	query.Set("order_id", orderID)

	var resp OrderStateResponse
	if err := c.get(ctx, "/orders/state", query, &resp); err != nil {
		return broker.OrderState{}, fmt.Errorf("get order state %s: %w", orderID, err)
	}

	return resp.Order, nil
}

// PostOrder submits an order. Not retried (see post).
func (c *Client) PostOrder(ctx context.Context, accountID string, spec broker.OrderSpec) (broker.OrderState, error) {
	var resp OrderStateResponse
	if err := c.post(ctx, "/orders", postOrderRequest{AccountID: accountID, OrderSpec: spec}, &resp); err != nil {
		return broker.OrderState{}, fmt.Errorf("post order: %w", err)
	}

	return resp.Order, nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, accountID, orderID string) error {
	if err := c.post(ctx, "/orders/cancel", cancelOrderRequest{AccountID: accountID, OrderID: orderID}, nil); err != nil {
		return fmt.Errorf("cancel order %s: %w", orderID, err)
	}
	return nil
}
