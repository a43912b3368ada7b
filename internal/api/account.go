package api

import (
	"context"
	"fmt"

	"github.com/rickgao/invest-backtest/internal/broker"
)

// LiveAccount adapts the REST client to the broker.Account contract for
// one account id. Pure delegation; the simulation provides the other
// implementation of the same interface.
type LiveAccount struct {
	client    *Client
	accountID string
}

// NewLiveAccount binds a client to an account id.
func NewLiveAccount(client *Client, accountID string) *LiveAccount {
	return &LiveAccount{client: client, accountID: accountID}
}

func (a *LiveAccount) GetInfo(ctx context.Context) (broker.AccountInfo, error) {
	accounts, err := a.client.GetAccounts(ctx)
	if err != nil {
		return broker.AccountInfo{}, err
	}
	for _, acc := range accounts {
		if acc.ID == a.accountID {
			return acc, nil
		}
	}
	return broker.AccountInfo{}, fmt.Errorf("account %s: not listed for this token", a.accountID)
}

func (a *LiveAccount) GetPortfolio(ctx context.Context) (broker.Portfolio, error) {
	return a.client.GetPortfolio(ctx, a.accountID)
}

func (a *LiveAccount) GetPositions(ctx context.Context) ([]broker.Position, error) {
	return a.client.GetPositions(ctx, a.accountID)
}

func (a *LiveAccount) GetOrders(ctx context.Context) ([]broker.OrderState, error) {
	return a.client.GetOrders(ctx, a.accountID)
}

func (a *LiveAccount) GetOrderState(ctx context.Context, orderID string) (broker.OrderState, error) {
	return a.client.GetOrderState(ctx, a.accountID, orderID)
}

func (a *LiveAccount) PostOrder(ctx context.Context, spec broker.OrderSpec) (broker.OrderState, error) {
	return a.client.PostOrder(ctx, a.accountID, spec)
}

func (a *LiveAccount) CancelOrder(ctx context.Context, orderID string) error {
	return a.client.CancelOrder(ctx, a.accountID, orderID)
}

func (a *LiveAccount) GetOperations(ctx context.Context, filter broker.OperationsFilter) ([]broker.Operation, error) {
	return a.client.GetOperations(ctx, a.accountID, filter)
}

var _ broker.Account = (*LiveAccount)(nil)
