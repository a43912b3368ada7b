package broker

import (
	"context"
	"errors"
)

// Error kinds surfaced through the Account contract. Both the live
// adapter and the simulation report the same kinds so strategy code can
// branch with errors.Is.
var (
	// ErrInsufficientPosition means a sell order asks for more lots than
	// the account holds. Raised at submission and, for orders that slip
	// past that check, again at settlement.
	ErrInsufficientPosition = errors.New("insufficient lots for order")

	// ErrOrderNotFound means the order id is unknown to the account.
	ErrOrderNotFound = errors.New("order not found")
)

// Account is the operation surface of a brokerage account.
type Account interface {
	GetInfo(ctx context.Context) (AccountInfo, error)
	GetPortfolio(ctx context.Context) (Portfolio, error)
	GetPositions(ctx context.Context) ([]Position, error)
	GetOrders(ctx context.Context) ([]OrderState, error)
	GetOrderState(ctx context.Context, orderID string) (OrderState, error)
	PostOrder(ctx context.Context, spec OrderSpec) (OrderState, error)
	CancelOrder(ctx context.Context, orderID string) error
	GetOperations(ctx context.Context, filter OperationsFilter) ([]Operation, error)
}
