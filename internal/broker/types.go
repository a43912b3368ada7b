package broker

import (
	"time"

	"github.com/rickgao/invest-backtest/internal/model"
)

// Direction is the side of an order.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

// OrderType selects the matching rule for an order.
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
)

// OrderStatus is the lifecycle state of an order. Fill, Rejected and
// Cancelled are terminal.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusFill      OrderStatus = "fill"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OperationType classifies a ledger operation.
type OperationType string

const (
	OperationTradePayment OperationType = "trade-payment"
	OperationCommission   OperationType = "commission"
)

// OperationState is the settlement state of an operation. The simulation
// only ever produces executed operations.
type OperationState string

const OperationStateExecuted OperationState = "executed"

// OrderSpec describes an order to submit.
type OrderSpec struct {
	FIGI         string          `json:"figi"`
	Direction    Direction       `json:"direction"`
	Type         OrderType       `json:"order_type"`
	QuantityLots int64           `json:"quantity"`
	Price        model.Quotation `json:"price"`    // limit orders only
	OrderID      string          `json:"order_id"` // idempotency key; generated when empty
}

// OrderState is the broker's view of a submitted order.
type OrderState struct {
	OrderID            string           `json:"order_id"`
	FIGI               string           `json:"figi"`
	Direction          Direction        `json:"direction"`
	Type               OrderType        `json:"order_type"`
	Status             OrderStatus      `json:"status"`
	LotsRequested      int64            `json:"lots_requested"`
	InitialOrderPrice  model.MoneyValue `json:"initial_order_price"`  // reference notional at submission
	ExecutedOrderPrice model.MoneyValue `json:"executed_order_price"` // notional at fill, zero until filled
	Message            string           `json:"message"` // rejection reason, empty otherwise
	SubmittedAt        time.Time        `json:"submitted_at"`
}

// Operation is one append-only ledger record: a trade payment or a
// commission debit. Never mutated after creation.
type Operation struct {
	ID      string           `json:"id"`
	FIGI    string           `json:"figi"`
	Type    OperationType    `json:"type"`
	State   OperationState   `json:"state"`
	Payment model.MoneyValue `json:"payment"` // signed: negative debits the account
	Time    time.Time        `json:"time"`
}

// OperationsFilter narrows a GetOperations query. Zero fields match
// everything; the time range is half-open [From, To).
type OperationsFilter struct {
	FIGI  string
	State OperationState
	From  time.Time
	To    time.Time
}

// Match reports whether op passes the filter.
func (f OperationsFilter) Match(op Operation) bool {
	if f.FIGI != "" && op.FIGI != f.FIGI {
		return false
	}
	if f.State != "" && op.State != f.State {
		return false
	}
	if !f.From.IsZero() && op.Time.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !op.Time.Before(f.To) {
		return false
	}
	return true
}

// Position is one instrument holding: whole lots and the weighted average
// acquisition price per lot.
type Position struct {
	FIGI           string           `json:"figi"`
	InstrumentType string           `json:"instrument_type"`
	QuantityLots   int64            `json:"quantity_lots"`
	AveragePrice   model.MoneyValue `json:"average_position_price"`
}

// Portfolio is a derived snapshot of account value: free cash plus each
// position marked at the current candle close.
type Portfolio struct {
	TotalAmountShares     model.MoneyValue `json:"total_amount_shares"`
	TotalAmountCurrencies model.MoneyValue `json:"total_amount_currencies"`
	Positions             []Position       `json:"positions"`
}

// AccountInfo identifies a brokerage account.
type AccountInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
