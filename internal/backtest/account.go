package backtest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rickgao/invest-backtest/internal/broker"
	"github.com/rickgao/invest-backtest/internal/model"
)

// Account adapts a Backtest to the broker.Account contract.
type Account struct {
	bt *Backtest
}

var _ broker.Account = (*Account)(nil)

func (a *Account) GetInfo(ctx context.Context) (broker.AccountInfo, error) {
	return broker.AccountInfo{ID: "backtest", Name: "backtest account"}, nil
}

// GetPortfolio snapshots account value at the current bar: free cash and
// every position marked at its current close.
func (a *Account) GetPortfolio(ctx context.Context) (broker.Portfolio, error) {
	l := a.bt.ledger
	shares := model.Quotation{}
	for _, figi := range l.figis {
		p := l.positions[figi]
		if p.lots == 0 {
			continue
		}
		cur, ok := a.bt.clock.CurrentCandle(figi)
		if !ok {
			continue
		}
		shares = shares.Add(cur.Close.MulInt(p.lots * p.instrument.Lot))
	}
	return broker.Portfolio{
		TotalAmountShares:     model.Money(shares, l.currency),
		TotalAmountCurrencies: model.Money(l.cashQuotation(), l.currency),
		Positions:             l.snapshot(),
	}, nil
}

func (a *Account) GetPositions(ctx context.Context) ([]broker.Position, error) {
	return a.bt.ledger.snapshot(), nil
}

// GetOrders returns orders still awaiting settlement, oldest first.
func (a *Account) GetOrders(ctx context.Context) ([]broker.OrderState, error) {
	var out []broker.OrderState
	for _, o := range a.bt.book.active() {
		out = append(out, o.state)
	}
	return out, nil
}

func (a *Account) GetOrderState(ctx context.Context, orderID string) (broker.OrderState, error) {
	o, ok := a.bt.book.get(orderID)
	if !ok {
		return broker.OrderState{}, fmt.Errorf("order state %s: %w", orderID, broker.ErrOrderNotFound)
	}
	return o.state, nil
}

// PostOrder validates and queues an order for settlement on the next
// Tick. Resubmitting an OrderID that is already known returns the
// existing state unchanged.
func (a *Account) PostOrder(ctx context.Context, spec broker.OrderSpec) (broker.OrderState, error) {
	if spec.OrderID != "" {
		if o, ok := a.bt.book.get(spec.OrderID); ok {
			return o.state, nil
		}
	}
	if err := validateSpec(spec); err != nil {
		return broker.OrderState{}, fmt.Errorf("post order: %w", err)
	}

	inst, err := a.bt.instruments.GetByFIGI(ctx, spec.FIGI)
	if err != nil {
		return broker.OrderState{}, fmt.Errorf("post order: %w", err)
	}
	if spec.Direction == broker.DirectionSell && a.bt.ledger.lots(spec.FIGI) < spec.QuantityLots {
		return broker.OrderState{}, fmt.Errorf("post order: sell %d lots of %s with %d held: %w",
			spec.QuantityLots, spec.FIGI, a.bt.ledger.lots(spec.FIGI), broker.ErrInsufficientPosition)
	}

	cur, ok := a.bt.clock.CurrentCandle(spec.FIGI)
	if !ok {
		return broker.OrderState{}, fmt.Errorf("post order: no market data for %s yet", spec.FIGI)
	}
	refPrice := cur.Close
	if spec.Type == broker.OrderTypeLimit {
		refPrice = spec.Price
	}

	if spec.OrderID == "" {
		spec.OrderID = uuid.NewString()
	}
	o := &trackedOrder{
		state: broker.OrderState{
			OrderID:           spec.OrderID,
			FIGI:              spec.FIGI,
			Direction:         spec.Direction,
			Type:              spec.Type,
			Status:            broker.OrderStatusNew,
			LotsRequested:     spec.QuantityLots,
			InitialOrderPrice: model.Money(refPrice.MulInt(spec.QuantityLots*inst.Lot), inst.Currency),
			SubmittedAt:       a.bt.clock.CurrentTime(),
		},
		spec:       spec,
		instrument: inst,
	}
	a.bt.book.add(o)
	a.bt.logger.Debug("order accepted",
		"order_id", o.state.OrderID,
		"figi", spec.FIGI,
		"direction", spec.Direction,
		"type", spec.Type,
		"lots", spec.QuantityLots)
	return o.state, nil
}

func (a *Account) CancelOrder(ctx context.Context, orderID string) error {
	return a.bt.book.cancel(orderID)
}

func (a *Account) GetOperations(ctx context.Context, filter broker.OperationsFilter) ([]broker.Operation, error) {
	return a.bt.ledger.filteredOperations(filter), nil
}

func validateSpec(spec broker.OrderSpec) error {
	if spec.FIGI == "" {
		return fmt.Errorf("figi is required")
	}
	if spec.QuantityLots <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", spec.QuantityLots)
	}
	switch spec.Direction {
	case broker.DirectionBuy, broker.DirectionSell:
	default:
		return fmt.Errorf("unknown direction %q", spec.Direction)
	}
	switch spec.Type {
	case broker.OrderTypeMarket:
	case broker.OrderTypeLimit:
		if spec.Price.IsZero() {
			return fmt.Errorf("limit order requires a price")
		}
	default:
		return fmt.Errorf("unknown order type %q", spec.Type)
	}
	return nil
}
