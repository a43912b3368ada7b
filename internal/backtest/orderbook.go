package backtest

import (
	"fmt"

	"github.com/rickgao/invest-backtest/internal/broker"
	"github.com/rickgao/invest-backtest/internal/model"
)

// trackedOrder couples the broker-visible order state with the data
// settlement needs: the submitted spec for the limit price and the
// instrument for lot size and currency.
type trackedOrder struct {
	state      broker.OrderState
	spec       broker.OrderSpec
	instrument model.Instrument
}

// orderBook holds every submitted order for the lifetime of a run.
// Terminal orders stay queryable by id; settlement walks pending orders
// in submission order.
type orderBook struct {
	orders []*trackedOrder
	byID   map[string]*trackedOrder
}

func newOrderBook() *orderBook {
	return &orderBook{byID: make(map[string]*trackedOrder)}
}

func (b *orderBook) add(o *trackedOrder) {
	b.orders = append(b.orders, o)
	b.byID[o.state.OrderID] = o
}

func (b *orderBook) get(orderID string) (*trackedOrder, bool) {
	o, ok := b.byID[orderID]
	return o, ok
}

// active returns unsettled orders in submission order.
func (b *orderBook) active() []*trackedOrder {
	var out []*trackedOrder
	for _, o := range b.orders {
		if o.state.Status == broker.OrderStatusNew {
			out = append(out, o)
		}
	}
	return out
}

func (b *orderBook) cancel(orderID string) error {
	o, ok := b.byID[orderID]
	if !ok {
		return fmt.Errorf("cancel order %s: %w", orderID, broker.ErrOrderNotFound)
	}
	if o.state.Status != broker.OrderStatusNew {
		return fmt.Errorf("cancel order %s: order already %s", orderID, o.state.Status)
	}
	o.state.Status = broker.OrderStatusCancelled
	return nil
}
