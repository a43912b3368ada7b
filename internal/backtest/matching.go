package backtest

import (
	"errors"

	"github.com/rickgao/invest-backtest/internal/broker"
	"github.com/rickgao/invest-backtest/internal/model"
)

// settle tries to fill every pending order against the bar the clock
// just revealed, in submission order. Orders whose fill condition is not
// met stay pending for the next bar. Only instruments that revealed a
// new bar on this step are evaluated, so an order on an exhausted series
// is never matched against a stale bar.
func (b *Backtest) settle() {
	for _, o := range b.book.active() {
		if !b.clock.Advanced(o.spec.FIGI) {
			continue
		}
		b.trySettle(o)
	}
}

func (b *Backtest) trySettle(o *trackedOrder) {
	cur, ok := b.clock.CurrentCandle(o.spec.FIGI)
	if !ok {
		return
	}

	var fillPrice model.Quotation
	switch o.spec.Type {
	case broker.OrderTypeMarket:
		// Fills at the close of the bar that was current at submission.
		prev, ok := b.clock.PreviousCandle(o.spec.FIGI)
		if !ok {
			return
		}
		fillPrice = prev.Close
	case broker.OrderTypeLimit:
		if !limitTouched(o.spec, cur) {
			return
		}
		fillPrice = o.spec.Price
	default:
		return
	}

	notional, err := b.ledger.settleTrade(o.instrument, o.spec.Direction, o.spec.QuantityLots, fillPrice, cur.Time)
	if err != nil {
		if errors.Is(err, broker.ErrInsufficientPosition) {
			o.state.Status = broker.OrderStatusRejected
			o.state.Message = err.Error()
			b.logger.Warn("order rejected at settlement",
				"order_id", o.state.OrderID, "figi", o.spec.FIGI, "error", err)
			return
		}
		o.state.Status = broker.OrderStatusRejected
		o.state.Message = err.Error()
		b.logger.Error("order settlement failed",
			"order_id", o.state.OrderID, "figi", o.spec.FIGI, "error", err)
		return
	}

	o.state.Status = broker.OrderStatusFill
	o.state.ExecutedOrderPrice = model.Money(notional, o.instrument.Currency)
	b.logger.Debug("order filled",
		"order_id", o.state.OrderID,
		"figi", o.spec.FIGI,
		"direction", o.spec.Direction,
		"lots", o.spec.QuantityLots,
		"price", fillPrice.String())
}

// limitTouched reports whether the revealed bar's range reaches the
// order's limit price. A buy fills once the bar trades at or below the
// limit, a sell once it trades at or above it.
func limitTouched(spec broker.OrderSpec, bar model.Candle) bool {
	switch spec.Direction {
	case broker.DirectionBuy:
		return spec.Price.Cmp(bar.Low) >= 0
	case broker.DirectionSell:
		return spec.Price.Cmp(bar.High) <= 0
	}
	return false
}
