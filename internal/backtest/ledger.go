package backtest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rickgao/invest-backtest/internal/broker"
	"github.com/rickgao/invest-backtest/internal/model"
)

// position tracks one instrument holding. avgPerLot is the weighted
// average acquisition cost of a single lot; it resets to zero when the
// quantity returns to zero but the entry itself is kept.
type position struct {
	instrument model.Instrument
	lots       int64
	avgPerLot  decimal.Decimal
}

// ledger is the account's single source of truth for money. Cash only
// ever changes by appending an operation, so the invariant
//
//	cash == initial capital + sum of all operation payments
//
// holds at every step.
type ledger struct {
	currency   string
	rate       decimal.Decimal
	cash       decimal.Decimal
	figis      []string
	positions  map[string]*position
	operations []broker.Operation
}

func newLedger(initialCapital model.Quotation, currency string, commissionRate decimal.Decimal) *ledger {
	return &ledger{
		currency:  currency,
		rate:      commissionRate,
		cash:      initialCapital.Decimal(),
		positions: make(map[string]*position),
	}
}

func (l *ledger) cashQuotation() model.Quotation {
	return model.QuotationFromDecimal(l.cash)
}

func (l *ledger) lots(figi string) int64 {
	if p, ok := l.positions[figi]; ok {
		return p.lots
	}
	return 0
}

// settleTrade applies a fill to cash and positions and appends the
// trade-payment and commission operations, both timestamped at the
// settling bar. It returns the unsigned notional of the trade. A sell
// for more lots than held changes nothing and reports
// broker.ErrInsufficientPosition.
func (l *ledger) settleTrade(inst model.Instrument, dir broker.Direction, lots int64, pricePerUnit model.Quotation, at time.Time) (model.Quotation, error) {
	notional := pricePerUnit.Decimal().
		Mul(decimal.NewFromInt(lots)).
		Mul(decimal.NewFromInt(inst.Lot))

	p, ok := l.positions[inst.FIGI]
	if !ok {
		p = &position{instrument: inst}
	}

	payment := notional
	switch dir {
	case broker.DirectionBuy:
		payment = notional.Neg()
		total := p.avgPerLot.Mul(decimal.NewFromInt(p.lots)).Add(notional)
		p.lots += lots
		p.avgPerLot = total.Div(decimal.NewFromInt(p.lots))
	case broker.DirectionSell:
		if p.lots < lots {
			return model.Quotation{}, fmt.Errorf("sell %d lots of %s with %d held: %w",
				lots, inst.FIGI, p.lots, broker.ErrInsufficientPosition)
		}
		p.lots -= lots
		if p.lots == 0 {
			p.avgPerLot = decimal.Zero
		}
	default:
		return model.Quotation{}, fmt.Errorf("settle trade: unknown direction %q", dir)
	}

	if !ok {
		l.figis = append(l.figis, inst.FIGI)
		l.positions[inst.FIGI] = p
	}

	commission := notional.Mul(l.rate).Neg()
	l.append(inst.FIGI, broker.OperationTradePayment, payment, at)
	l.append(inst.FIGI, broker.OperationCommission, commission, at)

	return model.QuotationFromDecimal(notional), nil
}

func (l *ledger) append(figi string, typ broker.OperationType, amount decimal.Decimal, at time.Time) {
	l.cash = l.cash.Add(amount)
	l.operations = append(l.operations, broker.Operation{
		ID:      uuid.NewString(),
		FIGI:    figi,
		Type:    typ,
		State:   broker.OperationStateExecuted,
		Payment: model.Money(model.QuotationFromDecimal(amount), l.currency),
		Time:    at,
	})
}

// snapshot returns every position in first-trade order, including ones
// whose quantity has returned to zero.
func (l *ledger) snapshot() []broker.Position {
	out := make([]broker.Position, 0, len(l.figis))
	for _, figi := range l.figis {
		p := l.positions[figi]
		out = append(out, broker.Position{
			FIGI:           figi,
			InstrumentType: p.instrument.InstrumentType,
			QuantityLots:   p.lots,
			AveragePrice:   model.Money(model.QuotationFromDecimal(p.avgPerLot), l.currency),
		})
	}
	return out
}

func (l *ledger) filteredOperations(f broker.OperationsFilter) []broker.Operation {
	var out []broker.Operation
	for _, op := range l.operations {
		if f.Match(op) {
			out = append(out, op)
		}
	}
	return out
}
