package backtest

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/invest-backtest/internal/instruments"
	"github.com/rickgao/invest-backtest/internal/model"
)

// Config carries the account parameters of a simulation run.
type Config struct {
	InitialCapital model.Quotation
	Currency       string
	CommissionRate decimal.Decimal
}

// Backtest wires the simulation clock, the order book and the ledger
// into one run. Candle series are registered up front with AddCandles;
// the strategy then alternates Account calls with Tick until Tick
// returns false.
type Backtest struct {
	clock       *SimulationClock
	book        *orderBook
	ledger      *ledger
	instruments instruments.Provider
	logger      *slog.Logger
}

// New creates a run with no market data yet. A nil logger falls back to
// slog.Default().
func New(cfg Config, provider instruments.Provider, logger *slog.Logger) *Backtest {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backtest{
		clock:       NewSimulationClock(),
		book:        newOrderBook(),
		ledger:      newLedger(cfg.InitialCapital, cfg.Currency, cfg.CommissionRate),
		instruments: provider,
		logger:      logger,
	}
}

// AddCandles registers the bar series the simulation will replay for one
// instrument. Call before the first Tick.
func (b *Backtest) AddCandles(figi string, candles []model.Candle) {
	b.clock.AddSeries(figi, candles)
}

// Account returns the broker-contract view of this run.
func (b *Backtest) Account() *Account {
	return &Account{bt: b}
}

// Tick reveals the next bar and settles pending orders against it.
// It returns false when the market data is exhausted.
func (b *Backtest) Tick() bool {
	if !b.clock.Advance() {
		return false
	}
	b.settle()
	return true
}

// Candles returns the bars revealed so far for figi, oldest first.
func (b *Backtest) Candles(figi string) []model.Candle {
	return b.clock.Candles(figi)
}

// CurrentCandle returns the bar at the simulation cursor for figi.
func (b *Backtest) CurrentCandle(figi string) (model.Candle, bool) {
	return b.clock.CurrentCandle(figi)
}

// CurrentTime is the simulation's current bar timestamp.
func (b *Backtest) CurrentTime() time.Time {
	return b.clock.CurrentTime()
}

// Capital values the account at the current bar: free cash plus every
// open position marked at its instrument's current close.
func (b *Backtest) Capital() model.MoneyValue {
	total := b.ledger.cash
	for _, pos := range b.ledger.snapshot() {
		if pos.QuantityLots == 0 {
			continue
		}
		cur, ok := b.clock.CurrentCandle(pos.FIGI)
		if !ok {
			continue
		}
		p := b.ledger.positions[pos.FIGI]
		mark := cur.Close.Decimal().
			Mul(decimal.NewFromInt(pos.QuantityLots)).
			Mul(decimal.NewFromInt(p.instrument.Lot))
		total = total.Add(mark)
	}
	return model.Money(model.QuotationFromDecimal(total), b.ledger.currency)
}
