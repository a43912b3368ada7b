// Package backtest simulates a brokerage account over historical candles.
//
// A Backtest owns a simulation clock, an order book and a cash ledger.
// The clock steps through per-instrument candle series one bar at a time;
// each Tick advances the clock and then settles pending orders against
// the newly revealed bar. Market orders fill at the close of the bar that
// was current when they were submitted. Limit orders fill at their limit
// price once a bar's range touches it.
//
// Strategy code talks to the simulation through Account, which satisfies
// the same broker.Account contract as the live adapter, so a strategy
// runs unchanged against either.
//
// Everything is deterministic: the same candle series and the same order
// sequence produce byte-identical operations and balances on every run.
package backtest
