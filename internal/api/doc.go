// Package api provides the REST client for the broker's investment API.
//
// The backtest engine only consumes the historical candle endpoint; the
// remaining endpoints (instruments, orders, operations) exist so the live
// account adapter can share the broker.Account contract with the
// simulation.
//
// Retry policy lives here and only here: callers such as the candle
// loader propagate failures unchanged.
package api
