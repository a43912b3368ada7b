// Package model defines shared domain types for the backtest engine.
//
// Conventions:
//   - Prices and money: fixed-point Quotation / MoneyValue (int64 units +
//     int32 nano, nano = 1e-9 of a unit). Never float64 for money; exact
//     arithmetic goes through shopspring/decimal.
//   - Timestamps: time.Time, always UTC
//   - Instruments: identified by FIGI strings; order quantities are whole lots
package model
