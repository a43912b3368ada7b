// Package broker defines the account contract shared by the live broker
// adapter and the backtest simulation.
//
// Strategy code is written against the Account interface so a backtest
// run and a live run differ only in which implementation is injected.
package broker
