// Package database provides pgx connection pooling for the shared candle
// archive.
//
// The archive is optional: a single backtest process defaults to the
// on-disk file cache, while a team sharing one Postgres instance can
// point cache.backend at it instead.
package database
