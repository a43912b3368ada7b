// Package candles assembles historical candle series from a chunked,
// cache-aware loader.
//
// The unit of caching is one UTC calendar day of candles for one
// (figi, interval) pair. A request is satisfied by walking backward
// day-by-day from its upper bound, reading each day from the cache when
// present and from the live source otherwise. Two special rules:
//
//   - The current day is never read from the cache: its candles can
//     still change, so it is always re-fetched. "Today" is decided by
//     the injected wall clock, not by any simulated time.
//   - A day the source confirms has no candles is stored as an explicit
//     empty marker, so later runs skip the fetch too.
package candles
