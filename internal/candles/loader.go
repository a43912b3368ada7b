package candles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rickgao/invest-backtest/internal/clock"
	"github.com/rickgao/invest-backtest/internal/model"
)

// Request describes the candles to load. Exactly one of From or MinCount
// must be set: From bounds the range, MinCount bounds the length.
type Request struct {
	FIGI     string
	Interval model.CandleInterval
	From     time.Time // inclusive lower bound; zero means unset
	To       time.Time // exclusive upper bound; zero means "now"
	MinCount int       // minimum candle count; 0 means unset
}

// Loader error kinds.
var (
	// ErrInvalidRange means a request set neither From nor MinCount.
	ErrInvalidRange = errors.New("candles: request needs a from bound or a min count")

	// ErrChunkLimit means the backward day walk hit its ceiling before
	// the request was satisfied.
	ErrChunkLimit = errors.New("candles: backward walk exceeded chunk-day limit")
)

// Config holds loader settings.
type Config struct {
	// MaxChunkDays caps the backward day walk. Guards against a MinCount
	// larger than the instrument's whole history looping forever.
	MaxChunkDays int

	// Replay bypasses the cache entirely. Used in backtests, where the
	// source already serves pre-fetched local data and caching it again
	// would be redundant.
	Replay bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxChunkDays: 2000}
}

// Loader assembles ordered candle series from the cache and the live
// source, one day-chunk at a time.
type Loader struct {
	cfg    Config
	source Source
	cache  Cache
	wall   clock.Clock
	logger *slog.Logger
}

// New creates a Loader. The wall clock must be the real one even inside
// a backtest: it only decides whether "today" needs a live fetch.
func New(cfg Config, source Source, cache Cache, wall clock.Clock, logger *slog.Logger) *Loader {
	if cfg.MaxChunkDays <= 0 {
		cfg.MaxChunkDays = DefaultConfig().MaxChunkDays
	}
	if wall == nil {
		wall = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		cfg:    cfg,
		source: source,
		cache:  cache,
		wall:   wall,
		logger: logger,
	}
}

// Load returns candles ascending by time with no duplicate timestamps,
// trimmed to [From, To) when From is set, or long enough to reach
// MinCount. Source failures propagate unchanged; there is no retry at
// this layer.
func (l *Loader) Load(ctx context.Context, req Request) ([]model.Candle, error) {
	if req.From.IsZero() && req.MinCount <= 0 {
		return nil, ErrInvalidRange
	}

	to := req.To
	if to.IsZero() {
		to = l.wall.Now().UTC()
	}

	// The upper bound is exclusive, so the first chunk is the day that
	// contains the last instant before To.
	chunkDate := dayStart(to.Add(-time.Millisecond))

	acc, err := l.loadChunk(ctx, req, chunkDate, !l.needToday(to))
	if err != nil {
		return nil, err
	}
	acc = filterCandles(acc, func(ts time.Time) bool { return ts.Before(to) })

	steps := 0
	for l.needMore(req, acc, chunkDate) {
		steps++
		if steps > l.cfg.MaxChunkDays {
			return nil, fmt.Errorf("%w (%d days) for %s", ErrChunkLimit, l.cfg.MaxChunkDays, req.FIGI)
		}

		chunkDate = chunkDate.AddDate(0, 0, -1)
		chunk, err := l.loadChunk(ctx, req, chunkDate, true)
		if err != nil {
			return nil, err
		}
		// Older chunk goes in front: ascending order holds without sorting.
		acc = append(chunk, acc...)
	}

	if !req.From.IsZero() {
		acc = filterCandles(acc, func(ts time.Time) bool { return !ts.Before(req.From) })
	}

	l.logger.Debug("candles loaded",
		"figi", req.FIGI,
		"interval", req.Interval,
		"candles", len(acc),
		"chunk_days", steps+1,
	)
	return dedupe(acc), nil
}

// loadChunk returns one UTC day of candles, consulting the cache when
// useCache is set. A fetched chunk is persisted before returning, empty
// days included, so the next run skips the fetch.
func (l *Loader) loadChunk(ctx context.Context, req Request, day time.Time, useCache bool) ([]model.Candle, error) {
	if l.cfg.Replay {
		useCache = false
	}

	if useCache {
		chunk, found, err := l.cache.LoadChunk(ctx, req.FIGI, req.Interval, day)
		if err != nil {
			return nil, err
		}
		if found {
			l.logger.Debug("chunk from cache",
				"figi", req.FIGI,
				"day", day.Format(dayLayout),
				"candles", len(chunk),
			)
			return chunk, nil
		}
	}

	chunk, err := l.source.GetCandles(ctx, req.FIGI, req.Interval, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("fetch chunk %s %s: %w", req.FIGI, day.Format(dayLayout), err)
	}
	l.logger.Debug("chunk from source",
		"figi", req.FIGI,
		"day", day.Format(dayLayout),
		"candles", len(chunk),
	)

	if useCache {
		if err := l.cache.SaveChunk(ctx, req.FIGI, req.Interval, day, chunk); err != nil {
			return nil, err
		}
	}

	return chunk, nil
}

// needMore reports whether the accumulated series satisfies the request.
// MinCount takes precedence when both bounds are set.
func (l *Loader) needMore(req Request, acc []model.Candle, chunkDate time.Time) bool {
	if req.MinCount > 0 {
		return len(acc) < req.MinCount
	}
	return chunkDate.After(req.From)
}

// needToday reports whether the range touches the current (mutable) day.
func (l *Loader) needToday(to time.Time) bool {
	return to.After(dayStart(l.wall.Now().UTC()))
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func filterCandles(cs []model.Candle, keep func(time.Time) bool) []model.Candle {
	out := cs[:0]
	for _, c := range cs {
		if keep(c.Time) {
			out = append(out, c)
		}
	}
	return out
}

// dedupe drops candles repeating the previous timestamp. Chunks never
// overlap, but a re-fetched today chunk may duplicate its cached tail.
func dedupe(cs []model.Candle) []model.Candle {
	if len(cs) < 2 {
		return cs
	}
	out := cs[:1]
	for _, c := range cs[1:] {
		if c.Time.Equal(out[len(out)-1].Time) {
			continue
		}
		out = append(out, c)
	}
	return out
}
