package backtest

import (
	"time"

	"github.com/rickgao/invest-backtest/internal/model"
)

// SimulationClock steps through per-instrument candle series. Each
// instrument has its own bar index, starting one step before its first
// bar so that the first Advance reveals bar zero. An index stops at its
// series' last bar: after a shorter series is exhausted its current bar
// stays pinned to the final close while longer series keep advancing.
type SimulationClock struct {
	figis  []string
	series map[string][]model.Candle
	idx    map[string]int
	fresh  map[string]bool
}

func NewSimulationClock() *SimulationClock {
	return &SimulationClock{
		series: make(map[string][]model.Candle),
		idx:    make(map[string]int),
		fresh:  make(map[string]bool),
	}
}

// AddSeries registers the candle series for one instrument. Series are
// iterated in registration order, which keeps runs deterministic.
func (c *SimulationClock) AddSeries(figi string, candles []model.Candle) {
	if _, ok := c.series[figi]; !ok {
		c.figis = append(c.figis, figi)
		c.idx[figi] = -1
	}
	c.series[figi] = candles
}

// FIGIs returns the registered instruments in registration order.
func (c *SimulationClock) FIGIs() []string {
	out := make([]string, len(c.figis))
	copy(out, c.figis)
	return out
}

// Advance moves every instrument that still has a next bar to it. It
// returns false once no instrument advanced; that is the normal end of
// a run, not an error.
func (c *SimulationClock) Advance() bool {
	c.fresh = make(map[string]bool, len(c.figis))
	advanced := false
	for _, figi := range c.figis {
		if c.idx[figi]+1 < len(c.series[figi]) {
			c.idx[figi]++
			c.fresh[figi] = true
			advanced = true
		}
	}
	return advanced
}

// Advanced reports whether figi revealed a new bar on the last Advance.
// Settlement only evaluates orders against newly revealed bars, so
// orders on an exhausted instrument stay pending.
func (c *SimulationClock) Advanced(figi string) bool {
	return c.fresh[figi]
}

// CurrentCandle returns the bar at figi's index. ok is false before the
// first Advance; after the series is exhausted it keeps returning the
// final bar.
func (c *SimulationClock) CurrentCandle(figi string) (model.Candle, bool) {
	return c.at(figi, c.idx[figi])
}

// PreviousCandle returns the bar one step behind figi's index.
func (c *SimulationClock) PreviousCandle(figi string) (model.Candle, bool) {
	return c.at(figi, c.idx[figi]-1)
}

func (c *SimulationClock) at(figi string, idx int) (model.Candle, bool) {
	s, ok := c.series[figi]
	if !ok || idx < 0 || idx >= len(s) {
		return model.Candle{}, false
	}
	return s[idx], true
}

// Candles returns the bars revealed so far for figi, oldest first. This
// is the history a strategy is allowed to see at the current step.
func (c *SimulationClock) Candles(figi string) []model.Candle {
	s, ok := c.series[figi]
	if !ok || c.idx[figi] < 0 {
		return nil
	}
	out := make([]model.Candle, c.idx[figi]+1)
	copy(out, s[:c.idx[figi]+1])
	return out
}

// CurrentTime is the timestamp of the most recently revealed bar across
// all instruments. Zero before the first Advance.
func (c *SimulationClock) CurrentTime() time.Time {
	var t time.Time
	for _, figi := range c.figis {
		if candle, ok := c.at(figi, c.idx[figi]); ok && candle.Time.After(t) {
			t = candle.Time
		}
	}
	return t
}
