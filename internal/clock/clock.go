// Package clock provides an injectable time source.
//
// The candle loader decides whether "today" needs a live fetch using the
// real wall clock, even while the rest of the system runs on simulated
// time. Components therefore receive a Clock capability instead of
// calling time.Now directly.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to the Clock interface.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// Real returns a Clock backed by the system wall clock.
func Real() Clock {
	return Func(time.Now)
}

// Fixed returns a Clock frozen at t. Useful in tests and replays.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}
