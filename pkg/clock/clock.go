// Package clock provides the pause primitive used between rendered characters.
//
// [Real] guarantees that the total suspension is at least the requested
// duration, resuming after any early wake until the deadline has passed.
package clock

import (
	"errors"
	"time"
)

// ErrNegativeDuration is returned when a negative pause is requested.
// The pause is skipped.
var ErrNegativeDuration = errors.New("negative duration")

// Sleeper suspends the calling goroutine.
type Sleeper interface {
	Sleep(d time.Duration) error
}

// Real is a [Sleeper] backed by the runtime timer.
type Real struct {
	// Now and Wait default to [time.Now] and [time.Sleep].
	Now  func() time.Time
	Wait func(time.Duration)
}

// Sleep suspends for at least d. A zero duration returns immediately.
func (r Real) Sleep(d time.Duration) error {
	if d < 0 {
		return ErrNegativeDuration
	}
	if d == 0 {
		return nil
	}

	now := r.Now
	if now == nil {
		now = time.Now
	}

	wait := r.Wait
	if wait == nil {
		wait = time.Sleep
	}

	deadline := now().Add(d)
	for remaining := d; remaining > 0; remaining = deadline.Sub(now()) {
		wait(remaining)
	}

	return nil
}

// SleeperFunc adapts a function to the [Sleeper] interface.
type SleeperFunc func(time.Duration) error

// Sleep calls f(d).
func (f SleeperFunc) Sleep(d time.Duration) error {
	return f(d)
}

// Millis converts an integer millisecond count to a [time.Duration].
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
