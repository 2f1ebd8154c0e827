// Package pace spaces a sequence of outbound API calls so the achieved rate
// stays at or below a requests-per-minute ceiling. The primitive is a pure
// computation plus a possible blocking sleep; all state is caller-held.
package pace

import (
	"errors"
	"time"
)

// ErrInvalidRate is returned when the rate ceiling is zero or negative.
var ErrInvalidRate = errors.New("max requests per minute must be positive")

// MinInterval returns the minimum spacing between consecutive calls required
// to respect the given requests-per-minute ceiling.
func MinInterval(maxPerMinute float64) (time.Duration, error) {
	if maxPerMinute <= 0 {
		return 0, ErrInvalidRate
	}
	return time.Duration(float64(time.Minute) / maxPerMinute), nil
}

// WaitForSlot blocks the calling goroutine until the next call slot is
// available, then returns the current time. The returned value becomes the
// `last` argument of the caller's next invocation.
//
// A zero `last` is the sentinel for "no prior call" and never waits. There is
// no cancellation: once the wait begins it runs to completion. If `last` lies
// in the future the computed sleep exceeds the minimum interval; that is
// deliberate, the contract is sleep(minInterval - elapsed) whenever
// elapsed < minInterval.
func WaitForSlot(maxPerMinute float64, last time.Time) (time.Time, error) {
	return waitForSlot(maxPerMinute, last, time.Now, time.Sleep)
}

func waitForSlot(maxPerMinute float64, last time.Time, now func() time.Time, sleep func(time.Duration)) (time.Time, error) {
	interval, err := MinInterval(maxPerMinute)
	if err != nil {
		return time.Time{}, err
	}

	if last.IsZero() {
		return now(), nil
	}

	if elapsed := now().Sub(last); elapsed < interval {
		sleep(interval - elapsed)
	}

	return now(), nil
}

// Limiter is a convenience wrapper that threads the last-call timestamp
// internally. WaitForSlot remains the primitive; Limiter exists so call sites
// don't have to carry the timestamp through their loops by hand.
//
// A Limiter is NOT safe for concurrent use. Each caller owns its limiter and
// paces against its own call history only; cross-caller coordination must be
// layered externally.
type Limiter struct {
	// Rate is the requests-per-minute ceiling.
	Rate float64

	// Clock overrides the time source. Nil means time.Now.
	Clock func() time.Time

	// Sleep overrides the blocking primitive. Nil means time.Sleep.
	Sleep func(time.Duration)

	last time.Time
}

// NewLimiter validates the rate ceiling up front so a misconfigured limiter
// fails before its first wait.
func NewLimiter(maxPerMinute float64) (*Limiter, error) {
	if maxPerMinute <= 0 {
		return nil, ErrInvalidRate
	}
	return &Limiter{Rate: maxPerMinute}, nil
}

// Wait blocks until the next slot is available and records the returned
// timestamp as the new last-call time.
func (l *Limiter) Wait() (time.Time, error) {
	ts, err := waitForSlot(l.Rate, l.last, l.now, l.sleep)
	if err != nil {
		return time.Time{}, err
	}
	l.last = ts
	return ts, nil
}

// Last reports the timestamp returned by the most recent Wait, or the zero
// time when no wait has happened yet.
func (l *Limiter) Last() time.Time {
	return l.last
}

// Interval reports the minimum spacing this limiter enforces.
func (l *Limiter) Interval() (time.Duration, error) {
	return MinInterval(l.Rate)
}

func (l *Limiter) now() time.Time {
	if l.Clock != nil {
		return l.Clock()
	}
	return time.Now()
}

func (l *Limiter) sleep(d time.Duration) {
	if l.Sleep != nil {
		l.Sleep(d)
		return
	}
	time.Sleep(d)
}
