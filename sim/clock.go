package sim

import (
	"math"
	"strconv"
	"time"
)

// SimClock holds the monotonic origin captured once at simulation start.
// Every logged event reports seconds elapsed since that origin.
type SimClock struct {
	origin time.Time
}

// NewSimClock captures the origin now.
func NewSimClock() SimClock {
	return SimClock{origin: time.Now()}
}

// Origin returns the captured origin.
func (c SimClock) Origin() time.Time {
	return c.origin
}

// Elapsed returns the time since origin, read from the monotonic clock.
func (c SimClock) Elapsed() time.Duration {
	return time.Since(c.origin)
}

// Seconds returns Elapsed in seconds with microsecond resolution.
func (c SimClock) Seconds() float64 {
	return float64(c.Elapsed().Microseconds()) / 1e6
}

// FormatSeconds renders seconds with 6 significant digits, trailing zeros dropped.
func FormatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'g', 6, 64)
}

// SecondsToDuration converts simulated seconds to a time.Duration, clamped to
// [0, math.MaxInt64].
func SecondsToDuration(s float64) time.Duration {
	ns := math.Round(s * float64(time.Second))
	switch {
	case ns <= 0 || math.IsNaN(ns):
		return 0
	case ns >= math.MaxInt64:
		return math.MaxInt64
	}
	return time.Duration(ns)
}

// deadline returns elapsed+d, capped at the largest Duration.
func deadline(elapsed, d time.Duration) time.Duration {
	if d > math.MaxInt64-elapsed {
		return math.MaxInt64
	}
	return elapsed + d
}
