// Package retry provides backoff policies for resilient network loops.
package retry

import (
	"math"
	"math/rand"
	"time"
)

// Throttle computes successive delays for a retry loop, growing
// exponentially from Initial up to Max.  It is the accept-loop
// counterpart to a per-call backoff: call Delay after each transient
// failure and Reset after a success.
//
// Throttle is not safe for concurrent use; each loop owns its own.
type Throttle struct {
	// Initial is the first delay (default 10ms).
	Initial time.Duration
	// Max caps the delay (default 1s).
	Max time.Duration
	// Multiplier increases the delay each failure (default 2.0).
	Multiplier float64
	// Jitter adds ±25% randomisation to prevent thundering herd.
	Jitter bool

	current time.Duration
}

// DefaultThrottle returns the policy used for transient accept errors:
// start at 10ms, double up to 1s.
func DefaultThrottle() *Throttle {
	return &Throttle{
		Initial:    10 * time.Millisecond,
		Max:        time.Second,
		Multiplier: 2.0,
	}
}

// Delay returns the next wait duration and advances the schedule.
func (t *Throttle) Delay() time.Duration {
	initial := t.Initial
	if initial == 0 {
		initial = 10 * time.Millisecond
	}
	max := t.Max
	if max == 0 {
		max = time.Second
	}
	multiplier := t.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}

	if t.current == 0 {
		t.current = initial
	}
	wait := t.current

	t.current = time.Duration(float64(t.current) * multiplier)
	if t.current > max {
		t.current = max
	}

	if t.Jitter {
		wait = addJitter(wait)
	}
	return wait
}

// Reset returns the schedule to its initial delay.  Call after any
// successful iteration.
func (t *Throttle) Reset() { t.current = 0 }

// addJitter adds ±25% randomisation to a duration.
func addJitter(d time.Duration) time.Duration {
	quarter := float64(d) * 0.25
	delta := (rand.Float64() * 2 * quarter) - quarter
	result := float64(d) + delta
	return time.Duration(math.Max(result, float64(time.Millisecond)))
}
