package retry

import (
	"testing"
	"time"
)

func TestThrottle_Schedule(t *testing.T) {
	th := &Throttle{
		Initial:    10 * time.Millisecond,
		Max:        80 * time.Millisecond,
		Multiplier: 2.0,
	}

	want := []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		40 * time.Millisecond,
		80 * time.Millisecond,
		80 * time.Millisecond, // capped
	}
	for i, w := range want {
		if got := th.Delay(); got != w {
			t.Errorf("delay %d = %v, want %v", i, got, w)
		}
	}
}

func TestThrottle_Reset(t *testing.T) {
	th := DefaultThrottle()

	th.Delay()
	th.Delay()
	th.Reset()

	if got := th.Delay(); got != 10*time.Millisecond {
		t.Errorf("delay after reset = %v, want 10ms", got)
	}
}

func TestThrottle_ZeroValueDefaults(t *testing.T) {
	var th Throttle

	first := th.Delay()
	if first != 10*time.Millisecond {
		t.Errorf("first delay = %v, want 10ms", first)
	}

	// Run the schedule forward; it must cap at the default max.
	var last time.Duration
	for i := 0; i < 20; i++ {
		last = th.Delay()
	}
	if last != time.Second {
		t.Errorf("capped delay = %v, want 1s", last)
	}
}

func TestThrottle_Jitter(t *testing.T) {
	th := &Throttle{
		Initial:    100 * time.Millisecond,
		Max:        100 * time.Millisecond,
		Multiplier: 2.0,
		Jitter:     true,
	}

	for i := 0; i < 50; i++ {
		d := th.Delay()
		if d < 75*time.Millisecond || d > 125*time.Millisecond {
			t.Fatalf("jittered delay %v outside ±25%% band", d)
		}
	}
}
