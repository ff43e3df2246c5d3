// Package gesture arbitrates, per input event, whether raw pointer events
// or browser-synthesized gestures drive interaction. Both can fire for
// the same user action; honoring both duplicates it, honoring neither
// drops it.
package gesture

import "time"

// Timer is one armed deadline. Stop reports whether the fire was
// prevented.
type Timer interface {
	Stop() bool
}

// Clock is the host's time source. The arbiter never touches the real
// clock directly so its debounce logic stays synchronously testable.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemClock is the real time.AfterFunc-backed clock. Callbacks fire on
// their own goroutine; hosts using it must serialize them with the rest
// of the single-threaded core.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type manualTimer struct {
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

func (t *manualTimer) Stop() bool {
	stopped := !t.fired && !t.stopped
	t.stopped = true
	return stopped
}

// ManualClock is a deterministic clock for tests and replay tools. Time
// only moves when Advance is called; due timers fire synchronously inside
// Advance, in deadline order.
type ManualClock struct {
	now    time.Time
	timers []*manualTimer
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &manualTimer{deadline: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every unstopped timer
// whose deadline is reached, earliest first.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		var next *manualTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.deadline.After(target) {
				continue
			}
			if next == nil || t.deadline.Before(next.deadline) {
				next = t
			}
		}
		if next == nil {
			break
		}
		if next.deadline.After(c.now) {
			c.now = next.deadline
		}
		next.fired = true
		next.fn()
	}
	c.now = target
}
