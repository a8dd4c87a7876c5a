package app

import (
	"sync"
	"time"
)

// Clock drives a session countdown: one decrement per interval down to zero,
// then an expiry callback exactly once. It is cancellable so a stray tick can
// never reach a finished session.
type Clock struct {
	interval   time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
	expireOnce sync.Once
}

// NewClock returns a clock ticking once per second.
func NewClock() *Clock {
	return newClock(time.Second)
}

// newClock allows a shorter interval in tests.
func newClock(interval time.Duration) *Clock {
	return &Clock{interval: interval, stop: make(chan struct{})}
}

// Start begins the countdown from seconds. Each elapsed interval calls
// onTick with the remaining count; reaching zero calls onExpire once and
// stops. A non-positive limit expires immediately without any tick.
func (c *Clock) Start(seconds int, onTick func(remaining int), onExpire func()) {
	if seconds <= 0 {
		c.expireOnce.Do(onExpire)
		return
	}

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		remaining := seconds
		for {
			select {
			case <-ticker.C:
				remaining--
				onTick(remaining)
				if remaining <= 0 {
					c.expireOnce.Do(onExpire)
					return
				}
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop cancels the countdown. Safe to call more than once and after expiry.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}
