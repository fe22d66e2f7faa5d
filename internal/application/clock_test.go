package application

import (
	"sync"
	"time"

	"github.com/bnema/roombook-cli/internal/ports"
	"github.com/stretchr/testify/mock"
)

// fakeClock fires every timer immediately and advances its own time by the timer
// duration. With hold set, timers never fire and each one is announced on waiting.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	hold    bool
	waiting chan time.Duration
	timers  []time.Duration
	stopped int
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, waiting: make(chan time.Duration, 16)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) NewTimer(d time.Duration) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timers = append(c.timers, d)
	timer := &fakeTimer{clock: c, ch: make(chan time.Time, 1)}
	if c.hold {
		c.waiting <- d
		return timer
	}
	c.now = c.now.Add(d)
	timer.ch <- c.now
	return timer
}

func (c *fakeClock) Timers() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.timers...)
}

func (c *fakeClock) Stopped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

type fakeTimer struct {
	clock *fakeClock
	ch    chan time.Time
}

func (t *fakeTimer) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.clock.stopped++
	return true
}

func mockAnyContext() interface{} {
	return mock.Anything
}
