// Package rest provides the countdown used for rest periods between sets.
// A running countdown is backed by a single goroutine that is cancelled by
// Stop, so no tick source outlives the timer.
package rest

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the time between two ticks of the countdown.
const DefaultInterval = time.Second

// Option configures a Timer.
type Option func(*Timer)

// WithInterval sets the tick interval of the countdown.
func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// Timer is a cancellable countdown in whole seconds.
type Timer struct {
	cancel    context.CancelFunc
	done      chan struct{}
	updates   chan int
	interval  time.Duration
	remaining int
	mu        sync.Mutex
}

// New returns a stopped timer with nothing remaining.
func New(opts ...Option) *Timer {
	t := &Timer{
		interval: DefaultInterval,
		updates:  make(chan int, 1),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Reset sets the remaining time. A running countdown keeps running from the
// new value.
func (t *Timer) Reset(seconds int) {
	if seconds < 0 {
		seconds = 0
	}

	t.mu.Lock()
	t.remaining = seconds
	t.mu.Unlock()

	t.publish(seconds)
}

// Start begins decrementing the remaining time once per interval until it
// reaches zero or Stop is called. It is a no-op if the countdown is already
// running or nothing remains.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done != nil || t.remaining <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	t.cancel = cancel
	t.done = done

	go t.run(ctx, cancel, done)
}

// Stop cancels the running countdown, if any, and waits for its goroutine
// to exit. The remaining time is preserved.
func (t *Timer) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Remaining returns the number of seconds left.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.remaining
}

// Running reports whether the countdown is in progress.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.done != nil
}

// Updates delivers the remaining time after every change. Slow readers only
// observe the latest value.
func (t *Timer) Updates() <-chan int {
	return t.updates
}

// run owns t.cancel and t.done until it exits. They are cleared before done
// is closed so Running is false once Stop returns.
func (t *Timer) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer func() {
		t.mu.Lock()
		if t.done == done {
			t.cancel, t.done = nil, nil
		}
		t.mu.Unlock()

		cancel()
		close(done)
	}()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.remaining > 0 {
				t.remaining--
			}

			remaining := t.remaining
			t.mu.Unlock()

			t.publish(remaining)

			if remaining == 0 {
				return
			}
		}
	}
}

// publish replaces any unread value with v.
func (t *Timer) publish(v int) {
	for {
		select {
		case t.updates <- v:
			return
		default:
		}

		select {
		case <-t.updates:
		default:
		}
	}
}
