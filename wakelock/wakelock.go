// Package wakelock keeps the display awake while a workout is in progress.
// Acquiring and releasing the lock is advisory: failures are logged and
// never interrupt playback.
package wakelock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ayoisaiah/reps/internal/capability"
)

// Inhibitor asks the host to keep the display on.
type Inhibitor interface {
	Inhibit(ctx context.Context, app, reason string) (uint32, error)
	UnInhibit(cookie uint32) error
}

// Lock is a screen wake lock.
type Lock struct {
	inhibitor Inhibitor
	app       string
	reason    string
	cookie    uint32
	mu        sync.Mutex
	supported bool
	held      bool
}

// New returns a Lock backed by inhibitor. The lock is a no-op when caps
// reports no wake-lock support or inhibitor is nil.
func New(inhibitor Inhibitor, caps capability.Provider) *Lock {
	return &Lock{
		inhibitor: inhibitor,
		supported: inhibitor != nil && caps.WakeLock(),
		app:       "reps",
		reason:    "Workout in progress",
	}
}

// Acquire requests that the display stay on. Acquiring a held lock does
// nothing.
func (l *Lock) Acquire(ctx context.Context) {
	if !l.supported {
		slog.DebugContext(ctx, "wake lock unsupported")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held {
		return
	}

	cookie, err := l.inhibitor.Inhibit(ctx, l.app, l.reason)
	if err != nil {
		slog.ErrorContext(ctx, "wake lock request failed", slog.Any("error", err))
		return
	}

	l.cookie = cookie
	l.held = true

	slog.InfoContext(ctx, "wake lock is active")
}

// Release gives up the lock if it is held. It is safe to call when the lock
// was never acquired.
func (l *Lock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.held {
		return
	}

	l.held = false

	err := l.inhibitor.UnInhibit(l.cookie)
	if err != nil {
		slog.Error("wake lock release failed", slog.Any("error", err))
		return
	}

	slog.Info("wake lock released")
}

// Held reports whether the lock is currently held.
func (l *Lock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.held
}
