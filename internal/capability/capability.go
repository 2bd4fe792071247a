// Package capability reports which host capabilities are available to the
// player. Capabilities are probed once at startup and the result is injected
// into each collaborator.
package capability

import (
	"context"
	"log/slog"
)

// Provider reports the availability of host capabilities.
type Provider interface {
	Vibration() bool
	WakeLock() bool
	Storage() bool
}

// Probe checks for a single capability.
type Probe func(ctx context.Context) bool

// Probes groups the checks run by Detect. A nil probe reports the
// capability as absent.
type Probes struct {
	Vibration Probe
	WakeLock  Probe
	Storage   Probe
}

// Set is a fixed snapshot of capabilities.
type Set struct {
	HasVibration bool
	HasWakeLock  bool
	HasStorage   bool
}

func (s Set) Vibration() bool { return s.HasVibration }

func (s Set) WakeLock() bool { return s.HasWakeLock }

func (s Set) Storage() bool { return s.HasStorage }

// None reports every capability as absent.
var None = Set{}

// Detect runs each probe once and returns the resulting snapshot.
func Detect(ctx context.Context, p Probes) Set {
	s := Set{
		HasVibration: run(ctx, p.Vibration),
		HasWakeLock:  run(ctx, p.WakeLock),
		HasStorage:   run(ctx, p.Storage),
	}

	slog.DebugContext(ctx, "capabilities detected",
		slog.Bool("vibration", s.HasVibration),
		slog.Bool("wake_lock", s.HasWakeLock),
		slog.Bool("storage", s.HasStorage),
	)

	return s
}

func run(ctx context.Context, p Probe) bool {
	if p == nil {
		return false
	}

	return p(ctx)
}
