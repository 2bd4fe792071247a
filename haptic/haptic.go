// Package haptic delivers short feedback pulses on discrete player events
package haptic

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ayoisaiah/reps/internal/capability"
)

// Intensity selects the pulse pattern.
type Intensity string

const (
	Light  Intensity = "light"
	Medium Intensity = "medium"
	Heavy  Intensity = "heavy"
)

// Patterns alternate between pulse and pause durations, starting with a
// pulse.
var patterns = map[Intensity][]time.Duration{
	Light:  {10 * time.Millisecond},
	Medium: {50 * time.Millisecond},
	Heavy: {
		100 * time.Millisecond,
		50 * time.Millisecond,
		100 * time.Millisecond,
	},
}

// Pattern returns a copy of the pattern for the intensity. Unknown
// intensities fall back to Medium.
func Pattern(i Intensity) []time.Duration {
	p, ok := patterns[i]
	if !ok {
		p = patterns[Medium]
	}

	out := make([]time.Duration, len(p))
	copy(out, p)

	return out
}

// Driver renders a pulse pattern on a device.
type Driver interface {
	Vibrate(pattern []time.Duration) error
}

// Haptic triggers pulses through a driver when the vibration capability is
// available.
type Haptic struct {
	driver    Driver
	available bool
}

// New returns a Haptic that is a silent no-op unless caps reports vibration
// support and driver is non-nil.
func New(driver Driver, caps capability.Provider) *Haptic {
	return &Haptic{
		driver:    driver,
		available: driver != nil && caps.Vibration(),
	}
}

// Available reports whether pulses reach the driver.
func (h *Haptic) Available() bool {
	return h.available
}

// Pulse fires the pattern for intensity. Failures are logged and never
// returned.
func (h *Haptic) Pulse(i Intensity) {
	if !h.available {
		slog.Debug(fmt.Sprintf("haptic fallback: %s", i))
		return
	}

	err := h.driver.Vibrate(Pattern(i))
	if err != nil {
		slog.Warn("haptic pulse failed",
			slog.String("intensity", string(i)),
			slog.Any("error", err),
		)
	}
}
