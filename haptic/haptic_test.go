package haptic

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/reps/internal/capability"
)

type recordingDriver struct {
	err   error
	calls [][]time.Duration
}

func (d *recordingDriver) Vibrate(p []time.Duration) error {
	d.calls = append(d.calls, p)
	return d.err
}

func TestPatterns(t *testing.T) {
	ms := time.Millisecond

	cases := map[Intensity][]time.Duration{
		Light:  {10 * ms},
		Medium: {50 * ms},
		Heavy:  {100 * ms, 50 * ms, 100 * ms},
		"odd":  {50 * ms},
	}

	for in, want := range cases {
		if diff := cmp.Diff(want, Pattern(in)); diff != "" {
			t.Errorf("Pattern(%s) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestPatternReturnsCopy(t *testing.T) {
	p := Pattern(Heavy)
	p[0] = time.Hour

	assert.Equal(t, 100*time.Millisecond, Pattern(Heavy)[0])
}

func TestPulse(t *testing.T) {
	d := &recordingDriver{}
	h := New(d, capability.Set{HasVibration: true})

	h.Pulse(Medium)
	h.Pulse(Heavy)

	assert.True(t, h.Available())
	assert.Equal(t, [][]time.Duration{Pattern(Medium), Pattern(Heavy)}, d.calls)
}

func TestPulseWithoutCapability(t *testing.T) {
	d := &recordingDriver{}
	h := New(d, capability.None)

	h.Pulse(Heavy)

	assert.False(t, h.Available())
	assert.Empty(t, d.calls)
}

func TestPulseWithoutDriver(t *testing.T) {
	h := New(nil, capability.Set{HasVibration: true})

	assert.NotPanics(t, func() { h.Pulse(Light) })
	assert.False(t, h.Available())
}

func TestPulseDriverFailure(t *testing.T) {
	d := &recordingDriver{err: errors.New("device busy")}
	h := New(d, capability.Set{HasVibration: true})

	assert.NotPanics(t, func() { h.Pulse(Light) })
	assert.Len(t, d.calls, 1)
}

func TestProbeDisabled(t *testing.T) {
	assert.False(t, Probe(false)(t.Context()))
}
