package wakelock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/reps/internal/capability"
)

type fakeInhibitor struct {
	err        error
	inhibits   int
	uninhibits []uint32
}

func (f *fakeInhibitor) Inhibit(context.Context, string, string) (uint32, error) {
	f.inhibits++
	if f.err != nil {
		return 0, f.err
	}

	return 42, nil
}

func (f *fakeInhibitor) UnInhibit(cookie uint32) error {
	f.uninhibits = append(f.uninhibits, cookie)
	return nil
}

var supported = capability.Set{HasWakeLock: true}

func TestAcquireRelease(t *testing.T) {
	f := &fakeInhibitor{}
	l := New(f, supported)

	l.Acquire(context.Background())
	assert.True(t, l.Held())

	l.Release()
	assert.False(t, l.Held())
	assert.Equal(t, []uint32{42}, f.uninhibits)
}

func TestAcquireTwice(t *testing.T) {
	f := &fakeInhibitor{}
	l := New(f, supported)

	l.Acquire(context.Background())
	l.Acquire(context.Background())

	assert.Equal(t, 1, f.inhibits)
}

func TestAcquireFailureIsSwallowed(t *testing.T) {
	f := &fakeInhibitor{err: errors.New("NotAllowedError")}
	l := New(f, supported)

	l.Acquire(context.Background())
	l.Release()

	assert.False(t, l.Held())
	assert.Empty(t, f.uninhibits)
}

func TestUnsupported(t *testing.T) {
	f := &fakeInhibitor{}
	l := New(f, capability.None)

	l.Acquire(context.Background())
	l.Release()

	assert.Zero(t, f.inhibits)
	assert.Empty(t, f.uninhibits)
}

func TestReleaseWithoutAcquire(t *testing.T) {
	l := New(nil, supported)

	assert.NotPanics(t, l.Release)
}

func TestProbeDisabled(t *testing.T) {
	assert.False(t, Probe(false, nil)(context.Background()))
	assert.False(t, Probe(true, nil)(context.Background()))
}
