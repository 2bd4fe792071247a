package rest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const tick = 5 * time.Millisecond

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCountdownReachesZero(t *testing.T) {
	timer := New(WithInterval(tick))

	timer.Reset(3)
	timer.Start()

	require.Eventually(t, func() bool {
		return timer.Remaining() == 0 && !timer.Running()
	}, time.Second, tick)
}

func TestStopPreservesRemaining(t *testing.T) {
	timer := New(WithInterval(time.Hour))

	timer.Reset(30)
	timer.Start()
	assert.True(t, timer.Running())

	timer.Stop()

	assert.False(t, timer.Running())
	assert.Equal(t, 30, timer.Remaining())
}

func TestStopWithoutStart(t *testing.T) {
	timer := New()

	timer.Stop()
	timer.Stop()

	assert.False(t, timer.Running())
}

func TestStartIsIdempotent(t *testing.T) {
	timer := New(WithInterval(time.Hour))

	timer.Reset(10)
	timer.Start()
	timer.Start()

	assert.True(t, timer.Running())

	timer.Stop()
}

func TestStartWithNothingRemaining(t *testing.T) {
	timer := New(WithInterval(tick))

	timer.Start()

	assert.False(t, timer.Running())
}

func TestRestartAfterStop(t *testing.T) {
	timer := New(WithInterval(tick))

	timer.Reset(1000)
	timer.Start()
	timer.Stop()

	timer.Reset(2)
	timer.Start()

	require.Eventually(t, func() bool {
		return timer.Remaining() == 0 && !timer.Running()
	}, time.Second, tick)
}

func TestResetWhileRunning(t *testing.T) {
	timer := New(WithInterval(time.Hour))

	timer.Reset(60)
	timer.Start()
	timer.Reset(45)

	assert.True(t, timer.Running())
	assert.Equal(t, 45, timer.Remaining())

	timer.Stop()
}

func TestNegativeReset(t *testing.T) {
	timer := New()

	timer.Reset(-4)

	assert.Equal(t, 0, timer.Remaining())
}

func TestUpdatesDeliverLatestValue(t *testing.T) {
	timer := New(WithInterval(tick))

	timer.Reset(5)
	timer.Reset(4)

	assert.Equal(t, 4, <-timer.Updates())

	timer.Start()

	require.Eventually(t, func() bool {
		select {
		case v := <-timer.Updates():
			return v == 0
		default:
			return false
		}
	}, time.Second, tick)
}

func TestStopAtExpiryWaitsForCountdown(t *testing.T) {
	timer := New(WithInterval(time.Millisecond))

	for range 50 {
		timer.Reset(1)
		timer.Start()

		require.Eventually(t, func() bool {
			return timer.Remaining() == 0
		}, time.Second, time.Millisecond)

		timer.Stop()
		assert.False(t, timer.Running())

		timer.Reset(1)
		timer.Start()
		timer.Stop()
		assert.False(t, timer.Running())
	}
}
