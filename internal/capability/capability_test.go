package capability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/reps/internal/capability"
)

func TestDetect(t *testing.T) {
	calls := 0

	yes := func(context.Context) bool {
		calls++
		return true
	}

	no := func(context.Context) bool {
		calls++
		return false
	}

	set := capability.Detect(context.Background(), capability.Probes{
		Vibration: no,
		WakeLock:  yes,
		Storage:   yes,
	})

	assert.Equal(t, 3, calls)
	assert.False(t, set.Vibration())
	assert.True(t, set.WakeLock())
	assert.True(t, set.Storage())
}

func TestDetectNilProbe(t *testing.T) {
	set := capability.Detect(context.Background(), capability.Probes{})

	assert.Equal(t, capability.None, set)
}
