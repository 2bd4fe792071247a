package haptic

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const sampleRate beep.SampleRate = 44100

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		bufferSize := 10

		speakerErr = speaker.Init(
			sampleRate,
			sampleRate.N(time.Duration(int(time.Second)/bufferSize)),
		)
	})

	return speakerErr
}

// ToneDriver renders pulse patterns as short sine tones on the default audio
// device.
type ToneDriver struct {
	frequency float64
}

// NewToneDriver initialises the speaker and returns a driver that plays
// tones at the given frequency in Hz.
func NewToneDriver(frequency float64) (*ToneDriver, error) {
	if err := initSpeaker(); err != nil {
		return nil, errNoAudioDevice.Wrap(err)
	}

	return &ToneDriver{frequency: frequency}, nil
}

// Vibrate queues the pattern on the speaker and returns immediately.
func (d *ToneDriver) Vibrate(pattern []time.Duration) error {
	streams := make([]beep.Streamer, 0, len(pattern))

	for i, dur := range pattern {
		n := sampleRate.N(dur)

		if i%2 == 1 {
			streams = append(streams, beep.Silence(n))
			continue
		}

		tone, err := generators.SineTone(sampleRate, d.frequency)
		if err != nil {
			return errInvalidTone.Wrap(err)
		}

		streams = append(streams, beep.Take(n, tone))
	}

	speaker.Play(beep.Seq(streams...))

	return nil
}

// Probe reports whether pulses can be rendered. It initialises the speaker
// when enabled is true.
func Probe(enabled bool) func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		if !enabled {
			return false
		}

		if err := initSpeaker(); err != nil {
			slog.InfoContext(ctx, "audio device unavailable", slog.Any("error", err))
			return false
		}

		return true
	}
}
