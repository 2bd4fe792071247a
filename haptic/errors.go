package haptic

import "github.com/ayoisaiah/reps/internal/apperr"

var (
	errNoAudioDevice = &apperr.Error{
		Message: "no audio device available for haptic tones",
	}

	errInvalidTone = &apperr.Error{
		Message: "unable to generate haptic tone",
	}
)
