package wakelock

import "github.com/ayoisaiah/reps/internal/apperr"

var (
	errNoSessionBus = &apperr.Error{
		Message: "unable to connect to the session bus",
	}

	errInhibit = &apperr.Error{
		Message: "screen saver inhibit call failed",
	}

	errUnInhibit = &apperr.Error{
		Message: "screen saver uninhibit call failed",
	}
)
