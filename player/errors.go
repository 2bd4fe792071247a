package player

import "github.com/ayoisaiah/reps/internal/apperr"

var (
	ErrResting = &apperr.Error{
		Message: "a rest period is in progress",
	}

	ErrNotResting = &apperr.Error{
		Message: "no rest period is in progress",
	}

	ErrCompleted = &apperr.Error{
		Message: "the workout is already complete",
	}

	ErrClosed = &apperr.Error{
		Message: "the player has been closed",
	}

	errEmptyWorkout = &apperr.Error{
		Message: "workout %q has no exercises",
	}

	errNoSets = &apperr.Error{
		Message: "exercise %q in workout %q must have at least one set",
	}
)
