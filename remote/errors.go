package remote

import "github.com/ayoisaiah/reps/internal/apperr"

var (
	errNoEndpoint = &apperr.Error{
		Message: "no sync endpoint is configured",
	}

	errNoTable = &apperr.Error{
		Message: "sync item %q has no table name",
	}

	errNoRecordID = &apperr.Error{
		Message: "sync item %q updates a record but has no record id",
	}

	errUnknownAction = &apperr.Error{
		Message: "sync item %q has an unknown action %q",
	}

	errUnexpectedStatus = &apperr.Error{
		Message: "%s %s: unexpected status %d: %s",
	}

	errWorkoutNotFound = &apperr.Error{
		Message: "workout %q was not found",
	}
)
