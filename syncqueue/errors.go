package syncqueue

import "github.com/ayoisaiah/reps/internal/apperr"

var (
	// ErrSyncInProgress is returned when a pass is triggered while another
	// is running. The new trigger is dropped.
	ErrSyncInProgress = &apperr.Error{
		Message: "a sync pass is already in progress",
	}

	// ErrOffline is returned when the remote store cannot be reached.
	ErrOffline = &apperr.Error{
		Message: "the remote store is unreachable",
	}

	ErrSyncDisabled = &apperr.Error{
		Message: "sync is disabled: set sync.endpoint in the config file",
	}

	errPushItem = &apperr.Error{
		Message: "sync item %s (%s)",
	}

	errEncodePayload = &apperr.Error{
		Message: "unable to encode payload for %s",
	}
)
