package config

import "github.com/ayoisaiah/reps/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidFrequency = &apperr.Error{
		Message: "haptic frequency must be between %v and %v Hz, got %v",
	}

	errInvalidEndpoint = &apperr.Error{
		Message: "sync endpoint must be an absolute http(s) URL, got %q",
	}

	errInvalidSyncInterval = &apperr.Error{
		Message: "sync interval must be at least %v",
	}

	errInvalidSyncTimeout = &apperr.Error{
		Message: "sync timeout must be at least %v",
	}

	errInvalidMaxRetries = &apperr.Error{
		Message: "sync max_retries cannot be negative",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level: %s",
	}

	errInvalidSince = &apperr.Error{
		Message: "invalid since time",
	}
)
