package tui

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ayoisaiah/reps/internal/osutil"
	"github.com/ayoisaiah/reps/player"
)

// Status is written to the status file while the player runs so that
// `reps status` can report on it from another process.
type Status struct {
	UpdatedAt   time.Time    `json:"updated_at"`
	Phase       player.Phase `json:"phase"`
	WorkoutName string       `json:"workout_name"`
	Exercise    string       `json:"exercise"`
	Set         int          `json:"set"`
	Sets        int          `json:"sets"`
	RestLeft    int          `json:"rest_left"`
}

// WriteStatus replaces the status file at path.
func WriteStatus(path string, s *Status) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, osutil.FilePermission)
}

// ReadStatus reads the status file at path.
func ReadStatus(path string) (*Status, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Status

	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}

	return &s, nil
}
