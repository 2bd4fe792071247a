// Package models defines the records shared by the player, the datastore
// and the sync queue
package models

import (
	"encoding/json"
	"time"
)

// DefaultRestSeconds is the rest period used when an exercise does not
// specify one.
const DefaultRestSeconds = 60

type (
	// Exercise is a single movement in a workout.
	Exercise struct {
		Name        string  `json:"name"                   yaml:"name"`
		Reps        int     `json:"reps"                   yaml:"reps"`
		Weight      float64 `json:"weight"                 yaml:"weight"`
		Sets        int     `json:"sets"                   yaml:"sets"`
		RestSeconds int     `json:"rest_seconds,omitempty" yaml:"rest_seconds,omitempty"`
	}

	// Workout is an ordered list of exercises.
	Workout struct {
		ID        string     `json:"id"        yaml:"id"`
		Name      string     `json:"name"      yaml:"name"`
		Exercises []Exercise `json:"exercises" yaml:"exercises"`
	}

	// SetLog records a single completed set.
	SetLog struct {
		CompletedAt time.Time `json:"completed_at"`
		Exercise    string    `json:"exercise"`
		Set         int       `json:"set"`
		Reps        int       `json:"reps"`
		Weight      float64   `json:"weight"`
	}

	// SessionRecord is produced once, when a workout is completed.
	SessionRecord struct {
		StartedAt   time.Time `json:"started_at"`
		CompletedAt time.Time `json:"completed_at"`
		ID          string    `json:"id"`
		WorkoutID   string    `json:"workout_id"`
		WorkoutName string    `json:"workout_name"`
		Sets        []SetLog  `json:"sets"`
		TotalSets   int       `json:"total_sets"`
	}
)

// Rest returns the rest period for the exercise in seconds.
func (e *Exercise) Rest() int {
	if e.RestSeconds <= 0 {
		return DefaultRestSeconds
	}

	return e.RestSeconds
}

// TotalSets returns the number of sets across all exercises.
func (w *Workout) TotalSets() int {
	var total int

	for i := range w.Exercises {
		total += w.Exercises[i].Sets
	}

	return total
}

// Duration returns the time spent between the start and the end of the
// session.
func (s *SessionRecord) Duration() time.Duration {
	return s.CompletedAt.Sub(s.StartedAt)
}

// SyncAction identifies the mutation carried by a sync item.
type SyncAction string

const (
	ActionCreateSession       SyncAction = "create_session"
	ActionUpdateSession       SyncAction = "update_session"
	ActionCreateAssessment    SyncAction = "create_assessment"
	ActionUpdateWorkoutStatus SyncAction = "update_workout_status"
)

// Creates reports whether the action inserts a new remote record.
func (a SyncAction) Creates() bool {
	return a == ActionCreateSession || a == ActionCreateAssessment
}

// SyncItemStatus is the lifecycle state of a sync item.
type SyncItemStatus string

const (
	ItemPending SyncItemStatus = "pending"
	ItemSyncing SyncItemStatus = "syncing"
	ItemSynced  SyncItemStatus = "synced"
	ItemFailed  SyncItemStatus = "failed"
)

// SyncItem is a locally recorded mutation waiting to be sent to the remote
// store.
type SyncItem struct {
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ID         string          `json:"id"`
	Action     SyncAction      `json:"action"`
	TableName  string          `json:"table_name"`
	RecordID   string          `json:"record_id,omitempty"`
	Status     SyncItemStatus  `json:"status"`
	LastError  string          `json:"last_error,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	RetryCount int             `json:"retry_count"`
}
