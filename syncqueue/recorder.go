package syncqueue

import (
	"context"
	"time"

	"go.uber.org/multierr"

	"github.com/ayoisaiah/reps/internal/models"
	"github.com/ayoisaiah/reps/store"
)

const (
	SessionsTable = "workout_sessions"
	WorkoutsTable = "workouts"
)

type workoutStatus struct {
	LastCompletedAt time.Time `json:"last_completed_at"`
	Status          string    `json:"status"`
}

// Recorder saves completed sessions locally and queues them for the remote
// store.
type Recorder struct {
	db    store.DB
	queue *Queue
}

// NewRecorder returns a recorder that writes to db and q.
func NewRecorder(db store.DB, q *Queue) *Recorder {
	return &Recorder{db: db, queue: q}
}

// SaveSession stores rec in the sessions store and queues a create_session
// item, plus an update_workout_status item when the workout has an id.
func (r *Recorder) SaveSession(
	_ context.Context,
	rec *models.SessionRecord,
) error {
	err := r.db.Save(store.SessionStore, rec.ID, rec)
	if err != nil {
		return err
	}

	_, err = r.queue.Enqueue(
		models.ActionCreateSession,
		SessionsTable,
		rec.ID,
		rec,
	)

	if rec.WorkoutID == "" {
		return err
	}

	_, statusErr := r.queue.Enqueue(
		models.ActionUpdateWorkoutStatus,
		WorkoutsTable,
		rec.WorkoutID,
		workoutStatus{
			Status:          "completed",
			LastCompletedAt: rec.CompletedAt,
		},
	)

	return multierr.Combine(err, statusErr)
}
