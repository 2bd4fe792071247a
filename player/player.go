// Package player drives a workout session: it walks through each exercise
// and set, decides when rest periods begin and end, and reports the
// completed session. All side effects (haptics, rest countdown, wake lock,
// persistence) are delegated to collaborators.
package player

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/reps/haptic"
	"github.com/ayoisaiah/reps/internal/models"
)

// Haptics fires feedback pulses.
type Haptics interface {
	Pulse(i haptic.Intensity)
}

// RestTimer counts down a rest period.
type RestTimer interface {
	Reset(seconds int)
	Start()
	Stop()
	Remaining() int
}

// WakeLock keeps the display awake. Both calls are advisory.
type WakeLock interface {
	Acquire(ctx context.Context)
	Release()
}

// SessionSaver durably records a completed session.
type SessionSaver interface {
	SaveSession(ctx context.Context, rec *models.SessionRecord) error
}

// Phase is the coarse state of the controller.
type Phase string

const (
	Working   Phase = "working"
	Resting   Phase = "resting"
	Completed Phase = "completed"
)

// State is a snapshot of the playback position.
type State struct {
	Phase         Phase
	ExerciseIndex int
	Set           int
	Resting       bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithHaptics sets the haptic collaborator.
func WithHaptics(h Haptics) Option {
	return func(c *Controller) {
		c.haptics = h
	}
}

// WithRestTimer sets the rest countdown collaborator.
func WithRestTimer(t RestTimer) Option {
	return func(c *Controller) {
		c.timer = t
	}
}

// WithWakeLock sets the wake lock collaborator.
func WithWakeLock(l WakeLock) Option {
	return func(c *Controller) {
		c.lock = l
	}
}

// WithSessionSaver sets the persistence collaborator.
func WithSessionSaver(s SessionSaver) Option {
	return func(c *Controller) {
		c.saver = s
	}
}

// OnComplete registers the callback that receives the session record when
// the workout finishes.
func OnComplete(fn func(rec *models.SessionRecord)) Option {
	return func(c *Controller) {
		c.onComplete = fn
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller is the playback state machine for a single workout session.
type Controller struct {
	startedAt  time.Time
	haptics    Haptics
	timer      RestTimer
	lock       WakeLock
	saver      SessionSaver
	workout    *models.Workout
	onComplete func(rec *models.SessionRecord)
	now        func() time.Time
	sets       []models.SetLog
	state      State
	mu         sync.Mutex
	started    bool
	closed     bool
}

// New validates the workout and returns a controller positioned at the
// first set of the first exercise.
func New(w *models.Workout, opts ...Option) (*Controller, error) {
	if err := validate(w); err != nil {
		return nil, err
	}

	c := &Controller{
		workout: w,
		now:     time.Now,
		state: State{
			Phase:         Working,
			ExerciseIndex: 0,
			Set:           1,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.sets = make([]models.SetLog, 0, w.TotalSets())
	c.startedAt = c.now()

	return c, nil
}

func validate(w *models.Workout) error {
	if w == nil || len(w.Exercises) == 0 {
		var name string
		if w != nil {
			name = w.Name
		}

		return errEmptyWorkout.Fmt(name)
	}

	for i := range w.Exercises {
		if w.Exercises[i].Sets < 1 {
			return errNoSets.Fmt(w.Exercises[i].Name, w.Name)
		}
	}

	return nil
}

// Workout returns the workout being played.
func (c *Controller) Workout() *models.Workout {
	return c.workout
}

// State returns a snapshot of the current position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Exercise returns the exercise at the current position. After completion
// it is the last exercise of the workout.
func (c *Controller) Exercise() models.Exercise {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.workout.Exercises[c.state.ExerciseIndex]
}

// RestRemaining returns the seconds left in the current rest period.
func (c *Controller) RestRemaining() int {
	if c.timer == nil {
		return 0
	}

	return c.timer.Remaining()
}

// Start acquires the wake lock. It only has an effect the first time it is
// called.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}

	c.started = true
	c.mu.Unlock()

	if c.lock != nil {
		c.lock.Acquire(ctx)
	}
}

// SetComplete records the current set. It moves to the next set or exercise
// and begins a rest period, or completes the workout after the last set.
// It is rejected while resting, after completion and after Close.
func (c *Controller) SetComplete(ctx context.Context) error {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	switch c.state.Phase {
	case Completed:
		c.mu.Unlock()
		return ErrCompleted
	case Resting:
		c.mu.Unlock()
		return ErrResting
	}

	now := c.now()
	ex := c.workout.Exercises[c.state.ExerciseIndex]

	c.sets = append(c.sets, models.SetLog{
		Exercise:    ex.Name,
		Set:         c.state.Set,
		Reps:        ex.Reps,
		Weight:      ex.Weight,
		CompletedAt: now,
	})

	lastIndex := len(c.workout.Exercises) - 1

	var rec *models.SessionRecord

	switch {
	case c.state.Set < ex.Sets:
		c.state.Set++
		c.beginRest()
	case c.state.ExerciseIndex < lastIndex:
		c.state.ExerciseIndex++
		c.state.Set = 1
		c.beginRest()
	default:
		c.state.Phase = Completed
		c.state.Resting = false
		rec = c.record(now)
	}

	c.mu.Unlock()

	c.pulse(haptic.Medium)

	if rec == nil {
		c.startRest(ex.Rest())
		return nil
	}

	c.complete(ctx, rec)

	return nil
}

// SkipRest ends the current rest period. It is rejected when no rest period
// is in progress or after Close.
func (c *Controller) SkipRest() error {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	switch c.state.Phase {
	case Completed:
		c.mu.Unlock()
		return ErrCompleted
	case Working:
		c.mu.Unlock()
		return ErrNotResting
	}

	c.state.Phase = Working
	c.state.Resting = false
	c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}

	return nil
}

// Close stops the rest countdown and releases the wake lock. It must be
// called on every exit path and only acts once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.closed = true
	c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}

	if c.lock != nil {
		c.lock.Release()
	}
}

// beginRest must be called with c.mu held.
func (c *Controller) beginRest() {
	c.state.Phase = Resting
	c.state.Resting = true
}

// startRest resets and starts the countdown for a rest period that was
// begun by SetComplete.
func (c *Controller) startRest(seconds int) {
	if c.timer == nil {
		return
	}

	c.timer.Stop()
	c.timer.Reset(seconds)
	c.timer.Start()
}

func (c *Controller) pulse(i haptic.Intensity) {
	if c.haptics != nil {
		c.haptics.Pulse(i)
	}
}

// record must be called with c.mu held.
func (c *Controller) record(now time.Time) *models.SessionRecord {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	sets := make([]models.SetLog, len(c.sets))
	copy(sets, c.sets)

	return &models.SessionRecord{
		ID:          id.String(),
		WorkoutID:   c.workout.ID,
		WorkoutName: c.workout.Name,
		StartedAt:   c.startedAt,
		CompletedAt: now,
		TotalSets:   len(sets),
		Sets:        sets,
	}
}

func (c *Controller) complete(ctx context.Context, rec *models.SessionRecord) {
	c.pulse(haptic.Heavy)

	if c.timer != nil {
		c.timer.Stop()
	}

	if c.saver != nil {
		err := c.saver.SaveSession(ctx, rec)
		if err != nil {
			slog.ErrorContext(ctx, "unable to save session",
				slog.String("session_id", rec.ID),
				slog.Any("error", err),
			)
		}
	}

	slog.InfoContext(ctx, "workout complete",
		slog.String("workout_id", rec.WorkoutID),
		slog.Int("sets", rec.TotalSets),
		slog.Duration("duration", rec.Duration()),
	)

	if c.onComplete != nil {
		c.onComplete(rec)
	}
}
