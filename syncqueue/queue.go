// Package syncqueue records local mutations in an outbox and reconciles them
// with the remote store.
package syncqueue

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/ayoisaiah/reps/internal/models"
	"github.com/ayoisaiah/reps/store"
)

// Status is the state of the queue.
type Status string

const (
	Idle      Status = "idle"
	Syncing   Status = "syncing"
	Completed Status = "completed"
	Failed    Status = "failed"
)

// DefaultMaxRetries is the number of failed attempts after which an item is
// no longer retried automatically.
const DefaultMaxRetries = 5

// Pusher applies a single outbox item to the remote store.
type Pusher interface {
	Push(ctx context.Context, item *models.SyncItem) error
}

// Connectivity reports whether the remote store is reachable.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// Result summarises a reconciliation pass.
type Result struct {
	// Err combines the errors of every item that failed.
	Err     error
	Synced  int
	Failed  int
	Skipped int
}

// Queue is the sync outbox.
type Queue struct {
	db         store.DB
	remote     Pusher
	conn       Connectivity
	now        func() time.Time
	status     Status
	maxRetries int
	mu         sync.Mutex
}

// Option configures a Queue.
type Option func(*Queue)

// WithRemote sets the remote store. Without one, Trigger returns
// ErrSyncDisabled.
func WithRemote(p Pusher) Option {
	return func(q *Queue) {
		q.remote = p
	}
}

// WithConnectivity sets the connectivity check. Without one the remote is
// assumed to be reachable.
func WithConnectivity(c Connectivity) Option {
	return func(q *Queue) {
		q.conn = c
	}
}

// WithMaxRetries sets the retry limit. Zero means no limit.
func WithMaxRetries(n int) Option {
	return func(q *Queue) {
		q.maxRetries = n
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		q.now = now
	}
}

// New returns a queue backed by db.
func New(db store.DB, opts ...Option) *Queue {
	q := &Queue{
		db:         db,
		now:        time.Now,
		status:     Idle,
		maxRetries: DefaultMaxRetries,
	}

	for _, opt := range opts {
		opt(q)
	}

	return q
}

// Status returns the state of the queue.
func (q *Queue) Status() Status {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.status
}

// Items returns the outbox in creation order.
func (q *Queue) Items() ([]models.SyncItem, error) {
	return q.db.SyncItems()
}

// Enqueue adds a pending item to the outbox.
func (q *Queue) Enqueue(
	action models.SyncAction,
	table, recordID string,
	payload any,
) (*models.SyncItem, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, errEncodePayload.Fmt(action).Wrap(err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	now := q.now()

	item := &models.SyncItem{
		ID:        id.String(),
		Action:    action,
		TableName: table,
		RecordID:  recordID,
		Status:    models.ItemPending,
		Payload:   b,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := q.db.PutSyncItem(item); err != nil {
		return nil, err
	}

	return item, nil
}

// begin claims the queue for a pass.
func (q *Queue) begin() (Status, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.status == Syncing {
		return "", ErrSyncInProgress
	}

	prev := q.status
	q.status = Syncing

	return prev, nil
}

func (q *Queue) end(s Status) {
	q.mu.Lock()
	q.status = s
	q.mu.Unlock()
}

// Trigger runs a reconciliation pass unless one is already running, in
// which case it returns ErrSyncInProgress immediately. Synced items are
// left untouched. Pending and failed items are pushed in creation order;
// a failed push is recorded on the item and the pass moves on.
func (q *Queue) Trigger(ctx context.Context) (Result, error) {
	if q.remote == nil {
		return Result{}, ErrSyncDisabled
	}

	prev, err := q.begin()
	if err != nil {
		return Result{}, err
	}

	if q.conn != nil && !q.conn.Online(ctx) {
		q.end(prev)
		return Result{}, ErrOffline
	}

	res, err := q.pass(ctx)
	if err != nil {
		q.end(Failed)
		return res, err
	}

	if res.Failed > 0 {
		q.end(Failed)
	} else {
		q.end(Completed)
	}

	slog.InfoContext(ctx, "sync pass finished",
		slog.Int("synced", res.Synced),
		slog.Int("failed", res.Failed),
		slog.Int("skipped", res.Skipped),
	)

	return res, nil
}

func (q *Queue) pass(ctx context.Context) (Result, error) {
	var res Result

	items, err := q.db.SyncItems()
	if err != nil {
		return res, err
	}

	for i := range items {
		item := &items[i]

		if item.Status == models.ItemSynced {
			continue
		}

		if q.exhausted(item) {
			res.Skipped++
			continue
		}

		if err := ctx.Err(); err != nil {
			return res, err
		}

		item.Status = models.ItemSyncing
		item.UpdatedAt = q.now()

		if err := q.db.PutSyncItem(item); err != nil {
			res.Failed++
			res.Err = multierr.Append(res.Err, errPushItem.Fmt(item.ID, item.Action).Wrap(err))

			continue
		}

		pushErr := q.remote.Push(ctx, item)

		item.UpdatedAt = q.now()

		if pushErr != nil {
			item.Status = models.ItemFailed
			item.LastError = pushErr.Error()
			item.RetryCount++
			res.Failed++
			res.Err = multierr.Append(res.Err, errPushItem.Fmt(item.ID, item.Action).Wrap(pushErr))

			slog.WarnContext(ctx, "sync item failed",
				slog.String("id", item.ID),
				slog.Int("retry_count", item.RetryCount),
				slog.Any("error", pushErr),
			)
		} else {
			item.Status = models.ItemSynced
			item.LastError = ""
			res.Synced++
		}

		if err := q.db.PutSyncItem(item); err != nil {
			res.Err = multierr.Append(res.Err, err)
		}
	}

	return res, nil
}

func (q *Queue) exhausted(item *models.SyncItem) bool {
	return q.maxRetries > 0 &&
		item.Status == models.ItemFailed &&
		item.RetryCount >= q.maxRetries
}

// Watch polls connectivity every interval and runs a pass whenever the
// remote store becomes reachable, including on the first successful poll.
// It blocks until ctx is cancelled.
func (q *Queue) Watch(ctx context.Context, interval time.Duration) {
	if q.remote == nil || q.conn == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	online := false

	for {
		now := q.conn.Online(ctx)

		if now && !online {
			_, err := q.Trigger(ctx)
			if err != nil {
				slog.DebugContext(ctx, "sync pass not run", slog.Any("error", err))
			}
		}

		online = now

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
