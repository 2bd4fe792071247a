package syncqueue

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ayoisaiah/reps/internal/models"
	"github.com/ayoisaiah/reps/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRemote struct {
	fail    map[string]error
	block   chan struct{}
	started chan struct{}
	pushed  []string
	mu      sync.Mutex
}

func (f *fakeRemote) Push(_ context.Context, item *models.SyncItem) error {
	if f.started != nil {
		f.started <- struct{}{}
	}

	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.pushed = append(f.pushed, item.ID)

	return f.fail[item.RecordID]
}

type fakeConn struct {
	online atomic.Bool
	probes atomic.Int64
}

func (f *fakeConn) Online(_ context.Context) bool {
	f.probes.Add(1)
	return f.online.Load()
}

func newTestDB(t *testing.T) *store.Client {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "reps.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func enqueue(t *testing.T, q *Queue, recordID string) *models.SyncItem {
	t.Helper()

	item, err := q.Enqueue(
		models.ActionCreateSession,
		SessionsTable,
		recordID,
		map[string]string{"id": recordID},
	)
	require.NoError(t, err)

	return item
}

func itemByRecord(t *testing.T, q *Queue, recordID string) models.SyncItem {
	t.Helper()

	items, err := q.Items()
	require.NoError(t, err)

	for _, item := range items {
		if item.RecordID == recordID {
			return item
		}
	}

	t.Fatalf("no item for record %s", recordID)

	return models.SyncItem{}
}

func TestTriggerSuccess(t *testing.T) {
	remote := &fakeRemote{}
	q := New(newTestDB(t), WithRemote(remote))

	enqueue(t, q, "s1")
	enqueue(t, q, "s2")

	assert.Equal(t, Idle, q.Status())

	res, err := q.Trigger(t.Context())
	require.NoError(t, err)
	require.NoError(t, res.Err)

	assert.Equal(t, 2, res.Synced)
	assert.Equal(t, Completed, q.Status())

	for _, id := range []string{"s1", "s2"} {
		item := itemByRecord(t, q, id)
		assert.Equal(t, models.ItemSynced, item.Status)
		assert.Zero(t, item.RetryCount)
	}

	// synced items are never pushed again
	res, err = q.Trigger(t.Context())
	require.NoError(t, err)
	assert.Zero(t, res.Synced)
	assert.Len(t, remote.pushed, 2)
}

func TestTriggerFailureRecorded(t *testing.T) {
	remote := &fakeRemote{
		fail: map[string]error{"s1": errors.New("503 Service Unavailable")},
	}
	q := New(newTestDB(t), WithRemote(remote))

	enqueue(t, q, "s1")
	enqueue(t, q, "s2")

	res, err := q.Trigger(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Synced)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, errPushItem)
	assert.Equal(t, Failed, q.Status())

	failed := itemByRecord(t, q, "s1")
	assert.Equal(t, models.ItemFailed, failed.Status)
	assert.Equal(t, 1, failed.RetryCount)
	assert.Equal(t, "503 Service Unavailable", failed.LastError)

	assert.Equal(t, models.ItemSynced, itemByRecord(t, q, "s2").Status)

	// the next pass retries only the failed item
	delete(remote.fail, "s1")

	res, err = q.Trigger(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Synced)
	assert.Equal(t, Completed, q.Status())

	retried := itemByRecord(t, q, "s1")
	assert.Equal(t, models.ItemSynced, retried.Status)
	assert.Empty(t, retried.LastError)
	assert.Equal(t, 1, retried.RetryCount)
	assert.Len(t, remote.pushed, 3)
}

func TestMaxRetries(t *testing.T) {
	remote := &fakeRemote{
		fail: map[string]error{"s1": errors.New("boom")},
	}
	q := New(newTestDB(t), WithRemote(remote), WithMaxRetries(2))

	enqueue(t, q, "s1")

	for range 2 {
		_, err := q.Trigger(t.Context())
		require.NoError(t, err)
	}

	res, err := q.Trigger(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	assert.Zero(t, res.Failed)
	assert.Len(t, remote.pushed, 2)
	assert.Equal(t, 2, itemByRecord(t, q, "s1").RetryCount)
}

func TestConcurrentTriggerIgnored(t *testing.T) {
	remote := &fakeRemote{
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	q := New(newTestDB(t), WithRemote(remote))

	enqueue(t, q, "s1")

	var (
		wg  sync.WaitGroup
		res Result
		err error
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		res, err = q.Trigger(context.Background())
	}()

	<-remote.started
	assert.Equal(t, Syncing, q.Status())

	_, err2 := q.Trigger(t.Context())
	assert.ErrorIs(t, err2, ErrSyncInProgress)

	close(remote.block)
	wg.Wait()

	require.NoError(t, err)
	assert.Equal(t, 1, res.Synced)
	assert.Len(t, remote.pushed, 1)
	assert.Equal(t, Completed, q.Status())
}

func TestTriggerOffline(t *testing.T) {
	remote := &fakeRemote{}
	conn := &fakeConn{}
	q := New(newTestDB(t), WithRemote(remote), WithConnectivity(conn))

	enqueue(t, q, "s1")

	_, err := q.Trigger(t.Context())
	require.ErrorIs(t, err, ErrOffline)
	assert.Equal(t, Idle, q.Status())
	assert.Equal(t, models.ItemPending, itemByRecord(t, q, "s1").Status)
}

func TestTriggerDisabled(t *testing.T) {
	q := New(store.Nop{})

	_, err := q.Trigger(t.Context())
	assert.ErrorIs(t, err, ErrSyncDisabled)
}

func TestWatchSyncsWhenOnline(t *testing.T) {
	remote := &fakeRemote{}
	conn := &fakeConn{}
	q := New(newTestDB(t), WithRemote(remote), WithConnectivity(conn))

	enqueue(t, q, "s1")

	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan struct{})

	go func() {
		defer close(done)

		q.Watch(ctx, 5*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return conn.probes.Load() >= 2
	}, time.Second, time.Millisecond)

	assert.Equal(t, models.ItemPending, itemByRecord(t, q, "s1").Status)

	conn.online.Store(true)

	require.Eventually(t, func() bool {
		return q.Status() == Completed
	}, time.Second, time.Millisecond)

	cancel()
	<-done

	assert.Equal(t, models.ItemSynced, itemByRecord(t, q, "s1").Status)
}

func TestRecorder(t *testing.T) {
	db := newTestDB(t)
	q := New(db)
	r := NewRecorder(db, q)

	rec := &models.SessionRecord{
		ID:          "s1",
		WorkoutID:   "w1",
		CompletedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, r.SaveSession(t.Context(), rec))

	var got models.SessionRecord

	found, err := db.Get(store.SessionStore, "s1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "w1", got.WorkoutID)

	items, err := q.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, models.ActionCreateSession, items[0].Action)
	assert.Equal(t, SessionsTable, items[0].TableName)
	assert.Equal(t, "s1", items[0].RecordID)

	assert.Equal(t, models.ActionUpdateWorkoutStatus, items[1].Action)
	assert.Equal(t, WorkoutsTable, items[1].TableName)
	assert.Equal(t, "w1", items[1].RecordID)
	assert.JSONEq(
		t,
		`{"status":"completed","last_completed_at":"2026-02-01T10:00:00Z"}`,
		string(items[1].Payload),
	)

	for _, item := range items {
		assert.Equal(t, models.ItemPending, item.Status)
	}
}

func TestRecorderWithoutWorkoutID(t *testing.T) {
	db := newTestDB(t)
	q := New(db)

	require.NoError(t, NewRecorder(db, q).SaveSession(
		t.Context(),
		&models.SessionRecord{ID: "s2"},
	))

	items, err := q.Items()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
