package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/reps/internal/models"
)

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "data", "reps.db")

	c, err := NewClient(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c, dbPath
}

func session(id string, completed time.Time) *models.SessionRecord {
	return &models.SessionRecord{
		ID:          id,
		WorkoutID:   "w1",
		WorkoutName: "Legs",
		StartedAt:   completed.Add(-30 * time.Minute),
		CompletedAt: completed,
		TotalSets:   1,
		Sets: []models.SetLog{
			{Exercise: "Squat", Set: 1, Reps: 5, Weight: 100, CompletedAt: completed},
		},
	}
}

func TestSaveGet(t *testing.T) {
	c, _ := newTestClient(t)

	want := session("s1", time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC))

	require.NoError(t, c.Save(SessionStore, want.ID, want))

	var got models.SessionRecord

	found, err := c.Get(SessionStore, want.ID, &got)
	require.NoError(t, err)
	require.True(t, found)

	if diff := cmp.Diff(*want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMissing(t *testing.T) {
	c, _ := newTestClient(t)

	var out map[string]any

	found, err := c.Get("assessments", "nope", &out)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = c.Get(SessionStore, "nope", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveValidation(t *testing.T) {
	c, _ := newTestClient(t)

	assert.ErrorIs(t, c.Save("", "id", 1), errEmptyStoreName)
	assert.ErrorIs(t, c.Save("things", "", 1), errEmptyID)
}

func TestSaveSurvivesRestart(t *testing.T) {
	c, dbPath := newTestClient(t)

	require.NoError(t, c.Save("assessments", "a1", map[string]int{"score": 7}))
	require.NoError(t, c.Close())

	c2, err := NewClient(dbPath)
	require.NoError(t, err)

	defer c2.Close()

	var got map[string]int

	found, err := c2.Get("assessments", "a1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]int{"score": 7}, got)
}

func TestSessionsRange(t *testing.T) {
	c, _ := newTestClient(t)

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"c", "a", "b"} {
		rec := session(id, base.AddDate(0, 0, i*2))
		require.NoError(t, c.Save(SessionStore, rec.ID, rec))
	}

	all, err := c.Sessions(time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "b", all[2].ID)

	some, err := c.Sessions(base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "a", some[0].ID)
}

func TestSyncItems(t *testing.T) {
	c, _ := newTestClient(t)

	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	items := []*models.SyncItem{
		{
			ID:        "z",
			Action:    models.ActionCreateSession,
			Status:    models.ItemPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "a",
			Action:    models.ActionUpdateWorkoutStatus,
			Status:    models.ItemSynced,
			CreatedAt: now.Add(time.Second),
			UpdatedAt: now.Add(time.Second),
		},
		{
			ID:        "m",
			Action:    models.ActionCreateAssessment,
			Status:    models.ItemSynced,
			CreatedAt: now.Add(2 * time.Second),
			UpdatedAt: now.Add(48 * time.Hour),
		},
	}

	for _, item := range items {
		require.NoError(t, c.PutSyncItem(item))
	}

	got, err := c.SyncItems()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{got[0].ID, got[1].ID, got[2].ID})

	n, err := c.PruneSynced(now.Add(24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err = c.SyncItems()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "z", got[0].ID)
	assert.Equal(t, "m", got[1].ID)
}

func TestInterruptedItemsRequeued(t *testing.T) {
	c, dbPath := newTestClient(t)

	now := time.Now()

	require.NoError(t, c.PutSyncItem(&models.SyncItem{
		ID:        "s1",
		Action:    models.ActionCreateSession,
		Status:    models.ItemSyncing,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	require.NoError(t, c.Close())

	c2, err := NewClient(dbPath)
	require.NoError(t, err)

	defer c2.Close()

	got, err := c2.SyncItems()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.ItemPending, got[0].Status)
}

func TestInUse(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "reps.db")

	assert.False(t, InUse(dbPath))

	c, err := NewClient(dbPath)
	require.NoError(t, err)

	assert.True(t, InUse(dbPath))

	_, err = NewClient(dbPath)
	assert.ErrorIs(t, err, errRepsRunning)

	require.NoError(t, c.Close())
	assert.False(t, InUse(dbPath))
}

func TestProbe(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "reps.db")

	assert.False(t, Probe(false, dbPath)(t.Context()))
	assert.True(t, Probe(true, dbPath)(t.Context()))
}

func TestNop(t *testing.T) {
	var db DB = Nop{}

	require.NoError(t, db.Save(SessionStore, "x", 1))

	var out int

	found, err := db.Get(SessionStore, "x", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
