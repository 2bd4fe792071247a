package remote

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/reps/internal/models"
)

type captured struct {
	method string
	path   string
	query  string
	apiKey string
	auth   string
	body   string
}

func newTestClient(
	t *testing.T,
	handler http.HandlerFunc,
) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", "secret", 5*time.Second, nil)
	require.NoError(t, err)

	return c, srv
}

func recorder(got *captured, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)

		*got = captured{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			apiKey: r.Header.Get("apikey"),
			auth:   r.Header.Get("Authorization"),
			body:   string(b),
		}

		w.WriteHeader(status)
	}
}

func TestPush(t *testing.T) {
	testCases := []struct {
		name   string
		item   models.SyncItem
		method string
		query  string
	}{
		{
			name: "create session",
			item: models.SyncItem{
				ID:        "i1",
				Action:    models.ActionCreateSession,
				TableName: "workout_sessions",
				Payload:   json.RawMessage(`{"id":"s1"}`),
			},
			method: http.MethodPost,
		},
		{
			name: "update workout status",
			item: models.SyncItem{
				ID:        "i2",
				Action:    models.ActionUpdateWorkoutStatus,
				TableName: "workouts",
				RecordID:  "w1",
				Payload:   json.RawMessage(`{"status":"completed"}`),
			},
			method: http.MethodPatch,
			query:  "id=eq.w1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got captured

			c, _ := newTestClient(t, recorder(&got, http.StatusCreated))

			require.NoError(t, c.Push(t.Context(), &tc.item))

			assert.Equal(t, tc.method, got.method)
			assert.Equal(t, "/rest/v1/"+tc.item.TableName, got.path)
			assert.Equal(t, tc.query, got.query)
			assert.Equal(t, "secret", got.apiKey)
			assert.Equal(t, "Bearer secret", got.auth)
			assert.JSONEq(t, string(tc.item.Payload), got.body)
		})
	}
}

func TestPushErrors(t *testing.T) {
	var got captured

	c, _ := newTestClient(t, recorder(&got, http.StatusBadRequest))
	ctx := t.Context()

	err := c.Push(ctx, &models.SyncItem{ID: "x", Action: models.ActionCreateSession})
	assert.ErrorIs(t, err, errNoTable)

	err = c.Push(ctx, &models.SyncItem{
		ID:        "x",
		Action:    models.ActionUpdateSession,
		TableName: "workout_sessions",
	})
	assert.ErrorIs(t, err, errNoRecordID)

	err = c.Push(ctx, &models.SyncItem{
		ID:        "x",
		Action:    "delete_everything",
		TableName: "workout_sessions",
	})
	assert.ErrorIs(t, err, errUnknownAction)

	err = c.Push(ctx, &models.SyncItem{
		ID:        "x",
		Action:    models.ActionCreateAssessment,
		TableName: "assessments",
		Payload:   json.RawMessage(`{}`),
	})
	require.ErrorIs(t, err, errUnexpectedStatus)
	assert.Contains(t, err.Error(), "400")
}

func TestOnline(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	assert.True(t, c.Online(t.Context()))

	srv.Close()

	assert.False(t, c.Online(t.Context()))
}

func TestFetchWorkout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "eq.w1" {
			_, _ = w.Write([]byte(`[]`))
			return
		}

		_, _ = w.Write([]byte(`[{
			"id": "w1",
			"name": "Push day",
			"exercises": [
				{"name": "Bench", "reps": 5, "weight": 80, "sets": 3, "rest_seconds": 120},
				{"name": "Dips", "reps": 10, "weight": 0, "sets": 2}
			]
		}]`))
	})

	w, err := c.FetchWorkout(t.Context(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "Push day", w.Name)
	require.Len(t, w.Exercises, 2)
	assert.Equal(t, 120, w.Exercises[0].Rest())
	assert.Equal(t, models.DefaultRestSeconds, w.Exercises[1].Rest())

	_, err = c.FetchWorkout(t.Context(), "missing")
	assert.ErrorIs(t, err, errWorkoutNotFound)
}

func TestNewWithoutEndpoint(t *testing.T) {
	_, err := New("", "k", time.Second, nil)
	assert.ErrorIs(t, err, errNoEndpoint)
}
