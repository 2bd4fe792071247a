// Package remote talks to the PostgREST API that acts as the remote record
// store for sessions and workouts
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ayoisaiah/reps/internal/models"
	"github.com/ayoisaiah/reps/netcache"
)

const restPath = "/rest/v1/"

// maxErrorBody caps how much of an error response is reported.
const maxErrorBody = 512

// Client is an HTTP client for the remote store.
type Client struct {
	http     *http.Client
	endpoint *url.URL
	apiKey   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// New returns a client for the API rooted at endpoint. GET requests go
// through a network-first cache when cachePattern matches the URL.
func New(
	endpoint, apiKey string,
	timeout time.Duration,
	cachePattern *regexp.Regexp,
	opts ...Option,
) (*Client, error) {
	if endpoint == "" {
		return nil, errNoEndpoint
	}

	u, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint: u,
		apiKey:   apiKey,
		http: &http.Client{
			Timeout:   timeout,
			Transport: netcache.New(http.DefaultTransport, cachePattern),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) tableURL(table string, query url.Values) string {
	u := *c.endpoint
	u.Path += restPath + table
	u.RawQuery = query.Encode()

	return u.String()
}

func (c *Client) newRequest(
	ctx context.Context,
	method, target string,
	body []byte,
) (*http.Request, error) {
	var r io.Reader = http.NoBody
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return errUnexpectedStatus.Fmt(
			req.Method,
			req.URL.Path,
			resp.StatusCode,
			strings.TrimSpace(string(b)),
		)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Push applies a single outbox item to the remote store. Create actions
// insert the payload; update actions patch the record identified by
// RecordID.
func (c *Client) Push(ctx context.Context, item *models.SyncItem) error {
	if item.TableName == "" {
		return errNoTable.Fmt(item.ID)
	}

	var (
		method string
		query  = url.Values{}
	)

	switch item.Action {
	case models.ActionCreateSession, models.ActionCreateAssessment:
		method = http.MethodPost
	case models.ActionUpdateSession, models.ActionUpdateWorkoutStatus:
		if item.RecordID == "" {
			return errNoRecordID.Fmt(item.ID)
		}

		method = http.MethodPatch

		query.Set("id", "eq."+item.RecordID)
	default:
		return errUnknownAction.Fmt(item.ID, item.Action)
	}

	req, err := c.newRequest(
		ctx,
		method,
		c.tableURL(item.TableName, query),
		item.Payload,
	)
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "pushing sync item",
		slog.String("id", item.ID),
		slog.String("action", string(item.Action)),
		slog.String("table", item.TableName),
	)

	return c.do(req, nil)
}

// Online reports whether the remote store can be reached.
func (c *Client) Online(ctx context.Context) bool {
	req, err := c.newRequest(ctx, http.MethodHead, c.tableURL("", nil), nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.DebugContext(ctx, "remote store unreachable", slog.Any("error", err))
		return false
	}

	_ = resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError
}

// FetchWorkout loads a workout and its exercises.
func (c *Client) FetchWorkout(
	ctx context.Context,
	id string,
) (*models.Workout, error) {
	query := url.Values{}
	query.Set("id", "eq."+id)
	query.Set("select", "id,name,exercises(name,reps,weight,sets,rest_seconds)")

	req, err := c.newRequest(
		ctx,
		http.MethodGet,
		c.tableURL("workouts", query),
		nil,
	)
	if err != nil {
		return nil, err
	}

	var workouts []models.Workout

	if err := c.do(req, &workouts); err != nil {
		return nil, err
	}

	if len(workouts) == 0 {
		return nil, errWorkoutNotFound.Fmt(id)
	}

	return &workouts[0], nil
}
