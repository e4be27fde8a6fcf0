package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/taskdeck/pkg/record"
)

type captured struct {
	Method      string
	Path        string
	Body        string
	ContentType string
	RequestID   string
}

// recorder is an httptest handler that remembers every request and answers
// with a fixed status and body.
type recorder struct {
	mu       sync.Mutex
	requests []captured
	status   int
	body     string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.requests = append(r.requests, captured{
		Method:      req.Method,
		Path:        req.URL.Path,
		Body:        string(b),
		ContentType: req.Header.Get("Content-Type"),
		RequestID:   req.Header.Get(RequestIDHeader),
	})
	status, body := r.status, r.body
	r.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (r *recorder) calls() []captured {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]captured(nil), r.requests...)
}

func newTestClient(t *testing.T, h http.Handler) (*Client, *observer.ObservedLogs) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	core, logs := observer.New(zapcore.DebugLevel)
	c, err := New(srv.URL+"/", WithLogger(zap.New(core)), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c, logs
}

func TestFetchAllMapsRecordsInServerOrder(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: `[{"id":1,"description":"Buy milk"},{"id":2,"description":"Call Bob"}]`}
	c, _ := newTestClient(t, rec)

	got := c.FetchAll(context.Background(), record.Tasks)

	assert.Equal(t, []record.Record{{ID: 1, Text: "Buy milk"}, {ID: 2, Text: "Call Bob"}}, got)
	calls := rec.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "/tasks", calls[0].Path)
	assert.NotEmpty(t, calls[0].RequestID)
}

func TestFetchAllReturnsEmptyOnNon200(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusNotFound, http.StatusNoContent, http.StatusCreated} {
		rec := &recorder{status: status, body: `[{"id":1,"content":"ignored"}]`}
		c, logs := newTestClient(t, rec)

		got := c.FetchAll(context.Background(), record.Notes)

		require.NotNil(t, got, "status %d", status)
		assert.Empty(t, got, "status %d", status)

		entries := logs.FilterMessage("failed to fetch notes").All()
		require.Len(t, entries, 1, "status %d", status)
		assert.EqualValues(t, status, entries[0].ContextMap()["status"])
	}
}

func TestFetchReportsStatusError(t *testing.T) {
	c, _ := newTestClient(t, &recorder{status: http.StatusServiceUnavailable, body: "down"})

	recs, err := c.Fetch(context.Background(), record.Goals)

	assert.Nil(t, recs)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusServiceUnavailable))
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, OpFetch, serr.Op)
	assert.Equal(t, record.Goals, serr.Collection)
	assert.Equal(t, "down", serr.Body)
	assert.Equal(t, "failed to fetch goals: 503 Service Unavailable", serr.Error())
}

func TestFetchMalformedBodyFailsCleanly(t *testing.T) {
	c, logs := newTestClient(t, &recorder{status: http.StatusOK, body: `{"oops":true}`})

	_, err := c.Fetch(context.Background(), record.Tasks)
	assert.ErrorIs(t, err, record.ErrNotArray)
	assert.Empty(t, c.FetchAll(context.Background(), record.Tasks))
	assert.Equal(t, 2, logs.FilterMessage("failed to decode tasks").Len())
}

func TestFetchSkipsMalformedElements(t *testing.T) {
	c, logs := newTestClient(t, &recorder{status: http.StatusOK, body: `[{"id":1,"description":"ok"},{"id":"x"}]`})

	got, err := c.Fetch(context.Background(), record.Tasks)
	require.NoError(t, err)
	assert.Equal(t, []record.Record{{ID: 1, Text: "ok"}}, got)

	skipped := logs.FilterMessage("skipped malformed records").All()
	require.Len(t, skipped, 1)
	assert.EqualValues(t, 1, skipped[0].ContextMap()["skipped"])
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	c, err := New(url, WithLogger(zap.New(core)))
	require.NoError(t, err)

	assert.Empty(t, c.FetchAll(context.Background(), record.Tasks))
	assert.Equal(t, 1, logs.FilterMessage("failed to fetch tasks").Len())
}

func TestFetchHonorsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := New(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	_, err = c.Fetch(context.Background(), record.Tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestAddPostsEncodedBody(t *testing.T) {
	rec := &recorder{status: http.StatusCreated, body: `{"id":3,"description":"x"}`}
	c, logs := newTestClient(t, rec)

	text := `quote " and backslash \ inside`
	require.NoError(t, c.Add(context.Background(), record.Tasks, text))

	calls := rec.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/tasks", calls[0].Path)
	assert.Equal(t, "application/json", calls[0].ContentType)
	require.True(t, json.Valid([]byte(calls[0].Body)), calls[0].Body)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &body))
	assert.Equal(t, map[string]string{"description": text}, body)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestAddNon201IsLoggedAndReturned(t *testing.T) {
	c, logs := newTestClient(t, &recorder{status: http.StatusOK, body: `{}`})

	err := c.Add(context.Background(), record.Notes, "n")

	assert.True(t, IsStatus(err, http.StatusOK))
	assert.Equal(t, 1, logs.FilterMessage("failed to add notes").Len())
}

func TestUpdatePutsItemPath(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: `{}`}
	c, _ := newTestClient(t, rec)

	require.NoError(t, c.Update(context.Background(), record.Goals, 42, "ship it", true))
	require.NoError(t, c.Update(context.Background(), record.Notes, 7, "note", true))

	calls := rec.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPut, calls[0].Method)
	assert.Equal(t, "/goals/42", calls[0].Path)
	assert.JSONEq(t, `{"description":"ship it","completed":true}`, calls[0].Body)
	assert.Equal(t, "/notes/7", calls[1].Path)
	assert.JSONEq(t, `{"content":"note"}`, calls[1].Body)
}

func TestUpdateFailureIsLogged(t *testing.T) {
	c, logs := newTestClient(t, &recorder{status: http.StatusNotFound})

	err := c.Update(context.Background(), record.Tasks, 1, "x", false)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, 1, logs.FilterMessage("failed to update tasks").Len())
}

func TestDeleteIssuesExactlyOneRequest(t *testing.T) {
	rec := &recorder{status: http.StatusNoContent}
	c, _ := newTestClient(t, rec)

	local := []record.Record{{ID: 5, Text: "keep me"}}
	require.NoError(t, c.Delete(context.Background(), record.Notes, local[0].ID))

	calls := rec.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodDelete, calls[0].Method)
	assert.Equal(t, "/notes/5", calls[0].Path)
	assert.Empty(t, calls[0].Body)
	assert.Equal(t, []record.Record{{ID: 5, Text: "keep me"}}, local)
}

func TestDeleteNon204(t *testing.T) {
	c, logs := newTestClient(t, &recorder{status: http.StatusOK})

	err := c.Delete(context.Background(), record.Tasks, 1)
	assert.True(t, IsStatus(err, http.StatusOK))
	assert.Equal(t, 1, logs.FilterMessage("failed to delete tasks").Len())
}

func TestNewValidatesBaseURL(t *testing.T) {
	for _, bad := range []string{"", "localhost:3000", "ftp://host", "http://"} {
		_, err := New(bad)
		assert.Error(t, err, bad)
	}

	c, err := New("http://localhost:3000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", c.BaseURL())
}
