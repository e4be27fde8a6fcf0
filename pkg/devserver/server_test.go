package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/taskdeck/pkg/app"
	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/remote"
	"tableflip.dev/taskdeck/pkg/store"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRESTTable(t *testing.T) {
	s := New(store.NewMemory(), nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
		json   string
	}{
		{"empty list", http.MethodGet, "/tasks", "", http.StatusOK, `[]`},
		{"create task", http.MethodPost, "/tasks", `{"description":"Buy milk"}`, http.StatusCreated, `{"id":1,"description":"Buy milk","completed":false}`},
		{"create note", http.MethodPost, "/notes", `{"content":"Door code"}`, http.StatusCreated, `{"id":1,"content":"Door code"}`},
		{"list tasks", http.MethodGet, "/tasks", "", http.StatusOK, `[{"id":1,"description":"Buy milk","completed":false}]`},
		{"complete task", http.MethodPut, "/tasks/1", `{"description":"Buy milk","completed":true}`, http.StatusOK, `{"id":1,"description":"Buy milk","completed":true}`},
		{"update unknown", http.MethodPut, "/goals/9", `{"description":"x"}`, http.StatusNotFound, `{"error":"not found"}`},
		{"update bad id", http.MethodPut, "/goals/abc", `{"description":"x"}`, http.StatusNotFound, `{"error":"not found"}`},
		{"bad json", http.MethodPost, "/goals", `{`, http.StatusBadRequest, ""},
		{"wrong field", http.MethodPost, "/notes", `{"description":"x"}`, http.StatusBadRequest, ""},
		{"empty text", http.MethodPost, "/goals", `{"description":"  "}`, http.StatusBadRequest, `{"error":"description must not be empty"}`},
		{"delete note", http.MethodDelete, "/notes/1", "", http.StatusNoContent, ""},
		{"delete again", http.MethodDelete, "/notes/1", "", http.StatusNotFound, `{"error":"not found"}`},
		{"notes empty", http.MethodGet, "/notes", "", http.StatusOK, `[]`},
		{"health", http.MethodGet, "/health", "", http.StatusOK, `{"status":"ok"}`},
	}
	// Cases share one server and run in order.
	for _, tt := range tests {
		w := do(t, s, tt.method, tt.path, tt.body)
		if !assert.Equal(t, tt.want, w.Code, "%s: body %s", tt.name, w.Body.String()) {
			continue
		}
		if tt.json != "" {
			assert.JSONEq(t, tt.json, w.Body.String(), tt.name)
		}
	}
}

func TestCreateSetsLocation(t *testing.T) {
	s := New(store.NewMemory(), nil)

	w := do(t, s, http.MethodPost, "/goals", `{"description":"Run 10k"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/goals/1", w.Header().Get("Location"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestRequestsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := New(store.NewMemory(), zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set(remote.RequestIDHeader, "abc-123")
	s.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("handled").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/notes", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, "abc-123", fields["request_id"])
}

func TestClientAgainstServer(t *testing.T) {
	ts := httptest.NewServer(New(store.NewMemory(), nil))
	defer ts.Close()

	c, err := remote.New(ts.URL)
	require.NoError(t, err)
	svc := app.New(c)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, record.Goals, `learn "Go" \ fast`))
	require.NoError(t, svc.Add(ctx, record.Tasks, "Buy milk"))
	require.NoError(t, svc.Add(ctx, record.Notes, "Door code 1234"))

	snap := svc.Snapshot(ctx)
	require.NoError(t, snap.Err())
	require.Len(t, snap.List(record.Goals), 1)
	assert.Equal(t, `learn "Go" \ fast`, snap.List(record.Goals)[0].Text)

	task := snap.List(record.Tasks)[0]
	require.NoError(t, svc.Toggle(ctx, record.Tasks, task))
	got, err := svc.Find(ctx, record.Tasks, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Done())

	note := snap.List(record.Notes)[0]
	require.NoError(t, svc.Remove(ctx, record.Notes, note.ID))
	assert.Empty(t, c.FetchAll(ctx, record.Notes))

	err = svc.Remove(ctx, record.Notes, note.ID)
	assert.True(t, remote.IsStatus(err, http.StatusNotFound), "got %v", err)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := New(store.NewMemory(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	assert.NoError(t, <-done)
}

func TestServedListIsArray(t *testing.T) {
	p := store.NewMemory()
	_, err := p.Create(context.Background(), record.Notes, record.Input{Text: "n"})
	require.NoError(t, err)

	w := do(t, New(p, nil), http.MethodGet, "/notes", "")

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.NotContains(t, out[0], "completed")
}
