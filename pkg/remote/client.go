// Package remote is the HTTP client for the tasks/goals/notes REST service.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/taskdeck/pkg/record"
)

const (
	// DefaultTimeout bounds every request unless overridden.
	DefaultTimeout = 5 * time.Second

	// RequestIDHeader carries the id that ties a request to its log line.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 512
)

// Store is the contract of the remote service, one method per verb.
type Store interface {
	Fetch(ctx context.Context, c record.Collection) ([]record.Record, error)
	Add(ctx context.Context, c record.Collection, text string) error
	Update(ctx context.Context, c record.Collection, id int64, text string, completed bool) error
	Delete(ctx context.Context, c record.Collection, id int64) error
}

// Client talks to the remote store over HTTP. It never caches and never
// retries: every call is exactly one request.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

var _ Store = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (for testing).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("remote: invalid base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("remote: base url %q must be http(s)://host[:port]", baseURL)
	}
	c := &Client{
		base:    strings.TrimRight(u.String(), "/"),
		http:    http.DefaultClient,
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.base
}

// FetchAll returns the records of collection coll in server order. Any failure
// is logged and yields an empty slice, so callers cannot tell an empty
// collection from a failed fetch; use Fetch when that matters.
func (c *Client) FetchAll(ctx context.Context, coll record.Collection) []record.Record {
	recs, err := c.Fetch(ctx, coll)
	if err != nil {
		return []record.Record{}
	}
	return recs
}

// Fetch issues GET /<coll> and decodes the listing. Malformed elements are
// skipped; a body that is not an array fails the fetch.
func (c *Client) Fetch(ctx context.Context, coll record.Collection) ([]record.Record, error) {
	body, reqID, err := c.send(ctx, OpFetch, coll, coll.Path(), nil)
	if err != nil {
		return nil, err
	}
	recs, skipped, err := record.DecodeList(coll, body)
	if err != nil {
		c.log.Warn("failed to decode "+string(coll),
			zap.String("collection", string(coll)),
			zap.String("request_id", reqID),
			zap.Error(err))
		return nil, fmt.Errorf("fetch %s: %w", coll, err)
	}
	if skipped > 0 {
		c.log.Warn("skipped malformed records",
			zap.String("collection", string(coll)),
			zap.String("request_id", reqID),
			zap.Int("skipped", skipped))
	}
	return recs, nil
}

// Add issues POST /<coll> with the text in the collection's text field.
func (c *Client) Add(ctx context.Context, coll record.Collection, text string) error {
	body, err := record.EncodeCreate(coll, text)
	if err != nil {
		return fmt.Errorf("add %s: %w", coll, err)
	}
	_, _, err = c.send(ctx, OpAdd, coll, coll.Path(), body)
	return err
}

// Update issues PUT /<coll>/<id>. The completed flag is only sent for
// collections that support it.
func (c *Client) Update(ctx context.Context, coll record.Collection, id int64, text string, completed bool) error {
	body, err := record.EncodeUpdate(coll, text, completed)
	if err != nil {
		return fmt.Errorf("update %s: %w", coll, err)
	}
	_, _, err = c.send(ctx, OpUpdate, coll, coll.ItemPath(id), body)
	return err
}

// Delete issues DELETE /<coll>/<id>.
func (c *Client) Delete(ctx context.Context, coll record.Collection, id int64) error {
	_, _, err := c.send(ctx, OpDelete, coll, coll.ItemPath(id), nil)
	return err
}

func (c *Client) send(ctx context.Context, op Op, coll record.Collection, path string, payload []byte) ([]byte, string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqID := uuid.NewString()
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, op.Method(), c.base+path, body)
	if err != nil {
		return nil, reqID, fmt.Errorf("%s %s: %w", op, coll, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.failed(op, coll, reqID, 0, err)
		return nil, reqID, fmt.Errorf("%s %s: %w", op, coll, err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode != op.Want() {
		serr := &StatusError{Op: op, Collection: coll, Code: resp.StatusCode, Body: clip(data)}
		c.failed(op, coll, reqID, resp.StatusCode, serr)
		return nil, reqID, serr
	}
	if readErr != nil {
		c.failed(op, coll, reqID, resp.StatusCode, readErr)
		return nil, reqID, fmt.Errorf("%s %s: read body: %w", op, coll, readErr)
	}

	c.log.Debug(string(op)+" "+string(coll),
		zap.String("method", op.Method()),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", reqID))
	return data, reqID, nil
}

func (c *Client) failed(op Op, coll record.Collection, reqID string, status int, err error) {
	c.log.Warn(fmt.Sprintf("failed to %s %s", op, coll),
		zap.String("collection", string(coll)),
		zap.String("method", op.Method()),
		zap.Int("status", status),
		zap.String("request_id", reqID),
		zap.Error(err))
}

func clip(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
