// Package devserver serves the tasks, goals and notes collections over the
// same REST table the client speaks. It backs `taskdeck serve`, the sandbox
// and the integration tests.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tableflip.dev/taskdeck/pkg/record"
	"tableflip.dev/taskdeck/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// Server routes collection requests to a store.
type Server struct {
	store   store.Persistence
	log     *zap.Logger
	latency time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every response by d.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// New builds the router for p. A nil logger disables request logging.
func New(p store.Persistence, log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{store: p, log: log}
	for _, o := range opts {
		o(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.latency > 0 {
		r.Use(s.delay)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	for _, c := range record.All {
		h := &collectionHandler{Server: s, c: c}
		r.Route(c.Path(), func(r chi.Router) {
			r.Get("/", h.list)
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	}
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.log.Info("handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", m.Code),
			zap.Duration("duration", m.Duration),
			zap.Int64("bytes", m.Written),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(s.latency):
		case <-r.Context().Done():
			return
		}
		next.ServeHTTP(w, r)
	})
}

type collectionHandler struct {
	*Server
	c record.Collection
}

func (h *collectionHandler) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.List(r.Context(), h.c)
	if err != nil {
		h.handleErrors(w, err)
		return
	}
	body, err := record.EncodeList(h.c, recs)
	if err != nil {
		h.handleErrors(w, err)
		return
	}
	respondRaw(w, http.StatusOK, body)
}

func (h *collectionHandler) create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.input(w, r)
	if !ok {
		return
	}
	rec, err := h.store.Create(r.Context(), h.c, in)
	if err != nil {
		h.handleErrors(w, err)
		return
	}
	w.Header().Set("Location", h.c.ItemPath(rec.ID))
	respondJSON(w, http.StatusCreated, record.Wire(h.c, rec))
}

func (h *collectionHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}
	in, ok := h.input(w, r)
	if !ok {
		return
	}
	rec, err := h.store.Update(r.Context(), h.c, id, in)
	if err != nil {
		h.handleErrors(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record.Wire(h.c, rec))
}

func (h *collectionHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), h.c, id); err != nil {
		h.handleErrors(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// id parses the {id} URL parameter. Ids that are not numbers cannot exist.
func (h *collectionHandler) id(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

func (h *collectionHandler) input(w http.ResponseWriter, r *http.Request) (record.Input, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable body")
		return record.Input{}, false
	}
	in, err := record.DecodeInput(h.c, body)
	if err != nil {
		h.log.Debug("failed to decode json", zap.Error(err))
		respondError(w, http.StatusBadRequest, err.Error())
		return record.Input{}, false
	}
	if strings.TrimSpace(in.Text) == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("%s must not be empty", h.c.TextField()))
		return record.Input{}, false
	}
	return in, true
}

func (h *collectionHandler) handleErrors(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	default:
		h.log.Error("internal error", zap.String("collection", string(h.c)), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
