// Package serve runs the local stand-in server.
package serve

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/taskdeck/pkg/devserver"
	"tableflip.dev/taskdeck/pkg/store"
)

// Serve listens on Addr with records kept under StorePath, or in memory when
// Memory is set.
type Serve struct {
	Addr      string
	StorePath string
	Memory    bool
	Latency   time.Duration
	Log       *zap.Logger
}

// Do serves until ctx is done.
func (s *Serve) Do(ctx context.Context) error {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	var p store.Persistence
	if s.Memory {
		p = store.NewMemory()
	} else {
		disk, err := store.Load(s.StorePath, store.WithLogger(log.Named("store")))
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		p = disk
	}
	log.Info("store ready", zap.Bool("memory", s.Memory), zap.String("path", s.StorePath))

	srv := devserver.New(p, log, devserver.WithLatency(s.Latency))
	return srv.ListenAndServe(ctx, s.Addr)
}
