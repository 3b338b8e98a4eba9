package acquisition

import (
	"time"

	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
)

type implCoordinator struct {
	dispatcher     Dispatcher
	workers        int
	reporter       status.Reporter
	logger         logger.Logger
	forceKillAfter time.Duration
}

type Option func(*implCoordinator)

// WithForceKillAfter terminates in-flight workers still running d after
// cancellation. Zero waits forever.
func WithForceKillAfter(d time.Duration) Option {
	return func(c *implCoordinator) {
		c.forceKillAfter = d
	}
}

// New creates a Coordinator running at most workers jobs at a time.
func New(d Dispatcher, workers int, reporter status.Reporter, log logger.Logger, opts ...Option) Coordinator {
	if workers < 1 {
		workers = 1
	}
	c := &implCoordinator{
		dispatcher: d,
		workers:    workers,
		reporter:   reporter,
		logger:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
