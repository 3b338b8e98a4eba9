package pipeline

import (
	"time"

	"github.com/nguyentantai21042004/bodhiflow/internal/config"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
)

type implPipeline struct {
	cfg            *config.Config
	deps           Deps
	reporter       status.Reporter
	logger         logger.Logger
	forceKillAfter time.Duration
}

type Option func(*implPipeline)

// WithForceKillAfter bounds how long cancelled runs wait for acquisition workers.
func WithForceKillAfter(d time.Duration) Option {
	return func(p *implPipeline) {
		p.forceKillAfter = d
	}
}

// New creates a Pipeline over a validated config.
func New(cfg *config.Config, deps Deps, reporter status.Reporter, log logger.Logger, opts ...Option) Pipeline {
	p := &implPipeline{
		cfg:      cfg,
		deps:     deps,
		reporter: reporter,
		logger:   log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
