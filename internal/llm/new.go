package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/bodhiflow/internal/config"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
)

// ErrNoAPIKey is returned when the provider has no credential configured.
var ErrNoAPIKey = errors.New("no api key configured")

type options struct {
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
}

type Option func(*options)

// WithMaxAttempts bounds retries per call.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithSleep replaces the backoff wait. fn must return ctx.Err() if ctx ends first.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(o *options) { o.sleep = fn }
}

// New builds a retrying Caller for a catalog entry.
func New(p config.Provider, keys config.APIKeysConfig, log logger.Logger, opts ...Option) (Caller, error) {
	o := options{maxAttempts: 3, sleep: sleepContext}
	for _, opt := range opts {
		opt(&o)
	}

	var inner Caller
	switch p.Provider {
	case config.ProviderGemini:
		if len(keys.Gemini) == 0 {
			return nil, fmt.Errorf("%s: %w", p.ID, ErrNoAPIKey)
		}
		inner = newGemini(p, keys.Gemini, log)
	case config.ProviderOpenAI, config.ProviderDeepSeek, config.ProviderZAI:
		key := keys.APIKey(p.Provider)
		if key == "" {
			return nil, fmt.Errorf("%s: %w", p.ID, ErrNoAPIKey)
		}
		inner = newOpenAI(p, key)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", p.Provider)
	}

	return &retrying{
		inner:       inner,
		logger:      log,
		maxAttempts: o.maxAttempts,
		sleep:       o.sleep,
	}, nil
}
