package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse means the model answered with no text.
var ErrEmptyResponse = errors.New("empty response from model")

const (
	rateLimitBackoff = 5 * time.Second
	transientBackoff = 2 * time.Second
)

type retrying struct {
	inner       Caller
	logger      logger.Logger
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
}

func (r *retrying) Model() string { return r.inner.Model() }

// Generate retries rate limits and transient failures with linear backoff.
func (r *retrying) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := r.inner.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		var wait time.Duration
		switch {
		case IsRateLimit(err):
			wait = rateLimitBackoff * time.Duration(attempt+1)
		case IsTransient(err):
			wait = transientBackoff * time.Duration(attempt+1)
		default:
			return "", err
		}

		if attempt+1 < r.maxAttempts {
			r.logger.Warn(ctx, "%s call failed (attempt %d/%d), retrying in %s: %v", r.inner.Model(), attempt+1, r.maxAttempts, wait, err)
			if err := r.sleep(ctx, wait); err != nil {
				return "", err
			}
		}
	}

	return "", fmt.Errorf("%s failed after %d attempts: %w", r.inner.Model(), r.maxAttempts, lastErr)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRateLimit reports 429 and quota errors.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	if code := httpStatus(err); code == 429 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted")
}

// IsTransient reports timeouts, dropped connections, 5xx responses and empty answers.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrEmptyResponse) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if code := httpStatus(err); code >= 500 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"timeout", "timed out", "connection reset", "connection refused", "eof", "unavailable", "overloaded"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func httpStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
