package executor

import (
	"context"
	"io"
)

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// ExecuteWithInput feeds stdin to the command and returns its stdout.
	ExecuteWithInput(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error)
}
