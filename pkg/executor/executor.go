package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

type implExecutor struct {
	env          []string
	processGroup bool
}

type Option func(*implExecutor)

// WithEnv adds environment variables on top of the parent environment.
func WithEnv(env ...string) Option {
	return func(e *implExecutor) {
		e.env = append(e.env, env...)
	}
}

// WithProcessGroup starts every command in its own process group, so terminal
// signals aimed at the caller do not reach it. Cancelling the context kills the
// whole group.
func WithProcessGroup() Option {
	return func(e *implExecutor) {
		e.processGroup = true
	}
}

// New creates a new Executor instance
func New(opts ...Option) Executor {
	e := &implExecutor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewWithEnv creates an Executor whose commands get extra environment variables
// on top of the parent environment.
func NewWithEnv(env ...string) Executor {
	return New(WithEnv(env...))
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.run(exec.CommandContext(ctx, name, args...))
}

// ExecuteInDir runs an external command in a specific working directory
func (e *implExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return e.run(cmd)
}

func (e *implExecutor) ExecuteWithInput(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	return e.run(cmd)
}

func (e *implExecutor) run(cmd *exec.Cmd) (string, error) {
	if len(e.env) > 0 {
		cmd.Env = append(cmd.Environ(), e.env...)
	}
	if e.processGroup {
		isolateProcessGroup(cmd)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Include stderr in error message for debugging
		stderrStr := lastLines(strings.TrimSpace(stderr.String()), 20)
		if stderrStr != "" {
			return "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", cmd.Path, err, stderrStr)
		}
		return "", fmt.Errorf("command '%s' failed: %w", cmd.Path, err)
	}

	return stdout.String(), nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
