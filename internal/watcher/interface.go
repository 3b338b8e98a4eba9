package watcher

import "context"

// Watcher turns new files in the input folder into pipeline runs.
type Watcher interface {
	// Start blocks until ctx is cancelled, then waits for in-flight runs.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler runs the pipeline for one new input file.
type EventHandler func(ctx context.Context, inputPath string) error
