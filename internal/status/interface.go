package status

import "context"

// Reporter receives human-readable status events from every stage.
type Reporter interface {
	Report(ctx context.Context, kind Kind, msg string, args ...interface{})
	// Progress reports completed/total for a phase as a whole percentage.
	Progress(ctx context.Context, phase string, completed, total int)
}
