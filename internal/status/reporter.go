package status

import (
	"context"
	"fmt"
)

func (r *implReporter) Report(ctx context.Context, kind Kind, msg string, args ...interface{}) {
	text := fmt.Sprintf(msg, args...)
	r.emit(ctx, Event{Kind: kind, Message: text})
}

func (r *implReporter) Progress(ctx context.Context, phase string, completed, total int) {
	pct := Percent(completed, total)
	r.emit(ctx, Event{
		Kind:    Progress,
		Message: fmt.Sprintf("%s: %d/%d (%d%%)", phase, completed, total, pct),
		Percent: pct,
	})
}

func (r *implReporter) emit(ctx context.Context, ev Event) {
	switch ev.Kind {
	case Error:
		r.log.Error(ctx, "%s", ev.Message)
	case Warning:
		r.log.Warn(ctx, "%s", ev.Message)
	case Progress, Debug:
		r.log.Debug(ctx, "%s", ev.Message)
	default:
		r.log.Info(ctx, "%s", ev.Message)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.out != nil && ev.Kind != Debug {
		fmt.Fprintln(r.out, r.styles[ev.Kind].Render(ev.Message))
	}
	if r.sink != nil {
		r.sink(ev)
	}
}
