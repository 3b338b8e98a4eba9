package status

import (
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
)

type implReporter struct {
	log    logger.Logger
	out    io.Writer
	styles map[Kind]lipgloss.Style
	sink   func(Event)

	mu sync.Mutex
}

// Option configures a Reporter.
type Option func(*implReporter)

// WithSink forwards every event to fn, after logging and printing it.
func WithSink(fn func(Event)) Option {
	return func(r *implReporter) {
		r.sink = fn
	}
}

// New creates a Reporter that logs through log and prints colored lines to out.
// A nil out disables console output.
func New(log logger.Logger, out io.Writer, opts ...Option) Reporter {
	r := &implReporter{
		log:    log,
		out:    out,
		styles: defaultStyles(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func defaultStyles() map[Kind]lipgloss.Style {
	color := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return map[Kind]lipgloss.Style{
		Success:  color("#27AE60"),
		Error:    color("#E74C3C").Bold(true),
		Warning:  color("#F39C12"),
		Info:     color("#AAAAAA"),
		Progress: color("#2980B9"),
		Skip:     color("#888888"),
		Start:    color("#2980B9").Bold(true),
		Finish:   color("#27AE60").Bold(true),
		Debug:    color("#888888"),
	}
}
