package acquisition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/processor"
	"github.com/nguyentantai21042004/bodhiflow/pkg/executor"
)

// WorkerCommand is the hidden subcommand a worker process runs.
const WorkerCommand = "acquire-worker"

// Request is what a worker process reads from stdin.
type Request struct {
	RunID    string             `json:"run_id,omitempty"`
	Job      domain.Job         `json:"job"`
	Settings processor.Settings `json:"settings"`
}

type processDispatcher struct {
	exec     executor.Executor
	binary   string
	args     []string
	settings processor.Settings
	logger   logger.Logger
}

// NewProcessDispatcher runs every job in a fresh OS process: binary args...
// receives a Request on stdin and prints the result JSON on stdout. exec should
// start workers in their own process group (executor.WithProcessGroup) so a
// terminal interrupt reaches only the coordinator, which drains them.
func NewProcessDispatcher(exec executor.Executor, binary string, args []string, settings processor.Settings, log logger.Logger) Dispatcher {
	return &processDispatcher{
		exec:     exec,
		binary:   binary,
		args:     args,
		settings: settings,
		logger:   log,
	}
}

func (d *processDispatcher) Dispatch(ctx context.Context, job domain.Job) domain.AcquisitionResult {
	payload, err := json.Marshal(Request{RunID: logger.RunID(ctx), Job: job, Settings: d.settings})
	if err != nil {
		return domain.AcquisitionFailure(job, domain.StatusFailure, fmt.Sprintf("encode worker request: %v", err))
	}

	out, err := d.exec.ExecuteWithInput(ctx, bytes.NewReader(payload), d.binary, d.args...)
	if err != nil {
		if ctx.Err() != nil {
			return domain.AcquisitionFailure(job, domain.StatusCancelled, "worker terminated")
		}
		return domain.AcquisitionFailure(job, domain.StatusFailure, fmt.Sprintf("worker process: %v", err))
	}

	var result domain.AcquisitionResult
	if err := json.Unmarshal([]byte(lastLine(out)), &result); err != nil {
		return domain.AcquisitionFailure(job, domain.StatusFailure, fmt.Sprintf("decode worker result: %v", err))
	}
	result.JobID = job.JobID
	if result.VideoTitle == "" {
		result.VideoTitle = job.OriginalTitle
	}
	return result
}

// lastLine tolerates stray output from tools that write to stdout.
func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}

type inProcessDispatcher struct {
	proc processor.Processor
}

// NewInProcessDispatcher runs jobs on goroutines of the current process.
func NewInProcessDispatcher(proc processor.Processor) Dispatcher {
	return &inProcessDispatcher{proc: proc}
}

func (d *inProcessDispatcher) Dispatch(ctx context.Context, job domain.Job) (result domain.AcquisitionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.AcquisitionFailure(job, domain.StatusFailure, fmt.Sprintf("panic: %v", r))
		}
	}()
	return d.proc.Acquire(ctx, job)
}
