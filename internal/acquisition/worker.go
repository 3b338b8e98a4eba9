package acquisition

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/processor"
)

// ProcessorFactory builds the processor a worker uses for its single job.
type ProcessorFactory func(s processor.Settings, log logger.Logger) processor.Processor

// RunWorker serves one Request: decode from stdin, acquire, encode the result
// to stdout. Logs go to logOut so stdout carries only the result.
// SIGINT is ignored: a terminal interrupt is the coordinator's to handle, and
// in-flight jobs finish unless the coordinator kills the worker.
func RunWorker(ctx context.Context, stdin io.Reader, stdout, logOut io.Writer, factory ProcessorFactory) error {
	signal.Ignore(syscall.SIGINT)

	var req Request
	if err := json.NewDecoder(stdin).Decode(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	log := logger.NewWithWriter(req.Settings.LogLevel, logOut)
	if req.RunID != "" {
		ctx = logger.WithRunID(ctx, req.RunID)
	}

	result := NewInProcessDispatcher(factory(req.Settings, log)).Dispatch(ctx, req.Job)

	if err := json.NewEncoder(stdout).Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
