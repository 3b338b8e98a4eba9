package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/bodhiflow/internal/acquisition"
	"github.com/nguyentantai21042004/bodhiflow/internal/batch"
	"github.com/nguyentantai21042004/bodhiflow/internal/enumerator"
	"github.com/nguyentantai21042004/bodhiflow/internal/llm"
	"github.com/nguyentantai21042004/bodhiflow/internal/processor"
)

// Pipeline runs one acquisition and refinement flow per call. Runs are independent
// and may execute concurrently.
type Pipeline interface {
	Run(ctx context.Context, req Request) (Summary, error)
}

// Request describes one run. Batch rows take precedence over Input.
type Request struct {
	Input      string
	Batch      []batch.Row
	FolderHint string
	Recursive  bool
	// Styles names the global style selection. Empty selects the first configured style.
	Styles []string
}

// Deps are the collaborators a pipeline needs.
type Deps struct {
	Enumerator enumerator.Enumerator
	// NewDispatcher builds the acquisition dispatcher for a run's worker settings.
	NewDispatcher func(s processor.Settings) acquisition.Dispatcher
	// Caller refines text. It may be nil when phase 2 is disabled.
	Caller llm.Caller
	// MetaCaller infers metadata. nil disables enrichment.
	MetaCaller llm.Caller
}
