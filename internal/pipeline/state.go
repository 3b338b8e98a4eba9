package pipeline

import (
	"github.com/nguyentantai21042004/bodhiflow/internal/acquisition"
	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/enumerator"
	"github.com/nguyentantai21042004/bodhiflow/internal/refiner"
)

// Settings are the per-run values stages read. Fixed before the first stage runs.
type Settings struct {
	RunPhase1 bool
	RunPhase2 bool
	Resume    bool

	StartIndex int
	EndIndex   int
	FolderHint string
	Recursive  bool

	IntermediateDir string
	OutputDir       string
	// TempDir is private to the run and removed by cleanup.
	TempDir string

	Styles []domain.Style
}

// State is owned by the graph for one run. Each collection is written by one stage.
type State struct {
	Settings  Settings
	Inputs    []enumerator.Input
	Overrides map[int]refiner.JobOverride

	Queue           []domain.Job
	ResumeSkipped   int
	Phase1          acquisition.Outcome
	Phase1Ran       bool
	TranscriptFiles []string
	TranscriptJobs  map[string]int
	Tasks           []domain.RefinementTask
	Phase2          refiner.Outcome
	Phase2Ran       bool

	Summary Summary
}
