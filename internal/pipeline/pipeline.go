package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/bodhiflow/internal/acquisition"
	"github.com/nguyentantai21042004/bodhiflow/internal/config"
	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/enumerator"
	"github.com/nguyentantai21042004/bodhiflow/internal/flow"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/refiner"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
)

// Run validates the request, builds the topology for the enabled phases and
// executes it. Only configuration errors are returned; job and task failures
// are reported in the Summary.
func (p *implPipeline) Run(ctx context.Context, req Request) (Summary, error) {
	phase1, phase2 := p.cfg.Run.RunPhase1, p.cfg.Run.RunPhase2
	if !phase1 && !phase2 {
		return Summary{}, flow.ErrNoPhase
	}

	styles, err := p.globalStyles(req.Styles)
	if err != nil {
		return Summary{}, err
	}
	inputs, overrides, err := p.inputs(req, phase1)
	if err != nil {
		return Summary{}, err
	}
	if phase2 && p.deps.Caller == nil {
		return Summary{}, fmt.Errorf("%w: refinement needs an llm caller", config.ErrInvalid)
	}

	runID := logger.NewRunID()
	ctx = logger.WithRunID(ctx, runID)

	st := &State{
		Settings: Settings{
			RunPhase1:       phase1,
			RunPhase2:       phase2,
			Resume:          p.cfg.Run.Resume,
			StartIndex:      p.cfg.Run.StartIndex,
			EndIndex:        p.cfg.Run.EndIndex,
			FolderHint:      req.FolderHint,
			Recursive:       req.Recursive,
			IntermediateDir: p.cfg.Paths.Intermediate,
			OutputDir:       p.cfg.Paths.Output,
			TempDir:         filepath.Join(p.cfg.Paths.Temp, runID[:8]),
			Styles:          styles,
		},
		Inputs:    inputs,
		Overrides: overrides,
	}

	stages, err := p.stages(st.Settings)
	if err != nil {
		return Summary{}, err
	}
	start, nodes, transitions, err := stages.topology(phase1, phase2)
	if err != nil {
		return Summary{}, err
	}
	graph, err := flow.New(start, nodes, transitions, flow.WithObserver[State](p.observe))
	if err != nil {
		return Summary{}, fmt.Errorf("build flow: %w", err)
	}

	p.reporter.Report(ctx, status.Start, "Starting pipeline (phase 1: %t, phase 2: %t)", phase1, phase2)
	path, err := graph.Run(ctx, st)
	p.logger.Debug(ctx, "pipeline.Run: visited %v", path)
	if err != nil {
		return st.Summary, fmt.Errorf("run flow: %w", err)
	}

	st.Summary.RunID = runID
	return st.Summary, nil
}

func (p *implPipeline) observe(ctx context.Context, from flow.StageID, on flow.Outcome, to flow.StageID) {
	p.logger.Debug(ctx, "flow: %s --%s--> %s", from, on, to)
}

// stages builds the coordinators the enabled phases need.
func (p *implPipeline) stages(s Settings) (stageSet, error) {
	set := stageSet{
		expand:   expandStage{enumerator: p.deps.Enumerator, reporter: p.reporter},
		collect:  collectStage{reporter: p.reporter},
		build:    buildStage{reporter: p.reporter},
		cleanup:  cleanupStage{reporter: p.reporter},
		complete: completeStage{reporter: p.reporter},
	}

	if s.RunPhase1 {
		if p.deps.Enumerator == nil || p.deps.NewDispatcher == nil {
			return stageSet{}, fmt.Errorf("%w: acquisition needs an enumerator and a dispatcher", config.ErrInvalid)
		}
		workers, err := AcquisitionWorkers(p.cfg)
		if err != nil {
			return stageSet{}, err
		}
		ps, err := ProcessorSettings(p.cfg, s.TempDir)
		if err != nil {
			return stageSet{}, err
		}
		set.acquire = acquireStage{
			coordinator: acquisition.New(p.deps.NewDispatcher(ps), workers, p.reporter, p.logger,
				acquisition.WithForceKillAfter(p.forceKillAfter)),
		}
	}

	if s.RunPhase2 {
		rs, err := RefinerSettings(p.cfg)
		if err != nil {
			return stageSet{}, err
		}
		set.refine = refineStage{
			refiner: refiner.New(rs, p.deps.Caller, p.deps.MetaCaller, p.reporter, p.logger),
		}
	}
	return set, nil
}

// globalStyles resolves the run-wide style selection.
func (p *implPipeline) globalStyles(names []string) ([]domain.Style, error) {
	if len(names) == 0 {
		if len(p.cfg.Styles) == 0 {
			return nil, fmt.Errorf("%w: no styles configured", config.ErrInvalid)
		}
		return p.cfg.Styles[:1], nil
	}
	return p.cfg.SelectStyles(names)
}

// inputs turns the request into enumerator inputs and per-job overrides.
func (p *implPipeline) inputs(req Request, phase1 bool) ([]enumerator.Input, map[int]refiner.JobOverride, error) {
	if len(req.Batch) == 0 {
		if phase1 && req.Input == "" {
			return nil, nil, fmt.Errorf("%w: an input source is required for acquisition", config.ErrInvalid)
		}
		if req.Input == "" {
			return nil, nil, nil
		}
		return []enumerator.Input{{Path: req.Input}}, nil, nil
	}

	inputs := make([]enumerator.Input, 0, len(req.Batch))
	overrides := make(map[int]refiner.JobOverride)
	for _, row := range req.Batch {
		inputs = append(inputs, enumerator.Input{Path: row.Input, JobID: row.JobID})

		if len(row.Styles) == 0 && row.Language == "" && row.OutputSubdir == "" {
			continue
		}
		styles, err := p.cfg.SelectStyles(row.Styles)
		if err != nil {
			return nil, nil, fmt.Errorf("batch row %d: %w", row.JobID, err)
		}
		overrides[row.JobID] = refiner.JobOverride{
			Styles:       styles,
			Language:     row.Language,
			OutputSubdir: row.OutputSubdir,
		}
	}
	return inputs, overrides, nil
}
