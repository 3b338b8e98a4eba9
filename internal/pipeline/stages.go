package pipeline

import (
	"context"
	"os"

	"github.com/nguyentantai21042004/bodhiflow/internal/acquisition"
	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/enumerator"
	"github.com/nguyentantai21042004/bodhiflow/internal/flow"
	"github.com/nguyentantai21042004/bodhiflow/internal/refiner"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
	"github.com/nguyentantai21042004/bodhiflow/internal/storage"
)

const (
	StageExpandInput        flow.StageID = "expand_input"
	StageAcquire            flow.StageID = "acquire"
	StageCollectTranscripts flow.StageID = "collect_transcripts"
	StageBuildTasks         flow.StageID = "build_tasks"
	StageRefine             flow.StageID = "refine"
	StageCleanup            flow.StageID = "cleanup"
	StageComplete           flow.StageID = "complete"
)

const (
	OutcomeStartAcquisition flow.Outcome = "start_parallel_acquisition"
	OutcomeNoInput          flow.Outcome = "phase_1_complete_no_input"
	OutcomeAcquired         flow.Outcome = "phase_1_complete"
	OutcomeCollected        flow.Outcome = "transcripts_collected"
	OutcomeStartRefinement  flow.Outcome = "start_async_refinement"
	OutcomeNoTasks          flow.Outcome = "phase_2_complete_no_tasks"
	OutcomeRefined          flow.Outcome = "phase_2_complete"
	OutcomeCleaned          flow.Outcome = "cleanup_complete"
	OutcomeDone             flow.Outcome = "flow_complete"
)

// expandStage turns input descriptors into the job queue.
type expandStage struct {
	enumerator enumerator.Enumerator
	reporter   status.Reporter
}

type expandInput struct {
	inputs          []enumerator.Input
	opts            enumerator.Options
	resume          bool
	intermediateDir string
}

func (s expandStage) Prepare(st *State) expandInput {
	return expandInput{
		inputs: st.Inputs,
		opts: enumerator.Options{
			StartIndex: st.Settings.StartIndex,
			EndIndex:   st.Settings.EndIndex,
			FolderHint: st.Settings.FolderHint,
			Recursive:  st.Settings.Recursive,
		},
		resume:          st.Settings.Resume,
		intermediateDir: st.Settings.IntermediateDir,
	}
}

func (s expandStage) Execute(ctx context.Context, in expandInput) enumerator.Result {
	if in.resume {
		titles, err := storage.ExistingTitles(in.intermediateDir)
		if err != nil {
			s.reporter.Report(ctx, status.Warning, "Resume mode: cannot read existing transcripts: %v", err)
			titles = map[string]bool{}
		}
		s.reporter.Report(ctx, status.Info, "Resume mode: found %d existing transcript(s), retrying source(s) without one", len(titles))
		in.opts.ExistingTitles = titles
	}

	return s.enumerator.Enumerate(ctx, in.inputs, in.opts)
}

func (s expandStage) Finalize(st *State, res enumerator.Result) flow.Outcome {
	st.Queue = res.Jobs
	st.ResumeSkipped = res.Skipped
	if len(res.Jobs) == 0 {
		return OutcomeNoInput
	}
	return OutcomeStartAcquisition
}

func (expandStage) Outcomes() []flow.Outcome {
	return []flow.Outcome{OutcomeStartAcquisition, OutcomeNoInput}
}

// acquireStage runs the job queue through the acquisition coordinator.
type acquireStage struct {
	coordinator acquisition.Coordinator
}

func (s acquireStage) Prepare(st *State) []domain.Job { return st.Queue }

func (s acquireStage) Execute(ctx context.Context, jobs []domain.Job) acquisition.Outcome {
	return s.coordinator.Run(ctx, jobs)
}

func (s acquireStage) Finalize(st *State, out acquisition.Outcome) flow.Outcome {
	st.Phase1 = out
	st.Phase1Ran = true
	st.TranscriptJobs = out.TranscriptJobs
	st.TranscriptFiles = nil
	for _, r := range out.Results {
		if r.Status == domain.StatusSuccess && r.TranscriptFile != "" {
			st.TranscriptFiles = append(st.TranscriptFiles, r.TranscriptFile)
		}
	}
	return OutcomeAcquired
}

func (acquireStage) Outcomes() []flow.Outcome { return []flow.Outcome{OutcomeAcquired} }

// collectStage picks the transcripts phase 2 works on. Phase-2-only and resume
// runs discover them on disk instead of trusting this run's results.
type collectStage struct {
	reporter status.Reporter
}

type collectInput struct {
	discover bool
	dir      string
	files    []string
}

func (s collectStage) Prepare(st *State) collectInput {
	return collectInput{
		discover: !st.Settings.RunPhase1 || st.Settings.Resume,
		dir:      st.Settings.IntermediateDir,
		files:    st.TranscriptFiles,
	}
}

func (s collectStage) Execute(ctx context.Context, in collectInput) []string {
	if !in.discover {
		return in.files
	}
	files, err := storage.DiscoverTranscripts(in.dir)
	if err != nil {
		s.reporter.Report(ctx, status.Error, "Cannot discover transcripts: %v", err)
		return nil
	}
	s.reporter.Report(ctx, status.Info, "Found %d transcript(s) in %s", len(files), in.dir)
	return files
}

func (s collectStage) Finalize(st *State, files []string) flow.Outcome {
	st.TranscriptFiles = files
	return OutcomeCollected
}

func (collectStage) Outcomes() []flow.Outcome { return []flow.Outcome{OutcomeCollected} }

// buildStage expands transcripts x styles into refinement tasks.
type buildStage struct {
	reporter status.Reporter
}

func (s buildStage) Prepare(st *State) refiner.TaskInput {
	return refiner.TaskInput{
		TranscriptFiles: st.TranscriptFiles,
		Styles:          st.Settings.Styles,
		OutputDir:       st.Settings.OutputDir,
		TranscriptJobs:  st.TranscriptJobs,
		Overrides:       st.Overrides,
	}
}

func (s buildStage) Execute(ctx context.Context, in refiner.TaskInput) []domain.RefinementTask {
	if len(in.TranscriptFiles) == 0 {
		s.reporter.Report(ctx, status.Warning, "No transcript files found for refinement")
		return nil
	}
	tasks := refiner.BuildTasks(in)
	s.reporter.Report(ctx, status.Info, "Created %d refinement task(s)", len(tasks))
	return tasks
}

func (s buildStage) Finalize(st *State, tasks []domain.RefinementTask) flow.Outcome {
	st.Tasks = tasks
	if len(tasks) == 0 {
		return OutcomeNoTasks
	}
	return OutcomeStartRefinement
}

func (buildStage) Outcomes() []flow.Outcome {
	return []flow.Outcome{OutcomeStartRefinement, OutcomeNoTasks}
}

// refineStage runs the task list through the refiner.
type refineStage struct {
	refiner refiner.Refiner
}

func (s refineStage) Prepare(st *State) []domain.RefinementTask { return st.Tasks }

func (s refineStage) Execute(ctx context.Context, tasks []domain.RefinementTask) refiner.Outcome {
	return s.refiner.Run(ctx, tasks)
}

func (s refineStage) Finalize(st *State, out refiner.Outcome) flow.Outcome {
	st.Phase2 = out
	st.Phase2Ran = true
	return OutcomeRefined
}

func (refineStage) Outcomes() []flow.Outcome { return []flow.Outcome{OutcomeRefined} }

// cleanupStage removes the run's temp directory. Failure only warns.
type cleanupStage struct {
	reporter status.Reporter
}

func (s cleanupStage) Prepare(st *State) string { return st.Settings.TempDir }

func (s cleanupStage) Execute(ctx context.Context, dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		s.reporter.Report(ctx, status.Warning, "Failed to clean temporary files: %v", err)
		return err
	}
	s.reporter.Report(ctx, status.Info, "Temporary files cleaned up")
	return nil
}

func (s cleanupStage) Finalize(st *State, _ error) flow.Outcome { return OutcomeCleaned }

func (cleanupStage) Outcomes() []flow.Outcome { return []flow.Outcome{OutcomeCleaned} }

// completeStage summarizes the run.
type completeStage struct {
	reporter status.Reporter
}

func (s completeStage) Prepare(st *State) Summary { return summarize(st) }

func (s completeStage) Execute(ctx context.Context, sum Summary) Summary {
	if ctx.Err() != nil {
		sum.Cancelled = true
	}
	kind := status.Finish
	if sum.Cancelled {
		kind = status.Warning
	}
	s.reporter.Report(ctx, kind, "%s", sum.String())
	return sum
}

func (s completeStage) Finalize(st *State, sum Summary) flow.Outcome {
	st.Summary = sum
	return OutcomeDone
}

func (completeStage) Outcomes() []flow.Outcome { return []flow.Outcome{OutcomeDone} }
