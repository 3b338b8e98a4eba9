package pipeline

import (
	"github.com/nguyentantai21042004/bodhiflow/internal/acquisition"
	"github.com/nguyentantai21042004/bodhiflow/internal/domain"
	"github.com/nguyentantai21042004/bodhiflow/internal/enumerator"
	"github.com/nguyentantai21042004/bodhiflow/internal/flow"
	"github.com/nguyentantai21042004/bodhiflow/internal/refiner"
)

// stageSet holds one run's stage instances.
type stageSet struct {
	expand   expandStage
	acquire  acquireStage
	collect  collectStage
	build    buildStage
	refine   refineStage
	cleanup  cleanupStage
	complete completeStage
}

func (s stageSet) node(id flow.StageID) flow.Node[State] {
	switch id {
	case StageExpandInput:
		return flow.Bind[State, expandInput, enumerator.Result](s.expand)
	case StageAcquire:
		return flow.Bind[State, []domain.Job, acquisition.Outcome](s.acquire)
	case StageCollectTranscripts:
		return flow.Bind[State, collectInput, []string](s.collect)
	case StageBuildTasks:
		return flow.Bind[State, refiner.TaskInput, []domain.RefinementTask](s.build)
	case StageRefine:
		return flow.Bind[State, []domain.RefinementTask, refiner.Outcome](s.refine)
	case StageCleanup:
		return flow.Bind[State, string, error](s.cleanup)
	case StageComplete:
		return flow.Bind[State, Summary, Summary](s.complete)
	}
	return nil
}

func (s stageSet) nodes(ids ...flow.StageID) map[flow.StageID]flow.Node[State] {
	m := make(map[flow.StageID]flow.Node[State], len(ids))
	for _, id := range ids {
		m[id] = s.node(id)
	}
	return m
}

// topology returns the start stage, nodes and transitions for the enabled phases.
func (s stageSet) topology(phase1, phase2 bool) (flow.StageID, map[flow.StageID]flow.Node[State], []flow.Transition, error) {
	switch {
	case phase1 && phase2:
		nodes := s.nodes(
			StageExpandInput,
			StageAcquire,
			StageCollectTranscripts,
			StageBuildTasks,
			StageRefine,
			StageCleanup,
			StageComplete,
		)
		return StageExpandInput, nodes, []flow.Transition{
			{From: StageExpandInput, On: OutcomeStartAcquisition, To: StageAcquire},
			{From: StageExpandInput, On: OutcomeNoInput, To: StageCollectTranscripts},
			{From: StageAcquire, On: OutcomeAcquired, To: StageCollectTranscripts},
			{From: StageCollectTranscripts, On: OutcomeCollected, To: StageBuildTasks},
			{From: StageBuildTasks, On: OutcomeStartRefinement, To: StageRefine},
			{From: StageBuildTasks, On: OutcomeNoTasks, To: StageCleanup},
			{From: StageRefine, On: OutcomeRefined, To: StageCleanup},
			{From: StageCleanup, On: OutcomeCleaned, To: StageComplete},
			{From: StageComplete, On: OutcomeDone, To: flow.End},
		}, nil

	case phase1:
		nodes := s.nodes(
			StageExpandInput,
			StageAcquire,
			StageCleanup,
			StageComplete,
		)
		return StageExpandInput, nodes, []flow.Transition{
			{From: StageExpandInput, On: OutcomeStartAcquisition, To: StageAcquire},
			{From: StageExpandInput, On: OutcomeNoInput, To: StageComplete},
			{From: StageAcquire, On: OutcomeAcquired, To: StageCleanup},
			{From: StageCleanup, On: OutcomeCleaned, To: StageComplete},
			{From: StageComplete, On: OutcomeDone, To: flow.End},
		}, nil

	case phase2:
		nodes := s.nodes(
			StageCollectTranscripts,
			StageBuildTasks,
			StageRefine,
			StageComplete,
		)
		return StageCollectTranscripts, nodes, []flow.Transition{
			{From: StageCollectTranscripts, On: OutcomeCollected, To: StageBuildTasks},
			{From: StageBuildTasks, On: OutcomeStartRefinement, To: StageRefine},
			{From: StageBuildTasks, On: OutcomeNoTasks, To: StageComplete},
			{From: StageRefine, On: OutcomeRefined, To: StageComplete},
			{From: StageComplete, On: OutcomeDone, To: flow.End},
		}, nil
	}
	return "", nil, nil, flow.ErrNoPhase
}
