package flow

import "context"

// StageID names a stage in a graph.
type StageID string

// End is the terminal pseudo stage.
const End StageID = "end"

// Outcome is the edge label a stage picks when it finishes.
type Outcome string

// Stage is the three step contract: Prepare reads state, Execute works only on
// its input, Finalize writes back and picks the outbound edge.
type Stage[S, I, O any] interface {
	Prepare(state *S) I
	Execute(ctx context.Context, in I) O
	Finalize(state *S, out O) Outcome
	// Outcomes lists every label Finalize may return.
	Outcomes() []Outcome
}

// Node is a stage with its input and output types erased.
type Node[S any] interface {
	Run(ctx context.Context, state *S) Outcome
	Outcomes() []Outcome
}

type boundStage[S, I, O any] struct {
	stage Stage[S, I, O]
}

// Bind adapts a Stage into a Node.
func Bind[S, I, O any](s Stage[S, I, O]) Node[S] {
	return boundStage[S, I, O]{stage: s}
}

func (b boundStage[S, I, O]) Run(ctx context.Context, state *S) Outcome {
	in := b.stage.Prepare(state)
	out := b.stage.Execute(ctx, in)
	return b.stage.Finalize(state, out)
}

func (b boundStage[S, I, O]) Outcomes() []Outcome {
	return b.stage.Outcomes()
}
