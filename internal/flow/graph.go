package flow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidGraph marks wiring mistakes found at construction.
	ErrInvalidGraph = errors.New("invalid flow graph")
	// ErrNoPhase is returned when a run enables neither phase.
	ErrNoPhase = errors.New("at least one phase must be enabled")
	// ErrUnknownOutcome means a stage returned a label it did not declare.
	ErrUnknownOutcome = errors.New("unknown stage outcome")
)

// Transition moves from one stage to the next on an outcome.
type Transition struct {
	From StageID
	On   Outcome
	To   StageID
}

type edge struct {
	from StageID
	on   Outcome
}

// Observer sees every transition taken.
type Observer func(ctx context.Context, from StageID, on Outcome, to StageID)

// Graph is a validated, acyclic stage machine over state S.
type Graph[S any] struct {
	start    StageID
	nodes    map[StageID]Node[S]
	next     map[edge]StageID
	observer Observer
}

type Option[S any] func(*Graph[S])

// WithObserver registers fn to be called on every transition.
func WithObserver[S any](fn Observer) Option[S] {
	return func(g *Graph[S]) { g.observer = fn }
}

// New validates the wiring: every declared outcome has exactly one transition,
// every transition names known stages, every stage is reachable and there are no cycles.
func New[S any](start StageID, nodes map[StageID]Node[S], transitions []Transition, opts ...Option[S]) (*Graph[S], error) {
	if _, ok := nodes[start]; !ok {
		return nil, fmt.Errorf("%w: start stage %q is not registered", ErrInvalidGraph, start)
	}
	if _, ok := nodes[End]; ok {
		return nil, fmt.Errorf("%w: %q is reserved", ErrInvalidGraph, End)
	}

	next := make(map[edge]StageID, len(transitions))
	for _, t := range transitions {
		if _, ok := nodes[t.From]; !ok {
			return nil, fmt.Errorf("%w: transition from unknown stage %q", ErrInvalidGraph, t.From)
		}
		if _, ok := nodes[t.To]; !ok && t.To != End {
			return nil, fmt.Errorf("%w: transition %s --%s--> unknown stage %q", ErrInvalidGraph, t.From, t.On, t.To)
		}
		e := edge{from: t.From, on: t.On}
		if _, dup := next[e]; dup {
			return nil, fmt.Errorf("%w: duplicate transition %s --%s-->", ErrInvalidGraph, t.From, t.On)
		}
		next[e] = t.To
	}

	for id, n := range nodes {
		declared := make(map[Outcome]bool)
		for _, o := range n.Outcomes() {
			declared[o] = true
			if _, ok := next[edge{from: id, on: o}]; !ok {
				return nil, fmt.Errorf("%w: stage %q has no transition for outcome %q", ErrInvalidGraph, id, o)
			}
		}
		for e := range next {
			if e.from == id && !declared[e.on] {
				return nil, fmt.Errorf("%w: stage %q never emits outcome %q", ErrInvalidGraph, id, e.on)
			}
		}
	}

	g := &Graph[S]{start: start, nodes: nodes, next: next}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.checkShape(); err != nil {
		return nil, err
	}
	return g, nil
}

// checkShape rejects cycles and unreachable stages.
func (g *Graph[S]) checkShape() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[StageID]int, len(g.nodes))

	var visit func(id StageID) error
	visit = func(id StageID) error {
		if id == End {
			return nil
		}
		switch state[id] {
		case visiting:
			return fmt.Errorf("%w: cycle through stage %q", ErrInvalidGraph, id)
		case done:
			return nil
		}
		state[id] = visiting
		for _, o := range g.nodes[id].Outcomes() {
			if err := visit(g.next[edge{from: id, on: o}]); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}

	if err := visit(g.start); err != nil {
		return err
	}

	var unreachable []string
	for id := range g.nodes {
		if state[id] != done {
			unreachable = append(unreachable, string(id))
		}
	}
	if len(unreachable) > 0 {
		sort.Strings(unreachable)
		return fmt.Errorf("%w: unreachable stage(s) %s", ErrInvalidGraph, strings.Join(unreachable, ", "))
	}
	return nil
}

// Run executes stages from the start until End and returns the visited path.
func (g *Graph[S]) Run(ctx context.Context, state *S) ([]StageID, error) {
	var path []StageID
	for current := g.start; current != End; {
		path = append(path, current)

		outcome := g.nodes[current].Run(ctx, state)
		to, ok := g.next[edge{from: current, on: outcome}]
		if !ok {
			return path, fmt.Errorf("%w: stage %q returned %q", ErrUnknownOutcome, current, outcome)
		}
		if g.observer != nil {
			g.observer(ctx, current, outcome, to)
		}
		current = to
	}
	return path, nil
}

// Start returns the first stage.
func (g *Graph[S]) Start() StageID { return g.start }
