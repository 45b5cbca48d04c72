package runtime

import (
	"github.com/aretw0/wordgraph/pkg/domain"
)

// WalkEngine computes random-walk transitions. It holds no session state:
// Transition takes a state and returns the next one, so the same engine can
// serve many sessions. Persistence happens outside, in Walker.
type WalkEngine struct {
	graph *domain.WordGraph
	rng   Rand
}

// NewWalkEngine creates a walk engine. A nil rng gets a time-seeded source.
func NewWalkEngine(graph *domain.WordGraph, rng Rand) *WalkEngine {
	if rng == nil {
		rng = NewRand(0)
	}
	return &WalkEngine{graph: graph, rng: rng}
}

// Transition performs one step.
//
// From an idle or terminated state it starts a new walk at a uniformly random
// node and immediately attempts the first hop. A walking state either advances
// along a random outgoing edge, ends on a dead end, or ends when the chosen
// directed edge was already traversed (the repeated node is still appended).
//
// The input state is not modified.
func (w *WalkEngine) Transition(state domain.WalkState) (domain.WalkState, domain.StepResult) {
	next := state.Clone()

	if next.Status != domain.WalkWalking {
		nodes := w.graph.Nodes()
		if len(nodes) == 0 {
			return domain.NewWalkState(), domain.StepResult{Kind: domain.StepEmptyGraph, Path: []string{}}
		}
		start := nodes[w.rng.Intn(len(nodes))]
		next = domain.NewWalkState()
		next.Status = domain.WalkWalking
		next.Current = start
		next.Path = []string{start}
	}

	neighbors := w.graph.Neighbors(next.Current)
	if len(neighbors) == 0 {
		next.Status = domain.WalkTerminated
		return next, domain.StepResult{
			Kind: domain.StepDeadEnd,
			Node: next.Current,
			Path: append([]string{}, next.Path...),
		}
	}

	chosen := neighbors[w.rng.Intn(len(neighbors))].Word
	edge := domain.EdgeKey{From: next.Current, To: chosen}

	next.Path = append(next.Path, chosen)
	if _, seen := next.Visited[edge]; seen {
		next.Status = domain.WalkTerminated
		return next, domain.StepResult{
			Kind: domain.StepCycleDetected,
			Node: chosen,
			Path: append([]string{}, next.Path...),
		}
	}

	next.Visited[edge] = struct{}{}
	next.Current = chosen
	return next, domain.StepResult{
		Kind: domain.StepAdvanced,
		Node: chosen,
		Path: append([]string{}, next.Path...),
	}
}
