package domain

// WalkStatus defines where a walk session is in its lifecycle.
type WalkStatus string

const (
	WalkIdle       WalkStatus = "idle"       // No walk in progress
	WalkWalking    WalkStatus = "walking"    // Walk started, more steps possible
	WalkTerminated WalkStatus = "terminated" // Dead end or repeated edge reached
)

// StepKind describes what a single walk step did.
type StepKind string

const (
	StepAdvanced      StepKind = "advanced"       // Moved along a new edge
	StepDeadEnd       StepKind = "dead_end"       // Current node has no outgoing edges
	StepCycleDetected StepKind = "cycle_detected" // Chosen edge was already traversed
	StepEmptyGraph    StepKind = "empty_graph"    // Nothing to walk on
)

// Terminal reports whether the step ended the walk.
func (k StepKind) Terminal() bool {
	return k == StepDeadEnd || k == StepCycleDetected
}

// EdgeKey identifies a directed edge inside a walk.
type EdgeKey struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WalkState is the snapshot of one random-walk session.
type WalkState struct {
	Status WalkStatus `json:"status"`

	// Current is the node the walk stands on. Empty when idle.
	Current string `json:"current,omitempty"`

	// Path lists visited nodes in order. The terminating hop of a cycle is
	// appended, so the last node may repeat an earlier one.
	Path []string `json:"path"`

	// Visited holds every directed edge traversed in this walk.
	Visited map[EdgeKey]struct{} `json:"-"`
}

// NewWalkState creates an idle walk.
func NewWalkState() WalkState {
	return WalkState{
		Status:  WalkIdle,
		Path:    []string{},
		Visited: make(map[EdgeKey]struct{}),
	}
}

// Clone returns a deep copy so callers can keep a snapshot across steps.
func (s WalkState) Clone() WalkState {
	out := WalkState{
		Status:  s.Status,
		Current: s.Current,
		Path:    append([]string{}, s.Path...),
		Visited: make(map[EdgeKey]struct{}, len(s.Visited)),
	}
	for k := range s.Visited {
		out.Visited[k] = struct{}{}
	}
	return out
}

// Walking reports whether another step continues the current walk.
func (s WalkState) Walking() bool {
	return s.Status == WalkWalking
}

// StepResult is the outcome of one walk step.
type StepResult struct {
	Kind StepKind `json:"kind"`
	// Node is the node reached (or attempted, for a cycle) by this step.
	Node string `json:"node,omitempty"`
	// Path is the walk so far, including Node.
	Path []string `json:"path"`
}
