package domain

// BridgeOutcome tells a successful bridge query with results apart from one without.
type BridgeOutcome string

const (
	BridgesFound BridgeOutcome = "found"
	BridgeNone   BridgeOutcome = "none"
)

// BridgeResult is the answer to a bridge-word query.
type BridgeResult struct {
	Outcome BridgeOutcome `json:"outcome"`
	From    string        `json:"from"`
	To      string        `json:"to"`
	Words   []string      `json:"words"`
}

// Found reports whether at least one bridge word exists.
func (r BridgeResult) Found() bool {
	return r.Outcome == BridgesFound && len(r.Words) > 0
}

// PathOutcome tells a reachable target apart from an unreachable one.
type PathOutcome string

const (
	PathsFound PathOutcome = "found"
	PathNone   PathOutcome = "none"
)

// Path is one minimum-weight route. Length is the sum of traversed edge weights.
type Path struct {
	Nodes  []string `json:"nodes"`
	Length int      `json:"length"`
}

// PathSet holds every tied shortest path between two words.
type PathSet struct {
	Outcome PathOutcome `json:"outcome"`
	From    string      `json:"from"`
	To      string      `json:"to"`
	Paths   []Path      `json:"paths"`
}

// Found reports whether the target is reachable.
func (p PathSet) Found() bool {
	return p.Outcome == PathsFound && len(p.Paths) > 0
}

// Distance returns the shared length of the paths, or -1 when none exist.
func (p PathSet) Distance() int {
	if !p.Found() {
		return -1
	}
	return p.Paths[0].Length
}
