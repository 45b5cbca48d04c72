package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/wordgraph/pkg/domain"
)

// BridgeMessage is the one-line answer to a bridge query.
func BridgeMessage(res domain.BridgeResult) string {
	if !res.Found() {
		return fmt.Sprintf("No bridge words from %s to %s!", res.From, res.To)
	}
	return fmt.Sprintf("The bridge words from %s to %s are: %s.", res.From, res.To, strings.Join(res.Words, ", "))
}

// PathsMarkdown lists every shortest path of set, one bullet each.
func PathsMarkdown(set domain.PathSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s → %s\n\n", set.From, set.To)
	if !set.Found() {
		fmt.Fprintf(&sb, "No path from %s to %s.\n", set.From, set.To)
		return sb.String()
	}
	for _, p := range set.Paths {
		fmt.Fprintf(&sb, "- %s (Length: %d)\n", domain.Trace(p.Nodes), p.Length)
	}
	return sb.String()
}

// PathsFromMarkdown renders the single-source table, one section per target
// in the given order.
func PathsFromMarkdown(source string, order []string, sets map[string]domain.PathSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Shortest paths from %s\n\n", source)
	for _, target := range order {
		set, ok := sets[target]
		if !ok {
			continue
		}
		sb.WriteString(PathsMarkdown(set))
		sb.WriteString("\n")
	}
	return sb.String()
}

// StepMessage describes a single walk step.
func StepMessage(res domain.StepResult) string {
	path := domain.Trace(res.Path).String()
	switch res.Kind {
	case domain.StepAdvanced:
		return fmt.Sprintf("-> %s    [%s]", res.Node, path)
	case domain.StepDeadEnd:
		return fmt.Sprintf("Walk ended: %s has no outgoing edges. [%s]", res.Node, path)
	case domain.StepCycleDetected:
		return fmt.Sprintf("Walk ended: edge into %s was already traversed. [%s]", res.Node, path)
	case domain.StepEmptyGraph:
		return "The graph has no nodes."
	}
	return string(res.Kind)
}
