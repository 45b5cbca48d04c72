package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/wordgraph/pkg/domain"
)

// GraphOverlay contains walk state to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// OverlayFromWalk builds an overlay from a walk snapshot. An idle walk has none.
func OverlayFromWalk(state domain.WalkState) *GraphOverlay {
	if len(state.Path) == 0 {
		return nil
	}
	current := state.Current
	if state.Status == domain.WalkTerminated {
		current = state.Path[len(state.Path)-1]
	}
	return &GraphOverlay{
		VisitedNodes: append([]string{}, state.Path...),
		CurrentNode:  current,
	}
}

// GenerateMermaid produces a left-to-right Mermaid flowchart of g.
// Every node is declared once in graph order, sinks included, and each edge
// carries its weight as a label. Overlay styles are applied if provided.
func GenerateMermaid(g *domain.WordGraph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, node := range g.Nodes() {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", mermaidID(node), mermaidLabel(node))
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(&sb, "    %s -- \"%d\" --> %s\n", mermaidID(e.From), e.Weight, mermaidID(e.To))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills under both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, word := range overlay.VisitedNodes {
			id := mermaidID(word)
			if word == "" || visited[id] {
				continue
			}
			visited[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", id)
		}

		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", mermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

// mermaidID prefixes words so keywords such as "end" or "graph" stay valid ids.
func mermaidID(word string) string {
	var sb strings.Builder
	sb.WriteString("w_")
	for _, r := range word {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func mermaidLabel(word string) string {
	return strings.ReplaceAll(word, "\"", "'")
}
