package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/wordgraph/pkg/domain"
)

// GenerateListing prints the adjacency of every source node, one per line:
//
//	new -> Neighbors: (worlds,1)  (life,1)  (civilizations,1)
func GenerateListing(g *domain.WordGraph) string {
	var sb strings.Builder
	for _, node := range g.Sources() {
		parts := make([]string, 0)
		for _, nb := range g.Neighbors(node) {
			parts = append(parts, fmt.Sprintf("(%s,%d)", nb.Word, nb.Weight))
		}
		fmt.Fprintf(&sb, "%s -> Neighbors: %s\n", node, strings.Join(parts, "  "))
	}
	return sb.String()
}

// Format names an output format of the graph command and API.
type Format string

const (
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
	FormatText    Format = "text"
)

// Render serializes g in the requested format.
func Render(g *domain.WordGraph, format Format, overlay *GraphOverlay) (string, error) {
	switch format {
	case FormatDOT, "":
		return GenerateDOT(g), nil
	case FormatMermaid:
		return GenerateMermaid(g, overlay), nil
	case FormatText:
		return GenerateListing(g), nil
	}
	return "", fmt.Errorf("unknown format %q (want dot, mermaid or text)", format)
}
