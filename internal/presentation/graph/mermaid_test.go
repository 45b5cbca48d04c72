package graph_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/wordgraph/internal/presentation/graph"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *domain.WordGraph {
	return domain.Build([]string{"new", "life", "and", "new", "civilizations", "end", "new", "life"})
}

func TestGenerateDOT(t *testing.T) {
	want := `digraph G {
    "new" -> "life" [label="2"];
    "new" -> "civilizations" [label="1"];
    "life" -> "and" [label="1"];
    "and" -> "new" [label="1"];
    "civilizations" -> "end" [label="1"];
    "end" -> "new" [label="1"];
}
`
	assert.Equal(t, want, graph.GenerateDOT(sample()))
}

func TestGenerateDOT_Empty(t *testing.T) {
	assert.Equal(t, "digraph G {\n}\n", graph.GenerateDOT(domain.NewWordGraph()))
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		overlay     *graph.GraphOverlay
		contains    []string
		notContains []string
	}{
		{
			name: "Nodes And Weighted Edges",
			contains: []string{
				"graph LR\n",
				`w_civilizations["civilizations"]`,
				`w_new -- "2" --> w_life`,
				`w_end -- "1" --> w_new`,
			},
			notContains: []string{"classDef"},
		},
		{
			name: "Walk Overlay",
			overlay: &graph.GraphOverlay{
				VisitedNodes: []string{"new", "life", "new"},
				CurrentNode:  "life",
			},
			contains: []string{
				"classDef visited",
				"class w_new visited;",
				"class w_life visited;",
				"class w_life current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(sample(), tt.overlay)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
			if tt.overlay != nil {
				assert.Equal(t, 1, strings.Count(out, "class w_new visited;"), "visited nodes are deduplicated")
			}
		})
	}
}

func TestOverlayFromWalk(t *testing.T) {
	assert.Nil(t, graph.OverlayFromWalk(domain.NewWalkState()))

	state := domain.NewWalkState()
	state.Status = domain.WalkTerminated
	state.Current = "a"
	state.Path = []string{"a", "b", "a", "b"}

	overlay := graph.OverlayFromWalk(state)
	require.NotNil(t, overlay)
	assert.Equal(t, "b", overlay.CurrentNode)
	assert.Equal(t, state.Path, overlay.VisitedNodes)
}

func TestGenerateListing(t *testing.T) {
	want := "new -> Neighbors: (life,2)  (civilizations,1)\n" +
		"life -> Neighbors: (and,1)\n" +
		"and -> Neighbors: (new,1)\n" +
		"civilizations -> Neighbors: (end,1)\n" +
		"end -> Neighbors: (new,1)\n"
	assert.Equal(t, want, graph.GenerateListing(sample()))
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := graph.Render(sample(), "svg", nil)
	assert.Error(t, err)

	out, err := graph.Render(sample(), graph.FormatText, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Neighbors")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := graph.WriteFile(dir, "graph.dot", "digraph G {\n}\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "graph.dot"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "digraph G {\n}\n", string(data))

	for _, name := range []string{"", "../graph.dot", "sub/graph.dot", "..", "bad name.dot", "graph-1.dot"} {
		_, err := graph.WriteFile(dir, name, "x")
		assert.ErrorIs(t, err, graph.ErrInvalidFileName, name)
	}
}
