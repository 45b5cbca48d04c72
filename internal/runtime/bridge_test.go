package runtime_test

import (
	"testing"

	"github.com/aretw0/wordgraph/internal/runtime"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeFinder_Query(t *testing.T) {
	finder := runtime.NewBridgeFinder(fixtureCorpus(), fixedRand{})

	tests := []struct {
		name    string
		word1   string
		word2   string
		outcome domain.BridgeOutcome
		words   []string
		wantErr error
	}{
		{name: "Single Bridge", word1: "new", word2: "and", outcome: domain.BridgesFound, words: []string{"life"}},
		{name: "Case Insensitive", word1: "NEW", word2: "And", outcome: domain.BridgesFound, words: []string{"life"}},
		{name: "Sink Has No Bridges", word1: "civilizations", word2: "life", outcome: domain.BridgeNone},
		{name: "Connected Words Without Bridge", word1: "worlds", word2: "out", outcome: domain.BridgeNone},
		{name: "Unknown Word", word1: "live", word2: "to", wantErr: domain.ErrNodeNotFound},
		{name: "Unknown Second Word", word1: "to", word2: "hello", wantErr: domain.ErrNodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := finder.Query(tt.word1, tt.word2)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, res.Outcome)
			if tt.words == nil {
				assert.Empty(t, res.Words)
			} else {
				assert.Equal(t, tt.words, res.Words)
			}
		})
	}
}

func TestBridgeFinder_MultipleBridgesInNeighborOrder(t *testing.T) {
	g := domain.NewWordGraph()
	g.AddEdge("a", "y")
	g.AddEdge("a", "x")
	g.AddEdge("a", "z")
	g.AddEdge("x", "b")
	g.AddEdge("y", "b")

	finder := runtime.NewBridgeFinder(runtime.NewCorpusFromGraph(g), fixedRand{})
	res, err := finder.Query("a", "b")
	require.NoError(t, err)
	assert.True(t, res.Found())
	assert.Equal(t, []string{"y", "x"}, res.Words)
}

func TestBridgeFinder_Generate(t *testing.T) {
	finder := runtime.NewBridgeFinder(fixtureCorpus(), fixedRand{})

	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"Insert Bridge", []string{"new", "and"}, "new life and"},
		{"Keeps Input Case", []string{"Explore", "new"}, "Explore strange new"},
		{"Several Pairs", []string{"strange", "worlds", "seek"}, "strange new worlds to seek"},
		{"Unknown Words Pass Through", []string{"hello", "new", "world"}, "hello new world"},
		{"Single Token Echo", []string{"alone"}, "alone"},
		{"Empty Input", []string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, finder.Generate(tt.input))
		})
	}
}

func TestBridgeFinder_GenerateUsesRandomSource(t *testing.T) {
	g := domain.NewWordGraph()
	g.AddEdge("a", "x")
	g.AddEdge("a", "y")
	g.AddEdge("x", "b")
	g.AddEdge("y", "b")
	corpus := runtime.NewCorpusFromGraph(g)

	assert.Equal(t, "a x b", runtime.NewBridgeFinder(corpus, fixedRand{n: 0}).Generate([]string{"a", "b"}))
	assert.Equal(t, "a y b", runtime.NewBridgeFinder(corpus, fixedRand{n: 1}).Generate([]string{"a", "b"}))
}
