package runtime_test

import (
	"testing"

	"github.com/aretw0/wordgraph/internal/runtime"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathEngine_AllShortestPaths(t *testing.T) {
	engine := runtime.NewPathEngine(fixtureCorpus())

	t.Run("Path Exists", func(t *testing.T) {
		set, err := engine.AllShortestPaths("new", "life")
		require.NoError(t, err)
		assert.Equal(t, domain.PathsFound, set.Outcome)
		assert.Equal(t, []domain.Path{{Nodes: []string{"new", "life"}, Length: 1}}, set.Paths)
	})

	t.Run("No Path", func(t *testing.T) {
		set, err := engine.AllShortestPaths("civilizations", "new")
		require.NoError(t, err)
		assert.Equal(t, domain.PathNone, set.Outcome)
		assert.Empty(t, set.Paths)
		assert.Equal(t, -1, set.Distance())
	})

	t.Run("Disconnected Sink To Life", func(t *testing.T) {
		set, err := engine.AllShortestPaths("civilizations", "life")
		require.NoError(t, err)
		assert.False(t, set.Found())
	})

	t.Run("Same Node", func(t *testing.T) {
		set, err := engine.AllShortestPaths("new", "new")
		require.NoError(t, err)
		assert.Equal(t, []domain.Path{{Nodes: []string{"new"}, Length: 0}}, set.Paths)
	})

	t.Run("Same Node Without Outgoing Edges", func(t *testing.T) {
		set, err := engine.AllShortestPaths("civilizations", "civilizations")
		require.NoError(t, err)
		assert.Equal(t, []domain.Path{{Nodes: []string{"civilizations"}, Length: 0}}, set.Paths)
	})

	t.Run("Source Missing", func(t *testing.T) {
		_, err := engine.AllShortestPaths("hello", "in")
		assert.ErrorIs(t, err, domain.ErrSourceNotFound)
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})

	t.Run("Target Missing", func(t *testing.T) {
		_, err := engine.AllShortestPaths("new", "in")
		assert.ErrorIs(t, err, domain.ErrTargetNotFound)
	})

	t.Run("Tied Paths Are All Returned", func(t *testing.T) {
		set, err := engine.AllShortestPaths("to", "new")
		require.NoError(t, err)
		assert.Equal(t, []domain.Path{
			{Nodes: []string{"to", "explore", "strange", "new"}, Length: 3},
			{Nodes: []string{"to", "seek", "out", "new"}, Length: 3},
		}, set.Paths)
	})
}

func TestPathEngine_EmptyGraph(t *testing.T) {
	engine := runtime.NewPathEngine(runtime.NewCorpus(nil))

	for _, pair := range [][2]string{{"new", "in"}, {"", ""}, {"a", "a"}} {
		_, err := engine.AllShortestPaths(pair[0], pair[1])
		assert.ErrorIs(t, err, domain.ErrEmptyGraph, "pair %v", pair)
	}

	// A single token is a known word but still no graph.
	_, err := runtime.NewPathEngine(runtime.NewCorpus([]string{"alone"})).AllShortestPaths("alone", "alone")
	assert.ErrorIs(t, err, domain.ErrEmptyGraph)
}

// Length is the sum of edge weights, not the hop count.
func TestPathEngine_WeightedTies(t *testing.T) {
	g := domain.NewWordGraph()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	for i := 0; i < 3; i++ {
		g.AddEdge("a", "d")
	}
	g.AddEdge("b", "d")
	g.AddEdge("c", "d")
	g.AddEdge("c", "d")

	engine := runtime.NewPathEngine(runtime.NewCorpusFromGraph(g))
	set, err := engine.AllShortestPaths("a", "d")
	require.NoError(t, err)

	assert.Equal(t, []domain.Path{
		{Nodes: []string{"a", "d"}, Length: 3},
		{Nodes: []string{"a", "c", "d"}, Length: 3},
		{Nodes: []string{"a", "b", "d"}, Length: 3},
	}, set.Paths)
	assert.Equal(t, 3, set.Distance())
}

func TestPathEngine_HeavierEdgeLoses(t *testing.T) {
	// a->b->c is 2 hops of weight 1; a->c directly has weight 5.
	tokens := []string{"a", "c", "a", "c", "a", "c", "a", "c", "a", "c", "x", "a", "b", "c"}
	engine := runtime.NewPathEngine(runtime.NewCorpus(tokens))

	set, err := engine.AllShortestPaths("a", "c")
	require.NoError(t, err)
	assert.Equal(t, []domain.Path{{Nodes: []string{"a", "b", "c"}, Length: 2}}, set.Paths)
}

func TestPathEngine_AllShortestPathsFrom(t *testing.T) {
	engine := runtime.NewPathEngine(fixtureCorpus())

	all := engine.AllShortestPathsFrom("new")
	assert.Len(t, all, 9, "every other word of the universe is a key")
	assert.NotContains(t, all, "new")

	assert.Equal(t, []domain.Path{{Nodes: []string{"new", "life", "and"}, Length: 2}}, all["and"].Paths)
	assert.Equal(t, []domain.Path{{Nodes: []string{"new", "worlds", "to", "explore"}, Length: 3}}, all["explore"].Paths)

	t.Run("Missing Source", func(t *testing.T) {
		assert.Empty(t, engine.AllShortestPathsFrom("hello"))
	})

	t.Run("Unreachable Targets", func(t *testing.T) {
		from := engine.AllShortestPathsFrom("civilizations")
		require.Len(t, from, 9)
		for target, set := range from {
			assert.Equal(t, domain.PathNone, set.Outcome, target)
		}
	})

	t.Run("Empty Graph", func(t *testing.T) {
		assert.Empty(t, runtime.NewPathEngine(runtime.NewCorpus(nil)).AllShortestPathsFrom("a"))
	})
}
