/*
Package wordgraph builds a weighted, directed word-adjacency graph from text
and answers questions about it.

Every pair of consecutive words in the corpus adds one occurrence to the edge
between them; the number of occurrences is the edge weight. On top of that
graph the engine offers:

  - Bridge words: the words b such that word1 -> b -> word2.
  - Text generation: insert a random bridge word between each adjacent pair
    of an input sentence.
  - Shortest paths: every tied minimum-weight path between two words, or from
    one word to all others.
  - Random walks: step from a random node along random outgoing edges until a
    dead end or an already traversed edge, then persist the trace.

# Usage

	eng := wordgraph.NewFromText("To explore strange new worlds, To seek out new life and new civilizations.",
		wordgraph.WithSeed(42),
		wordgraph.WithTraceStore(file.New(".")),
	)

	res, _ := eng.BridgeWords(ctx, "new", "and") // [life]
	set, _ := eng.ShortestPaths(ctx, "to", "new")
	step, _ := eng.Run(ctx)

Words are compared case-insensitively. Queries on words outside the corpus
return domain.ErrNodeNotFound; path queries on a graph without edges return
domain.ErrEmptyGraph.

The engine is safe for concurrent use. Independent walk sessions are created
with NewWalker or managed by pkg/session.
*/
package wordgraph
