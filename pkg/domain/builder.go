package domain

// Build creates a graph from an ordered token sequence, adding one edge
// occurrence per consecutive pair.
func Build(tokens []string) *WordGraph {
	g := NewWordGraph()
	g.AddTokens(tokens)
	return g
}

// AddTokens adds the consecutive pairs of tokens to g. Sequences shorter
// than two tokens add nothing.
func (g *WordGraph) AddTokens(tokens []string) {
	for i := 0; i < len(tokens)-1; i++ {
		g.AddEdge(tokens[i], tokens[i+1])
	}
}
