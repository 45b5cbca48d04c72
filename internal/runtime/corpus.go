package runtime

import (
	"strings"
	"sync"

	"github.com/aretw0/wordgraph/pkg/domain"
)

// Corpus bundles a word graph with the token sequence it was built from.
// The token sequence is the authoritative node universe: existence checks and
// shortest-path tables are based on it, extended with any node that was added
// to the graph directly.
type Corpus struct {
	graph *domain.WordGraph

	mu     sync.RWMutex
	tokens []string
	index  map[string]struct{}
}

// NewCorpus builds the graph for tokens.
func NewCorpus(tokens []string) *Corpus {
	c := &Corpus{
		graph: domain.NewWordGraph(),
		index: make(map[string]struct{}),
	}
	c.Ingest(tokens)
	return c
}

// NewCorpusFromGraph wraps an existing graph. Its nodes form the universe.
func NewCorpusFromGraph(g *domain.WordGraph) *Corpus {
	return &Corpus{
		graph: g,
		index: make(map[string]struct{}),
	}
}

// Ingest appends tokens to the universe and adds their consecutive pairs to the graph.
func (c *Corpus) Ingest(tokens []string) {
	c.mu.Lock()
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		c.tokens = append(c.tokens, tok)
		c.index[tok] = struct{}{}
	}
	c.mu.Unlock()

	c.graph.AddTokens(tokens)
}

// Graph returns the underlying word graph.
func (c *Corpus) Graph() *domain.WordGraph {
	return c.graph
}

// Tokens returns a copy of the ingested token sequence.
func (c *Corpus) Tokens() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string{}, c.tokens...)
}

// Contains reports whether word belongs to the node universe.
func (c *Corpus) Contains(word string) bool {
	word = strings.ToLower(word)

	c.mu.RLock()
	_, ok := c.index[word]
	c.mu.RUnlock()

	return ok || c.graph.HasNode(word)
}

// Universe returns every known word once: tokens in first-appearance order,
// then graph-only nodes in graph order.
func (c *Corpus) Universe() []string {
	c.mu.RLock()
	out := make([]string, 0, len(c.index))
	seen := make(map[string]struct{}, len(c.index))
	for _, tok := range c.tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	c.mu.RUnlock()

	for _, n := range c.graph.Nodes() {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
