package runtime

import (
	"math"
	"strings"

	"github.com/aretw0/wordgraph/pkg/domain"
)

// PathEngine enumerates every minimum-weight path between words.
//
// It runs Dijkstra over the corpus universe, keeping for each node the set of
// all predecessors that reach it at the current minimum distance, and then
// walks that predecessor DAG backwards to recover each tied path.
type PathEngine struct {
	corpus *Corpus
}

// NewPathEngine creates a path engine over corpus.
func NewPathEngine(corpus *Corpus) *PathEngine {
	return &PathEngine{corpus: corpus}
}

// shortestTree is the result of one single-source pass.
type shortestTree struct {
	source string
	dist   map[string]int
	preds  map[string][]string
}

// AllShortestPaths returns every shortest path from word1 to word2.
//
// Checks, in order: empty graph (domain.ErrEmptyGraph), unknown word1
// (domain.ErrSourceNotFound), unknown word2 (domain.ErrTargetNotFound).
// An unreachable target is a PathNone result.
func (p *PathEngine) AllShortestPaths(word1, word2 string) (domain.PathSet, error) {
	word1 = strings.ToLower(word1)
	word2 = strings.ToLower(word2)

	if p.corpus.Graph().IsEmpty() {
		return domain.PathSet{}, domain.ErrEmptyGraph
	}
	if !p.corpus.Contains(word1) {
		return domain.PathSet{}, domain.ErrSourceNotFound
	}
	if !p.corpus.Contains(word2) {
		return domain.PathSet{}, domain.ErrTargetNotFound
	}

	tree := p.dijkstra(word1)
	return p.collect(tree, word2), nil
}

// AllShortestPathsFrom returns the shortest paths from word1 to every other
// word of the universe, keyed by target. An empty graph or an unknown source
// yields an empty map; unreachable targets are present with PathNone.
func (p *PathEngine) AllShortestPathsFrom(word1 string) map[string]domain.PathSet {
	word1 = strings.ToLower(word1)
	out := make(map[string]domain.PathSet)

	if p.corpus.Graph().IsEmpty() || !p.corpus.Contains(word1) {
		return out
	}

	tree := p.dijkstra(word1)
	for _, target := range p.corpus.Universe() {
		if target == word1 {
			continue
		}
		out[target] = p.collect(tree, target)
	}
	return out
}

// dijkstra computes distances and tied-minimum predecessor sets from source.
// Minimum selection scans unvisited nodes in universe order; the first node
// with the lowest distance wins.
func (p *PathEngine) dijkstra(source string) shortestTree {
	g := p.corpus.Graph()
	universe := p.corpus.Universe()

	dist := make(map[string]int, len(universe))
	preds := make(map[string][]string, len(universe))
	for _, n := range universe {
		dist[n] = math.MaxInt
	}
	dist[source] = 0

	unvisited := make(map[string]struct{}, len(universe))
	for _, n := range universe {
		unvisited[n] = struct{}{}
	}

	for len(unvisited) > 0 {
		u := ""
		best := math.MaxInt
		for _, n := range universe {
			if _, ok := unvisited[n]; !ok {
				continue
			}
			if dist[n] < best {
				best = dist[n]
				u = n
			}
		}
		if u == "" {
			break // remaining nodes are unreachable
		}
		delete(unvisited, u)

		for _, nb := range g.Neighbors(u) {
			alt := dist[u] + nb.Weight
			cur, known := dist[nb.Word]
			if !known {
				cur = math.MaxInt
			}
			switch {
			case alt < cur:
				dist[nb.Word] = alt
				preds[nb.Word] = []string{u}
			case alt == cur:
				preds[nb.Word] = append(preds[nb.Word], u)
			}
		}
	}

	return shortestTree{source: source, dist: dist, preds: preds}
}

// collect reconstructs every path of tree that ends at target.
func (p *PathEngine) collect(tree shortestTree, target string) domain.PathSet {
	set := domain.PathSet{
		Outcome: domain.PathNone,
		From:    tree.source,
		To:      target,
		Paths:   []domain.Path{},
	}

	for _, chain := range backtrack(tree.preds, tree.source, target) {
		set.Paths = append(set.Paths, domain.Path{
			Nodes:  chain,
			Length: p.length(chain),
		})
	}
	if len(set.Paths) > 0 {
		set.Outcome = domain.PathsFound
	}
	return set
}

// backtrack enumerates, depth-first, every predecessor chain from target back
// to source and returns them in forward order. The predecessor graph is acyclic
// because edge weights are positive.
func backtrack(preds map[string][]string, source, target string) [][]string {
	var out [][]string
	stack := []string{target}

	var visit func(node string)
	visit = func(node string) {
		if node == source {
			chain := make([]string, len(stack))
			for i, n := range stack {
				chain[len(stack)-1-i] = n
			}
			out = append(out, chain)
			return
		}
		for _, pred := range preds[node] {
			stack = append(stack, pred)
			visit(pred)
			stack = stack[:len(stack)-1]
		}
	}
	visit(target)

	return out
}

// length sums the edge weights along nodes.
func (p *PathEngine) length(nodes []string) int {
	g := p.corpus.Graph()
	total := 0
	for i := 0; i < len(nodes)-1; i++ {
		w, _ := g.Weight(nodes[i], nodes[i+1])
		total += w
	}
	return total
}
