package domain

import (
	"strings"
	"sync"
)

// Neighbor is an outgoing edge seen from its source node.
type Neighbor struct {
	Word   string `json:"word"`
	Weight int    `json:"weight"`
}

// Edge is a directed, weighted word pair.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// adjacency keeps the neighbors of one source in insertion order.
type adjacency struct {
	order  []string
	weight map[string]int
}

// WordGraph is a directed graph of lower-cased words. The weight of an edge
// counts how many times its source was immediately followed by its destination.
//
// Iteration order (nodes and neighbors) is insertion order, which keeps
// path enumeration and tie-breaks reproducible.
//
// WordGraph is safe for concurrent use: reads take a shared lock.
type WordGraph struct {
	mu    sync.RWMutex
	nodes []string // every node, first-seen order
	seen  map[string]struct{}
	adj   map[string]*adjacency
	edges int
}

// NewWordGraph returns an empty graph.
func NewWordGraph() *WordGraph {
	return &WordGraph{
		seen: make(map[string]struct{}),
		adj:  make(map[string]*adjacency),
	}
}

// AddEdge records one occurrence of source followed by destination.
func (g *WordGraph) AddEdge(source, destination string) {
	source = strings.ToLower(source)
	destination = strings.ToLower(destination)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.touch(source)
	g.touch(destination)

	a, ok := g.adj[source]
	if !ok {
		a = &adjacency{weight: make(map[string]int)}
		g.adj[source] = a
	}
	if _, exists := a.weight[destination]; !exists {
		a.order = append(a.order, destination)
		g.edges++
	}
	a.weight[destination]++
}

func (g *WordGraph) touch(node string) {
	if _, ok := g.seen[node]; ok {
		return
	}
	g.seen[node] = struct{}{}
	g.nodes = append(g.nodes, node)
}

// Neighbors returns the outgoing edges of node. An unknown node, or one that
// only ever appeared as a destination, has no neighbors; the result is never nil.
func (g *WordGraph) Neighbors(node string) []Neighbor {
	node = strings.ToLower(node)

	g.mu.RLock()
	defer g.mu.RUnlock()

	a, ok := g.adj[node]
	if !ok {
		return []Neighbor{}
	}
	out := make([]Neighbor, 0, len(a.order))
	for _, w := range a.order {
		out = append(out, Neighbor{Word: w, Weight: a.weight[w]})
	}
	return out
}

// Weight returns the weight of source→destination and whether the edge exists.
func (g *WordGraph) Weight(source, destination string) (int, bool) {
	source = strings.ToLower(source)
	destination = strings.ToLower(destination)

	g.mu.RLock()
	defer g.mu.RUnlock()

	a, ok := g.adj[source]
	if !ok {
		return 0, false
	}
	w, ok := a.weight[destination]
	return w, ok
}

// Nodes returns the union of all sources and destinations.
func (g *WordGraph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// HasNode reports whether word appears as a source or a destination.
func (g *WordGraph) HasNode(word string) bool {
	word = strings.ToLower(word)

	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.seen[word]
	return ok
}

// Edges enumerates every edge, grouped by source in node order.
func (g *WordGraph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.edges)
	for _, src := range g.nodes {
		a, ok := g.adj[src]
		if !ok {
			continue
		}
		for _, dst := range a.order {
			out = append(out, Edge{From: src, To: dst, Weight: a.weight[dst]})
		}
	}
	return out
}

// Sources returns the nodes that have at least one outgoing edge.
func (g *WordGraph) Sources() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, 0, len(g.adj))
	for _, n := range g.nodes {
		if _, ok := g.adj[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of nodes.
func (g *WordGraph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of distinct directed edges.
func (g *WordGraph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}

// IsEmpty reports whether the graph has no edges at all.
func (g *WordGraph) IsEmpty() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adj) == 0
}
