/*
Package domain contains the core domain models of the wordgraph engine.

It defines the word adjacency graph, the results returned by queries and the
state of a random walk. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - WordGraph: Directed graph of lower-cased words, weighted by co-occurrence.
  - BridgeResult / PathSet: Tagged query results (found vs. none).
  - WalkState: Runtime snapshot of a random walk (Status, Current, Path, Visited edges).
  - Trace: Persisted form of a finished walk ("a -> b -> c").
*/
package domain
