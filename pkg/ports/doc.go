/*
Package ports defines the driven ports (interfaces) for the wordgraph engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various storage backends and corpus sources.

# Key Interfaces

  - TraceStore: Responsible for persisting the trace of a finished random walk.
  - DistributedLocker: Provides distributed locking for concurrent walk sessions.
  - CorpusSource: Responsible for producing the token sequence of a document.
*/
package ports
