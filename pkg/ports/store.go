package ports

import (
	"context"

	"github.com/aretw0/wordgraph/pkg/domain"
)

// TraceStore defines where finished random walks are persisted.
// Saving a trace for a session overwrites any previous trace of that session.
type TraceStore interface {
	// Save persists the trace for a given session ID.
	Save(ctx context.Context, sessionID string, trace domain.Trace) error

	// Load retrieves the last trace for a given session ID.
	// Returns domain.ErrTraceNotFound if the session has no trace.
	Load(ctx context.Context, sessionID string) (domain.Trace, error)

	// Delete removes the trace for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the session IDs that have a stored trace.
	List(ctx context.Context) ([]string, error)
}
