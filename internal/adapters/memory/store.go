package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/wordgraph/pkg/domain"
)

// Store implements ports.TraceStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Trace
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Trace),
	}
}

// Save keeps a copy of the trace, replacing the previous one.
func (s *Store) Save(ctx context.Context, sessionID string, trace domain.Trace) error {
	copied := append(domain.Trace{}, trace...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load returns a copy so callers can't mutate the stored trace.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.Trace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trace, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrTraceNotFound
	}
	return append(domain.Trace{}, trace...), nil
}

// Delete removes the trace.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the stored session IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	return sessions, nil
}
