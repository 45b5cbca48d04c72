package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/wordgraph/internal/logging"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/aretw0/wordgraph/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// DefaultMaxSessions caps the walkers a Manager keeps in memory.
const DefaultMaxSessions = 1024

// Walker is a single random-walk session.
type Walker interface {
	Step(ctx context.Context) (domain.StepResult, error)
	Run(ctx context.Context) (domain.StepResult, error)
	Reset()
	State() domain.WalkState
}

// Factory creates the walker of a new session.
type Factory func(sessionID string) Walker

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager keeps one walker per session ID and serializes access to each
// session, locally and, with a DistributedLocker, across replicas.
// Unused lock entries are garbage collected by reference counting.
type Manager struct {
	factory Factory
	store   ports.TraceStore

	mu      sync.Mutex            // Guards locks and walkers
	locks   map[string]*lockEntry // Active locks
	walkers map[string]Walker     // Live sessions

	maxSessions int

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock expiry.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithMaxSessions caps the number of walkers held in memory. When the cap is
// reached, idle and terminated walkers are evicted before a new session is
// refused with domain.ErrSessionLimit.
func WithMaxSessions(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxSessions = n
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager. store may be nil when traces are not
// persisted; Trace and List then report nothing.
func NewManager(factory Factory, store ports.TraceStore, opts ...Option) *Manager {
	m := &Manager{
		factory: factory,
		store:   store,
		locks:   make(map[string]*lockEntry),
		walkers: make(map[string]Walker),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),

		maxSessions: DefaultMaxSessions,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// walker returns the session walker, creating it on first use.
func (m *Manager) walker(sessionID string) (Walker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.walkers[sessionID]; ok {
		return w, nil
	}

	if len(m.walkers) >= m.maxSessions {
		m.evictFinished()
	}
	if len(m.walkers) >= m.maxSessions {
		return nil, fmt.Errorf("%w (limit %d)", domain.ErrSessionLimit, m.maxSessions)
	}

	w := m.factory(sessionID)
	m.walkers[sessionID] = w
	m.logger.Debug("Walk session created", "session_id", sessionID)
	return w, nil
}

// evictFinished drops walkers that are not mid-walk. Terminated walks already
// have their trace in the store. Caller holds m.mu.
func (m *Manager) evictFinished() {
	for id, w := range m.walkers {
		if !w.State().Walking() {
			delete(m.walkers, id)
			m.logger.Debug("Walk session evicted", "session_id", id)
		}
	}
}

// Step advances a session by one step, creating the session if needed.
func (m *Manager) Step(ctx context.Context, sessionID string) (domain.StepResult, error) {
	var res domain.StepResult
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		w, err := m.walker(sessionID)
		if err != nil {
			return err
		}
		res, err = w.Step(ctx)
		return err
	})
	return res, err
}

// Run walks a session until it ends.
func (m *Manager) Run(ctx context.Context, sessionID string) (domain.StepResult, error) {
	var res domain.StepResult
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		w, err := m.walker(sessionID)
		if err != nil {
			return err
		}
		res, err = w.Run(ctx)
		return err
	})
	return res, err
}

// State returns the session snapshot. An unknown session is idle.
func (m *Manager) State(sessionID string) domain.WalkState {
	m.mu.Lock()
	w, ok := m.walkers[sessionID]
	m.mu.Unlock()

	if !ok {
		return domain.NewWalkState()
	}
	return w.State()
}

// Reset returns a session to idle and forgets it.
func (m *Manager) Reset(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		w, ok := m.walkers[sessionID]
		delete(m.walkers, sessionID)
		m.mu.Unlock()

		if ok {
			w.Reset()
		}
		return nil
	})
}

// Delete forgets a session and removes its stored trace.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	if err := m.Reset(ctx, sessionID); err != nil {
		return err
	}
	if m.store == nil {
		return nil
	}
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// Trace loads the last persisted trace of a session.
func (m *Manager) Trace(ctx context.Context, sessionID string) (domain.Trace, error) {
	if m.store == nil {
		return nil, domain.ErrTraceNotFound
	}
	return m.store.Load(ctx, sessionID)
}

// List returns the sessions with a stored trace.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	if m.store == nil {
		return []string{}, nil
	}
	return m.store.List(ctx)
}

// Active returns the IDs of live sessions, sorted.
func (m *Manager) Active() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.walkers))
	for id := range m.walkers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Store returns the underlying trace store.
func (m *Manager) Store() ports.TraceStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return err
	}

	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
