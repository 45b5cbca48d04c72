package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/wordgraph/internal/logging"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/aretw0/wordgraph/pkg/ports"
)

// DefaultSessionID is the session used when none is given. With the file
// store in the working directory it maps to random_walk.txt.
const DefaultSessionID = "random_walk"

// Walker owns the state of a single walk session and persists its trace when
// the walk ends. Step, Run and Reset are serialized by an internal mutex.
type Walker struct {
	engine    *WalkEngine
	store     ports.TraceStore
	sessionID string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	mu    sync.Mutex
	state domain.WalkState
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithTraceStore sets where finished walks are written. Without a store the
// trace is kept in memory only.
func WithTraceStore(store ports.TraceStore) WalkerOption {
	return func(w *Walker) {
		w.store = store
	}
}

// WithSessionID names the walk session (and therefore its trace).
func WithSessionID(id string) WalkerOption {
	return func(w *Walker) {
		if id != "" {
			w.sessionID = id
		}
	}
}

// WithWalkHooks registers observability hooks.
func WithWalkHooks(hooks domain.LifecycleHooks) WalkerOption {
	return func(w *Walker) {
		w.hooks = hooks
	}
}

// WithWalkLogger sets the logger used for persistence failures.
func WithWalkLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWalker creates an idle walk session.
func NewWalker(engine *WalkEngine, opts ...WalkerOption) *Walker {
	w := &Walker{
		engine:    engine,
		sessionID: DefaultSessionID,
		logger:    logging.NewNop(),
		state:     domain.NewWalkState(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SessionID returns the session name.
func (w *Walker) SessionID() string {
	return w.sessionID
}

// State returns a snapshot of the current walk.
func (w *Walker) State() domain.WalkState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

// Step advances the walk by one transition.
//
// An empty graph returns domain.ErrEmptyGraph. When the step ends the walk the
// trace is saved; a save failure is returned wrapped in domain.ErrTraceWrite
// together with the valid step result, and the terminated state is kept.
func (w *Walker) Step(ctx context.Context) (domain.StepResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step(ctx)
}

func (w *Walker) step(ctx context.Context) (domain.StepResult, error) {
	next, res := w.engine.Transition(w.state)
	w.state = next

	if res.Kind == domain.StepEmptyGraph {
		return res, domain.ErrEmptyGraph
	}

	w.emit(ctx, w.hooks.OnWalkStep, domain.EventWalkStep, res, nil)

	if !res.Kind.Terminal() {
		return res, nil
	}

	err := w.persist(ctx, domain.Trace(res.Path))
	w.emit(ctx, w.hooks.OnWalkEnd, domain.EventWalkEnd, res, err)
	return res, err
}

// Run steps until the walk ends or ctx is canceled, and returns the last step.
// A walk always ends: every non-terminal step consumes a new edge.
func (w *Walker) Run(ctx context.Context) (domain.StepResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return domain.StepResult{Path: append([]string{}, w.state.Path...)}, err
		}
		res, err := w.step(ctx)
		if err != nil || res.Kind.Terminal() {
			return res, err
		}
	}
}

// Reset discards the current walk and returns to idle.
func (w *Walker) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = domain.NewWalkState()
}

func (w *Walker) persist(ctx context.Context, trace domain.Trace) error {
	if w.store == nil {
		return nil
	}
	if err := w.store.Save(ctx, w.sessionID, trace); err != nil {
		w.logger.Error("Failed to persist walk trace",
			"session_id", w.sessionID,
			"hops", len(trace)-1,
			"err", err,
		)
		return fmt.Errorf("%w: %v", domain.ErrTraceWrite, err)
	}
	w.logger.Debug("Walk trace persisted", "session_id", w.sessionID, "hops", len(trace)-1)
	return nil
}

func (w *Walker) emit(ctx context.Context, hook func(context.Context, *domain.WalkEvent), typ domain.EventType, res domain.StepResult, err error) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.WalkEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      typ,
			SessionID: w.sessionID,
		},
		Kind: res.Kind,
		Node: res.Node,
		Hops: len(res.Path) - 1,
		Err:  err,
	})
}
