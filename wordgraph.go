package wordgraph

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/wordgraph/internal/logging"
	"github.com/aretw0/wordgraph/internal/runtime"
	"github.com/aretw0/wordgraph/internal/tokenize"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/aretw0/wordgraph/pkg/ports"
)

// DefaultSessionID names the walk session used when none is given.
const DefaultSessionID = runtime.DefaultSessionID

// Engine is the high-level entry point for the wordgraph library.
// It owns the graph built from a corpus, answers queries against it and
// keeps one default random-walk session.
type Engine struct {
	corpus  *runtime.Corpus
	bridges *runtime.BridgeFinder
	paths   *runtime.PathEngine
	walks   *runtime.WalkEngine
	walker  *runtime.Walker

	rng       runtime.Rand
	store     ports.TraceStore
	sessionID string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	// Name labels the corpus in logs and server metadata.
	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRand injects the random source used by text generation and walks.
func WithRand(rng runtime.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithSeed makes generation and walks reproducible. Zero means time-based.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = runtime.NewRand(seed)
	}
}

// WithTraceStore sets where finished walks are written.
func WithTraceStore(store ports.TraceStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithSessionID names the default walk session.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		e.sessionID = id
	}
}

// WithName labels the corpus.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New builds the graph from an ordered token sequence.
func New(tokens []string, opts ...Option) *Engine {
	eng := &Engine{
		sessionID: runtime.DefaultSessionID,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.rng == nil {
		eng.rng = runtime.NewRand(0)
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("corpus", eng.Name)
	}

	eng.corpus = runtime.NewCorpus(tokens)
	eng.bridges = runtime.NewBridgeFinder(eng.corpus, eng.rng)
	eng.paths = runtime.NewPathEngine(eng.corpus)
	eng.walks = runtime.NewWalkEngine(eng.corpus.Graph(), eng.rng)
	eng.walker = eng.NewWalker(eng.sessionID)

	eng.logger.Debug("Graph built",
		"tokens", len(tokens),
		"nodes", eng.corpus.Graph().Len(),
		"edges", eng.corpus.Graph().EdgeCount(),
	)

	return eng
}

// NewFromText tokenizes text and builds the engine.
func NewFromText(text string, opts ...Option) *Engine {
	return New(tokenize.TokenizeString(text), opts...)
}

// NewFromFile tokenizes the file at path and builds the engine.
func NewFromFile(path string, opts ...Option) (*Engine, error) {
	tokens, err := tokenize.TokenizeFile(path)
	if err != nil {
		return nil, err
	}
	return New(tokens, opts...), nil
}

// NewFromSource loads document id from source and builds the engine.
func NewFromSource(ctx context.Context, source ports.CorpusSource, id string, opts ...Option) (*Engine, error) {
	tokens, err := source.Tokens(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus %s: %w", id, err)
	}
	return New(tokens, append([]Option{WithName(id)}, opts...)...), nil
}

// Graph returns the word graph.
func (e *Engine) Graph() *domain.WordGraph {
	return e.corpus.Graph()
}

// Words returns every known word: tokens in first-appearance order, then
// nodes that only exist in the graph.
func (e *Engine) Words() []string {
	return e.corpus.Universe()
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// TraceStore returns the configured trace store, or nil.
func (e *Engine) TraceStore() ports.TraceStore {
	return e.store
}

// BridgeWords returns the words b with word1 -> b -> word2.
func (e *Engine) BridgeWords(ctx context.Context, word1, word2 string) (domain.BridgeResult, error) {
	start := time.Now()
	res, err := e.bridges.Query(word1, word2)
	e.emitQuery(ctx, "bridge", string(res.Outcome), start, err)
	return res, err
}

// GenerateText splits text on whitespace and inserts one random bridge
// word between each adjacent pair that has any.
func (e *Engine) GenerateText(ctx context.Context, text string) string {
	start := time.Now()
	out := e.bridges.Generate(strings.Fields(text))
	e.emitQuery(ctx, "generate", "ok", start, nil)
	return out
}

// ShortestPaths returns every minimum-weight path from word1 to word2.
func (e *Engine) ShortestPaths(ctx context.Context, word1, word2 string) (domain.PathSet, error) {
	start := time.Now()
	set, err := e.paths.AllShortestPaths(word1, word2)
	e.emitQuery(ctx, "paths", string(set.Outcome), start, err)
	return set, err
}

// ShortestPathsFrom returns shortest paths from word to every other word.
func (e *Engine) ShortestPathsFrom(ctx context.Context, word string) map[string]domain.PathSet {
	start := time.Now()
	sets := e.paths.AllShortestPathsFrom(word)
	outcome := string(domain.PathsFound)
	if len(sets) == 0 {
		outcome = string(domain.PathNone)
	}
	e.emitQuery(ctx, "paths_from", outcome, start, nil)
	return sets
}

// NewWalker creates an independent walk session sharing the engine's graph,
// random source, store, hooks and logger.
func (e *Engine) NewWalker(sessionID string) *runtime.Walker {
	return runtime.NewWalker(e.walks,
		runtime.WithSessionID(sessionID),
		runtime.WithTraceStore(e.store),
		runtime.WithWalkHooks(e.hooks),
		runtime.WithWalkLogger(e.logger),
	)
}

// Step advances the default walk session by one step.
func (e *Engine) Step(ctx context.Context) (domain.StepResult, error) {
	return e.walker.Step(ctx)
}

// Run walks the default session until it ends.
func (e *Engine) Run(ctx context.Context) (domain.StepResult, error) {
	return e.walker.Run(ctx)
}

// Reset returns the default session to idle.
func (e *Engine) Reset() {
	e.walker.Reset()
}

// WalkState returns a snapshot of the default session.
func (e *Engine) WalkState() domain.WalkState {
	return e.walker.State()
}

// SessionID returns the default session name.
func (e *Engine) SessionID() string {
	return e.walker.SessionID()
}

func (e *Engine) emitQuery(ctx context.Context, name, outcome string, start time.Time, err error) {
	if err != nil {
		outcome = string(domain.KindOf(err))
		e.logger.Debug("Query failed", "query", name, "err", err)
	}
	if e.hooks.OnQuery == nil {
		return
	}
	e.hooks.OnQuery(ctx, &domain.QueryEvent{
		EventBase: domain.EventBase{
			Timestamp: start,
			Type:      domain.EventQuery,
		},
		Name:     name,
		Outcome:  outcome,
		Duration: time.Since(start),
		Err:      err,
	})
}
