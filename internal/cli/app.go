// Package cli wires configuration, stores and the engine for the wordgraph commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/wordgraph"
	"github.com/aretw0/wordgraph/internal/adapters/file"
	"github.com/aretw0/wordgraph/internal/adapters/loam"
	"github.com/aretw0/wordgraph/internal/adapters/memory"
	"github.com/aretw0/wordgraph/internal/adapters/redis"
	"github.com/aretw0/wordgraph/internal/config"
	"github.com/aretw0/wordgraph/internal/logging"
	"github.com/aretw0/wordgraph/internal/metrics"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/aretw0/wordgraph/pkg/persistence/middleware"
	"github.com/aretw0/wordgraph/pkg/ports"
	"github.com/aretw0/wordgraph/pkg/session"
)

// ErrNoCorpus is returned when neither a corpus file nor a vault document is given.
var ErrNoCorpus = errors.New("no corpus: use --corpus <file> or --vault <dir> --doc <id>")

// Options are the persistent flags shared by every command.
type Options struct {
	Corpus     string
	Vault      string
	Doc        string
	ConfigPath string
	Debug      bool

	// Seed overrides the configured seed when SeedSet is true.
	Seed    int64
	SeedSet bool

	// Session overrides the configured walk session when not empty.
	Session string
}

// App holds everything a command needs after start-up.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Engine  *wordgraph.Engine
	Store   ports.TraceStore
	Locker  ports.DistributedLocker
	Metrics *metrics.Collectors

	closers []func() error
}

// Bootstrap loads the configuration, opens the trace store and builds the
// engine from the selected corpus.
func Bootstrap(ctx context.Context, opts Options) (*App, error) {
	app, err := Configure(opts)
	if err != nil {
		return nil, err
	}

	engine, err := createEngine(ctx, opts, app)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Engine = engine
	return app, nil
}

// Configure loads the configuration and opens the trace store without
// building a graph. Commands that only manage traces use it directly.
func Configure(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.SeedSet {
		cfg.Seed = opts.Seed
	}
	if opts.Session != "" {
		cfg.Trace.Session = opts.Session
	}
	if err := domain.ValidateSessionID(cfg.Trace.Session); err != nil {
		return nil, fmt.Errorf("trace session: %w", err)
	}

	logger, err := createLogger(cfg.LogLevel, opts.Debug)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	store, locker, closer, err := NewTraceStore(cfg.Trace)
	if err != nil {
		return nil, err
	}
	app.Store = store
	app.Locker = locker
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	return app, nil
}

// Close releases store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Sessions creates a session manager over the app's engine and store. With
// the redis driver walks are serialized across replicas.
func (a *App) Sessions() *session.Manager {
	opts := []session.Option{
		session.WithLogger(a.Logger),
		session.WithMaxSessions(a.Config.MaxSessions),
	}
	if a.Locker != nil {
		opts = append(opts, session.WithLocker(a.Locker))
	}
	return session.NewManager(func(id string) session.Walker {
		return a.Engine.NewWalker(id)
	}, a.Store, opts...)
}

// NewTraceStore opens the store selected by cfg.Driver, encrypting traces
// when a key is configured. The locker is only set for drivers that can
// share walks between processes.
func NewTraceStore(cfg config.TraceConfig) (ports.TraceStore, ports.DistributedLocker, func() error, error) {
	var (
		store  ports.TraceStore
		locker ports.DistributedLocker
		closer func() error
	)

	switch cfg.Driver {
	case config.DriverFile, "":
		store = file.New(cfg.Dir)
	case config.DriverMemory:
		store = memory.NewStore()
	case config.DriverRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		store, locker, closer = rs, redis.NewLocker(rs.Client(), cfg.Redis.Prefix), rs.Close
	default:
		return nil, nil, nil, fmt.Errorf("unknown trace driver %q", cfg.Driver)
	}

	if cfg.EncryptionKey == "" {
		return store, locker, closer, nil
	}

	mw, err := encryptionMiddleware(cfg)
	if err != nil {
		if closer != nil {
			_ = closer()
		}
		return nil, nil, nil, err
	}
	return middleware.Chain(store, mw), locker, closer, nil
}

func encryptionMiddleware(cfg config.TraceConfig) (middleware.Middleware, error) {
	active, err := middleware.DecodeKey(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("trace.encryption_key: %w", err)
	}
	enc := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range cfg.FallbackKeys {
		key, err := middleware.DecodeKey(k)
		if err != nil {
			return nil, fmt.Errorf("trace.fallback_keys[%d]: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(enc)
}

// createEngine builds the engine from a corpus file or a vault document.
func createEngine(ctx context.Context, opts Options, app *App) (*wordgraph.Engine, error) {
	hooks := app.Metrics.Hooks()
	if opts.Debug {
		hooks = hooks.Merge(createDebugHooks(app.Logger))
	}

	engineOpts := []wordgraph.Option{
		wordgraph.WithLogger(app.Logger),
		wordgraph.WithLifecycleHooks(hooks),
		wordgraph.WithSeed(app.Config.Seed),
		wordgraph.WithTraceStore(app.Store),
		wordgraph.WithSessionID(app.Config.Trace.Session),
	}

	switch {
	case opts.Vault != "":
		if opts.Doc == "" {
			return nil, fmt.Errorf("--vault requires --doc")
		}
		source, err := loam.Open(opts.Vault)
		if err != nil {
			return nil, err
		}
		return wordgraph.NewFromSource(ctx, source, opts.Doc, engineOpts...)
	case opts.Corpus != "":
		name := strings.TrimSuffix(filepath.Base(opts.Corpus), filepath.Ext(opts.Corpus))
		engine, err := wordgraph.NewFromFile(opts.Corpus, append(engineOpts, wordgraph.WithName(name))...)
		if err != nil {
			return nil, fmt.Errorf("error initializing engine: %w", err)
		}
		return engine, nil
	default:
		return nil, ErrNoCorpus
	}
}

// createLogger configures the application logger. Debug wins over the
// configured level.
func createLogger(level string, debug bool) (*slog.Logger, error) {
	if debug {
		return logging.New(slog.LevelDebug), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnWalkStep: func(ctx context.Context, e *domain.WalkEvent) {
			logger.Debug("Walk Step", "session_id", e.SessionID, "kind", e.Kind, "node", e.Node, "hops", e.Hops)
		},
		OnWalkEnd: func(ctx context.Context, e *domain.WalkEvent) {
			if e.Err != nil {
				logger.Debug("Walk End (Error)", "session_id", e.SessionID, "kind", e.Kind, "err", e.Err)
			} else {
				logger.Debug("Walk End", "session_id", e.SessionID, "kind", e.Kind, "hops", e.Hops)
			}
		},
		OnQuery: func(ctx context.Context, e *domain.QueryEvent) {
			logger.Debug("Query", "name", e.Name, "outcome", e.Outcome, "duration", e.Duration)
		},
	}
}
