package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/wordgraph/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "wordgraph:trace:"

// indexSuffix names the session index. It contains ':', which
// domain.ValidateSessionID never lets into a session ID.
const indexSuffix = "index:sessions"

// neverExpires is the index score used when no TTL is set (2100-01-01).
const neverExpires = 4102444800

// Store implements ports.TraceStore using Redis.
// Each trace is a string value holding the arrow-joined path; a sorted set
// indexes sessions by expiry so List can prune stale entries.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for traces.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for traces.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client so a Locker can share it.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store) indexKey() string {
	return s.prefix + indexSuffix
}

// Save writes the trace, replacing the previous one of the session.
func (s *Store) Save(ctx context.Context, sessionID string, trace domain.Trace) error {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return err
	}

	pipe := s.client.TxPipeline()

	pipe.Set(ctx, s.key(sessionID), trace.Text(), s.ttl)

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = neverExpires
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: sessionID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save trace to redis: %w", err)
	}

	return nil
}

// Load retrieves the trace of a session.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.Trace, error) {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrTraceNotFound
		}
		return nil, fmt.Errorf("failed to get trace from redis: %w", err)
	}

	return domain.ParseTrace(val), nil
}

// Delete removes the trace and its index entry.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return err
	}
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(sessionID))
	pipe.ZRem(ctx, s.indexKey(), sessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete trace from redis: %w", err)
	}
	return nil
}

// List returns the sessions with a live trace, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired traces: %w", err)
	}

	sessions, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list traces: %w", err)
	}

	return sessions, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
