package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventWalkStep EventType = "walk_step"
	EventWalkEnd  EventType = "walk_end"
	EventQuery    EventType = "query"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// WalkEvent is emitted after every walk step and again when a walk ends.
type WalkEvent struct {
	EventBase
	Kind StepKind `json:"kind"`
	Node string   `json:"node,omitempty"`
	Hops int      `json:"hops"`
	// Err is set on walk_end when the trace could not be persisted.
	Err error `json:"-"`
}

// QueryEvent describes a finished graph query.
type QueryEvent struct {
	EventBase
	Name     string        `json:"name"` // bridge, generate, paths, paths_from
	Outcome  string        `json:"outcome"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnWalkStep func(context.Context, *WalkEvent)
	OnWalkEnd  func(context.Context, *WalkEvent)
	OnQuery    func(context.Context, *QueryEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnWalkStep: chainWalk(h.OnWalkStep, other.OnWalkStep),
		OnWalkEnd:  chainWalk(h.OnWalkEnd, other.OnWalkEnd),
		OnQuery:    chainQuery(h.OnQuery, other.OnQuery),
	}
}

func chainWalk(a, b func(context.Context, *WalkEvent)) func(context.Context, *WalkEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *WalkEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainQuery(a, b func(context.Context, *QueryEvent)) func(context.Context, *QueryEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *QueryEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
