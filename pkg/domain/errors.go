package domain

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is returned when a queried word is not part of the node universe.
var ErrNodeNotFound = errors.New("node not found")

// ErrSourceNotFound is returned by path queries when the source word is unknown.
var ErrSourceNotFound = fmt.Errorf("source %w", ErrNodeNotFound)

// ErrTargetNotFound is returned by path queries when the target word is unknown.
var ErrTargetNotFound = fmt.Errorf("target %w", ErrNodeNotFound)

// ErrEmptyGraph is returned when a query needs at least one edge.
var ErrEmptyGraph = errors.New("graph is empty")

// ErrTraceWrite is returned when a terminated walk could not be persisted.
// The walk state itself is kept.
var ErrTraceWrite = errors.New("failed to persist walk trace")

// ErrTraceNotFound is returned when a session has no stored trace.
var ErrTraceNotFound = errors.New("trace not found")

// ErrInvalidSessionID is returned for a session ID that cannot name a trace.
var ErrInvalidSessionID = errors.New("invalid session ID")

// ErrSessionLimit is returned when no new walk session can be registered.
var ErrSessionLimit = errors.New("too many walk sessions")

// ErrorKind names a category of failure, independent of the message.
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindNodeNotFound  ErrorKind = "NodeNotFound"
	KindEmptyGraph    ErrorKind = "EmptyGraph"
	KindIOFailure     ErrorKind = "IOFailure"
	KindTraceNotFound ErrorKind = "TraceNotFound"
	KindInvalidInput  ErrorKind = "InvalidInput"
	KindSessionLimit  ErrorKind = "SessionLimit"
	KindUnknown       ErrorKind = "Unknown"
)

// KindOf classifies err. It returns KindNone for a nil error.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNodeNotFound):
		return KindNodeNotFound
	case errors.Is(err, ErrEmptyGraph):
		return KindEmptyGraph
	case errors.Is(err, ErrTraceWrite):
		return KindIOFailure
	case errors.Is(err, ErrTraceNotFound):
		return KindTraceNotFound
	case errors.Is(err, ErrInvalidSessionID):
		return KindInvalidInput
	case errors.Is(err, ErrSessionLimit):
		return KindSessionLimit
	default:
		return KindUnknown
	}
}
