package domain

import "strings"

// TraceSeparator joins nodes in the persisted trace.
const TraceSeparator = " -> "

// Trace is the persisted form of a finished walk.
type Trace []string

// String renders the trace as "a -> b -> c".
func (t Trace) String() string {
	return strings.Join(t, TraceSeparator)
}

// Text renders the trace as written to storage: the arrow-joined path
// followed by a single newline.
func (t Trace) Text() string {
	return t.String() + "\n"
}

// ParseTrace reads the persisted text form back.
func ParseTrace(text string) Trace {
	text = strings.TrimRight(text, "\r\n")
	if strings.TrimSpace(text) == "" {
		return Trace{}
	}
	parts := strings.Split(text, TraceSeparator)
	out := make(Trace, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
