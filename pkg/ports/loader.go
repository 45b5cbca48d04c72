package ports

import "context"

// CorpusSource defines where the text used to build a graph comes from.
// This allows the input layer (plain file, Loam vault, HTTP body) to be decoupled.
type CorpusSource interface {
	// Tokens returns the cleaned, lower-cased token sequence of a document.
	Tokens(ctx context.Context, id string) ([]string, error)
}
