package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/wordgraph/internal/tokenize"
)

// DocumentMetadata is the frontmatter of a corpus document.
type DocumentMetadata struct {
	ID    string   `json:"id" mapstructure:"id"`
	Title string   `json:"title" mapstructure:"title"`
	Tags  []string `json:"tags" mapstructure:"tags"`
}

// Source implements ports.CorpusSource over a Loam vault. The document body
// is the corpus text; frontmatter is ignored by the tokenizer.
type Source struct {
	Repo *loam.TypedRepository[DocumentMetadata]
}

// New creates a Loam corpus source.
func New(repo *loam.TypedRepository[DocumentMetadata]) *Source {
	return &Source{Repo: repo}
}

// Open initializes a read-only vault at path.
func Open(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric frontmatter consistent; read-only avoids
	// Loam's dev sandbox since the vault is never written.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[DocumentMetadata](repo)), nil
}

// Text returns the raw body of a document.
func (s *Source) Text(ctx context.Context, id string) (string, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return doc.Content, nil
}

// Tokens returns the tokenized body of a document.
func (s *Source) Tokens(ctx context.Context, id string) ([]string, error) {
	text, err := s.Text(ctx, id)
	if err != nil {
		return nil, err
	}
	return tokenize.TokenizeString(text), nil
}

// List returns the IDs of every document in the vault, extensions stripped.
func (s *Source) List(ctx context.Context) ([]string, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		ids = append(ids, trimExtension(rawID))
	}
	sort.Strings(ids)
	return ids, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
