package graph

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aretw0/wordgraph/pkg/domain"
)

// ErrInvalidFileName is returned for output names outside [A-Za-z0-9_.]+ or
// ones that would leave the base directory.
var ErrInvalidFileName = errors.New("invalid file name")

var validFileName = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// GenerateDOT serializes g as a Graphviz digraph with one labeled edge per line.
func GenerateDOT(g *domain.WordGraph) string {
	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&sb, "    %s -> %s [label=\"%d\"];\n", quoteDOT(e.From), quoteDOT(e.To), e.Weight)
	}
	sb.WriteString("}\n")
	return sb.String()
}

func quoteDOT(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// ResolveOutput validates name and returns its absolute path inside baseDir.
func ResolveOutput(baseDir, name string) (string, error) {
	if !validFileName.MatchString(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}

	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("invalid base directory: %w", err)
	}
	target := filepath.Join(base, name)

	rel, err := filepath.Rel(base, target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %q escapes %s", ErrInvalidFileName, name, base)
	}
	return target, nil
}

// WriteFile writes content to name inside baseDir after validating the name.
// It returns the path written.
func WriteFile(baseDir, name, content string) (string, error) {
	target, err := ResolveOutput(baseDir, name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return target, nil
}
