// Package tokenize turns free text into the cleaned word tokens the graph is
// built from.
package tokenize

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	// delimiter separates tokens: a whitespace run, or a comma or period
	// followed by optional whitespace.
	delimiter = regexp.MustCompile(`\s+|,\s*|\.\s*`)
	nonLetter = regexp.MustCompile(`[^a-zA-Z]`)
)

// TokenizeString splits text into lower-case tokens made only of ASCII
// letters. Tokens that end up empty after cleaning are dropped.
func TokenizeString(text string) []string {
	tokens := []string{}
	for _, raw := range delimiter.Split(text, -1) {
		tok := strings.ToLower(nonLetter.ReplaceAllString(raw, ""))
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Tokenize reads r to the end and tokenizes its content.
func Tokenize(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return TokenizeString(string(data)), nil
}

// TokenizeFile tokenizes the file at path.
func TokenizeFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus %s: %w", path, err)
	}
	defer f.Close()
	return Tokenize(f)
}
