package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/wordgraph/pkg/domain"
)

// BridgeFinder answers bridge-word queries: words b with word1→b and b→word2.
type BridgeFinder struct {
	corpus *Corpus
	rng    Rand
}

// NewBridgeFinder creates a finder over corpus. A nil rng gets a time-seeded source.
func NewBridgeFinder(corpus *Corpus, rng Rand) *BridgeFinder {
	if rng == nil {
		rng = NewRand(0)
	}
	return &BridgeFinder{corpus: corpus, rng: rng}
}

// Query returns the bridge words from word1 to word2 in word1's neighbor order.
// Unknown words yield an error wrapping domain.ErrNodeNotFound; a valid query
// without bridges is a BridgeNone result, not an error.
func (f *BridgeFinder) Query(word1, word2 string) (domain.BridgeResult, error) {
	word1 = strings.ToLower(word1)
	word2 = strings.ToLower(word2)

	var missing []string
	if !f.corpus.Contains(word1) {
		missing = append(missing, word1)
	}
	if !f.corpus.Contains(word2) {
		missing = append(missing, word2)
	}
	if len(missing) > 0 {
		return domain.BridgeResult{}, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, strings.Join(missing, ", "))
	}

	g := f.corpus.Graph()
	words := []string{}
	for _, n := range g.Neighbors(word1) {
		if _, ok := g.Weight(n.Word, word2); ok {
			words = append(words, n.Word)
		}
	}

	res := domain.BridgeResult{
		Outcome: domain.BridgeNone,
		From:    word1,
		To:      word2,
		Words:   words,
	}
	if len(words) > 0 {
		res.Outcome = domain.BridgesFound
	}
	return res, nil
}

// Generate rewrites tokens, inserting one randomly chosen bridge word between
// every adjacent pair that has bridges. Input words are kept verbatim.
func (f *BridgeFinder) Generate(tokens []string) string {
	if len(tokens) < 2 {
		return strings.Join(tokens, " ")
	}

	out := make([]string, 0, len(tokens)*2)
	for i := 0; i < len(tokens)-1; i++ {
		out = append(out, tokens[i])

		res, err := f.Query(tokens[i], tokens[i+1])
		if err != nil || !res.Found() {
			continue
		}
		out = append(out, res.Words[f.rng.Intn(len(res.Words))])
	}
	out = append(out, tokens[len(tokens)-1])

	return strings.Join(out, " ")
}
