package runtime_test

import (
	"github.com/aretw0/wordgraph/internal/runtime"
	"github.com/aretw0/wordgraph/internal/tokenize"
)

// startrek is the fixture corpus used across the runtime tests.
const startrek = "To explore strange new worlds,\nTo seek out new life and new civilizations."

// fixedRand always picks index n (modulo the bound).
type fixedRand struct {
	n int
}

func (f fixedRand) Intn(bound int) int {
	return f.n % bound
}

func fixtureCorpus() *runtime.Corpus {
	return runtime.NewCorpus(tokenize.TokenizeString(startrek))
}
