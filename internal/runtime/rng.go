package runtime

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the random source used by text generation and random walks.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// lockedRand makes a *rand.Rand safe to share, since math/rand.Rand is not goroutine-safe.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// NewRand returns a goroutine-safe deterministic source.
// seed==0 picks a time-based seed.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}
