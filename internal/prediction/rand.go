package prediction

import (
	"math/rand"
	"sync"
	"time"
)

// lockedRand serializes draws from a rand.Rand so predictors remain safe to
// call from multiple goroutines. Callers that need deterministic output pass
// a seeded source; a nil source is seeded from the clock.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand(rng *rand.Rand) *lockedRand {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &lockedRand{rng: rng}
}

// Uniform returns a draw from [lo, hi).
func (r *lockedRand) Uniform(lo, hi float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rng.Float64()*(hi-lo)
}

// Float64 returns a draw from [0, 1).
func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}
