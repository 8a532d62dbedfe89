package maze

import (
	"math/rand/v2"
	"time"
)

// Source supplies the randomness for one generation call.
// *rand.Rand from math/rand/v2 satisfies it; tests may script it.
type Source interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

// seedStream decorrelates the second PCG word from the seed.
const seedStream = 0x9e3779b97f4a7c15

// NewSource returns a deterministic PCG source for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedStream))
}

// TimeSeed returns a seed derived from the current time, for callers that
// pass seed 0 to mean "random".
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
