package distribution

import "math/rand"

// NewSource returns a fresh deterministic random source for a seed. Each
// sampling invocation must own its own source; a shared mutating source
// across concurrent invocations would break per-invocation determinism.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a base seed with a stream index into an independent
// seed. Batch drivers use it to give every scene its own source while the
// batch as a whole stays reproducible from the base seed. The mix is a
// splitmix64 round so that adjacent indices yield uncorrelated streams.
func DeriveSeed(base, index int64) int64 {
	z := uint64(base) + uint64(index)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
