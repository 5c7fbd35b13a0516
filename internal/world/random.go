package world

import (
	"hash/fnv"
	"math/rand"

	"star-rush/server/internal/sim"
)

// RNGFactory produces deterministic RNG instances for world subsystems.
type RNGFactory func(rootSeed, label string) *rand.Rand

// DeterministicSeedValue hashes a root seed plus a label into a stable
// source seed so tests can replay spawn sequences.
func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewDeterministicRNG is the default RNGFactory.
func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeedValue(rootSeed, label)))
}

func randomRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// randomInterior picks a point at least margin away from every edge.
func randomInterior(rng *rand.Rand, margin float64) (float64, float64) {
	x := randomRange(rng, margin, sim.WorldSize-margin)
	y := randomRange(rng, margin, sim.WorldSize-margin)
	return x, y
}
