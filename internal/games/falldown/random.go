package falldown

import "math/rand"

// Random is the source of all randomness in the simulation.
type Random interface {
	// IntRange returns a uniform integer in [min, max], both inclusive.
	IntRange(min, max int) int
	// FloatRange returns a uniform float in [min, max).
	FloatRange(min, max float64) float64
}

// SeededRandom is a deterministic Random backed by math/rand.
type SeededRandom struct {
	rng *rand.Rand
}

// NewRandom creates a random source seeded with seed.
func NewRandom(seed int64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))}
}

// IntRange returns a uniform integer in [min, max].
func (r *SeededRandom) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}

// FloatRange returns a uniform float in [min, max).
func (r *SeededRandom) FloatRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.rng.Float64()*(max-min)
}

// percent rolls an inclusive 0..100 draw against a percent threshold.
func percent(rng Random, probability int) bool {
	return rng.IntRange(0, 100) < probability
}
