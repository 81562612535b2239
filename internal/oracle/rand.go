package oracle

import "math/rand"

// Rand is the random source behind every randomized field (the cultist
// tie-break, deltaKey, phaseDrift, alignment integers). It is an explicit
// dependency so tests can inject a seeded source or a stub.
type Rand interface {
	Float64() float64 // [0.0, 1.0)
	Intn(n int) int   // [0, n)
}

type stdRand struct{ r *rand.Rand }

func (s stdRand) Float64() float64 { return s.r.Float64() }
func (s stdRand) Intn(n int) int   { return s.r.Intn(n) }

// NewRand returns a Rand over math/rand seeded with the given seed.
func NewRand(seed int64) Rand {
	return stdRand{r: rand.New(rand.NewSource(seed))}
}
