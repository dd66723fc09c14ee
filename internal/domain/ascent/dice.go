package ascent

// Dice is the only source of randomness for generation, combat and events.
// *rand.Rand from math/rand/v2 satisfies it.
type Dice interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
}

func pickIndex(d Dice, n int) int {
	if n <= 0 {
		return 0
	}
	return d.IntN(n)
}
