package util

import "math/rand"

// Source is the part of *rand.Rand the battle code draws from. Every roll in a battle
// goes through one Source so a fixed seed replays the same fight.
type Source interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Chance reports a Bernoulli(p) outcome. p<=0 and p>=1 never draw.
func Chance(r Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}
