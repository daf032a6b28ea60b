package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// Soup fills a w×h window anchored at origin, marking each cell live with the
// given density. The result is sorted row-major.
func Soup(r *RNG, origin Coord, w, h int, density float64) []Coord {
	var out []Coord
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Chance(density) {
				out = append(out, Coord{Row: origin.Row + y, Col: origin.Col + x})
			}
		}
	}
	return out
}
