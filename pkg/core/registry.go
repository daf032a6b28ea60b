package core

import "sort"

// Pattern is a named starting configuration anchored at (0, 0).
type Pattern struct {
	Name        string
	Description string
	Cells       []Coord
}

// At returns the pattern's cells translated so (0, 0) lands on origin.
func (p Pattern) At(origin Coord) []Coord {
	return Translate(p.Cells, origin)
}

// Fits reports whether every cell of the pattern stays within
// [MinCoord, MaxCoord] when placed at origin.
func (p Pattern) Fits(origin Coord) bool {
	for _, c := range p.Cells {
		if !sumInRange(c.Row, origin.Row) || !sumInRange(c.Col, origin.Col) {
			return false
		}
	}
	return true
}

func sumInRange(a, b int) bool {
	if b > 0 {
		return a >= MinCoord && a <= MaxCoord-b
	}
	return a <= MaxCoord && a >= MinCoord-b
}

var patterns = map[string]Pattern{}

// RegisterPattern adds a pattern under its name. Empty names are ignored.
func RegisterPattern(p Pattern) {
	if p.Name == "" {
		return
	}
	patterns[p.Name] = p
}

// LookupPattern returns the pattern registered under name.
func LookupPattern(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// Patterns lists every registered pattern sorted by name.
func Patterns() []Pattern {
	out := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
