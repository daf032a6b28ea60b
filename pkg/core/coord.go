package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidCoord is returned when a coordinate cannot be decoded from JSON.
var ErrInvalidCoord = errors.New("coordinate must be a [row, col] pair of integers")

// Live cells are confined to [MinCoord, MaxCoord] on both axes so that every
// neighbour of a live cell is representable without wrapping.
const (
	MinCoord = math.MinInt + 1
	MaxCoord = math.MaxInt - 1
)

// Coord addresses a single cell on the unbounded grid. Negative values are valid.
type Coord struct {
	Row int
	Col int
}

// InRange reports whether c lies within [MinCoord, MaxCoord] on both axes.
func (c Coord) InRange() bool {
	return c.Row >= MinCoord && c.Row <= MaxCoord && c.Col >= MinCoord && c.Col <= MaxCoord
}

// Add returns the coordinate shifted by d.
func (c Coord) Add(d Coord) Coord { return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col} }

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// MarshalJSON encodes the coordinate as a two element array.
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON accepts only a JSON array holding exactly two integers within
// [MinCoord, MaxCoord].
func (c *Coord) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil || len(raw) != 2 {
		return ErrInvalidCoord
	}
	var pair [2]int
	for i, part := range raw {
		dec := json.NewDecoder(bytes.NewReader(part))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return ErrInvalidCoord
		}
		n, ok := v.(json.Number)
		if !ok {
			return ErrInvalidCoord
		}
		iv, err := n.Int64()
		if err != nil || iv < MinCoord || iv > MaxCoord {
			return ErrInvalidCoord
		}
		pair[i] = int(iv)
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

// Neighborhood lists the eight Moore offsets around a cell.
var Neighborhood = [8]Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// CoordSet is an unordered set of coordinates.
type CoordSet struct {
	m map[Coord]struct{}
}

// NewCoordSet builds a set from coords, collapsing duplicates.
func NewCoordSet(coords ...Coord) CoordSet {
	set := CoordSet{m: make(map[Coord]struct{}, len(coords))}
	for _, c := range coords {
		set.m[c] = struct{}{}
	}
	return set
}

// Add inserts c.
func (s *CoordSet) Add(c Coord) {
	if s.m == nil {
		s.m = make(map[Coord]struct{})
	}
	s.m[c] = struct{}{}
}

// Contains reports whether c is in the set.
func (s CoordSet) Contains(c Coord) bool {
	_, ok := s.m[c]
	return ok
}

// Len returns the number of coordinates in the set.
func (s CoordSet) Len() int { return len(s.m) }

// Equal reports whether both sets hold exactly the same coordinates.
func (s CoordSet) Equal(o CoordSet) bool {
	if len(s.m) != len(o.m) {
		return false
	}
	for c := range s.m {
		if _, ok := o.m[c]; !ok {
			return false
		}
	}
	return true
}

// Each calls fn for every coordinate in unspecified order.
func (s CoordSet) Each(fn func(Coord)) {
	for c := range s.m {
		fn(c)
	}
}

// Slice returns the coordinates sorted row-major.
func (s CoordSet) Slice() []Coord {
	out := make([]Coord, 0, len(s.m))
	for c := range s.m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Bounds returns the minimal bounding box corners. ok is false for an empty set.
func (s CoordSet) Bounds() (lo, hi Coord, ok bool) {
	for c := range s.m {
		if !ok {
			lo, hi, ok = c, c, true
			continue
		}
		lo.Row = min(lo.Row, c.Row)
		lo.Col = min(lo.Col, c.Col)
		hi.Row = max(hi.Row, c.Row)
		hi.Col = max(hi.Col, c.Col)
	}
	return lo, hi, ok
}

// Translate returns a copy of coords shifted by d.
func Translate(coords []Coord, d Coord) []Coord {
	out := make([]Coord, len(coords))
	for i, c := range coords {
		out[i] = c.Add(d)
	}
	return out
}
