// Package life implements Conway's Game of Life on an unbounded, sparse grid.
//
// A Board owns the set of live coordinates and steps it one generation at a
// time. Stepping stops for good once the population dies out or a generation
// reproduces the previous one exactly.
package life

import (
	"context"

	"sparse-life/pkg/core"
)

// Board is a single simulation. It is not safe for concurrent use.
type Board struct {
	live       core.CoordSet
	finished   bool
	maxIter    int
	generation int
}

// New returns a Board seeded with coords using the default configuration. It
// panics if a coordinate lies outside [core.MinCoord, core.MaxCoord]; use
// NewWithConfig for untrusted input.
func New(coords []core.Coord) *Board {
	b, err := NewWithConfig(coords, DefaultConfig())
	if err != nil {
		panic(err)
	}
	return b
}

// NewWithConfig returns a Board seeded with coords. Duplicate coordinates
// collapse; an empty seed yields a finished board.
func NewWithConfig(coords []core.Coord, cfg Config) (*Board, error) {
	if cfg.MaxIterations < 0 {
		return nil, invalidInput("max iterations must be non-negative, got %d", cfg.MaxIterations)
	}
	for _, c := range coords {
		if !c.InRange() {
			return nil, invalidInput("coordinate %v outside [%d, %d]", c, core.MinCoord, core.MaxCoord)
		}
	}
	b := &Board{
		live:     core.NewCoordSet(coords...),
		finished: cfg.Finished,
		maxIter:  cfg.MaxIterations,
	}
	if b.live.Len() == 0 {
		b.finished = true
	}
	return b, nil
}

// IsFinished reports whether the board reached extinction or a fixed point.
func (b *Board) IsFinished() bool { return b.finished }

// MaxIterations returns the per-request step ceiling.
func (b *Board) MaxIterations() int { return b.maxIter }

// Generation counts the transitions applied since the board was built.
func (b *Board) Generation() int { return b.generation }

// Population returns the number of live cells.
func (b *Board) Population() int { return b.live.Len() }

// Contains reports whether c is alive.
func (b *Board) Contains(c core.Coord) bool { return b.live.Contains(c) }

// Coordinates returns the live cells sorted row-major. The slice is a copy.
func (b *Board) Coordinates() []core.Coord { return b.live.Slice() }

// Step advances the board by one generation and reports whether it is now
// terminal. Stepping a finished board does nothing and reports true. Cells
// beyond [core.MinCoord, core.MaxCoord] stay dead.
func (b *Board) Step() bool {
	if b.finished {
		return true
	}

	counts := make(map[core.Coord]int, b.live.Len()*8)
	b.live.Each(func(c core.Coord) {
		for _, d := range core.Neighborhood {
			if n := c.Add(d); n.InRange() {
				counts[n]++
			}
		}
	})

	next := core.NewCoordSet()
	for c, n := range counts {
		if n == 3 || (n == 2 && b.live.Contains(c)) {
			next.Add(c)
		}
	}
	b.generation++

	if next.Equal(b.live) {
		b.finished = true
		return true
	}
	b.live = next
	if b.live.Len() == 0 {
		b.finished = true
		return true
	}
	return false
}

// RunIterations steps the board up to n times, stopping early on a terminal
// state. It returns true when all n steps ran without reaching one.
func (b *Board) RunIterations(n int) (bool, error) {
	return b.RunIterationsContext(context.Background(), n)
}

// RunIterationsContext is RunIterations with a cancellation check between
// steps. On cancellation the board holds the last completed generation.
func (b *Board) RunIterationsContext(ctx context.Context, n int) (bool, error) {
	if err := b.checkBounds(n); err != nil {
		return false, err
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if b.Step() {
			return false, nil
		}
	}
	return true, nil
}

func (b *Board) checkBounds(n int) error {
	if n < 0 || n > b.maxIter {
		return &IterationBoundsError{Requested: n, Max: b.maxIter}
	}
	return nil
}

// Dense returns the live cells in a grid sized to their bounding box. The
// grid's origin is the top-left corner of the box. Boxes holding more than
// MaxDenseCells cells are rejected with ErrInvalidInput.
func (b *Board) Dense() (*core.ByteGrid, error) {
	lo, hi, ok := b.live.Bounds()
	if !ok {
		return core.NewByteGrid(0, 0, core.Coord{}), nil
	}
	// Spans are computed unsigned: hi-lo can exceed MaxInt.
	w := uint64(hi.Col) - uint64(lo.Col) + 1
	h := uint64(hi.Row) - uint64(lo.Row) + 1
	if w > MaxDenseCells || h > MaxDenseCells || w*h > MaxDenseCells {
		return nil, invalidInput("dense view of %d live cells spans more than %d cells", b.live.Len(), MaxDenseCells)
	}
	g := core.NewByteGrid(int(w), int(h), lo)
	b.live.Each(func(c core.Coord) { g.Set(c, 1) })
	return g, nil
}
