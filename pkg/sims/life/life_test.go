package life

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"sparse-life/pkg/core"
)

func coords(pairs ...[2]int) []core.Coord { return cells(pairs...) }

func sorted(c []core.Coord) []core.Coord {
	return core.NewCoordSet(c...).Slice()
}

func TestBlinkerOscillation(t *testing.T) {
	start := coords([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})
	board := New(start)

	if board.Step() {
		t.Fatal("blinker reported terminal after first step")
	}
	want := coords([2]int{-1, 1}, [2]int{0, 1}, [2]int{1, 1})
	if got := board.Coordinates(); !slices.Equal(got, want) {
		t.Fatalf("after first step got %v, expected %v", got, want)
	}
	if board.IsFinished() {
		t.Fatal("blinker must not be finished after one step")
	}

	if board.Step() {
		t.Fatal("blinker reported terminal after second step")
	}
	if got := board.Coordinates(); !slices.Equal(got, sorted(start)) {
		t.Fatalf("after second step got %v, expected %v", got, start)
	}
	if board.IsFinished() {
		t.Fatal("blinker must not be finished after two steps")
	}
}

func TestBlockIsFixedPoint(t *testing.T) {
	start := coords([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1})
	board := New(start)

	if !board.Step() {
		t.Fatal("block should report terminal on its first step")
	}
	if !board.IsFinished() {
		t.Fatal("block should be finished after one step")
	}
	if got := board.Coordinates(); !slices.Equal(got, sorted(start)) {
		t.Fatalf("block changed shape: got %v", got)
	}
}

func TestIsolatedCellGoesExtinct(t *testing.T) {
	board := New(coords([2]int{0, 0}))
	if !board.Step() {
		t.Fatal("isolated cell should report terminal")
	}
	if board.Population() != 0 || !board.IsFinished() {
		t.Fatalf("expected extinct finished board, got population=%d finished=%v", board.Population(), board.IsFinished())
	}

	board = New(coords([2]int{0, 0}))
	completed, err := board.RunIterations(1)
	if err != nil {
		t.Fatalf("RunIterations returned error: %v", err)
	}
	if completed {
		t.Fatal("RunIterations should report early termination for an isolated cell")
	}
}

func TestEmptyBoardStartsFinished(t *testing.T) {
	for name, seed := range map[string][]core.Coord{"nil": nil, "empty": {}} {
		board, err := NewWithConfig(seed, Config{MaxIterations: 10, Finished: false})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if !board.IsFinished() || board.Population() != 0 {
			t.Fatalf("%s: expected finished empty board, got finished=%v population=%d", name, board.IsFinished(), board.Population())
		}
	}
}

func TestDuplicatesCollapse(t *testing.T) {
	board := New(coords([2]int{1, 1}, [2]int{1, 1}, [2]int{2, 2}))
	if board.Population() != 2 {
		t.Fatalf("expected duplicates to collapse to 2 cells, got %d", board.Population())
	}
	if !board.Contains(core.Coord{Row: 2, Col: 2}) || board.Contains(core.Coord{Row: 2, Col: 1}) {
		t.Fatal("Contains disagrees with the seed")
	}
}

func TestFinishedBoardIsFrozen(t *testing.T) {
	board := New(coords([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}))
	board.Step()
	before := board.Coordinates()
	gen := board.Generation()

	for i := 0; i < 5; i++ {
		if !board.Step() {
			t.Fatalf("step %d on a finished board reported non-terminal", i)
		}
	}
	if !board.IsFinished() {
		t.Fatal("terminal flag reset")
	}
	if !slices.Equal(before, board.Coordinates()) {
		t.Fatal("finished board changed its cells")
	}
	if board.Generation() != gen {
		t.Fatalf("generation advanced on finished board: %d -> %d", gen, board.Generation())
	}

	completed, err := board.RunIterations(3)
	if err != nil || completed {
		t.Fatalf("RunIterations on finished board = (%v, %v), expected (false, nil)", completed, err)
	}
}

func TestPresetFinishedFlagIsHonoured(t *testing.T) {
	board, err := NewWithConfig(coords([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}), Config{MaxIterations: 10, Finished: true})
	if err != nil {
		t.Fatal(err)
	}
	if !board.Step() {
		t.Fatal("pre-finished board must not step")
	}
	if board.Population() != 3 {
		t.Fatalf("pre-finished board changed population to %d", board.Population())
	}
}

func TestStepDeterministic(t *testing.T) {
	p, ok := core.LookupPattern("r-pentomino")
	if !ok {
		t.Fatal("r-pentomino not registered")
	}
	a := New(p.Cells)
	b := New(p.Cells)
	for i := 0; i < 60; i++ {
		a.Step()
		b.Step()
		if !slices.Equal(a.Coordinates(), b.Coordinates()) {
			t.Fatalf("boards diverged at generation %d", i+1)
		}
	}
}

func TestRunIterationsBounds(t *testing.T) {
	start := coords([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})
	board, err := NewWithConfig(start, Config{MaxIterations: 5})
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range []int{-1, 6, 1 << 20} {
		completed, err := board.RunIterations(n)
		if !errors.Is(err, ErrIterationBounds) {
			t.Fatalf("RunIterations(%d) error = %v, expected ErrIterationBounds", n, err)
		}
		if completed {
			t.Fatalf("RunIterations(%d) reported completion alongside an error", n)
		}
		var bounds *IterationBoundsError
		if !errors.As(err, &bounds) || bounds.Requested != n || bounds.Max != 5 {
			t.Fatalf("RunIterations(%d) error details = %#v", n, bounds)
		}
	}
	if board.Generation() != 0 || !slices.Equal(board.Coordinates(), sorted(start)) {
		t.Fatal("rejected requests mutated the board")
	}

	_, err = board.RunIterations(-1)
	if err.Error() != "iterations must be non-negative" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	_, err = board.RunIterations(6)
	if err.Error() != "iterations exceed maximum allowed of 5" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRunIterationsZeroAndFull(t *testing.T) {
	board := New(coords([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}))

	completed, err := board.RunIterations(0)
	if err != nil || !completed {
		t.Fatalf("RunIterations(0) = (%v, %v), expected (true, nil)", completed, err)
	}
	if board.Generation() != 0 {
		t.Fatal("zero iterations advanced the board")
	}

	completed, err = board.RunIterations(DefaultMaxIterations)
	if err != nil || !completed {
		t.Fatalf("blinker RunIterations(max) = (%v, %v), expected (true, nil)", completed, err)
	}
	if board.Generation() != DefaultMaxIterations || board.IsFinished() {
		t.Fatalf("expected %d generations and an active board, got %d finished=%v", DefaultMaxIterations, board.Generation(), board.IsFinished())
	}

	empty := New(nil)
	completed, err = empty.RunIterations(0)
	if err != nil || !completed {
		t.Fatalf("RunIterations(0) on empty board = (%v, %v), expected (true, nil)", completed, err)
	}
}

func TestRunIterationsContextCancelled(t *testing.T) {
	board := New(coords([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	completed, err := board.RunIterationsContext(ctx, 10)
	if !errors.Is(err, context.Canceled) || completed {
		t.Fatalf("RunIterationsContext = (%v, %v), expected (false, context.Canceled)", completed, err)
	}
	if board.Generation() != 0 {
		t.Fatalf("cancelled run advanced to generation %d", board.Generation())
	}
}

func TestNegativeCeilingRejected(t *testing.T) {
	if _, err := NewWithConfig(nil, Config{MaxIterations: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGliderTranslationInvariant(t *testing.T) {
	glider, ok := core.LookupPattern("glider")
	if !ok {
		t.Fatal("glider not registered")
	}
	offset := core.Coord{Row: 1000, Col: 1000}

	near := New(glider.Cells)
	far := New(glider.At(offset))

	for gen := 1; gen <= 8; gen++ {
		near.Step()
		far.Step()
		shifted := sorted(core.Translate(near.Coordinates(), offset))
		if !slices.Equal(shifted, far.Coordinates()) {
			t.Fatalf("generation %d: translated glider diverged\nnear: %v\nfar:  %v", gen, near.Coordinates(), far.Coordinates())
		}
	}

	want := sorted(glider.At(core.Coord{Row: 2, Col: 2}))
	if got := near.Coordinates(); !slices.Equal(got, want) {
		t.Fatalf("glider after 8 generations = %v, expected %v", got, want)
	}
}

func TestNegativeCoordinatesEvolve(t *testing.T) {
	board := New(coords([2]int{-10, -10}, [2]int{-10, -9}, [2]int{-10, -8}))
	board.Step()
	want := coords([2]int{-11, -9}, [2]int{-10, -9}, [2]int{-9, -9})
	if got := board.Coordinates(); !slices.Equal(got, want) {
		t.Fatalf("got %v, expected %v", got, want)
	}
}

func TestDenseView(t *testing.T) {
	glider, _ := core.LookupPattern("glider")
	board := New(glider.At(core.Coord{Row: -5, Col: -5}))

	grid, err := board.Dense()
	if err != nil {
		t.Fatal(err)
	}
	if grid.W != 3 || grid.H != 3 {
		t.Fatalf("dense size = %dx%d, expected 3x3", grid.W, grid.H)
	}
	if grid.Origin != (core.Coord{Row: -5, Col: -5}) {
		t.Fatalf("dense origin = %v", grid.Origin)
	}
	want := [][]int{{0, 1, 0}, {0, 0, 1}, {1, 1, 1}}
	rows := grid.Rows()
	for y := range want {
		if !slices.Equal(rows[y], want[y]) {
			t.Fatalf("row %d = %v, expected %v", y, rows[y], want[y])
		}
	}

	emptyGrid, err := New(nil).Dense()
	if err != nil {
		t.Fatal(err)
	}
	empty := emptyGrid.Rows()
	if len(empty) != 1 || len(empty[0]) != 0 {
		t.Fatalf("empty dense view = %v, expected a single empty row", empty)
	}
}

func TestDenseViewNonNegativeMatchesIndices(t *testing.T) {
	board := New(coords([2]int{0, 0}, [2]int{2, 3}))
	grid, err := board.Dense()
	if err != nil {
		t.Fatal(err)
	}
	rows := grid.Rows()
	if len(rows) != 3 || len(rows[0]) != 4 {
		t.Fatalf("dense size = %dx%d, expected 3x4", len(rows), len(rows[0]))
	}
	if rows[0][0] != 1 || rows[2][3] != 1 || rows[1][1] != 0 {
		t.Fatalf("unexpected dense rows %v", rows)
	}
}

func TestDenseViewRejectsWideBoxes(t *testing.T) {
	cases := map[string][]core.Coord{
		"wrapping area": {{Row: 0, Col: 0}, {Row: 1<<32 - 1, Col: 1<<32 - 1}},
		"large square":  {{Row: 0, Col: 0}, {Row: 100000, Col: 100000}},
		"full range":    {{Row: core.MinCoord, Col: core.MinCoord}, {Row: core.MaxCoord, Col: core.MaxCoord}},
		"one long row":  {{Row: 0, Col: 0}, {Row: 0, Col: MaxDenseCells}},
	}
	for name, seed := range cases {
		grid, err := New(seed).Dense()
		if !errors.Is(err, ErrInvalidInput) || grid != nil {
			t.Fatalf("%s: Dense = (%v, %v), expected ErrInvalidInput", name, grid, err)
		}
	}

	grid, err := New(coords([2]int{0, 0}, [2]int{0, MaxDenseCells - 1})).Dense()
	if err != nil {
		t.Fatalf("box at the cap rejected: %v", err)
	}
	if grid.W != MaxDenseCells || grid.H != 1 {
		t.Fatalf("dense size = %dx%d", grid.W, grid.H)
	}
}

func TestCoordinatesOutsideRangeRejected(t *testing.T) {
	for _, c := range []core.Coord{{Row: math.MaxInt}, {Col: math.MinInt}} {
		if _, err := NewWithConfig([]core.Coord{c}, DefaultConfig()); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("NewWithConfig(%v) error = %v, expected ErrInvalidInput", c, err)
		}
	}
}

func TestEdgeOfRangeDoesNotWrap(t *testing.T) {
	top := core.MaxCoord
	board := New(coords([2]int{top, 0}, [2]int{top, 1}, [2]int{top, 2}))

	if board.Step() {
		t.Fatal("blinker on the edge reported terminal after one step")
	}
	want := coords([2]int{top - 1, 1}, [2]int{top, 1})
	if got := board.Coordinates(); !slices.Equal(got, want) {
		t.Fatalf("after first step got %v, expected %v", got, want)
	}
	if !board.Step() || board.Population() != 0 {
		t.Fatalf("edge remnant should die out, got %v", board.Coordinates())
	}

	bottom := New(coords([2]int{core.MinCoord, 5}, [2]int{core.MinCoord, 6}, [2]int{core.MinCoord, 7}))
	bottom.Step()
	for _, c := range bottom.Coordinates() {
		if !c.InRange() {
			t.Fatalf("cell %v escaped the coordinate range", c)
		}
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"max_iterations": "12", "finished": "true"})
	if c.MaxIterations != 12 || !c.Finished {
		t.Fatalf("FromMap = %+v", c)
	}
	c = FromMap(map[string]string{"max_iterations": "-3"})
	if c.MaxIterations != DefaultMaxIterations {
		t.Fatalf("negative ceiling should be ignored, got %d", c.MaxIterations)
	}
}
