package core

// ByteGrid stores a dense window of the unbounded grid in row-major order.
// Origin is the grid coordinate of cell (0, 0) in the window.
type ByteGrid struct {
	W, H   int
	Origin Coord
	data   []uint8
}

// NewByteGrid allocates a window with the given dimensions anchored at origin.
// Callers bound w*h; see life.MaxDenseCells.
func NewByteGrid(w, h int, origin Coord) *ByteGrid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &ByteGrid{W: w, H: h, Origin: origin, data: make([]uint8, w*h)}
}

// Index returns the linear slice index for an absolute grid coordinate and
// whether it falls inside the window.
func (g *ByteGrid) Index(c Coord) (int, bool) {
	r := c.Row - g.Origin.Row
	col := c.Col - g.Origin.Col
	if r < 0 || r >= g.H || col < 0 || col >= g.W {
		return 0, false
	}
	return r*g.W + col, true
}

// Set writes v at an absolute coordinate. Coordinates outside the window are ignored.
func (g *ByteGrid) Set(c Coord, v uint8) {
	if idx, ok := g.Index(c); ok {
		g.data[idx] = v
	}
}

// At reads the value at an absolute coordinate, zero outside the window.
func (g *ByteGrid) At(c Coord) uint8 {
	if idx, ok := g.Index(c); ok {
		return g.data[idx]
	}
	return 0
}

// Rows returns the window as rows of 0/1 ints, which encode as JSON numbers.
// An empty window yields a single empty row.
func (g *ByteGrid) Rows() [][]int {
	if g.H == 0 || g.W == 0 {
		return [][]int{{}}
	}
	rows := make([][]int, g.H)
	for y := range rows {
		row := make([]int, g.W)
		for x, v := range g.data[y*g.W : (y+1)*g.W] {
			row[x] = int(v)
		}
		rows[y] = row
	}
	return rows
}

// String renders live cells as '#' and dead cells as '.', one line per row.
func (g *ByteGrid) String() string {
	buf := make([]byte, 0, (g.W+1)*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.data[y*g.W+x] != 0 {
				buf = append(buf, '#')
				continue
			}
			buf = append(buf, '.')
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
