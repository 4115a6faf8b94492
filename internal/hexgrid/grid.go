package hexgrid

import (
	"math"

	"github.com/san-kum/landscape/internal/rng"
)

const (
	MinElevation = -3.0
	MaxElevation = 3.0
)

// Cell is one spatial unit. Disclosure is not stored here; the fog overlay
// owns it.
type Cell struct {
	Coord
	Elevation float64 `json:"elevation"`
	Terminal  bool    `json:"terminal"`
}

// Grid is a rectangular field of hexagonal cells with an elevation per cell.
// It is not safe for concurrent mutation.
type Grid struct {
	cols, rows int
	cells      []Cell

	side    float64 // hexagon circumradius
	hStep   float64 // √3·side, centre-to-centre along a row
	vStep   float64 // 1.5·side, row-to-row
	originX float64
	originY float64

	rand *rng.RNG
}

// New builds a cols×rows grid of flat, non-terminal cells. Non-positive
// dimensions yield an empty grid; a non-positive side falls back to 1.
func New(cols, rows int, side float64) *Grid {
	cols, rows = max(cols, 0), max(rows, 0)
	if side <= 0 || math.IsNaN(side) {
		side = 1
	}
	g := &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]Cell, cols*rows),
		side:  side,
		hStep: math.Sqrt(3) * side,
		vStep: 1.5 * side,
		rand:  rng.NewTime(),
	}
	g.originX = g.hStep / 2
	g.originY = side
	g.Reset()
	return g
}

// Seed makes erosion deterministic.
func (g *Grid) Seed(seed int64) { g.rand = rng.New(seed) }

func (g *Grid) Cols() int      { return g.cols }
func (g *Grid) Rows() int      { return g.rows }
func (g *Grid) Len() int       { return len(g.cells) }
func (g *Grid) Side() float64  { return g.side }
func (g *Grid) HStep() float64 { return g.hStep }
func (g *Grid) VStep() float64 { return g.vStep }

// Contains reports whether c lies inside the grid.
func (g *Grid) Contains(c Coord) bool {
	return c.Col >= 0 && c.Col < g.cols && c.Row >= 0 && c.Row < g.rows
}

func (g *Grid) index(c Coord) (int, bool) {
	if !g.Contains(c) {
		return 0, false
	}
	return c.Row*g.cols + c.Col, true
}

// Lookup returns a copy of the cell at c.
func (g *Grid) Lookup(c Coord) (Cell, bool) {
	i, ok := g.index(c)
	if !ok {
		return Cell{}, false
	}
	return g.cells[i], true
}

// Elevation returns the elevation at c.
func (g *Grid) Elevation(c Coord) (float64, bool) {
	i, ok := g.index(c)
	if !ok {
		return 0, false
	}
	return g.cells[i].Elevation, true
}

// IsTerminal reports whether c is a terminal cell. Absent cells are not
// terminal.
func (g *Grid) IsTerminal(c Coord) bool {
	i, ok := g.index(c)
	return ok && g.cells[i].Terminal
}

// Cells returns a snapshot of every cell in row-major order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Coords enumerates every coordinate in row-major order.
func (g *Grid) Coords() []Coord {
	out := make([]Coord, len(g.cells))
	for i := range g.cells {
		out[i] = g.cells[i].Coord
	}
	return out
}

// Neighbors returns the in-bounds cells adjacent to c.
func (g *Grid) Neighbors(c Coord) []Coord {
	if !g.Contains(c) {
		return nil
	}
	out := make([]Coord, 0, 6)
	for dir := 0; dir < 6; dir++ {
		n := c.Step(dir)
		if g.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// SetElevation writes v clamped to [MinElevation, MaxElevation]. Terminal
// and absent cells reject the write.
func (g *Grid) SetElevation(c Coord, v float64) bool {
	i, ok := g.index(c)
	if !ok || g.cells[i].Terminal || math.IsNaN(v) {
		return false
	}
	g.cells[i].Elevation = clampElevation(v)
	return true
}

// ModifyElevation adds delta to the elevation under the same rules as
// SetElevation.
func (g *Grid) ModifyElevation(c Coord, delta float64) bool {
	i, ok := g.index(c)
	if !ok || g.cells[i].Terminal || math.IsNaN(delta) {
		return false
	}
	g.cells[i].Elevation = clampElevation(g.cells[i].Elevation + delta)
	return true
}

// SetTerminal flags or clears c as a terminal (ruin) cell.
func (g *Grid) SetTerminal(c Coord, terminal bool) bool {
	i, ok := g.index(c)
	if !ok {
		return false
	}
	g.cells[i].Terminal = terminal
	return true
}

// TerminalCount returns how many cells are flagged terminal.
func (g *Grid) TerminalCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Terminal {
			n++
		}
	}
	return n
}

// Reset restores every cell to elevation 0 and non-terminal.
func (g *Grid) Reset() {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			g.cells[row*g.cols+col] = Cell{Coord: Coord{Col: col, Row: row}}
		}
	}
}

func clampElevation(v float64) float64 {
	return math.Max(MinElevation, math.Min(MaxElevation, v))
}
