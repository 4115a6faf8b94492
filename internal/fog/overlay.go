// Package fog tracks how much of each grid cell has been disclosed to the
// player. The overlay is the only source of disclosure state; grid cells do
// not mirror it.
package fog

import (
	"math"

	"github.com/san-kum/landscape/internal/hexgrid"
	"github.com/san-kum/landscape/internal/rng"
)

// RevealThreshold is the level above which a cell counts as revealed.
const RevealThreshold = 0.5

// Overlay maps every grid cell to a disclosure level in [0, 1]. Entries are
// created once at construction; the set of keys never changes afterwards.
type Overlay struct {
	grid   *hexgrid.Grid
	levels map[hexgrid.Coord]float64
	rand   *rng.RNG
}

// New creates an overlay with every cell fully revealed.
func New(g *hexgrid.Grid) *Overlay {
	o := &Overlay{
		grid:   g,
		levels: make(map[hexgrid.Coord]float64, g.Len()),
		rand:   rng.NewTime(),
	}
	for _, c := range g.Coords() {
		o.levels[c] = 1
	}
	return o
}

// NewHidden creates an overlay with every cell covered.
func NewHidden(g *hexgrid.Grid) *Overlay {
	o := New(g)
	o.CoverAll()
	return o
}

// Seed makes RevealRandom deterministic.
func (o *Overlay) Seed(seed int64) { o.rand = rng.New(seed) }

// Level returns the disclosure of c; absent cells report 0, false.
func (o *Overlay) Level(c hexgrid.Coord) (float64, bool) {
	v, ok := o.levels[c]
	return v, ok
}

// SetLevel writes a clamped disclosure level. Unknown cells are ignored.
func (o *Overlay) SetLevel(c hexgrid.Coord, v float64) bool {
	if _, ok := o.levels[c]; !ok {
		return false
	}
	if math.IsNaN(v) {
		v = 0
	}
	o.levels[c] = math.Max(0, math.Min(1, v))
	return true
}

func (o *Overlay) IsRevealed(c hexgrid.Coord) bool {
	return o.levels[c] > RevealThreshold
}

// Reveal discloses center and every cell within radius rings of it.
func (o *Overlay) Reveal(center hexgrid.Coord, radius int) {
	o.fill(center, radius, 1)
}

// Cover hides center and every cell within radius rings of it.
func (o *Overlay) Cover(center hexgrid.Coord, radius int) {
	o.fill(center, radius, 0)
}

func (o *Overlay) fill(center hexgrid.Coord, radius int, v float64) {
	for _, c := range o.grid.Spiral(center, radius) {
		o.SetLevel(c, v)
	}
}

func (o *Overlay) RevealAll() { o.setAll(1) }
func (o *Overlay) CoverAll()  { o.setAll(0) }

func (o *Overlay) setAll(v float64) {
	for c := range o.levels {
		o.levels[c] = v
	}
}

// RevealRandom reveals one uniformly chosen hidden cell. It reports false
// when nothing is left to reveal.
func (o *Overlay) RevealRandom() (hexgrid.Coord, bool) {
	// Iterate in grid order so seeded runs are reproducible.
	hidden := make([]hexgrid.Coord, 0)
	for _, c := range o.grid.Coords() {
		if !o.IsRevealed(c) {
			hidden = append(hidden, c)
		}
	}
	if len(hidden) == 0 {
		return hexgrid.Coord{}, false
	}
	c := hidden[o.rand.IntN(len(hidden))]
	o.levels[c] = 1
	return c, true
}

// RevealedCount returns the number of revealed cells.
func (o *Overlay) RevealedCount() int {
	n := 0
	for _, v := range o.levels {
		if v > RevealThreshold {
			n++
		}
	}
	return n
}

// PercentRevealed returns the revealed share of cells in [0, 100]. An empty
// grid is reported as fully revealed.
func (o *Overlay) PercentRevealed() float64 {
	if len(o.levels) == 0 {
		return 100
	}
	return 100 * float64(o.RevealedCount()) / float64(len(o.levels))
}

// Len returns the number of tracked cells, always equal to the grid size.
func (o *Overlay) Len() int { return len(o.levels) }

// Reset re-initialises every cell to revealed (or hidden when hidden is set).
func (o *Overlay) Reset(hidden bool) {
	if hidden {
		o.CoverAll()
		return
	}
	o.RevealAll()
}
