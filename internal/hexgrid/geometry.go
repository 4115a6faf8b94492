package hexgrid

import (
	"math"

	"github.com/san-kum/landscape/internal/geom"
)

// ToPixel returns the centre of c on the canvas plane (pointy-top layout).
// It is defined for any coordinate, including ones outside the grid.
func (g *Grid) ToPixel(c Coord) geom.Vec {
	return geom.Vec{
		X: g.originX + g.hStep*(float64(c.Col)+0.5*float64(c.Row&1)),
		Y: g.originY + g.vStep*float64(c.Row),
	}
}

// CellAt maps a canvas point to the cell containing it. The inverse
// transform gives a candidate; the true answer is the nearest centre among
// the candidate's 3×3 offset neighbourhood. If that nearest centre lies
// outside the grid the point is outside too.
func (g *Grid) CellAt(p geom.Vec) (Coord, bool) {
	if !p.IsValid() || len(g.cells) == 0 {
		return Coord{}, false
	}
	row := int(math.Round((p.Y - g.originY) / g.vStep))
	col := int(math.Round((p.X-g.originX)/g.hStep - 0.5*float64(row&1)))

	best := Coord{Col: col, Row: row}
	bestDist := math.Inf(1)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			c := Coord{Col: col + dc, Row: row + dr}
			if d := g.ToPixel(c).Sub(p).NormSq(); d < bestDist {
				best, bestDist = c, d
			}
		}
	}
	if !g.Contains(best) {
		return Coord{}, false
	}
	return best, true
}

// Bounds returns the canvas width and height covering every cell.
func (g *Grid) Bounds() (w, h float64) {
	if g.cols == 0 || g.rows == 0 {
		return 0, 0
	}
	w = g.hStep * (float64(g.cols) + 0.5)
	h = g.vStep*float64(g.rows-1) + 2*g.side
	return w, h
}

// Midpoint returns the centre of the canvas.
func (g *Grid) Midpoint() geom.Vec {
	w, h := g.Bounds()
	return geom.Vec{X: w / 2, Y: h / 2}
}

// Corners returns the six vertices of c's hexagon, starting at the top and
// going clockwise. Renderers use it to outline cells.
func (g *Grid) Corners(c Coord) [6]geom.Vec {
	center := g.ToPixel(c)
	var out [6]geom.Vec
	for i := range out {
		a := math.Pi/180*(60*float64(i)) - math.Pi/2
		out[i] = center.Add(geom.FromAngle(a).Scale(g.side))
	}
	return out
}
