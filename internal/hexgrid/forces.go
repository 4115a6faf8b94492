package hexgrid

import (
	"github.com/san-kum/landscape/internal/geom"
)

// CenteringEpsilon is the distance from a cell centre below which
// CenteringForce is zero.
const CenteringEpsilon = 0.5

const flatGradient = 1e-9

// Gradient returns the unit direction of steepest elevation decrease at c.
// Each neighbour contributes the unit vector toward its centre weighted by
// (elev(c) - elev(n)) / distance; the sum is normalised. Flat or isolated
// cells give the zero vector.
func (g *Grid) Gradient(c Coord) geom.Vec {
	here, ok := g.Elevation(c)
	if !ok {
		return geom.Vec{}
	}
	center := g.ToPixel(c)

	var sum geom.Vec
	for _, n := range g.Neighbors(c) {
		e := g.cells[n.Row*g.cols+n.Col].Elevation
		offset := g.ToPixel(n).Sub(center)
		dist := offset.Norm()
		if dist == 0 {
			continue
		}
		sum = sum.Add(offset.Scale((here - e) / dist / dist))
	}
	if sum.Norm() < flatGradient {
		return geom.Vec{}
	}
	return sum.Unit()
}

// CenteringForce pulls p toward the centre of c with the given strength.
func (g *Grid) CenteringForce(c Coord, p geom.Vec, strength float64) geom.Vec {
	if !g.Contains(c) {
		return geom.Vec{}
	}
	d := g.ToPixel(c).Sub(p)
	if d.Norm() < CenteringEpsilon {
		return geom.Vec{}
	}
	return d.Unit().Scale(strength)
}
