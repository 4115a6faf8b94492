package hexgrid

import "math"

// ShapeValley sets center to depth and lowers each neighbour to at most
// depth+1. Terminal cells are left untouched.
func (g *Grid) ShapeValley(center Coord, depth float64) {
	if !g.Contains(center) {
		return
	}
	g.SetElevation(center, depth)
	rim := depth + 1
	for _, n := range g.Neighbors(center) {
		if e, _ := g.Elevation(n); e > rim {
			g.SetElevation(n, rim)
		}
	}
}

// ShapeRidge is the inverse of ShapeValley: center rises to height and each
// neighbour rises to at least height-1.
func (g *Grid) ShapeRidge(center Coord, height float64) {
	if !g.Contains(center) {
		return
	}
	g.SetElevation(center, height)
	shoulder := height - 1
	for _, n := range g.Neighbors(center) {
		if e, _ := g.Elevation(n); e < shoulder {
			g.SetElevation(n, shoulder)
		}
	}
}

// ShapeBasin carves a bowl: every cell within radius of center gets
// depth scaled linearly toward 0 at the rim, keeping the lower of the
// current and carved elevation.
func (g *Grid) ShapeBasin(center Coord, radius int, depth float64) {
	if !g.Contains(center) {
		return
	}
	radius = max(radius, 0)
	for k := 0; k <= radius; k++ {
		carved := depth * (1 - float64(k)/float64(radius+1))
		for _, c := range g.Ring(center, k) {
			if e, _ := g.Elevation(c); carved < e {
				g.SetElevation(c, carved)
			}
		}
	}
}

// ApplyErosion raises every non-terminal cell by intensity·U[0,1), clamped
// to the elevation range. Non-positive intensity changes nothing.
func (g *Grid) ApplyErosion(intensity float64) {
	if !(intensity > 0) || math.IsInf(intensity, 0) {
		return
	}
	for i := range g.cells {
		if g.cells[i].Terminal {
			continue
		}
		g.cells[i].Elevation = clampElevation(g.cells[i].Elevation + intensity*g.rand.Float64())
	}
}

// ErodeAround applies erosion only within radius of center, used for
// localised degradation of a single basin.
func (g *Grid) ErodeAround(center Coord, radius int, intensity float64) {
	if !(intensity > 0) || math.IsInf(intensity, 0) {
		return
	}
	for k := 0; k <= max(radius, 0); k++ {
		for _, c := range g.Ring(center, k) {
			g.ModifyElevation(c, intensity*g.rand.Float64())
		}
	}
}

// Lowest returns the lowest non-terminal neighbour of c that is strictly
// lower than c itself.
func (g *Grid) Lowest(c Coord) (Coord, bool) {
	here, ok := g.Elevation(c)
	if !ok {
		return Coord{}, false
	}
	best, found := Coord{}, false
	for _, n := range g.Neighbors(c) {
		cell, _ := g.Lookup(n)
		if cell.Terminal || cell.Elevation >= here {
			continue
		}
		best, here, found = n, cell.Elevation, true
	}
	return best, found
}
