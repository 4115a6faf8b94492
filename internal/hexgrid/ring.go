package hexgrid

// Ring returns the in-bounds cells at exactly radius steps from center.
// Radius 0 is the center itself; negative radius is treated as 0. The walk
// starts radius steps to the south-west and takes radius steps in each of
// the six directions.
func (g *Grid) Ring(center Coord, radius int) []Coord {
	if radius <= 0 {
		if g.Contains(center) {
			return []Coord{center}
		}
		return nil
	}
	out := make([]Coord, 0, 6*radius)
	h := center.toCube().add(cubeDirs[4].scale(radius))
	for dir := 0; dir < 6; dir++ {
		for step := 0; step < radius; step++ {
			if c := h.toCoord(); g.Contains(c) {
				out = append(out, c)
			}
			h = h.add(cubeDirs[dir])
		}
	}
	return out
}

// Spiral returns center followed by every ring out to radius.
func (g *Grid) Spiral(center Coord, radius int) []Coord {
	var out []Coord
	for k := 0; k <= max(radius, 0); k++ {
		out = append(out, g.Ring(center, k)...)
	}
	return out
}
