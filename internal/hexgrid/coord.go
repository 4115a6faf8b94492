package hexgrid

// Coord identifies a cell by column and row in odd-r offset layout: odd
// rows are shifted half a cell to the right.
type Coord struct {
	Col int `json:"col" yaml:"col"`
	Row int `json:"row" yaml:"row"`
}

func C(col, row int) Coord { return Coord{Col: col, Row: row} }

// offset deltas (dCol, dRow) in direction order E, NE, NW, W, SW, SE.
var (
	evenRowDirs = [6]Coord{{1, 0}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}}
	oddRowDirs  = [6]Coord{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {0, 1}, {1, 1}}
)

// cube is the axial (q, r) form of a coordinate; s = -q - r is implicit.
type cube struct{ q, r int }

var cubeDirs = [6]cube{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}

func (c Coord) toCube() cube {
	return cube{q: c.Col - (c.Row-(c.Row&1))/2, r: c.Row}
}

func (h cube) toCoord() Coord {
	return Coord{Col: h.q + (h.r-(h.r&1))/2, Row: h.r}
}

func (h cube) add(o cube) cube { return cube{h.q + o.q, h.r + o.r} }

func (h cube) scale(k int) cube { return cube{h.q * k, h.r * k} }

// Step returns the coordinate one cell away in direction dir (0..5). The
// result may lie outside any grid.
func (c Coord) Step(dir int) Coord {
	d := evenRowDirs[dir%6]
	if c.Row&1 == 1 {
		d = oddRowDirs[dir%6]
	}
	return Coord{Col: c.Col + d.Col, Row: c.Row + d.Row}
}

// Distance returns the hex step distance between two coordinates.
func Distance(a, b Coord) int {
	ha, hb := a.toCube(), b.toCube()
	dq := abs(ha.q - hb.q)
	dr := abs(ha.r - hb.r)
	ds := abs((-ha.q - ha.r) - (-hb.q - hb.r))
	return max(dq, dr, ds)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
