package viz

import (
	"strings"

	"github.com/san-kum/landscape/internal/geom"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille dot canvas that maps world coordinates (the grid's
// pixel space) onto Width*2 x Height*4 dots.
type Canvas struct {
	Width, Height int
	cells         [][]rune
	worldW        float64
	worldH        float64
}

func NewCanvas(w, h int, worldW, worldH float64) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		cells:  make([][]rune, h),
		worldW: max(worldW, 1),
		worldH: max(worldH, 1),
	}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBlank
		}
	}
}

// project maps a world point to dot coordinates.
func (c *Canvas) project(p geom.Vec) (int, int) {
	x := int(p.X / c.worldW * float64(c.Width*2-1))
	y := int(p.Y / c.worldH * float64(c.Height*4-1))
	return x, y
}

// DrawPath connects consecutive world points with lines.
func (c *Canvas) DrawPath(points []geom.Vec) {
	for i, p := range points {
		x1, y1 := c.project(p)
		if i == 0 {
			c.Set(x1, y1)
			continue
		}
		x0, y0 := c.project(points[i-1])
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
