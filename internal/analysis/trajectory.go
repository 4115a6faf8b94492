package analysis

import (
	"strings"

	"github.com/san-kum/landscape/internal/geom"
)

// TrajectoryToASCII draws marker positions in screen orientation (y grows
// downward), marking the equilibrium with '+' when one is given.
func TrajectoryToASCII(points []geom.Vec, eq *geom.Vec, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	// Find bounds
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	all := points
	if eq != nil {
		all = append(append([]geom.Vec(nil), points...), *eq)
	}
	for _, p := range all {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	plot := func(p geom.Vec, r rune) {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := int((p.Y - minY) / rangeY * float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = r
		}
	}
	for _, p := range points {
		plot(p, '•')
	}
	if eq != nil {
		plot(*eq, '+')
	}
	plot(points[len(points)-1], '@')

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
