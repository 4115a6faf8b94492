package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/landscape/internal/fog"
	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/hexgrid"
	"github.com/san-kum/landscape/internal/viz"
)

// HexMapToSVG draws every cell as a filled hexagon in grid pixel space.
// Hidden cells take the fog colour, ruins are outlined in the ruin colour,
// and the trail is drawn on top ending in a dot at the last position.
func HexMapToSVG(g *hexgrid.Grid, o *fog.Overlay, trail []geom.Vec, theme viz.Theme) string {
	if g == nil {
		return ""
	}

	w, h := g.Bounds()
	pad := g.Side()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%.1f %.1f %.1f %.1f">
<rect x="%.1f" y="%.1f" width="100%%" height="100%%" fill="#0a0a0a"/>
`, w+2*pad, h+2*pad, -pad, -pad, w+2*pad, h+2*pad, -pad, -pad))

	sb.WriteString(`<g stroke-width="1">` + "\n")
	for _, cell := range g.Cells() {
		fill := string(theme.ElevationColor(cell.Elevation))
		stroke := "#0a0a0a"
		if o != nil && !o.IsRevealed(cell.Coord) {
			fill = string(theme.Fog)
		} else if cell.Terminal {
			stroke = string(theme.Ruin)
		}
		sb.WriteString(fmt.Sprintf(`<polygon points="%s" fill="%s" stroke="%s"/>`+"\n",
			polygonPoints(g.Corners(cell.Coord)), fill, stroke))
	}
	sb.WriteString("</g>\n")

	if len(trail) > 1 {
		sb.WriteString(pathElement(trail, func(p geom.Vec) (float64, float64) { return p.X, p.Y }, string(theme.Trail)))
	}
	if len(trail) > 0 {
		last := trail[len(trail)-1]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			last.X, last.Y, g.Side()/3, string(theme.Marker)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func polygonPoints(corners [6]geom.Vec) string {
	parts := make([]string, len(corners))
	for i, c := range corners {
		parts[i] = fmt.Sprintf("%.1f,%.1f", c.X, c.Y)
	}
	return strings.Join(parts, " ")
}

func pathElement(points []geom.Vec, project func(geom.Vec) (float64, float64), stroke string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i, p := range points {
		x, y := project(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>` + "\n")
	return sb.String()
}

// TrajectoryToSVG fits points into a width x height image with 10% padding.
// Screen y grows downward, the same as grid pixel space.
func TrajectoryToSVG(points []geom.Vec, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
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

	project := func(p geom.Vec) (float64, float64) {
		return (p.X - minX) / rangeX * float64(width), (p.Y - minY) / rangeY * float64(height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
	sb.WriteString(pathElement(points, project, strokeColor))
	sb.WriteString("</svg>")
	return sb.String()
}
