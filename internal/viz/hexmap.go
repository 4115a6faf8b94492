package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/landscape/internal/fog"
	"github.com/san-kum/landscape/internal/hexgrid"
	"github.com/san-kum/landscape/internal/marker"
)

// cellWidth is the number of terminal columns per hex; odd rows are
// indented by half of it.
const cellWidth = 4

// RenderHexMap draws the grid row by row in odd-r layout. Hidden cells
// show as fog, ruins in the ruin colour, cells under the trail with a dot
// and the marker's cell with '@'. The overlay may be nil.
func RenderHexMap(g *hexgrid.Grid, o *fog.Overlay, snap marker.Snapshot, theme Theme) string {
	if g == nil || g.Len() == 0 {
		return ""
	}

	trail := make(map[hexgrid.Coord]bool, len(snap.Trail))
	for _, p := range snap.Trail {
		if c, ok := g.CellAt(p); ok {
			trail[c] = true
		}
	}

	var b strings.Builder
	for row := 0; row < g.Rows(); row++ {
		if row&1 == 1 {
			b.WriteString(strings.Repeat(" ", cellWidth/2))
		}
		for col := 0; col < g.Cols(); col++ {
			c := hexgrid.C(col, row)
			b.WriteString(renderCell(g, o, c, snap, trail[c], theme))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderCell(g *hexgrid.Grid, o *fog.Overlay, c hexgrid.Coord, snap marker.Snapshot, onTrail bool, theme Theme) string {
	cell, _ := g.Lookup(c)
	here := snap.OnGrid && snap.Cell == c

	if o != nil && !o.IsRevealed(c) && !here {
		return lipgloss.NewStyle().Foreground(theme.Fog).Render(strings.Repeat("░", cellWidth))
	}

	style := lipgloss.NewStyle().Background(theme.ElevationColor(cell.Elevation))
	glyph := "    "
	switch {
	case here && snap.Terminal:
		style = style.Background(theme.Ruin).Foreground(theme.Marker).Bold(true)
		glyph = " ✕  "
	case here:
		style = style.Foreground(theme.Marker).Bold(true)
		glyph = " @  "
	case cell.Terminal:
		style = style.Background(theme.Ruin)
		glyph = " ×  "
	case onTrail:
		style = style.Foreground(theme.Trail)
		glyph = " ·  "
	}
	return style.Render(glyph)
}
