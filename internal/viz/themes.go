package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme for the hex map and panels. Elevation colours
// are interpolated Deep → Flat → Peak.
type Theme struct {
	Name    string
	Deep    lipgloss.Color
	Flat    lipgloss.Color
	Peak    lipgloss.Color
	Fog     lipgloss.Color
	Ruin    lipgloss.Color
	Marker  lipgloss.Color
	Trail   lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeEarth = Theme{
		Name:    "earth",
		Deep:    lipgloss.Color("#1b4d2e"), // Valley green
		Flat:    lipgloss.Color("#8a7a4f"),
		Peak:    lipgloss.Color("#e8e0d0"), // Snow
		Fog:     lipgloss.Color("#2a2a33"),
		Ruin:    lipgloss.Color("#8b1e1e"),
		Marker:  lipgloss.Color("#ffd700"),
		Trail:   lipgloss.Color("#ffaa44"),
		Accent:  lipgloss.Color("#00ccff"),
		Muted:   lipgloss.Color("#666688"),
		Warning: lipgloss.Color("#ff4444"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Deep:    lipgloss.Color("#001a33"),
		Flat:    lipgloss.Color("#0077be"),
		Peak:    lipgloss.Color("#e0f0ff"),
		Fog:     lipgloss.Color("#111111"),
		Ruin:    lipgloss.Color("#ff4757"),
		Marker:  lipgloss.Color("#ffd700"),
		Trail:   lipgloss.Color("#00ff88"),
		Accent:  lipgloss.Color("#00a8cc"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Deep:    lipgloss.Color("#000000"),
		Flat:    lipgloss.Color("#555555"),
		Peak:    lipgloss.Color("#ffffff"),
		Fog:     lipgloss.Color("#1a1a1a"),
		Ruin:    lipgloss.Color("#aa0000"),
		Marker:  lipgloss.Color("#ffff00"),
		Trail:   lipgloss.Color("#cccccc"),
		Accent:  lipgloss.Color("#0088ff"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	CurrentTheme = ThemeEarth

	Themes = []Theme{
		ThemeEarth,
		ThemeOcean,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to earth.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEarth
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme cycles CurrentTheme.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

// ElevationColor maps e in [-3, 3] onto the theme's elevation ramp.
func (t Theme) ElevationColor(e float64) lipgloss.Color {
	const span = 3.0
	if e < 0 {
		return lerpColor(t.Flat, t.Deep, min(-e/span, 1))
	}
	return lerpColor(t.Flat, t.Peak, min(e/span, 1))
}
