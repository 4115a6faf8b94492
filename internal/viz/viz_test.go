package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/landscape/internal/config"
	"github.com/san-kum/landscape/internal/fog"
	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/hexgrid"
	"github.com/san-kum/landscape/internal/marker"
	"github.com/san-kum/landscape/internal/scenario"
	"github.com/san-kum/landscape/internal/sim"
)

func TestRenderHexMap_Layout(t *testing.T) {
	g := hexgrid.New(5, 4, 10)
	m := marker.New(g, 2, 1)

	out := RenderHexMap(g, nil, m.Snapshot(false), ThemeMono)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Error("odd rows should be indented")
	}
	if !strings.Contains(lines[1], "@") {
		t.Error("expected marker on row 1")
	}
}

func TestRenderHexMap_FogAndRuins(t *testing.T) {
	g := hexgrid.New(4, 3, 10)
	g.SetTerminal(hexgrid.C(0, 0), true)
	o := fog.NewHidden(g)
	o.Reveal(hexgrid.C(0, 0), 0)
	m := marker.New(g, 3, 2)

	out := RenderHexMap(g, o, m.Snapshot(false), ThemeMono)
	if !strings.Contains(out, "×") {
		t.Error("expected revealed ruin to be drawn")
	}
	if !strings.Contains(out, "░") {
		t.Error("expected hidden cells to show fog")
	}
	if !strings.Contains(out, "@") {
		t.Error("marker should be drawn even under fog")
	}
	if RenderHexMap(nil, nil, marker.Snapshot{}, ThemeMono) != "" {
		t.Error("expected empty render for nil grid")
	}
}

func TestElevationColor(t *testing.T) {
	th := ThemeMono
	if th.ElevationColor(0) != th.Flat {
		t.Errorf("expected flat colour at 0, got %s", th.ElevationColor(0))
	}
	if th.ElevationColor(-3) != th.Deep || th.ElevationColor(-10) != th.Deep {
		t.Error("expected deep colour at and below the floor")
	}
	if th.ElevationColor(3) != th.Peak {
		t.Error("expected peak colour at the ceiling")
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme("earth")

	if GetTheme("nonexistent").Name != "earth" {
		t.Error("expected fallback to earth")
	}
	SetTheme("mono")
	NextTheme()
	if CurrentTheme.Name != "earth" {
		t.Errorf("expected cycle to wrap to earth, got %s", CurrentTheme.Name)
	}
}

func TestCanvasDrawPath(t *testing.T) {
	c := NewCanvas(10, 5, 100, 100)
	c.DrawPath([]geom.Vec{geom.V(0, 0), geom.V(100, 100)})

	out := c.String()
	if strings.Count(out, "\n") != 5 {
		t.Errorf("expected 5 rows, got %d", strings.Count(out, "\n"))
	}
	blank := strings.Repeat(string(rune(brailleBlank)), 10)
	for i, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if line == blank {
			t.Errorf("row %d: expected the diagonal to cross every row", i)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1}, 2); got != "▁█" {
		t.Errorf("expected ▁█, got %s", got)
	}
	if got := Sparkline([]float64{1, 2, 3, 4}, 2); len([]rune(got)) != 2 {
		t.Errorf("expected width 2, got %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("expected flat line, got %q", got)
	}
}

func newLive(t *testing.T) Model {
	t.Helper()
	cfg := config.GetPreset("basin", "deep")
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	r := scenario.NewRegistry()
	if err := r.Apply(s); err != nil {
		t.Fatal(err)
	}
	return NewModel(s, r)
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	if key == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_TickAndPause(t *testing.T) {
	m := newLive(t)
	for i := 0; i < 5; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	if m.session.FrameIndex() != 5 {
		t.Errorf("expected 5 frames, got %d", m.session.FrameIndex())
	}

	m = press(m, " ")
	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.session.FrameIndex() != 5 {
		t.Error("paused model should not advance")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected PAUSED in view")
	}
}

func TestModel_Keys(t *testing.T) {
	m := newLive(t)

	m = press(m, "+")
	if m.session.Marker.Noise() != 0.1 {
		t.Errorf("expected noise 0.1, got %f", m.session.Marker.Noise())
	}
	m = press(m, "i")
	if m.session.Marker.Speed() == 0 {
		t.Error("expected impulse to move the marker")
	}
	m = press(m, "f")
	if m.session.Overlay.PercentRevealed() == 100 {
		t.Error("expected fog to come down")
	}
	m = press(m, "f")
	if m.session.Overlay.PercentRevealed() != 100 {
		t.Error("expected fog to lift")
	}
	m = press(m, "r")
	if m.session.FrameIndex() != 0 || m.session.Marker.Speed() != 0 {
		t.Error("expected reset to rest state")
	}
	if e, _ := m.session.Grid.Elevation(m.session.StartCell()); e != m.session.Config().Terrain.Depth {
		t.Error("expected scenario to be re-applied after reset")
	}
}

func TestModel_ViewShowsStats(t *testing.T) {
	m := newLive(t)
	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"BASIN", "RUNNING", "recovery", "oscillation"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestMenu_SelectScenario(t *testing.T) {
	app := NewInteractiveApp(1)
	var m tea.Model = *app

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.(menu).state != statePreset || m.(menu).selected != "basin" {
		t.Fatalf("expected preset list for basin, got state %d", m.(menu).state)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.(menu).state != stateSim {
		t.Fatalf("expected live view, got state %d", m.(menu).state)
	}
	if m.(menu).live.session.Config().Seed != 1 {
		t.Error("expected menu seed to reach the session")
	}
}
