package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/hexgrid"
	"github.com/san-kum/landscape/internal/marker"
	"github.com/san-kum/landscape/internal/ringbuf"
	"github.com/san-kum/landscape/internal/scenario"
	"github.com/san-kum/landscape/internal/sim"
)

const (
	historyCapacity = 600
	impulseStrength = 5.0
	noiseStep       = 0.1
	erodeIntensity  = 0.3
	keyMoveMs       = 300.0
)

type TickMsg time.Time

// Model drives a session from bubbletea ticks. Each tick advances the
// session by one frame; the view reads a snapshot.
type Model struct {
	session   *sim.Session
	registry  *scenario.Registry
	running   bool
	showHelp  bool
	showTrail bool
	status    string
	oscHist   *ringbuf.Ring[float64]
	recHist   *ringbuf.Ring[float64]
	width     int
}

func NewModel(s *sim.Session, r *scenario.Registry) Model {
	return Model{
		session:  s,
		registry: r,
		running:  true,
		oscHist:  ringbuf.New[float64](historyCapacity),
		recHist:  ringbuf.New[float64](historyCapacity),
		width:    80,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		s.Teardown()
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "i":
		kick := geom.FromAngle(s.Rand().Angle()).Scale(impulseStrength)
		s.Marker.ApplyImpulse(kick.X, kick.Y)
		m.status = "impulse"
	case "+", "=":
		s.Marker.SetNoise(s.Marker.Noise() + noiseStep)
		m.status = fmt.Sprintf("noise %.1f", s.Marker.Noise())
	case "-", "_":
		s.Marker.SetNoise(s.Marker.Noise() - noiseStep)
		m.status = fmt.Sprintf("noise %.1f", s.Marker.Noise())
	case "e":
		s.Grid.ApplyErosion(erodeIntensity)
		m.status = "eroded"
	case "f":
		if s.Overlay.PercentRevealed() < 100 {
			s.Overlay.RevealAll()
			m.status = "fog lifted"
		} else {
			s.Overlay.CoverAll()
			if c, ok := s.Marker.CurrentCell(); ok {
				s.Overlay.Reveal(c, max(s.Config().Fog.Radius, 1))
			}
			m.status = "fog down"
		}
	case "m":
		if s.Marker.Mode() == marker.ModeContinuous {
			s.Marker.SetMode(marker.ModeDiscrete)
		} else {
			s.Marker.SetMode(marker.ModeContinuous)
		}
		m.status = "mode " + s.Marker.Mode().String()
	case "1", "2", "3", "4", "5", "6":
		m.moveDir(int(key[0] - '1'))
	case "r":
		m.reset()
	case "p":
		s.Marker.RecordEquilibrium()
		m.status = "equilibrium recorded"
	case "t":
		NextTheme()
	case "v":
		m.showTrail = !m.showTrail
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// moveDir glides one cell in hex direction dir (0 = east, counter-clockwise).
func (m *Model) moveDir(dir int) {
	s := m.session
	here, ok := s.Marker.CurrentCell()
	if !ok {
		return
	}
	target := here.Step(dir)
	if s.Marker.MoveTo(target, keyMoveMs) {
		s.Overlay.Reveal(target, max(s.Config().Fog.Radius, 1))
		m.status = "moving " + neighbourLabel(here, dir)
	} else {
		m.status = "move rejected"
	}
}

func (m *Model) step() {
	f := m.session.Step()
	m.oscHist.Push(f.Marker.Metrics.Oscillation)
	m.recHist.Push(f.Marker.Metrics.Recovery)
}

// reset restarts the session and re-applies its scenario.
func (m *Model) reset() {
	s := m.session
	s.Restart()
	if m.registry != nil {
		if err := m.registry.Apply(s); err != nil {
			m.status = err.Error()
			return
		}
	}
	m.oscHist.Clear()
	m.recHist.Clear()
	m.running = true
	m.status = "reset"
}

func (m Model) View() string {
	s := m.session
	snap := s.Marker.Snapshot(true)

	status := StatusRunning.Render("RUNNING")
	switch {
	case snap.Terminal:
		status = StatusRuined.Render("COLLAPSED")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}

	var left strings.Builder
	left.WriteString(headerStyle.Render(strings.ToUpper(s.Config().Scenario)) + "\n")
	left.WriteString(status)
	if m.status != "" {
		left.WriteString("  " + helpStyle.UnsetMarginTop().Render(m.status))
	}
	left.WriteString("\n\n")
	if m.showTrail {
		w, h := s.Grid.Bounds()
		c := NewCanvas(s.Grid.Cols()*cellWidth/2, s.Grid.Rows(), w, h)
		c.DrawPath(s.Marker.History())
		left.WriteString(c.String())
	} else {
		left.WriteString(RenderHexMap(s.Grid, s.Overlay, snap, CurrentTheme))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top, left.String(), statsStyle.Render(m.stats(snap)))

	var b strings.Builder
	b.WriteString(view + "\n")
	if osc := m.oscHist.Slice(); len(osc) > 1 {
		graph := asciigraph.Plot(osc,
			asciigraph.Height(6),
			asciigraph.Width(max(min(m.width-10, 70), 20)),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("oscillation"),
		)
		b.WriteString(graphStyle.Render(graph) + "\n")
	}
	if m.showHelp {
		b.WriteString(helpStyle.Render(helpText) + "\n")
	} else {
		b.WriteString(helpStyle.Render("space pause  i impulse  +/- noise  e erode  f fog  r reset  ? help  q quit") + "\n")
	}
	return b.String()
}

func (m Model) stats(snap marker.Snapshot) string {
	s := m.session
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("frame", fmt.Sprintf("%d", s.FrameIndex())))
	b.WriteString(row("time", fmt.Sprintf("%.1fs", snap.Clock/1000)))
	b.WriteString(row("mode", snap.Mode.String()))
	if snap.OnGrid {
		e, _ := s.Grid.Elevation(snap.Cell)
		b.WriteString(row("cell", fmt.Sprintf("(%d,%d) %+.2f", snap.Cell.Col, snap.Cell.Row, e)))
	} else {
		b.WriteString(row("cell", "off grid"))
	}
	b.WriteString(row("speed", fmt.Sprintf("%.2f px/f", snap.Velocity.Norm())))
	b.WriteString(row("noise", fmt.Sprintf("%.1f", snap.Noise)))
	if snap.Moving {
		b.WriteString(row("glide", ProgressBar(snap.Progress, 16)))
	}
	b.WriteString("\n")
	b.WriteString(row("oscillation", fmt.Sprintf("%.3f", snap.Metrics.Oscillation)))
	b.WriteString(row("recovery", ProgressBar(snap.Metrics.Recovery, 16)))
	b.WriteString(row("distance", fmt.Sprintf("%.1f px", snap.Metrics.Distance)))
	b.WriteString(row("trend", Sparkline(m.recHist.Tail(24), 24)))
	b.WriteString(row("revealed", fmt.Sprintf("%.0f%%", s.Overlay.PercentRevealed())))
	b.WriteString(row("ruins", fmt.Sprintf("%d", s.Grid.TerminalCount())))
	b.WriteString(row("theme", CurrentTheme.Name))
	return b.String()
}

const helpText = `space  pause / resume
i      random impulse
+ -    raise / lower noise
e      erode the whole landscape
f      toggle fog
m      toggle continuous / discrete
1-6    glide one cell (E, NE, NW, W, SW, SE)
p      record equilibrium here
r      restart scenario
v      toggle trail view
t      cycle theme
q      quit`

// neighbourLabel names direction dir for status lines.
func neighbourLabel(c hexgrid.Coord, dir int) string {
	names := [6]string{"E", "NE", "NW", "W", "SW", "SE"}
	n := c.Step(dir)
	return fmt.Sprintf("%s (%d,%d)", names[dir%6], n.Col, n.Row)
}
