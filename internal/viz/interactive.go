package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/landscape/internal/config"
	"github.com/san-kum/landscape/internal/scenario"
	"github.com/san-kum/landscape/internal/sim"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateMenu = iota
	statePreset
	stateSim
)

// menu picks a scenario and preset, then hands over to a live Model.
type menu struct {
	state, cursor int
	registry      *scenario.Registry
	scenarios     []string
	presets       []string
	selected      string
	seed          int64
	err           error
	live          Model
}

func NewInteractiveApp(seed int64) *menu {
	r := scenario.NewRegistry()
	return &menu{
		state:     stateMenu,
		registry:  r,
		scenarios: r.List(),
		seed:      seed,
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		newLive, cmd := m.live.Update(msg)
		m.live = newLive.(Model)
		return m, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m menu) handleKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	items := m.items()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.state == statePreset {
			m.state, m.cursor = stateMenu, 0
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(items) == 0 {
			return m, nil
		}
		if m.state == stateMenu {
			m.selected = items[m.cursor]
			m.presets = append([]string{"default"}, config.ListPresets(m.selected)...)
			m.state, m.cursor = statePreset, 0
			return m, nil
		}
		return m.start(items[m.cursor])
	}
	return m, nil
}

func (m menu) items() []string {
	if m.state == statePreset {
		return m.presets
	}
	return m.scenarios
}

func (m menu) start(preset string) (menu, tea.Cmd) {
	cfg := config.GetPreset(m.selected, preset)
	if cfg == nil {
		cfg = config.DefaultConfig()
		cfg.Scenario = m.selected
	}
	cfg.Seed = m.seed

	s, err := sim.New(cfg)
	if err == nil {
		err = m.registry.Apply(s)
	}
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewModel(s, m.registry)
	m.state = stateSim
	return m, m.live.Init()
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var b strings.Builder
	title, sub := "LANDSCAPE", "resilience on a hex grid"
	if m.state == statePreset {
		title, sub = strings.ToUpper(m.selected), m.describe(m.selected)
	}
	b.WriteString("\n\n    " + titleStyle.Render(title) + "\n    " + subStyle.Render(sub) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")

	for i, name := range m.items() {
		desc := ""
		if m.state == stateMenu {
			desc = m.describe(name)
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-12s", name)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", idleStyle.Render(fmt.Sprintf("%-12s", name)), idleStyle.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusRuined.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + subStyle.Render(" navigate  ") + keyStyle.Render("enter") + subStyle.Render(" select  ") + keyStyle.Render("esc") + subStyle.Render(" back  ") + keyStyle.Render("q") + subStyle.Render(" quit") + "\n")
	return b.String()
}

func (m menu) describe(name string) string {
	sc, err := m.registry.Get(name)
	if err != nil {
		return ""
	}
	return sc.Description
}

// RunInteractive opens the scenario menu.
func RunInteractive(seed int64) error {
	_, err := tea.NewProgram(NewInteractiveApp(seed), tea.WithAltScreen()).Run()
	return err
}

// RunLive runs an already prepared session.
func RunLive(s *sim.Session, r *scenario.Registry) error {
	_, err := tea.NewProgram(NewModel(s, r), tea.WithAltScreen()).Run()
	return err
}
