package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plexus/internal/config"
)

// menu lets the user pick a preset before the live view starts.
type menu struct {
	base     Options
	presets  []string
	cursor   int
	live     *Model
	err      error
	width    int
	height   int
	selected string
}

// NewMenu starts on the preset list. base supplies the logger, seed and GIF
// path; everything else comes from the chosen preset.
func NewMenu(base Options) *menu {
	return &menu{base: base, presets: config.ListPresets(), width: width, height: height}
}

func (m *menu) Init() tea.Cmd { return nil }

func (m *menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		if ws, ok := msg.(tea.WindowSizeMsg); ok {
			m.width, m.height = ws.Width, ws.Height
		}
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m, m.start(m.presets[m.cursor])
		}
	}
	return m, nil
}

func (m *menu) start(name string) tea.Cmd {
	opts, err := optionsFromPreset(m.base, name)
	if err != nil {
		m.err = err
		return nil
	}
	live, err := NewModel(opts)
	if err != nil {
		m.err = err
		return nil
	}
	live.resize(m.width, m.height)
	m.live, m.selected = &live, name
	return live.Init()
}

func optionsFromPreset(base Options, name string) (Options, error) {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return base, fmt.Errorf("unknown preset: %s", name)
	}
	cfg.Seed = base.Sim.Seed
	opts := base
	opts.Sim = cfg.Options()
	opts.Sim.Logger = base.Sim.Logger
	opts.Controls = cfg.ControlState()
	opts.FPS = cfg.FPS
	opts.Theme = cfg.Theme
	return opts, nil
}

func (m *menu) View() string {
	if m.live != nil {
		return m.live.View()
	}
	var b strings.Builder
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	b.WriteString("\n\n    " + GradientText("PLEXUS", ThemeMidnight.Accent, ThemeMidnight.Lines) + "\n    " + sub.Render("particle proximity field") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetSummary(name)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-12s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(fmt.Sprintf("  %-12s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func presetSummary(name string) string {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return ""
	}
	c := cfg.ControlState()
	limit := "unlimited"
	if c.LimitConnections {
		limit = fmt.Sprintf("max %d", c.MaxConnections)
	}
	return fmt.Sprintf("%4d particles  d<%-3.0f %s  %s", c.ParticleCount, c.MinDistance, limit, cfg.Builder)
}

// RunInteractive shows the preset menu, then the chosen live session.
func RunInteractive(base Options) error {
	_, err := tea.NewProgram(NewMenu(base), tea.WithAltScreen()).Run()
	return err
}
