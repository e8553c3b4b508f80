package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plexus/internal/field"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 46
	historyCapacity = 600

	// Scene rotation about Y, radians per second.
	spinRate = 0.1

	minDistanceStep = 10
	particleStep    = 50
	particleJump    = 500
	orbitStep       = 0.1
)

// Options configure a live session.
type Options struct {
	Sim      field.Options
	Controls field.ControlState
	FPS      int
	Theme    string
	GIFPath  string
}

type TickMsg time.Time

// Model drives one simulator from bubbletea ticks and renders it onto a
// braille canvas. Key presses write the shared Controls; each tick reads one
// snapshot.
type Model struct {
	opts          Options
	sim           *field.Simulator
	controls      *field.Controls
	frame         *field.Frame
	canvas        *Canvas
	camera        *Camera
	theme         Theme
	logger        *log.Logger
	width, height int
	interval      time.Duration
	lastTick      time.Time
	fps           float64
	running       bool
	showHelp      bool
	history       []float64
	recorder      *Recorder
	notice        string
}

// NewModel builds the simulator described by opts.
func NewModel(opts Options) (Model, error) {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "plexus.gif"
	}
	sim, err := field.New(opts.Sim)
	if err != nil {
		return Model{}, err
	}
	logger := opts.Sim.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		opts:     opts,
		sim:      sim,
		controls: field.NewControls(opts.Controls, sim.Store().Cap()),
		canvas:   NewCanvas(width, height),
		camera:   NewCamera(float64(sim.Store().HalfExtent())),
		theme:    GetTheme(opts.Theme),
		logger:   logger,
		width:    width,
		height:   height,
		interval: time.Second / time.Duration(opts.FPS),
		running:  true,
		history:  make([]float64, 0, historyCapacity),
	}, nil
}

// Controls exposes the live control surface; it is safe to write from any
// goroutine while the program runs.
func (m Model) Controls() *field.Controls { return m.controls }

func (m Model) Frame() *field.Frame { return m.frame }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		now := time.Time(msg)
		dt := m.interval.Seconds()
		if !m.lastTick.IsZero() {
			if d := now.Sub(m.lastTick).Seconds(); d > 0 {
				dt = d
				m.fps = 0.9*m.fps + 0.1/d
			}
		}
		m.lastTick = now
		if m.running {
			m.step()
			m.camera.Orbit(spinRate*dt, 0)
		}
		m.draw()
		if m.recorder != nil {
			m.recorder.Capture(m.canvas)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.controls
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recorder != nil {
			m.stopRecording()
		}
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "d":
		c.SetShowDots(!c.Snapshot().ShowDots)
	case "l":
		c.SetShowLines(!c.Snapshot().ShowLines)
	case "c":
		c.SetLimitConnections(!c.Snapshot().LimitConnections)
	case "[":
		c.SetMinDistance(c.Snapshot().MinDistance - minDistanceStep)
	case "]":
		c.SetMinDistance(c.Snapshot().MinDistance + minDistanceStep)
	case "-", "_":
		c.SetMaxConnections(int(c.Snapshot().MaxConnections) - 1)
	case "=", "+":
		c.SetMaxConnections(int(c.Snapshot().MaxConnections) + 1)
	case ",":
		c.SetParticleCount(int(c.Snapshot().ParticleCount) - particleStep)
	case ".":
		c.SetParticleCount(int(c.Snapshot().ParticleCount) + particleStep)
	case "<":
		c.SetParticleCount(int(c.Snapshot().ParticleCount) - particleJump)
	case ">":
		c.SetParticleCount(int(c.Snapshot().ParticleCount) + particleJump)
	case "left":
		m.camera.Orbit(-orbitStep, 0)
	case "right":
		m.camera.Orbit(orbitStep, 0)
	case "up":
		m.camera.Orbit(0, orbitStep)
	case "down":
		m.camera.Orbit(0, -orbitStep)
	case "z":
		m.camera.ZoomIn()
	case "Z":
		m.camera.ZoomOut()
	case "t":
		m.theme = NextTheme(m.theme)
		m.logger.Debug("theme changed", "theme", m.theme.Name)
	case "g":
		if m.recorder != nil {
			m.stopRecording()
		} else {
			m.recorder = NewRecorder(100 / m.opts.FPS)
			m.notice = "recording"
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	if !m.running {
		m.draw()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw := max(w-panelWidth-6, 20)
	ch := max(h-3, 10)
	if cw != m.canvas.Width || ch != m.canvas.Height {
		m.canvas = NewCanvas(cw, ch)
	}
	m.width, m.height = w, h
}

func (m *Model) step() {
	m.frame = m.sim.AdvanceFrame(m.controls.Snapshot())
	m.history = append(m.history, float64(len(m.frame.Edges)))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// reset reseeds the particles and restores the starting controls.
func (m *Model) reset() {
	sim, err := field.New(m.opts.Sim)
	if err != nil {
		m.logger.Error("reset failed", "err", err)
		return
	}
	m.sim = sim
	m.controls.Set(m.opts.Controls)
	m.frame = nil
	m.history = m.history[:0]
	m.logger.Info("simulation reset", "seed", m.opts.Sim.Seed)
}

func (m *Model) stopRecording() {
	n := m.recorder.Len()
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		m.logger.Error("saving recording failed", "path", m.opts.GIFPath, "err", err)
		m.notice = "recording failed"
	} else {
		m.logger.Info("recording saved", "path", m.opts.GIFPath, "frames", n)
		m.notice = fmt.Sprintf("saved %d frames", n)
	}
	m.recorder = nil
}

func (m *Model) draw() {
	RenderFrame(m.canvas, m.camera, m.frame, m.sim.Store().HalfExtent())
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme.layerStyles()))

	var s strings.Builder
	s.WriteString(GradientText("PLEXUS", m.theme.Accent, m.theme.Lines) + "\n")

	switch {
	case m.recorder != nil:
		s.WriteString(StatusRecording.Render(fmt.Sprintf("REC %d", m.recorder.Len())))
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING"))
	default:
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	if m.notice != "" {
		s.WriteString("  " + KeyHint.Render(m.notice))
	}
	s.WriteString("\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(panelWidth-14), asciigraph.Caption("edges"))
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Lines).Render(chart) + "\n\n")
	}

	c := m.controls.Snapshot()
	edges, dropped := 0, m.sim.DroppedEdges()
	if m.frame != nil {
		edges = len(m.frame.Edges)
	}
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.sim.FrameCount()))
	row("Edges", fmt.Sprintf("%d", edges))
	if dropped > 0 {
		row("Dropped", lipgloss.NewStyle().Foreground(m.theme.Warning).Render(fmt.Sprintf("%d", dropped)))
	}
	row("FPS", fmt.Sprintf("%.0f", m.fps))
	row("Builder", m.sim.Builder().Name())
	s.WriteString("\n" + Separator(panelWidth-6) + "\n\n")
	row("Particles", fmt.Sprintf("%s %d", Gauge(float64(c.ParticleCount), 0, float64(m.controls.MaxParticles()), 10), c.ParticleCount))
	row("Distance", fmt.Sprintf("%s %.0f", Gauge(float64(c.MinDistance), field.MinDistanceLow, field.MinDistanceHigh, 10), c.MinDistance))
	row("Max conn", fmt.Sprintf("%s %d", Gauge(float64(c.MaxConnections), 0, field.MaxConnectionsHigh, 10), c.MaxConnections))
	row("Limit", onOff(c.LimitConnections))
	row("Dots", onOff(c.ShowDots))
	row("Lines", onOff(c.ShowLines))
	row("Theme", m.theme.Name)

	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit ?:Help\nD:Dots L:Lines C:Limit T:Theme G:GIF"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reseed particles         ║
║  D / L    - Toggle dots / lines      ║
║  C        - Toggle connection limit  ║
║  [ / ]    - Min distance -/+ 10      ║
║  - / +    - Max connections -/+ 1    ║
║  , / .    - Particles -/+ 50         ║
║  < / >    - Particles -/+ 500        ║
║  Arrows   - Orbit camera             ║
║  Z / z    - Zoom out / in            ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// Run shows a live session until the user quits.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
