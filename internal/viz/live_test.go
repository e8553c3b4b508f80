package viz

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/plexus/internal/field"
)

func testModel(t *testing.T) Model {
	t.Helper()
	opts := field.DefaultOptions()
	opts.MaxParticles = 100
	ctl := field.DefaultControlState()
	ctl.ParticleCount = 100
	m, err := NewModel(Options{Sim: opts, Controls: ctl, FPS: 30, GIFPath: filepath.Join(t.TempDir(), "out.gif")})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelTickAdvances(t *testing.T) {
	m := testModel(t)
	now := time.Now()

	m, cmd := send(m, TickMsg(now))
	if cmd == nil {
		t.Error("expected another tick to be scheduled")
	}
	if m.Frame() == nil {
		t.Fatal("expected a frame after the first tick")
	}
	m, _ = send(m, TickMsg(now.Add(time.Second/30)))
	if len(m.history) != 2 {
		t.Errorf("expected 2 history points, got %d", len(m.history))
	}
	if m.camera.Yaw <= 0 {
		t.Error("expected the scene to rotate while running")
	}
}

func TestModelPause(t *testing.T) {
	m := testModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = send(m, TickMsg(time.Now()))
	if m.Frame() != nil || m.sim.FrameCount() != 0 {
		t.Error("paused model should not advance")
	}
}

func TestModelControlKeys(t *testing.T) {
	m := testModel(t)

	for _, k := range []string{"d", "l", "c", "]", "]", "+", ",", "<"} {
		m, _ = send(m, key(k))
	}

	c := m.Controls().Snapshot()
	if c.ShowDots || c.ShowLines || c.LimitConnections {
		t.Errorf("expected dots, lines and limit toggled off, got %+v", c)
	}
	if c.MinDistance != 170 {
		t.Errorf("expected min distance 170, got %f", c.MinDistance)
	}
	if c.MaxConnections != 6 {
		t.Errorf("expected 6 max connections, got %d", c.MaxConnections)
	}
	if c.ParticleCount != 0 {
		t.Errorf("expected particle count clamped to 0, got %d", c.ParticleCount)
	}
}

func TestModelReset(t *testing.T) {
	m := testModel(t)
	m, _ = send(m, TickMsg(time.Now()))
	m, _ = send(m, key("["))
	m, _ = send(m, key("r"))

	if m.sim.FrameCount() != 0 || len(m.history) != 0 {
		t.Error("expected reset to start a fresh simulation")
	}
	if m.Controls().Snapshot().MinDistance != 150 {
		t.Errorf("expected controls restored, got %f", m.Controls().Snapshot().MinDistance)
	}
}

func TestModelThemeCycle(t *testing.T) {
	m := testModel(t)
	first := m.theme.Name
	for range Themes {
		m, _ = send(m, key("t"))
	}
	if m.theme.Name != first {
		t.Errorf("expected theme to wrap to %s, got %s", first, m.theme.Name)
	}
}

func TestModelRecording(t *testing.T) {
	m := testModel(t)
	m, _ = send(m, key("g"))
	m, _ = send(m, TickMsg(time.Now()))
	m, _ = send(m, TickMsg(time.Now().Add(time.Second/30)))
	if m.recorder == nil || m.recorder.Len() != 2 {
		t.Fatal("expected 2 recorded frames")
	}
	m, _ = send(m, key("g"))
	if m.recorder != nil {
		t.Error("expected recording stopped")
	}
	if m.notice != "saved 2 frames" {
		t.Errorf("unexpected notice %q", m.notice)
	}
}

func TestModelQuit(t *testing.T) {
	m := testModel(t)
	_, cmd := send(m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelView(t *testing.T) {
	m := testModel(t)
	m, _ = send(m, TickMsg(time.Now()))
	if m.View() == "" {
		t.Error("expected a non-empty view")
	}
	m, _ = send(m, key("?"))
	if m.View() == "" {
		t.Error("expected a non-empty help view")
	}
}

func TestMenuStartsPreset(t *testing.T) {
	base := Options{Sim: field.Options{Seed: 3}}
	mn := NewMenu(base)

	next, _ := mn.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := next.(*menu)
	if mm.live == nil {
		t.Fatalf("expected a live model, err %v", mm.err)
	}
	if cmd == nil {
		t.Error("expected the live model's first tick")
	}
	if mm.selected != mm.presets[1] {
		t.Errorf("expected preset %s, got %s", mm.presets[1], mm.selected)
	}
	if mm.View() == "" {
		t.Error("expected a non-empty view")
	}
}
