package gui

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/plexus/internal/field"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	// World units per field unit; the default box is 5 units wide.
	worldScale = 0.01

	spinRate      = 0.1
	orbitStep     = 0.05
	telemetrySize = 200
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColBox     = rl.NewColor(60, 60, 90, 255)
	ColWarn    = rl.NewColor(255, 170, 0, 255)
)

// Options configure a window session.
type Options struct {
	Sim      field.Options
	Controls field.ControlState
	FPS      int
}

// App runs one simulator inside a raylib window. Input is polled once per
// frame and written to the shared Controls before the frame advances.
type App struct {
	opts      Options
	sim       *field.Simulator
	controls  *field.Controls
	frame     *field.Frame
	logger    *log.Logger
	Camera    rl.Camera3D
	Yaw       float32
	Pitch     float32
	Distance  float32
	Running   bool
	ShowHelp  bool
	Telemetry []float64 // Ring buffer of edge counts
	Font      rl.Font
}

// NewApp builds the simulator; it does not touch the window.
func NewApp(opts Options) (*App, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	sim, err := field.New(opts.Sim)
	if err != nil {
		return nil, err
	}
	logger := opts.Sim.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	a := &App{
		opts:     opts,
		sim:      sim,
		controls: field.NewControls(opts.Controls, sim.Store().Cap()),
		logger:   logger,
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 10),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		Pitch:     0.3,
		Distance:  float32(sim.Store().HalfExtent()) * worldScale * 4,
		Running:   true,
		Telemetry: make([]float64, 0, telemetrySize),
	}
	a.placeCamera()
	return a, nil
}

func (a *App) Controls() *field.Controls { return a.controls }

// initWindow opens the window and disables the default exit key.
func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(screenWidth, screenHeight, "plexus")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// Run opens a window and blocks until it is closed or q is pressed.
func Run(opts Options) error {
	a, err := NewApp(opts)
	if err != nil {
		return err
	}
	initWindow(a.opts.FPS)
	defer rl.CloseWindow()
	a.Font = rl.GetFontDefault()
	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update(rl.GetFrameTime()) {
			return
		}
		a.Draw()
	}
}

// bindings maps a raylib key to its action. Shift selects the alternate
// binding where one exists, mirroring the terminal keys.
var bindings = []int32{
	rl.KeyQ, rl.KeySpace, rl.KeyR, rl.KeyD, rl.KeyL, rl.KeyC,
	rl.KeyLeftBracket, rl.KeyRightBracket, rl.KeyMinus, rl.KeyEqual,
	rl.KeyComma, rl.KeyPeriod, rl.KeyZ, rl.KeySlash,
}

// Update polls input and advances one frame. It returns false once the
// user asks to quit.
func (a *App) Update(dt float32) bool {
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	for _, k := range bindings {
		if rl.IsKeyPressed(k) && !a.HandleKey(k, shift) {
			return false
		}
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.Orbit(-orbitStep, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.Orbit(orbitStep, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.Orbit(0, orbitStep)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.Orbit(0, -orbitStep)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Zoom(wheel)
	}
	a.Step(dt)
	return true
}

// HandleKey applies one key press. It returns false for quit.
func (a *App) HandleKey(key int32, shift bool) bool {
	c := a.controls
	s := c.Snapshot()
	switch key {
	case rl.KeyQ:
		return false
	case rl.KeySpace:
		a.Running = !a.Running
	case rl.KeyR:
		a.Reset()
	case rl.KeyD:
		c.SetShowDots(!s.ShowDots)
	case rl.KeyL:
		c.SetShowLines(!s.ShowLines)
	case rl.KeyC:
		c.SetLimitConnections(!s.LimitConnections)
	case rl.KeyLeftBracket:
		c.SetMinDistance(s.MinDistance - 10)
	case rl.KeyRightBracket:
		c.SetMinDistance(s.MinDistance + 10)
	case rl.KeyMinus:
		c.SetMaxConnections(int(s.MaxConnections) - 1)
	case rl.KeyEqual:
		c.SetMaxConnections(int(s.MaxConnections) + 1)
	case rl.KeyComma:
		c.SetParticleCount(int(s.ParticleCount) - particleDelta(shift))
	case rl.KeyPeriod:
		c.SetParticleCount(int(s.ParticleCount) + particleDelta(shift))
	case rl.KeyZ:
		if shift {
			a.Zoom(-1)
		} else {
			a.Zoom(1)
		}
	case rl.KeySlash:
		a.ShowHelp = !a.ShowHelp
	}
	return true
}

// particleDelta is 50, or 500 with shift held (the < and > keys).
func particleDelta(shift bool) int {
	if shift {
		return 500
	}
	return 50
}

// Step advances the simulator and spins the view when running.
func (a *App) Step(dt float32) {
	if !a.Running {
		return
	}
	a.frame = a.sim.AdvanceFrame(a.controls.Snapshot())
	a.Telemetry = append(a.Telemetry, float64(len(a.frame.Edges)))
	if len(a.Telemetry) > telemetrySize {
		a.Telemetry = a.Telemetry[1:]
	}
	// Spinning the scene by +θ about Y is the camera orbiting by -θ.
	a.Orbit(-spinRate*dt, 0)
}

// Reset reseeds the particles and restores the starting controls.
func (a *App) Reset() {
	sim, err := field.New(a.opts.Sim)
	if err != nil {
		a.logger.Error("reset failed", "err", err)
		return
	}
	a.sim = sim
	a.frame = nil
	a.controls.Set(a.opts.Controls)
	a.Telemetry = a.Telemetry[:0]
	a.logger.Info("simulation reset", "seed", a.opts.Sim.Seed)
}

func (a *App) Orbit(dyaw, dpitch float32) {
	a.Yaw = float32(math.Mod(float64(a.Yaw+dyaw), 2*math.Pi))
	a.Pitch = max(-1.5, min(1.5, a.Pitch+dpitch))
	a.placeCamera()
}

// Zoom moves the camera toward the target for positive steps.
func (a *App) Zoom(steps float32) {
	a.Distance = max(1, min(50, a.Distance*float32(math.Pow(0.9, float64(steps)))))
	a.placeCamera()
}

func (a *App) placeCamera() {
	cp := float32(math.Cos(float64(a.Pitch)))
	a.Camera.Position = rl.NewVector3(
		a.Distance*cp*float32(math.Sin(float64(a.Yaw))),
		a.Distance*float32(math.Sin(float64(a.Pitch))),
		a.Distance*cp*float32(math.Cos(float64(a.Yaw))),
	)
	a.Camera.Target = rl.NewVector3(0, 0, 0)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	a.drawScene()
	rl.EndMode3D()
	a.DrawHUD()

	rl.EndDrawing()
}
