package field

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

type Options struct {
	MaxParticles int
	HalfExtent   float32
	Seed         int64
	Builder      string
	Logger       *log.Logger

	// LineCapacity caps the line buffers in vertices. Zero sizes them for
	// every pair of MaxParticles, which can never overflow.
	LineCapacity int
}

func DefaultOptions() Options {
	return Options{
		MaxParticles: DefaultMaxParticles,
		HalfExtent:   DefaultHalfExtent,
		Builder:      "brute",
	}
}

// ControlSchedule yields the controls used for a frame of a headless run.
type ControlSchedule interface {
	At(frame int) ControlState
}

// Fixed is a schedule that holds the same controls for every frame.
type Fixed ControlState

func (f Fixed) At(int) ControlState { return ControlState(f) }

// Simulator owns a particle store, a graph builder, and the render
// buffers, and runs them in order once per frame.
type Simulator struct {
	store     *Store
	builder   GraphBuilder
	lines     *LineBuffers
	points    *PointBuffers
	edges     []Edge
	frame     Frame
	frames    uint64
	dropped   int
	logger    *log.Logger
	metrics   []Metric
	observers []Observer
}

// New creates opts.MaxParticles random particles seeded by opts.Seed.
func New(opts Options) (*Simulator, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	return NewWithStore(NewStore(opts.MaxParticles, opts.HalfExtent, rng), opts)
}

// NewWithStore wraps an existing store. opts.MaxParticles and
// opts.HalfExtent are taken from the store.
func NewWithStore(store *Store, opts Options) (*Simulator, error) {
	opts.MaxParticles = store.Cap()
	opts.HalfExtent = store.HalfExtent()
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	name := opts.Builder
	if name == "" {
		name = "brute"
	}
	builder, err := NewRegistry().GetBuilder(name)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	lines := NewLineBuffers(store.Cap())
	if opts.LineCapacity > 0 {
		lines = NewLineBuffersCap(opts.LineCapacity)
	}
	return &Simulator{
		store:     store,
		builder:   builder,
		lines:     lines,
		points:    NewPointBuffers(store.Cap()),
		logger:    logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func validateOptions(opts Options) error {
	if opts.MaxParticles <= 0 {
		return fmt.Errorf("%w: max particles must be positive, got %d", ErrInvalidOptions, opts.MaxParticles)
	}
	if opts.HalfExtent <= 0 {
		return fmt.Errorf("%w: half extent must be positive, got %g", ErrInvalidOptions, opts.HalfExtent)
	}
	if opts.LineCapacity < 0 {
		return fmt.Errorf("%w: line capacity must not be negative, got %d", ErrInvalidOptions, opts.LineCapacity)
	}
	return nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Store() *Store           { return s.store }
func (s *Simulator) Builder() GraphBuilder   { return s.builder }
func (s *Simulator) Lines() *LineBuffers     { return s.lines }
func (s *Simulator) Points() *PointBuffers   { return s.points }
func (s *Simulator) FrameCount() uint64      { return s.frames }
func (s *Simulator) DroppedEdges() int       { return s.dropped }
func (s *Simulator) Logger() *log.Logger     { return s.logger }
func (s *Simulator) SetLogger(l *log.Logger) { s.logger = l }

// AdvanceFrame clamps c, moves the particles, rebuilds the proximity graph,
// and repacks both buffers. The returned frame stays valid until the next
// call. Hidden dots or lines are still recomputed; the flags only tell the
// renderer what to skip.
func (s *Simulator) AdvanceFrame(c ControlState) *Frame {
	c = c.Clamp(s.store.Cap())
	s.store.SetActive(int(c.ParticleCount))

	Integrate(s.store)
	s.edges = s.builder.Build(s.store, c, s.edges)

	if err := s.lines.Pack(s.store, s.edges); err != nil {
		var ce *CapacityError
		if errors.As(err, &ce) {
			s.dropped += ce.Dropped
		}
		s.logger.Warn("line buffers full, dropping edges", "frame", s.frames, "err", err)
	}
	s.points.Pack(s.store)

	s.frame = Frame{
		Index:     s.frames,
		Points:    s.points,
		Lines:     s.lines,
		Edges:     s.edges[:s.lines.DrawRange/2],
		ShowDots:  c.ShowDots,
		ShowLines: c.ShowLines,
		Controls:  c,
	}
	s.frames++

	for _, m := range s.metrics {
		m.Observe(&s.frame, s.store)
	}
	for _, o := range s.observers {
		o.OnFrame(&s.frame)
	}
	return &s.frame
}

// Run advances the given number of frames with controls from schedule and
// reports the edge count of every frame plus the attached metrics. The
// context is checked between frames, never inside one.
func (s *Simulator) Run(ctx context.Context, frames int, schedule ControlSchedule) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", frames)
	}
	if schedule == nil {
		schedule = Fixed(DefaultControlState())
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	droppedBefore := s.dropped

	result := &Result{
		EdgeCounts: make([]float64, 0, frames),
		Metrics:    make(map[string]float64),
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			s.collect(result, droppedBefore)
			return result, ctx.Err()
		default:
		}

		f := s.AdvanceFrame(schedule.At(i))
		result.EdgeCounts = append(result.EdgeCounts, float64(len(f.Edges)))
		result.Frames++
	}

	s.collect(result, droppedBefore)
	s.logger.Debug("run complete", "frames", result.Frames, "builder", s.builder.Name())
	return result, nil
}

func (s *Simulator) collect(result *Result, droppedBefore int) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Dropped = s.dropped - droppedBefore
}
