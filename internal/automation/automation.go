package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario scripts control changes over a headless run.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Frames      int            `yaml:"frames"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep applies Set from frame At onward. Unset fields keep their
// previous value.
type ScenarioStep struct {
	At  int          `yaml:"at"`
	Set ControlPatch `yaml:"set"`
}

type ControlPatch struct {
	ShowDots         *bool    `yaml:"show_dots"`
	ShowLines        *bool    `yaml:"show_lines"`
	MinDistance      *float64 `yaml:"min_distance"`
	LimitConnections *bool    `yaml:"limit_connections"`
	MaxConnections   *int     `yaml:"max_connections"`
	ParticleCount    *int     `yaml:"particle_count"`
}

// Apply writes the set fields of p into c. Negative counts become zero;
// everything else is clamped later by the simulator.
func (p ControlPatch) Apply(c field.ControlState) field.ControlState {
	if p.ShowDots != nil {
		c.ShowDots = *p.ShowDots
	}
	if p.ShowLines != nil {
		c.ShowLines = *p.ShowLines
	}
	if p.MinDistance != nil {
		c.MinDistance = float32(*p.MinDistance)
	}
	if p.LimitConnections != nil {
		c.LimitConnections = *p.LimitConnections
	}
	if p.MaxConnections != nil {
		c.MaxConnections = uint32(max(*p.MaxConnections, 0))
	}
	if p.ParticleCount != nil {
		c.ParticleCount = uint32(max(*p.ParticleCount, 0))
	}
	return c
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidScenario, s.Frames)
	}
	for i, step := range s.Steps {
		if step.At < 0 || step.At >= s.Frames {
			return fmt.Errorf("%w: step %d at frame %d outside [0, %d)", ErrInvalidScenario, i+1, step.At, s.Frames)
		}
	}
	return nil
}

// Schedule resolves the scenario against base into a per-frame schedule.
// Steps sharing a frame apply in file order.
func (s *Scenario) Schedule(base field.ControlState) *Schedule {
	steps := make([]ScenarioStep, len(s.Steps))
	copy(steps, s.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	sched := &Schedule{base: base}
	state := base
	for _, step := range steps {
		state = step.Set.Apply(state)
		if n := len(sched.from); n > 0 && sched.from[n-1] == step.At {
			sched.states[n-1] = state
			continue
		}
		sched.from = append(sched.from, step.At)
		sched.states = append(sched.states, state)
	}
	return sched
}

// Schedule implements field.ControlSchedule.
type Schedule struct {
	base   field.ControlState
	from   []int
	states []field.ControlState
}

func (s *Schedule) At(frame int) field.ControlState {
	i := sort.Search(len(s.from), func(i int) bool { return s.from[i] > frame })
	if i == 0 {
		return s.base
	}
	return s.states[i-1]
}

// RunScenario plays the scenario on a fresh simulator with every metric
// attached.
func RunScenario(ctx context.Context, scenario *Scenario, opts field.Options, base field.ControlState) (*field.Result, error) {
	sim, err := field.New(opts)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.All() {
		sim.AddMetric(m)
	}

	logger := sim.Logger()
	logger.Info("running scenario", "name", scenario.Name, "frames", scenario.Frames, "steps", len(scenario.Steps))

	result, err := sim.Run(ctx, scenario.Frames, scenario.Schedule(base))
	if err != nil {
		return result, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return result, nil
}

// Sweepable control names.
const (
	ParamMinDistance    = "min_distance"
	ParamMaxConnections = "max_connections"
	ParamParticleCount  = "particle_count"
)

// ParameterSweep runs an ensemble for each value of one control. Sweeping
// max_connections turns the limit on.
type ParameterSweep struct {
	Param    string
	ParamMin float64
	ParamMax float64
	NumSteps int
	Frames   int
	Seeds    int
	Base     field.ControlState
	Options  field.Options
}

// SweepResult holds ensemble means for one parameter value.
type SweepResult struct {
	ParamValue float64
	MeanEdges  float64
	MeanAlpha  float64
	MaxDegree  float64
}

func setParam(c field.ControlState, name string, v float64) (field.ControlState, error) {
	switch name {
	case ParamMinDistance:
		c.MinDistance = float32(v)
	case ParamMaxConnections:
		c.MaxConnections = uint32(max(v, 0))
		c.LimitConnections = true
	case ParamParticleCount:
		c.ParticleCount = uint32(max(v, 0))
	default:
		return c, fmt.Errorf("unknown sweep parameter: %s", name)
	}
	return c, nil
}

// RunSweep executes a parameter sweep. Each step runs Seeds simulations
// concurrently, seeded from Options.Seed.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if _, err := setParam(sweep.Base, sweep.Param, 0); err != nil {
		return nil, err
	}
	seeds := max(sweep.Seeds, 1)
	logger := sweep.Options.Logger
	if logger == nil {
		logger = log.Default()
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		c, _ := setParam(sweep.Base, sweep.Param, paramVal)

		ens := field.NewEnsemble(sweep.Options, seeds, sweep.Options.Seed, func() []field.Metric {
			return []field.Metric{metrics.NewMeanEdges(), metrics.NewMeanAlpha(), metrics.NewMaxDegree()}
		})
		runs, err := ens.Run(ctx, sweep.Frames, field.Fixed(c))
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			MeanEdges:  field.MeanMetric(runs, "mean_edges"),
			MeanAlpha:  field.MeanMetric(runs, "mean_alpha"),
			MaxDegree:  field.MeanMetric(runs, "max_degree"),
		})

		logger.Info("sweep step", "step", i+1, "of", sweep.NumSteps, sweep.Param, paramVal)
	}

	return results, nil
}
