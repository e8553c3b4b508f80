package field

import (
	"math"
	"sync"
	"testing"
)

func TestControlStateClamp(t *testing.T) {
	tests := []struct {
		name string
		in   ControlState
		want ControlState
	}{
		{
			"in range",
			ControlState{MinDistance: 150, MaxConnections: 5, ParticleCount: 500},
			ControlState{MinDistance: 150, MaxConnections: 5, ParticleCount: 500},
		},
		{
			"too small distance",
			ControlState{MinDistance: 2},
			ControlState{MinDistance: MinDistanceLow},
		},
		{
			"too large distance",
			ControlState{MinDistance: 1000},
			ControlState{MinDistance: MinDistanceHigh},
		},
		{
			"nan distance",
			ControlState{MinDistance: float32(math.NaN())},
			ControlState{MinDistance: MinDistanceLow},
		},
		{
			"too many connections",
			ControlState{MinDistance: 50, MaxConnections: 99},
			ControlState{MinDistance: 50, MaxConnections: MaxConnectionsHigh},
		},
		{
			"too many particles",
			ControlState{MinDistance: 50, ParticleCount: 5000},
			ControlState{MinDistance: 50, ParticleCount: 2000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(2000); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestControlsSetters(t *testing.T) {
	c := NewControls(DefaultControlState(), 100)

	c.SetShowDots(false)
	c.SetShowLines(false)
	c.SetLimitConnections(false)
	c.SetMinDistance(5)
	c.SetMaxConnections(-3)
	c.SetParticleCount(1000)

	got := c.Snapshot()
	want := ControlState{
		ShowDots:         false,
		ShowLines:        false,
		MinDistance:      MinDistanceLow,
		LimitConnections: false,
		MaxConnections:   0,
		ParticleCount:    100,
	}
	if got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestNewControlsClampsInitial(t *testing.T) {
	c := NewControls(DefaultControlState(), 50)
	if got := c.Snapshot().ParticleCount; got != 50 {
		t.Errorf("expected particle count clamped to 50, got %d", got)
	}
}

func TestControlsConcurrentWriters(t *testing.T) {
	c := NewControls(DefaultControlState(), 2000)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.SetMinDistance(float32(10 + (w*i)%290))
				c.SetParticleCount(i)
				_ = c.Snapshot()
			}
		}(w)
	}
	wg.Wait()

	s := c.Snapshot()
	if s.MinDistance < MinDistanceLow || s.MinDistance > MinDistanceHigh {
		t.Errorf("min distance %f escaped its bounds", s.MinDistance)
	}
	if s.ParticleCount > 2000 {
		t.Errorf("particle count %d escaped its bounds", s.ParticleCount)
	}
}
