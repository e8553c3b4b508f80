package field

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIntegrateMovesByVelocity(t *testing.T) {
	s := NewStoreFrom([]Particle{
		{Position: mgl32.Vec3{1, 2, 3}, Velocity: mgl32.Vec3{0.5, -0.25, 1}},
	}, 250)

	Integrate(s)

	got := s.Particles()[0].Position
	want := mgl32.Vec3{1.5, 1.75, 4}
	if got != want {
		t.Errorf("expected position %v, got %v", want, got)
	}
}

func TestIntegrateReflectsPerAxis(t *testing.T) {
	tests := []struct {
		name    string
		pos     mgl32.Vec3
		vel     mgl32.Vec3
		wantVel mgl32.Vec3
	}{
		{"inside", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}},
		{"exits +x", mgl32.Vec3{249.5, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-1, 1, 1}},
		{"exits -y", mgl32.Vec3{0, -249.5, 0}, mgl32.Vec3{1, -1, 1}, mgl32.Vec3{1, 1, 1}},
		{"exits +z", mgl32.Vec3{0, 0, 249.5}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, -1}},
		{"corner", mgl32.Vec3{249.5, -249.5, 249.5}, mgl32.Vec3{1, -1, 1}, mgl32.Vec3{-1, 1, -1}},
		{"lands on wall", mgl32.Vec3{249, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStoreFrom([]Particle{{Position: tt.pos, Velocity: tt.vel}}, 250)
			Integrate(s)
			if got := s.Particles()[0].Velocity; got != tt.wantVel {
				t.Errorf("expected velocity %v, got %v", tt.wantVel, got)
			}
		})
	}
}

func TestIntegrateDoesNotClamp(t *testing.T) {
	s := NewStoreFrom([]Particle{
		{Position: mgl32.Vec3{249.5, 0, 0}, Velocity: mgl32.Vec3{1, 0, 0}},
	}, 250)

	Integrate(s)
	if x := s.Particles()[0].Position.X(); x != 250.5 {
		t.Fatalf("expected particle left outside at 250.5, got %f", x)
	}

	Integrate(s)
	if x := s.Particles()[0].Position.X(); x != 249.5 {
		t.Errorf("expected reflected step back to 249.5, got %f", x)
	}
	if vx := s.Particles()[0].Velocity.X(); vx != -1 {
		t.Errorf("expected velocity to stay -1 once back inside, got %f", vx)
	}
}

func TestIntegrateOnlyActive(t *testing.T) {
	s := NewStoreFrom([]Particle{
		{Velocity: mgl32.Vec3{1, 0, 0}},
		{Velocity: mgl32.Vec3{1, 0, 0}},
	}, 250)
	s.SetActive(1)

	Integrate(s)

	if s.Particles()[0].Position.X() != 1 {
		t.Error("active particle did not move")
	}
	if s.Particles()[1].Position.X() != 0 {
		t.Error("inactive particle moved")
	}
}

func TestIntegrateStaysNearBox(t *testing.T) {
	s := randomStore(200, 250, 3)
	for i := 0; i < 2000; i++ {
		Integrate(s)
	}
	for i, p := range s.Particles() {
		for a := 0; a < 3; a++ {
			if p.Position[a] < -251 || p.Position[a] > 251 {
				t.Fatalf("particle %d escaped to %v", i, p.Position)
			}
		}
	}
}
