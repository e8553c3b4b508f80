package field

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Store holds every particle ever created. Only the leading Active()
// particles are simulated and drawn.
type Store struct {
	particles  []Particle
	colors     []mgl32.Vec3
	active     int
	halfExtent float32
}

// NewStore creates maxCount particles with positions uniform in
// [-halfExtent, halfExtent]³ and velocity components uniform in [-1, 1].
// All particles start active.
func NewStore(maxCount int, halfExtent float32, rng *rand.Rand) *Store {
	if maxCount < 0 {
		maxCount = 0
	}
	s := &Store{
		particles:  make([]Particle, maxCount),
		colors:     make([]mgl32.Vec3, maxCount),
		active:     maxCount,
		halfExtent: halfExtent,
	}
	span := 2 * halfExtent
	for i := range s.particles {
		s.particles[i] = Particle{
			Position: mgl32.Vec3{
				rng.Float32()*span - halfExtent,
				rng.Float32()*span - halfExtent,
				rng.Float32()*span - halfExtent,
			},
			Velocity: mgl32.Vec3{
				-1 + rng.Float32()*2,
				-1 + rng.Float32()*2,
				-1 + rng.Float32()*2,
			},
		}
		s.colors[i] = mgl32.Vec3{rng.Float32() - 0.5, rng.Float32() - 0.5, rng.Float32() - 0.5}
	}
	return s
}

// NewStoreFrom builds a store around caller-provided particles, all active.
// Colors default to white.
func NewStoreFrom(particles []Particle, halfExtent float32) *Store {
	s := &Store{
		particles:  make([]Particle, len(particles)),
		colors:     make([]mgl32.Vec3, len(particles)),
		active:     len(particles),
		halfExtent: halfExtent,
	}
	copy(s.particles, particles)
	for i := range s.colors {
		s.colors[i] = mgl32.Vec3{1, 1, 1}
	}
	return s
}

func (s *Store) Cap() int              { return len(s.particles) }
func (s *Store) Active() int           { return s.active }
func (s *Store) HalfExtent() float32   { return s.halfExtent }
func (s *Store) Particles() []Particle { return s.particles }

// ActiveParticles returns the simulated prefix. The slice aliases the store.
func (s *Store) ActiveParticles() []Particle { return s.particles[:s.active] }

func (s *Store) Color(i int) mgl32.Vec3 { return s.colors[i] }

// SetActive clamps n to [0, Cap()] and stores it.
func (s *Store) SetActive(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(s.particles) {
		n = len(s.particles)
	}
	s.active = n
}

// ResetConnections zeroes the connection count of every active particle.
func (s *Store) ResetConnections() {
	for i := 0; i < s.active; i++ {
		s.particles[i].Connections = 0
	}
}
