package field

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// still builds a store of motionless particles at the given positions.
func still(h float32, pos ...mgl32.Vec3) *Store {
	ps := make([]Particle, len(pos))
	for i, p := range pos {
		ps[i] = Particle{Position: p}
	}
	return NewStoreFrom(ps, h)
}

func randomStore(n int, h float32, seed int64) *Store {
	return NewStore(n, h, rand.New(rand.NewSource(seed)))
}

func unlimited(minDistance float32) ControlState {
	c := DefaultControlState()
	c.MinDistance = minDistance
	c.LimitConnections = false
	c.ParticleCount = MaxConnectionsHigh * 1000
	return c
}
