package field

import "sync"

// Controls is the live control surface. Any goroutine may write it; the
// frame driver reads one Snapshot per frame so a frame never sees a
// half-applied change. Every setter clamps instead of rejecting.
type Controls struct {
	mu           sync.RWMutex
	state        ControlState
	maxParticles int
}

func NewControls(initial ControlState, maxParticles int) *Controls {
	return &Controls{state: initial.Clamp(maxParticles), maxParticles: maxParticles}
}

func (c *Controls) MaxParticles() int { return c.maxParticles }

func (c *Controls) Snapshot() ControlState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Set replaces the whole state.
func (c *Controls) Set(s ControlState) {
	c.Update(func(cs *ControlState) { *cs = s })
}

// Update applies fn to a copy of the state and stores the clamped result.
func (c *Controls) Update(fn func(*ControlState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state
	fn(&next)
	c.state = next.Clamp(c.maxParticles)
}

func (c *Controls) SetShowDots(v bool) {
	c.Update(func(cs *ControlState) { cs.ShowDots = v })
}

func (c *Controls) SetShowLines(v bool) {
	c.Update(func(cs *ControlState) { cs.ShowLines = v })
}

func (c *Controls) SetLimitConnections(v bool) {
	c.Update(func(cs *ControlState) { cs.LimitConnections = v })
}

func (c *Controls) SetMinDistance(d float32) {
	c.Update(func(cs *ControlState) { cs.MinDistance = d })
}

func (c *Controls) SetMaxConnections(n int) {
	c.Update(func(cs *ControlState) { cs.MaxConnections = clampCount(n, MaxConnectionsHigh) })
}

func (c *Controls) SetParticleCount(n int) {
	c.Update(func(cs *ControlState) { cs.ParticleCount = clampCount(n, c.maxParticles) })
}

func clampCount(n, hi int) uint32 {
	if n < 0 {
		return 0
	}
	if n > hi {
		return uint32(hi)
	}
	return uint32(n)
}
