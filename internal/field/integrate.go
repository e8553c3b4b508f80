package field

// Integrate advances every active particle by one velocity step. A
// coordinate that ends up strictly outside [-h, h] flips that axis's
// velocity. The position itself is left where it landed, so a particle can
// sit just past a wall for one frame before the flipped velocity brings it
// back.
func Integrate(s *Store) {
	h := s.halfExtent
	ps := s.particles[:s.active]
	for i := range ps {
		p := &ps[i]
		p.Position = p.Position.Add(p.Velocity)
		for axis := 0; axis < 3; axis++ {
			if c := p.Position[axis]; c < -h || c > h {
				p.Velocity[axis] = -p.Velocity[axis]
			}
		}
	}
}
