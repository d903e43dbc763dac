package ccd

// Particle is the per-pass bookkeeping for one dynamic body touched by
// a swept constraint. Particles live in a manager-owned table and are
// rebuilt every pass.
type Particle struct {
	Body *Body

	// TOI is the normalized step time the body's start position has
	// been advanced to. Only ever moves forward within a pass.
	TOI float64

	// Done freezes the particle for the rest of the step. Done
	// particles take no further impulses but still block others during
	// resweeps.
	Done bool

	// OverlappingDynamicParticles lists the other dynamic particles
	// this one shares a constraint with, each at most once.
	OverlappingDynamicParticles []*Particle

	// AttachedCCDConstraints lists every constraint this particle is an
	// endpoint of.
	AttachedCCDConstraints []*Constraint

	// Island this particle was assigned to, or IndexNone.
	Island int
}

// addOverlappingDynamicParticle records a dynamic neighbor once.
// Neighbor lists stay short enough for a linear scan.
func (p *Particle) addOverlappingDynamicParticle(other *Particle) {
	for _, q := range p.OverlappingDynamicParticles {
		if q == other {
			return
		}
	}
	p.OverlappingDynamicParticles = append(p.OverlappingDynamicParticles, other)
}

func (p *Particle) addConstraint(c *Constraint) {
	p.AttachedCCDConstraints = append(p.AttachedCCDConstraints, c)
}
