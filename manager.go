package ccd

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

// Manager resolves the swept constraints of one step so that no body
// tunnels through another before the discrete solver runs. Bodies'
// start positions, end positions and velocities are rewritten in place;
// each swept constraint gets its manifold, time of impact and net
// impulse refreshed for the solver that follows.
type Manager struct {
	// NarrowPhase, when set, performs full constraint resweeps
	// mid-pass and the final deepest-contact refresh. Without it the
	// pass falls back to updating existing manifolds in place and
	// leaves final manifolds to the caller.
	NarrowPhase NarrowPhase

	// Drawer, when set, receives the sweep poses and impulses the pass
	// resolves. Island workers call it concurrently.
	Drawer IDrawer

	// private
	settings              Settings
	particles             []Particle
	particleLookup        map[*Body]*Particle
	constraints           []Constraint
	islandStack           []*Particle
	groupedParticles      []*Particle
	sortedConstraints     []*Constraint
	islandParticleStart   []int
	islandParticleNum     []int
	islandConstraintStart []int
	islandConstraintEnd   []int
	islandConstraintNum   []int
	islandCount           int
}

// NewManager allocates and initializes a Manager.
func NewManager() *Manager {
	return &Manager{
		particleLookup: map[*Body]*Particle{},
	}
}

// ApplyConstraintsPhaseCCD resolves the given swept constraints over a
// step of dt. numDynamicParticles is the scene's dynamic body count,
// bounding the per-pass particle table. When no pair moved fast enough
// to need sweeping, bodies and constraints are left untouched.
func (m *Manager) ApplyConstraintsPhaseCCD(dt float64, sweptConstraints []*SweptConstraint, numDynamicParticles int) {
	if len(sweptConstraints) == 0 {
		return
	}

	m.settings = Config
	if m.settings.MaxProcessCount < 1 {
		log.Fatalln("ccd: MaxProcessCount must be at least 1")
	}

	if !m.init(dt, sweptConstraints, numDynamicParticles) {
		return
	}

	m.assignParticleIslands()
	m.assignConstraintIslands()
	m.groupConstraints()
	m.solveIslands(dt)

	m.updateSweptConstraints(dt, sweptConstraints)
	m.overwriteXUsingV(dt)
}

// init rebuilds the particle and constraint tables for this pass and
// reports whether any pair moved enough to need resolving.
func (m *Manager) init(dt float64, sweptConstraints []*SweptConstraint, numDynamicParticles int) bool {
	// Constraints and islands hold pointers into these tables for the
	// whole pass, so neither table may ever reallocate.
	maxParticles := 2 * len(sweptConstraints)
	if numDynamicParticles < maxParticles {
		maxParticles = numDynamicParticles
	}
	if cap(m.particles) < maxParticles {
		m.particles = make([]Particle, 0, maxParticles)
	} else {
		m.particles = m.particles[:0]
	}
	if cap(m.constraints) < len(sweptConstraints) {
		m.constraints = make([]Constraint, 0, len(sweptConstraints))
	} else {
		m.constraints = m.constraints[:0]
	}
	clear(m.particleLookup)

	needsCCD := false
	for _, swept := range sweptConstraints {
		if !swept.Enabled {
			continue
		}

		var pair [2]*Particle
		var displacements [2]mgl64.Vec3
		for i := 0; i < 2; i++ {
			body := swept.Particle[i]
			if body.bodyType == Dynamic {
				pair[i] = m.particleFor(body)
			}
			displacements[i], _ = body.velocityDelta(dt)
		}

		if velocityDeltaExceedsThreshold(swept.Particle[0], swept.Particle[1], dt, m.settings.EnableThresholdBoundsScale) {
			needsCCD = true
		}

		if pair[0] == nil && pair[1] == nil {
			continue
		}

		m.constraints = append(m.constraints, newConstraint(swept, pair[0], pair[1], displacements))
		constraint := &m.constraints[len(m.constraints)-1]
		for i := 0; i < 2; i++ {
			if pair[i] != nil {
				pair[i].addConstraint(constraint)
			}
		}
		if pair[0] != nil && pair[1] != nil {
			pair[0].addOverlappingDynamicParticle(pair[1])
			pair[1].addOverlappingDynamicParticle(pair[0])
		}
	}
	return needsCCD
}

// particleFor returns the pass particle for body, creating it on first
// sight.
func (m *Manager) particleFor(body *Body) *Particle {
	if particle, ok := m.particleLookup[body]; ok {
		return particle
	}
	if len(m.particles) == cap(m.particles) {
		log.Fatalln("ccd: particle table exceeded its reserved capacity")
	}
	m.particles = append(m.particles, Particle{
		Body:   body,
		Island: IndexNone,
	})
	particle := &m.particles[len(m.particles)-1]
	m.particleLookup[body] = particle
	return particle
}

// updateSweptConstraints rebuilds every enabled swept constraint's
// manifold at the poses the pass settled on, so the discrete solver that
// runs next sees contacts where the bodies actually are.
func (m *Manager) updateSweptConstraints(dt float64, sweptConstraints []*SweptConstraint) {
	if m.NarrowPhase == nil {
		return
	}
	for _, swept := range sweptConstraints {
		if !swept.Enabled {
			continue
		}
		swept.ResetManifold()
		end0 := swept.Particle[0].endWorldTransform()
		end1 := swept.Particle[1].endWorldTransform()
		m.NarrowPhase.UpdateConstraintDeepest(swept, end0, end1, dt)
	}
}

// overwriteXUsingV rewrites each processed body's start position so
// that the downstream velocity derivation (P - X) / dt recovers the
// velocity the pass chose.
func (m *Manager) overwriteXUsingV(dt float64) {
	for i := range m.particles {
		body := m.particles[i].Body
		body.position = body.predictedPosition.Sub(body.velocity.Mul(dt))
	}
}
