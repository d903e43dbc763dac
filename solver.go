package ccd

import (
	"cmp"
	"log"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// solveIslands resolves every island, in parallel when there is more
// than one. Islands never share particles or constraints, so workers
// touch disjoint state.
func (m *Manager) solveIslands(dt float64) {
	if m.islandCount == 1 {
		m.applyIslandSweptConstraints(0, dt)
		return
	}

	var wg sync.WaitGroup
	wg.Add(m.islandCount)
	for island := 0; island < m.islandCount; island++ {
		go func(island int) {
			defer wg.Done()
			m.applyIslandSweptConstraints(island, dt)
		}(island)
	}
	wg.Wait()
}

// compareConstraintTOI orders constraints by ascending time of impact.
// Ties keep their current order under a stable sort.
func compareConstraintTOI(a, b *Constraint) int {
	return cmp.Compare(a.Swept.CCDTimeOfImpact, b.Swept.CCDTimeOfImpact)
}

// applyIslandSweptConstraints resolves one island by consuming impact
// events in ascending time order. Processing the earliest impact first
// guarantees that, by the time a constraint is handled, nothing in the
// island has tunneled before its impact time.
func (m *Manager) applyIslandSweptConstraints(island int, dt float64) {
	constraintStart := m.islandConstraintStart[island]
	constraintEnd := m.islandConstraintEnd[island]
	if constraintEnd <= constraintStart {
		log.Fatalln("ccd: island without constraints")
	}

	m.resetIslandParticles(island)
	m.resetIslandConstraints(island)

	islandConstraints := m.sortedConstraints[constraintStart:constraintEnd]
	m.drawIslandSweeps(islandConstraints)

	slices.SortStableFunc(islandConstraints, compareConstraintTOI)

	constraintIndex := constraintStart
	for constraintIndex < constraintEnd {
		constraint := m.sortedConstraints[constraintIndex]
		particle0 := constraint.Particle[0]
		particle1 := constraint.Particle[1]
		islandTOI := constraint.Swept.CCDTimeOfImpact

		// An impact at the very end of the step cannot tunnel this
		// frame. The discrete solver or the next step picks it up.
		if islandTOI >= 1 {
			break
		}

		if m.settings.AllowClipping &&
			(particle0 == nil || particle0.Done) &&
			(particle1 == nil || particle1.Done) {
			constraintIndex++
			continue
		}

		if constraint.ProcessedCount >= m.settings.MaxProcessCount {
			log.Fatalln("ccd: constraint processed beyond its impulse budget")
		}

		// The manifold was evaluated with end-of-step poses, so the
		// impact pose is reached by advancing start positions, never by
		// rewinding end positions.
		if particle0 != nil && !particle0.Done {
			m.advanceParticleXToTOI(particle0, islandTOI, dt)
		}
		if particle1 != nil && !particle1.Done {
			m.advanceParticleXToTOI(particle1, islandTOI, dt)
		}

		m.drawImpactPose(constraint)

		m.applyImpulse(constraint)
		constraint.ProcessedCount++

		// Consumed. A resweep below may lower this again if the pair
		// still approaches.
		constraint.Swept.CCDTimeOfImpact = InfiniteTOI

		movedParticle0 := false
		movedParticle1 := false
		if constraint.ProcessedCount >= m.settings.MaxProcessCount {
			if m.settings.AllowClipping {
				// Out of budget. Freeze both endpoints at the impact
				// pose; a fast kinematic keeps moving afterward, so its
				// counterpart is offset along the contact normal to
				// stay flush with it.
				if particle0 != nil {
					m.clipParticle(particle0, constraint, islandTOI, dt)
					particle0.Done = true
					movedParticle0 = true
				}
				if particle1 != nil {
					m.clipParticle(particle1, constraint, islandTOI, dt)
					particle1.Done = true
					movedParticle1 = true
				}
			} else {
				// Out of budget but clipping is off: keep the scheduled
				// velocities and accept possible tunneling.
				if particle0 != nil {
					m.updateParticleP(particle0, dt)
					movedParticle0 = true
				}
				if particle1 != nil {
					m.updateParticleP(particle1, dt)
					movedParticle1 = true
				}
			}
			constraintIndex++
		} else {
			if particle0 != nil && !particle0.Done {
				m.updateParticleP(particle0, dt)
				movedParticle0 = true
			}
			if particle1 != nil && !particle1.Done {
				m.updateParticleP(particle1, dt)
				movedParticle1 = true
			}
		}

		resswept := false
		if movedParticle0 {
			resswept = m.resweepParticleConstraints(particle0, islandTOI, dt) || resswept
		}
		if movedParticle1 {
			resswept = m.resweepParticleConstraints(particle1, islandTOI, dt) || resswept
		}

		if resswept {
			slices.SortStableFunc(m.sortedConstraints[constraintIndex:constraintEnd], compareConstraintTOI)
		}
	}

	for i := constraintStart; i < constraintEnd; i++ {
		m.sortedConstraints[i].Swept.SetCCDResults(m.sortedConstraints[i].NetImpulse)
	}

	m.drawFinalPoses(islandConstraints)
}

func (m *Manager) resetIslandParticles(island int) {
	start := m.islandParticleStart[island]
	for i := start; i < start+m.islandParticleNum[island]; i++ {
		m.groupedParticles[i].TOI = 0
		m.groupedParticles[i].Done = false
	}
}

func (m *Manager) resetIslandConstraints(island int) {
	for i := m.islandConstraintStart[island]; i < m.islandConstraintEnd[island]; i++ {
		m.sortedConstraints[i].ProcessedCount = 0
	}
}

// advanceParticleXToTOI moves the body's start position forward to the
// island time.
func (m *Manager) advanceParticleXToTOI(particle *Particle, toi, dt float64) {
	if toi > particle.TOI {
		body := particle.Body
		restDt := (toi - particle.TOI) * dt
		body.position = body.position.Add(body.velocity.Mul(restDt))
		particle.TOI = toi
	}
}

// updateParticleP re-projects the end position from the advanced start
// position and the current velocity.
func (m *Manager) updateParticleP(particle *Particle, dt float64) {
	body := particle.Body
	restDt := (1 - particle.TOI) * dt
	body.predictedPosition = body.position.Add(body.velocity.Mul(restDt))
}

// clipParticle freezes the body at its advanced start position. When
// the constraint carries a fast kinematic, the frozen body is first
// shifted along the contact normal by the kinematic's remaining motion
// so the pair ends the step in contact.
func (m *Manager) clipParticle(particle *Particle, constraint *Constraint, islandTOI, dt float64) {
	body := particle.Body
	if constraint.FastMovingKinematicIndex != IndexNone {
		kinematic := constraint.Swept.Particle[constraint.FastMovingKinematicIndex]
		normal := constraint.Swept.WorldContactNormal()
		restMotion := kinematic.velocity.Mul((1 - islandTOI) * dt)
		body.position = body.position.Add(normal.Mul(restMotion.Dot(normal)))
	}
	body.predictedPosition = body.position
}

// applyImpulse resolves the constraint's manifold points with simple
// normal impulses at the advanced poses. Frozen and non-dynamic
// endpoints are immovable.
func (m *Manager) applyImpulse(constraint *Constraint) {
	swept := constraint.Swept
	body0 := swept.Particle[0]
	body1 := swept.Particle[1]

	for i := range swept.Points {
		point := &swept.Points[i]
		if point.Disabled {
			continue
		}

		normal := swept.ShapeWorldTransform[1].ApplyVector(point.ShapeContactNormal)
		velocity0 := mgl64.Vec3{}
		if body0.bodyType != Static {
			velocity0 = body0.velocity
		}
		velocity1 := mgl64.Vec3{}
		if body1.bodyType != Static {
			velocity1 = body1.velocity
		}

		normalV := velocity0.Sub(velocity1).Dot(normal)
		if normalV >= 0 {
			continue
		}

		targetNormalV := -swept.Restitution * normalV
		invM0 := effectiveInvMass(body0, constraint.Particle[0])
		invM1 := effectiveInvMass(body1, constraint.Particle[1])
		impulse := normal.Mul((targetNormalV - normalV) / (invM0 + invM1))

		if invM0 > 0 {
			body0.velocity = body0.velocity.Add(impulse.Mul(invM0))
		}
		if invM1 > 0 {
			body1.velocity = body1.velocity.Sub(impulse.Mul(invM1))
		}

		constraint.NetImpulse = constraint.NetImpulse.Add(impulse)
		m.drawImpulse(constraint, i, impulse)
	}
}

func effectiveInvMass(body *Body, particle *Particle) float64 {
	if body.bodyType != Dynamic {
		return 0
	}
	if particle != nil && particle.Done {
		return 0
	}
	return body.massInverse
}

// resweepParticleConstraints recomputes the impact time of every
// unconsumed constraint attached to a particle that just moved, over
// the remainder of the step. Returns true if any constraint was
// updated, meaning the island ordering is stale.
func (m *Manager) resweepParticleConstraints(particle *Particle, islandTOI, dt float64) bool {
	restDt := (1 - islandTOI) * dt
	resswept := false

	for _, constraint := range particle.AttachedCCDConstraints {
		if constraint.ProcessedCount >= m.settings.MaxProcessCount {
			continue
		}
		swept := constraint.Swept

		// Body poses at the island time. Kinematic targets rewind from
		// their end pose, frozen and static bodies stand where they
		// are.
		var bodyStart [2]Transform
		for i := 0; i < 2; i++ {
			body := swept.Particle[i]
			if attached := constraint.Particle[i]; attached != nil {
				if !attached.Done {
					m.advanceParticleXToTOI(attached, islandTOI, dt)
				}
				bodyStart[i] = NewTransform(body.position, body.rotation)
			} else if body.bodyType == Kinematic {
				pos := body.predictedPosition.Sub(body.velocity.Mul(restDt))
				bodyStart[i] = NewTransform(pos, body.predictedRotation)
			} else {
				bodyStart[i] = NewTransform(body.position, body.rotation)
			}
		}

		shapeStart0 := bodyStart[0].Mult(swept.ShapeRelativeTransform[0])
		shapeStart1 := bodyStart[1].Mult(swept.ShapeRelativeTransform[1])
		swept.ShapeWorldTransform[0] = swept.Particle[0].endWorldTransform().Mult(swept.ShapeRelativeTransform[0])
		swept.ShapeWorldTransform[1] = swept.Particle[1].endWorldTransform().Mult(swept.ShapeRelativeTransform[1])

		if m.settings.EnableResweep && m.NarrowPhase != nil {
			m.NarrowPhase.UpdateConstraintSwept(swept, shapeStart0, shapeStart1, restDt)
		} else {
			swept.UpdateSweptManifoldPoints(shapeStart0.Pos, shapeStart1.Pos)
		}

		// The update produced a time local to the remaining sweep. Map
		// real impacts back into the step frame; everything else is no
		// impact this step.
		localTOI := swept.CCDTimeOfImpact
		if localTOI >= 0 && localTOI < 1 {
			swept.CCDTimeOfImpact = islandTOI + (1-islandTOI)*localTOI
		} else {
			swept.CCDTimeOfImpact = InfiniteTOI
		}

		resswept = true
	}
	return resswept
}
