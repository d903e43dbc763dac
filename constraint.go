package ccd

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Constraint is the per-pass bookkeeping wrapped around one swept
// constraint. Constraints live in a manager-owned table and are rebuilt
// every pass.
type Constraint struct {
	Swept *SweptConstraint

	// Particle holds the pass particle of each dynamic endpoint, nil
	// for kinematic and static endpoints.
	Particle [2]*Particle

	// PhiThreshold is the shallowest penetration this pair treats as a
	// real impact, derived from the endpoints' axis thresholds. Never
	// positive.
	PhiThreshold float64

	// FastMovingKinematicIndex is the endpoint index of a kinematic
	// body outrunning the pair threshold this step, or IndexNone.
	FastMovingKinematicIndex int

	// ProcessedCount counts impulses applied through this constraint
	// this pass.
	ProcessedCount int

	// NetImpulse accumulates those impulses for reporting.
	NetImpulse mgl64.Vec3

	// Island mirrors the dynamic endpoints' island assignment.
	Island int
}

func newConstraint(swept *SweptConstraint, particle0, particle1 *Particle, displacements [2]mgl64.Vec3) Constraint {
	c := Constraint{
		Swept:    swept,
		Particle: [2]*Particle{particle0, particle1},
		Island:   IndexNone,
	}
	threshold0 := minComponent(swept.Particle[0].ccdAxisThreshold)
	threshold1 := minComponent(swept.Particle[1].ccdAxisThreshold)
	c.PhiThreshold = -math.Min(threshold0, threshold1)
	c.FastMovingKinematicIndex = c.fastMovingKinematicIndex(displacements)
	return c
}

// fastMovingKinematicIndex finds a kinematic endpoint whose step motion
// exceeds the pair threshold. At most one is expected; the first wins.
func (c *Constraint) fastMovingKinematicIndex(displacements [2]mgl64.Vec3) int {
	for i := 0; i < 2; i++ {
		if c.Swept.Particle[i].bodyType != Kinematic {
			continue
		}
		displacement := displacements[i]
		if displacement.Dot(displacement) > c.PhiThreshold*c.PhiThreshold {
			return i
		}
	}
	return IndexNone
}

// TOI is the wrapped constraint's current time of impact.
func (c *Constraint) TOI() float64 {
	return c.Swept.CCDTimeOfImpact
}
