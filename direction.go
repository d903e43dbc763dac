package ccd

import "github.com/go-gl/mathgl/mgl64"

// ConstraintDirection classifies which side of a contact rests on the
// other, for dependency ordering in the broader solver.
type ConstraintDirection uint8

const (
	NoRestingDependency ConstraintDirection = iota
	Particle0ToParticle1
	Particle1ToParticle0
)

// normalDirectionThreshold is the minimum alignment between contact
// normal and gravity for a contact to count as resting.
const normalDirectionThreshold float64 = 0.1

// fallbackGravitySize keeps the ordering consistent when gravity is
// degenerate.
const fallbackGravitySize float64 = 980.0

// Direction estimates the resting dependency of the contact over a step
// of dt under the given gravity. A body counts as resting on the other
// when their separation cannot survive one characteristic free fall.
func (c *SweptConstraint) Direction(dt float64, gravity mgl64.Vec3) ConstraintDirection {
	if !c.Enabled {
		return NoRestingDependency
	}

	phi := c.Phi()
	if phi >= c.CullDistance {
		return NoRestingDependency
	}

	gravitySize := gravity.Len()
	gravityDir := mgl64.Vec3{0, 0, -1}
	if gravitySize < 1e-8 {
		gravitySize = fallbackGravitySize
	} else {
		gravityDir = gravity.Mul(1 / gravitySize)
	}

	dtau := dt * Config.CharacteristicTimeRatio
	stepSize := gravitySize * dtau * dtau

	normalDotG := c.WorldContactNormal().Dot(gravityDir)
	if normalDotG < -normalDirectionThreshold {
		// Normal opposes gravity, the first body is on top.
		if phi+normalDotG*stepSize < 0 {
			return Particle1ToParticle0
		}
		return NoRestingDependency
	}
	if normalDotG > normalDirectionThreshold {
		if phi-normalDotG*stepSize < 0 {
			return Particle0ToParticle1
		}
		return NoRestingDependency
	}
	return NoRestingDependency
}
