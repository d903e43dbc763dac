package ccd_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/nvalette/ccd"
	"github.com/stretchr/testify/require"
)

// withSettings installs modified process settings for one test and
// restores the previous ones afterwards.
func withSettings(t *testing.T, mutate func(*ccd.Settings)) {
	t.Helper()
	old := ccd.Config
	s := ccd.DefaultSettings()
	mutate(&s)
	ccd.Config = s
	t.Cleanup(func() { ccd.Config = old })
}

func requireVec3(t *testing.T, expected, actual mgl64.Vec3, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		require.InDelta(t, expected[i], actual[i], tol, "component %d of %v", i, actual)
	}
}

func sphereBody(mass, radius float64, pos, vel mgl64.Vec3, dt float64) *ccd.Body {
	b := ccd.NewBody(mass)
	b.SetGeometry(ccd.Sphere{Radius: radius})
	b.SetCCDEnabled(true)
	b.SetPosition(pos)
	b.SetVelocity(vel)
	b.Integrate(dt)
	return b
}

func staticWall(halfExtents, pos mgl64.Vec3) *ccd.Body {
	b := ccd.NewStaticBody()
	b.SetGeometry(ccd.Box{HalfExtents: halfExtents})
	b.SetPosition(pos)
	b.Integrate(0)
	return b
}

// kinematicWall builds a kinematic body at its end-of-step pose, the
// way targets arrive from the integrator.
func kinematicWall(halfExtents, endPos, vel mgl64.Vec3, dt float64) *ccd.Body {
	b := ccd.NewKinematicBody()
	b.SetGeometry(ccd.Box{HalfExtents: halfExtents})
	b.SetCCDEnabled(true)
	b.SetPosition(endPos)
	b.SetVelocity(vel)
	b.Integrate(dt)
	return b
}

func endPose(b *ccd.Body) ccd.Transform {
	if b.Type() == ccd.Static {
		return ccd.NewTransform(b.Position(), b.Rotation())
	}
	return ccd.NewTransform(b.PredictedPosition(), b.PredictedRotation())
}

func sweepStartPos(b *ccd.Body, dt float64) mgl64.Vec3 {
	switch b.Type() {
	case ccd.Kinematic:
		return b.PredictedPosition().Sub(b.Velocity().Mul(dt))
	default:
		return b.Position()
	}
}

// newSweptContact wires a single-point swept contact between two bodies
// the way the narrow phase hands them to the pass: manifold in local
// space, world transforms at the end of the step.
func newSweptContact(body0, body1 *ccd.Body, point0, point1, normal1 mgl64.Vec3) *ccd.SweptConstraint {
	c := ccd.NewSweptConstraint(body0, body1, body0.Geometry(), body1.Geometry(),
		ccd.NewTransformIdentity(), ccd.NewTransformIdentity())
	c.CullDistance = 1
	c.Points = append(c.Points, ccd.ManifoldPoint{
		ShapeContactPoints: [2]mgl64.Vec3{point0, point1},
		ShapeContactNormal: normal1,
	})
	return c
}

// seedSweep evaluates the constraint over the whole step, producing the
// initial time of impact the pass consumes.
func seedSweep(c *ccd.SweptConstraint, dt float64) {
	c.ShapeWorldTransform[0] = endPose(c.Particle[0]).Mult(c.ShapeRelativeTransform[0])
	c.ShapeWorldTransform[1] = endPose(c.Particle[1]).Mult(c.ShapeRelativeTransform[1])
	c.UpdateSweptManifoldPoints(sweepStartPos(c.Particle[0], dt), sweepStartPos(c.Particle[1], dt))
}
