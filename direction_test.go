package ccd_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/nvalette/ccd"
	"github.com/stretchr/testify/require"
)

// restingContact is a ball just above a floor slab, normal pointing up
// from the floor to the ball.
func restingContact(phi float64) *ccd.SweptConstraint {
	ball := ccd.NewBody(1)
	ball.SetGeometry(ccd.Sphere{Radius: 0.5})
	floor := ccd.NewStaticBody()
	floor.SetGeometry(ccd.Box{HalfExtents: mgl64.Vec3{10, 10, 0.5}})

	c := ccd.NewSweptConstraint(ball, floor, ball.Geometry(), floor.Geometry(),
		ccd.NewTransformIdentity(), ccd.NewTransformIdentity())
	c.CullDistance = 1
	c.ShapeWorldTransform[0] = ccd.NewTransformIdentity()
	c.ShapeWorldTransform[1] = ccd.NewTransformIdentity()
	c.Points = append(c.Points, ccd.ManifoldPoint{
		ShapeContactNormal: mgl64.Vec3{0, 0, 1},
		Phi:                phi,
	})
	c.SetClosestPoint(0)
	return c
}

func TestDirectionRestingOnFloor(t *testing.T) {
	gravity := mgl64.Vec3{0, 0, -980}
	dt := 1.0 / 30

	c := restingContact(0.01)
	require.Equal(t, ccd.Particle1ToParticle0, c.Direction(dt, gravity))

	// Same geometry with the normal flipped puts the second body on
	// top.
	c.Points[0].ShapeContactNormal = mgl64.Vec3{0, 0, -1}
	require.Equal(t, ccd.Particle0ToParticle1, c.Direction(dt, gravity))
}

func TestDirectionNoDependency(t *testing.T) {
	gravity := mgl64.Vec3{0, 0, -980}
	dt := 1.0 / 30

	// Separation beyond one characteristic fall survives the step.
	far := restingContact(10)
	far.CullDistance = 100
	require.Equal(t, ccd.NoRestingDependency, far.Direction(dt, gravity))

	// Separation beyond the cull distance produces no contact at all.
	culled := restingContact(2)
	require.Equal(t, ccd.NoRestingDependency, culled.Direction(dt, gravity))

	// A normal orthogonal to gravity is not a resting contact.
	side := restingContact(0.01)
	side.Points[0].ShapeContactNormal = mgl64.Vec3{1, 0, 0}
	require.Equal(t, ccd.NoRestingDependency, side.Direction(dt, gravity))

	disabled := restingContact(0.01)
	disabled.Enabled = false
	require.Equal(t, ccd.NoRestingDependency, disabled.Direction(dt, gravity))
}

func TestDirectionZeroGravityFallback(t *testing.T) {
	dt := 1.0 / 30

	// Degenerate gravity falls back to a downward unit direction with a
	// nominal magnitude, so near contacts still order consistently.
	c := restingContact(0.01)
	require.Equal(t, ccd.Particle1ToParticle0, c.Direction(dt, mgl64.Vec3{}))
}
