package ccd_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/nvalette/ccd"
	"github.com/stretchr/testify/require"
)

func TestDeltaExceedsThresholdScale(t *testing.T) {
	threshold := mgl64.Vec3{2, 2, 2}
	rot := mgl64.QuatIdent()

	withSettings(t, func(s *ccd.Settings) { s.EnableThresholdBoundsScale = 0.4 })
	require.True(t, ccd.DeltaExceedsThreshold(threshold, mgl64.Vec3{0.9, 0, 0}, rot))
	require.False(t, ccd.DeltaExceedsThreshold(threshold, mgl64.Vec3{0.7, 0, 0}, rot))
	require.False(t, ccd.DeltaExceedsThreshold(threshold, mgl64.Vec3{-0.7, 0.7, -0.7}, rot))

	// Zero scale sweeps everything, even a body that did not move.
	withSettings(t, func(s *ccd.Settings) { s.EnableThresholdBoundsScale = 0 })
	require.True(t, ccd.DeltaExceedsThreshold(threshold, mgl64.Vec3{}, rot))

	// Negative scale disables sweeping entirely.
	withSettings(t, func(s *ccd.Settings) { s.EnableThresholdBoundsScale = -1 })
	require.False(t, ccd.DeltaExceedsThreshold(threshold, mgl64.Vec3{1000, 0, 0}, rot))
}

func TestDeltaExceedsThresholdMeasuresInLocalFrame(t *testing.T) {
	withSettings(t, func(s *ccd.Settings) { s.EnableThresholdBoundsScale = 0.4 })

	// Thin along local X only. A world Y displacement of 0.9 stays
	// under the Y threshold until the body is rotated 90 degrees.
	threshold := mgl64.Vec3{2, 5, 5}
	delta := mgl64.Vec3{0, 0.9, 0}

	require.False(t, ccd.DeltaExceedsThreshold(threshold, delta, mgl64.QuatIdent()))

	rot := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	require.True(t, ccd.DeltaExceedsThreshold(threshold, delta, rot))
}

func TestDeltaExceedsThresholdPairUsesRelativeMotionAndTighterAxis(t *testing.T) {
	withSettings(t, func(s *ccd.Settings) { s.EnableThresholdBoundsScale = 0.4 })
	id := mgl64.QuatIdent()

	big := mgl64.Vec3{10, 10, 10}
	small := mgl64.Vec3{1, 1, 1}

	// 0.9 exceeds the smaller body's scaled threshold of 0.4.
	require.True(t, ccd.DeltaExceedsThresholdPair(big, mgl64.Vec3{}, id, small, mgl64.Vec3{0.9, 0, 0}, id))
	require.False(t, ccd.DeltaExceedsThresholdPair(big, mgl64.Vec3{}, id, big, mgl64.Vec3{0.9, 0, 0}, id))

	// Identical displacements carry no relative motion.
	d := mgl64.Vec3{50, -20, 3}
	require.False(t, ccd.DeltaExceedsThresholdPair(small, d, id, small, d, id))
}

func TestBodyAndVelocityDeltaForms(t *testing.T) {
	withSettings(t, func(s *ccd.Settings) { s.EnableThresholdBoundsScale = 0.4 })
	dt := 1.0 / 60

	fast := sphereBody(1, 0.5, mgl64.Vec3{}, mgl64.Vec3{120, 0, 0}, dt)
	wall := staticWall(mgl64.Vec3{0.5, 5, 5}, mgl64.Vec3{10, 0, 0})

	require.True(t, ccd.BodyDeltaExceedsThreshold(fast, wall))
	require.True(t, ccd.VelocityDeltaExceedsThreshold(fast, wall, dt))

	slow := sphereBody(1, 0.5, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, dt)
	require.False(t, ccd.BodyDeltaExceedsThreshold(slow, wall))
	require.False(t, ccd.VelocityDeltaExceedsThreshold(slow, wall, dt))
}

func TestSetGeometryDerivesAxisThresholds(t *testing.T) {
	b := ccd.NewBody(1)
	b.SetGeometry(ccd.Sphere{Radius: 2})
	requireVec3(t, mgl64.Vec3{4, 4, 4}, b.CCDAxisThreshold(), 0)

	b.SetGeometry(ccd.Box{HalfExtents: mgl64.Vec3{1, 2, 3}})
	requireVec3(t, mgl64.Vec3{2, 4, 6}, b.CCDAxisThreshold(), 0)

	// Thin meshes sweep on any motion at all.
	b.SetGeometry(ccd.Mesh{Bounds: ccd.NewBBForExtents(mgl64.Vec3{}, 100, 100, 100)})
	requireVec3(t, mgl64.Vec3{}, b.CCDAxisThreshold(), 0)

	withSettings(t, func(s *ccd.Settings) { s.EnableThresholdBoundsScale = 0.4 })
	require.True(t, ccd.DeltaExceedsThreshold(b.CCDAxisThreshold(), mgl64.Vec3{1e-9, 0, 0}, mgl64.QuatIdent()))
}
