package ccd

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// movementEpsilon is the minimum closing motion along the contact
// normal for a sweep to count as approaching.
const movementEpsilon float64 = 1e-4

// SweptConstraint is one narrow-phase contact pair that was generated
// by sweeping shapes across the step instead of testing them at its
// end. The second body owns the contact normal.
type SweptConstraint struct {
	// Particle holds the two bodies of the pair.
	Particle [2]*Body

	// Implicit holds each side's collision geometry.
	Implicit [2]Implicit

	// ShapeRelativeTransform is each shape's constant pose in its
	// body's frame.
	ShapeRelativeTransform [2]Transform

	// ShapeWorldTransform is each shape's world pose at the end of the
	// sweep most recently evaluated.
	ShapeWorldTransform [2]Transform

	// Points is the contact manifold.
	Points []ManifoldPoint

	// CCDTimeOfImpact is the normalized impact time within the sweep,
	// or InfiniteTOI when the sweep found none.
	CCDTimeOfImpact float64

	// NetImpulse is the accumulated impulse the pass reported back.
	NetImpulse mgl64.Vec3

	// Restitution in [0, 1] applies along the contact normal at impact.
	Restitution float64

	// CullDistance is the separation beyond which the pair produces no
	// contacts.
	CullDistance float64

	// Enabled gates the constraint in and out of the pass. Collision
	// callbacks and contact pruning may clear it.
	Enabled bool

	penetrationThreshold float64 // Depth below which impacts stay with the discrete solver
	closestPointIndex    int     // Deepest manifold point, or IndexNone
}

// NewSweptConstraint wires a contact pair for sweeping. The narrow
// phase fills Points, ShapeWorldTransform and CCDTimeOfImpact.
func NewSweptConstraint(body0, body1 *Body, implicit0, implicit1 Implicit, shapeRel0, shapeRel1 Transform) *SweptConstraint {
	c := &SweptConstraint{
		Particle:               [2]*Body{body0, body1},
		Implicit:               [2]Implicit{implicit0, implicit1},
		ShapeRelativeTransform: [2]Transform{shapeRel0, shapeRel1},
		ShapeWorldTransform:    [2]Transform{NewTransformIdentity(), NewTransformIdentity()},
		CCDTimeOfImpact:        InfiniteTOI,
		Enabled:                true,
		closestPointIndex:      IndexNone,
	}
	c.InitCCDThreshold()
	return c
}

// InitCCDThreshold derives the penetration depth below which a swept
// impact is shallow enough to leave to the discrete solver. Only sides
// that opted in to sweeping contribute their geometry bounds.
func (c *SweptConstraint) InitCCDThreshold() {
	var threshold float64
	for i := 0; i < 2; i++ {
		if c.Particle[i] == nil || !c.Particle[i].ccdEnabled || c.Implicit[i] == nil {
			continue
		}
		extents := c.Implicit[i].BoundingBox().Extents()
		threshold = math.Max(threshold, minComponent(absVec(extents)))
	}
	c.penetrationThreshold = threshold * Config.AllowedDepthBoundsScale
}

// CCDPenetrationThreshold returns the shallow-impact depth derived by
// InitCCDThreshold.
func (c *SweptConstraint) CCDPenetrationThreshold() float64 {
	return c.penetrationThreshold
}

// ResetManifold clears the contact points ahead of a fresh narrow-phase
// evaluation. The time of impact is left alone.
func (c *SweptConstraint) ResetManifold() {
	c.Points = c.Points[:0]
	c.closestPointIndex = IndexNone
}

// ClosestPoint returns the index of the deepest manifold point, or
// IndexNone with an empty manifold.
func (c *SweptConstraint) ClosestPoint() int {
	return c.closestPointIndex
}

// SetClosestPoint records which manifold point the narrow phase found
// deepest.
func (c *SweptConstraint) SetClosestPoint(index int) {
	c.closestPointIndex = index
}

// Phi returns the separation of the deepest manifold point, or infinity
// with an empty manifold.
func (c *SweptConstraint) Phi() float64 {
	if c.closestPointIndex == IndexNone || c.closestPointIndex >= len(c.Points) {
		return infinity
	}
	return c.Points[c.closestPointIndex].Phi
}

// WorldContactNormal is the deepest manifold point's normal rotated
// into world space. It points from the second body toward the first and
// defaults to +Z with an empty manifold.
func (c *SweptConstraint) WorldContactNormal() mgl64.Vec3 {
	if c.closestPointIndex == IndexNone || c.closestPointIndex >= len(c.Points) {
		return mgl64.Vec3{0, 0, 1}
	}
	return c.ShapeWorldTransform[1].ApplyVector(c.Points[c.closestPointIndex].ShapeContactNormal)
}

// WorldContactLocation is the midpoint of the deepest manifold point's
// two contact positions in world space.
func (c *SweptConstraint) WorldContactLocation() mgl64.Vec3 {
	if c.closestPointIndex == IndexNone || c.closestPointIndex >= len(c.Points) {
		return mgl64.Vec3{}
	}
	point := c.Points[c.closestPointIndex]
	world0 := c.ShapeWorldTransform[0].Apply(point.ShapeContactPoints[0])
	world1 := c.ShapeWorldTransform[1].Apply(point.ShapeContactPoints[1])
	return world0.Add(world1).Mul(0.5)
}

// UpdateSweptManifoldPoints refreshes each contact point's separation
// and the constraint's time of impact from the poses at hand, without
// rerunning the narrow phase. The sweep runs from the given start shape
// positions to the end poses stored in ShapeWorldTransform; contact
// offsets use the end orientations throughout.
func (c *SweptConstraint) UpdateSweptManifoldPoints(startPos0, startPos1 mgl64.Vec3) {
	minTOI := InfiniteTOI
	minIndex := IndexNone

	for i := range c.Points {
		point := &c.Points[i]
		if point.Disabled {
			continue
		}

		offset0 := c.ShapeWorldTransform[0].ApplyVector(point.ShapeContactPoints[0])
		startContact0 := startPos0.Add(offset0)
		endContact0 := c.ShapeWorldTransform[0].Pos.Add(offset0)

		offset1 := c.ShapeWorldTransform[1].ApplyVector(point.ShapeContactPoints[1])
		startContact1 := startPos1.Add(offset1)
		endContact1 := c.ShapeWorldTransform[1].Pos.Add(offset1)

		normal := c.ShapeWorldTransform[1].ApplyVector(point.ShapeContactNormal)
		startPhi := startContact0.Sub(startContact1).Dot(normal)
		endPhi := endContact0.Sub(endContact1).Dot(normal)

		toi := c.modifiedSweptTOI(startPhi, endPhi)
		if toi < minTOI {
			minTOI = toi
			minIndex = i
		}

		point.Phi = endPhi
	}

	c.CCDTimeOfImpact = minTOI
	c.closestPointIndex = minIndex
}

// modifiedSweptTOI turns a start and end separation into a usable time
// of impact. Separating or still-separated sweeps produce none.
// Penetration shallower than the constraint threshold reports an impact
// exactly at the end of the sweep, leaving the correction to the
// discrete solver. Anything deeper rolls back to zero separation.
func (c *SweptConstraint) modifiedSweptTOI(startPhi, endPhi float64) float64 {
	if endPhi > 0 {
		return InfiniteTOI
	}
	if endPhi > startPhi-movementEpsilon {
		return InfiniteTOI
	}
	if endPhi > -c.penetrationThreshold {
		return 1
	}
	return clamp01((0 - startPhi) / (endPhi - startPhi))
}

// SetCCDResults reports the accumulated sweep impulse back onto the
// constraint for downstream consumers.
func (c *SweptConstraint) SetCCDResults(netImpulse mgl64.Vec3) {
	c.NetImpulse = netImpulse
}
