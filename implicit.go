package ccd

import "github.com/go-gl/mathgl/mgl64"

// Implicit is the slice of collision geometry the sweep pass needs:
// convexity and local-space bounds. Narrow-phase evaluation of the
// surface itself stays with the collision pipeline.
type Implicit interface {
	// IsConvex reports whether the geometry is a closed convex volume.
	// Thin geometry such as triangle meshes must report false so its
	// bounds never relax a sweep threshold.
	IsConvex() bool
	// BoundingBox returns the geometry bounds in its local frame.
	BoundingBox() BB
}

// Sphere is an implicit sphere centered on the local origin.
type Sphere struct {
	Radius float64
}

func (s Sphere) IsConvex() bool { return true }

func (s Sphere) BoundingBox() BB {
	return NewBBForSphere(mgl64.Vec3{}, s.Radius)
}

// Box is an implicit box centered on the local origin.
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b Box) IsConvex() bool { return true }

func (b Box) BoundingBox() BB {
	return BB{Min: b.HalfExtents.Mul(-1), Max: b.HalfExtents}
}

// Mesh is thin triangle-mesh geometry. Its bounds are tracked for
// culling but never contribute to sweep thresholds.
type Mesh struct {
	Bounds BB
}

func (m Mesh) IsConvex() bool { return false }

func (m Mesh) BoundingBox() BB { return m.Bounds }
