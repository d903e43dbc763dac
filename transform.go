package ccd

import "github.com/go-gl/mathgl/mgl64"

// Transform is a rigid pose, a rotation followed by a translation.
type Transform struct {
	Pos mgl64.Vec3
	Rot mgl64.Quat
}

// NewTransform returns the pose with translation pos and rotation rot.
func NewTransform(pos mgl64.Vec3, rot mgl64.Quat) Transform {
	return Transform{Pos: pos, Rot: rot}
}

// NewTransformIdentity returns the identity pose.
func NewTransformIdentity() Transform {
	return Transform{Rot: mgl64.QuatIdent()}
}

// Mult returns the composed pose applying t2 first, then t.
func (t Transform) Mult(t2 Transform) Transform {
	return Transform{
		Pos: t.Rot.Rotate(t2.Pos).Add(t.Pos),
		Rot: t.Rot.Mul(t2.Rot).Normalize(),
	}
}

// Apply maps point p from t's local space to world space.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rot.Rotate(p).Add(t.Pos)
}

// ApplyVector rotates direction v without translating it.
func (t Transform) ApplyVector(v mgl64.Vec3) mgl64.Vec3 {
	return t.Rot.Rotate(v)
}

// Inverse returns the pose mapping world space back to t's local space.
func (t Transform) Inverse() Transform {
	inv := t.Rot.Inverse()
	return Transform{
		Pos: inv.Rotate(t.Pos).Mul(-1),
		Rot: inv,
	}
}
