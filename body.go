package ccd

import "github.com/go-gl/mathgl/mgl64"

// BodyType for bodies; Dynamic, Kinematic or Static
type BodyType uint8

const (
	Dynamic   BodyType = 0
	Kinematic BodyType = 1
	Static    BodyType = 2
)

// Body is one rigid body as the sweep pass sees it. The upstream
// integrator fills the end-of-step pose from the start-of-step pose and
// the velocity before the pass runs; the pass moves both positions and
// may change the velocity, and it never touches rotations.
//
// Kinematic bodies arrive already integrated: Position and
// PredictedPosition both hold the end-of-step pose, and Velocity
// describes the motion that led there.
type Body struct {
	// UserData is an object that this body is associated with.
	//
	// You can use this get a reference to your game object or controller object from within callbacks.
	UserData any

	bodyType          BodyType
	position          mgl64.Vec3 // Start-of-step position
	rotation          mgl64.Quat // Start-of-step rotation
	predictedPosition mgl64.Vec3 // End-of-step position
	predictedRotation mgl64.Quat // End-of-step rotation
	velocity          mgl64.Vec3 // Velocity
	mass              float64    // Mass
	massInverse       float64    // Mass inverse
	ccdEnabled        bool
	ccdAxisThreshold  mgl64.Vec3
	geometry          Implicit
}

// NewBody initializes a dynamic rigid body with the given mass.
func NewBody(mass float64) *Body {
	body := &Body{
		bodyType:          Dynamic,
		rotation:          mgl64.QuatIdent(),
		predictedRotation: mgl64.QuatIdent(),
	}
	body.SetMass(mass)
	return body
}

// NewStaticBody allocates and initializes a Body, and set it as a static body.
func NewStaticBody() *Body {
	body := NewBody(0)
	body.SetType(Static)
	return body
}

// NewKinematicBody allocates and initializes a Body, and set it as a kinematic body.
func NewKinematicBody() *Body {
	body := NewBody(0)
	body.SetType(Kinematic)
	return body
}

// Type returns the type of the body.
func (body *Body) Type() BodyType {
	return body.bodyType
}

// SetType sets the type of the body. Non-dynamic bodies get infinite
// mass.
func (body *Body) SetType(bodyType BodyType) {
	body.bodyType = bodyType
	if bodyType != Dynamic {
		body.mass = infinity
		body.massInverse = 0
	}
}

// Mass returns the mass of the body.
func (body *Body) Mass() float64 {
	return body.mass
}

// SetMass sets the mass of the body.
func (body *Body) SetMass(mass float64) {
	body.mass = mass
	if mass > 0 && mass != infinity {
		body.massInverse = 1 / mass
	} else {
		body.massInverse = 0
	}
}

// InvMass returns the inverse mass of the body, zero for infinite mass.
func (body *Body) InvMass() float64 {
	return body.massInverse
}

// Position returns the start-of-step position of the body.
func (body *Body) Position() mgl64.Vec3 {
	return body.position
}

// SetPosition sets the start-of-step position of the body.
func (body *Body) SetPosition(position mgl64.Vec3) {
	body.position = position
}

// Rotation returns the start-of-step rotation of the body.
func (body *Body) Rotation() mgl64.Quat {
	return body.rotation
}

// SetRotation sets the start-of-step rotation of the body.
func (body *Body) SetRotation(rotation mgl64.Quat) {
	body.rotation = rotation
}

// PredictedPosition returns the end-of-step position of the body.
func (body *Body) PredictedPosition() mgl64.Vec3 {
	return body.predictedPosition
}

// SetPredictedPosition sets the end-of-step position of the body.
func (body *Body) SetPredictedPosition(position mgl64.Vec3) {
	body.predictedPosition = position
}

// PredictedRotation returns the end-of-step rotation of the body.
func (body *Body) PredictedRotation() mgl64.Quat {
	return body.predictedRotation
}

// SetPredictedRotation sets the end-of-step rotation of the body.
func (body *Body) SetPredictedRotation(rotation mgl64.Quat) {
	body.predictedRotation = rotation
}

// Velocity returns the velocity of the body.
func (body *Body) Velocity() mgl64.Vec3 {
	return body.velocity
}

// SetVelocity sets the velocity of the body.
func (body *Body) SetVelocity(velocity mgl64.Vec3) {
	body.velocity = velocity
}

// CCDEnabled reports whether the body opted in to sweeping.
func (body *Body) CCDEnabled() bool {
	return body.ccdEnabled
}

// SetCCDEnabled opts the body in or out of sweeping.
func (body *Body) SetCCDEnabled(enabled bool) {
	body.ccdEnabled = enabled
}

// CCDAxisThreshold returns the per-axis motion that triggers sweeping
// for this body, measured in its local frame.
func (body *Body) CCDAxisThreshold() mgl64.Vec3 {
	return body.ccdAxisThreshold
}

// SetCCDAxisThreshold overrides the per-axis sweep thresholds.
func (body *Body) SetCCDAxisThreshold(threshold mgl64.Vec3) {
	body.ccdAxisThreshold = threshold
}

// Geometry returns the collision geometry attached to the body.
func (body *Body) Geometry() Implicit {
	return body.geometry
}

// SetGeometry attaches collision geometry and derives the per-axis
// sweep thresholds from its bounds. Thin non-convex geometry cannot be
// trusted for thresholds, so any motion at all triggers sweeping
// against it.
func (body *Body) SetGeometry(geometry Implicit) {
	body.geometry = geometry
	if geometry != nil && geometry.IsConvex() {
		body.ccdAxisThreshold = geometry.BoundingBox().Extents()
	} else {
		body.ccdAxisThreshold = mgl64.Vec3{}
	}
}

// Integrate produces the end-of-step pose the way the upstream
// integrator does before the pass runs. Dynamic bodies move by their
// velocity, kinematic and static bodies keep their positions.
func (body *Body) Integrate(dt float64) {
	if body.bodyType == Dynamic {
		body.predictedPosition = body.position.Add(body.velocity.Mul(dt))
	} else {
		body.predictedPosition = body.position
	}
	body.predictedRotation = body.rotation
}

// endWorldTransform is the body pose at the end of the step. Static
// bodies never move.
func (body *Body) endWorldTransform() Transform {
	if body.bodyType == Static {
		return NewTransform(body.position, body.rotation)
	}
	return NewTransform(body.predictedPosition, body.predictedRotation)
}

// velocityDelta is the step displacement the sweep thresholds measure,
// with the orientation it is measured in. Valid for kinematic bodies
// too, whose positions already hold end-of-step poses.
func (body *Body) velocityDelta(dt float64) (mgl64.Vec3, mgl64.Quat) {
	if body.bodyType == Static {
		return mgl64.Vec3{}, body.rotation
	}
	return body.velocity.Mul(dt), body.predictedRotation
}

// sweepDelta is the integrated step displacement with the orientation
// it is measured in.
func (body *Body) sweepDelta() (mgl64.Vec3, mgl64.Quat) {
	if body.bodyType == Static {
		return mgl64.Vec3{}, body.rotation
	}
	return body.predictedPosition.Sub(body.position), body.predictedRotation
}
