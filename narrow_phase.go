package ccd

// NarrowPhase is the contact generation the pass calls back into when a
// constraint needs re-evaluation mid-step. Implementations come from
// the collision pipeline that produced the swept constraints in the
// first place.
type NarrowPhase interface {
	// UpdateConstraintSwept re-sweeps c from the given start shape
	// poses over the remaining duration restDt. The end poses are the
	// ShapeWorldTransform values already stored on c. Implementations
	// replace the manifold and set a CCDTimeOfImpact local to the
	// remaining sweep.
	UpdateConstraintSwept(c *SweptConstraint, shapeStart0, shapeStart1 Transform, restDt float64)

	// UpdateConstraintDeepest rebuilds c's manifold with the deepest
	// contact at the given end-of-step body poses, replacing any swept
	// manifold left over from the pass.
	UpdateConstraintDeepest(c *SweptConstraint, end0, end1 Transform, dt float64)
}
