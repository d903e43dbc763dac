package ccd

import "github.com/go-gl/mathgl/mgl64"

// ManifoldPoint is one contact sample produced by the narrow phase.
type ManifoldPoint struct {
	// ShapeContactPoints holds the contact location in each shape's
	// local frame.
	ShapeContactPoints [2]mgl64.Vec3

	// ShapeContactNormal is the contact normal in the second shape's
	// local frame, pointing from the second shape toward the first.
	ShapeContactNormal mgl64.Vec3

	// Phi is the signed separation along the normal at the poses most
	// recently evaluated. Negative separation is penetration.
	Phi float64

	// Disabled marks points culled by the narrow phase or a collision
	// callback.
	Disabled bool
}
