package ccd

import "github.com/go-gl/mathgl/mgl64"

// DeltaExceedsThreshold reports whether a body with orientation rot
// that translated by delta in world space outran its per-axis sweep
// thresholds. Thresholds are measured in the frame they were derived
// in, so the delta is rotated back before comparing.
func DeltaExceedsThreshold(axisThreshold, delta mgl64.Vec3, rot mgl64.Quat) bool {
	return deltaExceedsThreshold(axisThreshold, delta, rot, Config.EnableThresholdBoundsScale)
}

func deltaExceedsThreshold(axisThreshold, delta mgl64.Vec3, rot mgl64.Quat, scale float64) bool {
	if scale < 0 {
		return false
	}
	if scale == 0 {
		return true
	}

	localDelta := absVec(rot.Inverse().Rotate(delta))
	scaled := axisThreshold.Mul(scale)
	for i := 0; i < 3; i++ {
		if localDelta[i] > scaled[i] {
			return true
		}
	}
	return false
}

// DeltaExceedsThresholdPair is the pairwise form of
// DeltaExceedsThreshold: the relative displacement of the pair is
// tested against the smaller of the two thresholds on each axis, in the
// first body's frame.
func DeltaExceedsThresholdPair(axisThreshold0, delta0 mgl64.Vec3, rot0 mgl64.Quat, axisThreshold1, delta1 mgl64.Vec3, rot1 mgl64.Quat) bool {
	return deltaExceedsThresholdPair(axisThreshold0, delta0, rot0, axisThreshold1, delta1, rot1, Config.EnableThresholdBoundsScale)
}

func deltaExceedsThresholdPair(axisThreshold0, delta0 mgl64.Vec3, rot0 mgl64.Quat, axisThreshold1, delta1 mgl64.Vec3, rot1 mgl64.Quat, scale float64) bool {
	threshold1In0 := absVec(rot0.Inverse().Rotate(rot1.Rotate(axisThreshold1)))
	threshold := minVec(axisThreshold0, threshold1In0)
	return deltaExceedsThreshold(threshold, delta1.Sub(delta0), rot0, scale)
}

// BodyDeltaExceedsThreshold applies the pairwise form to two bodies
// using their integrated step displacement.
func BodyDeltaExceedsThreshold(body0, body1 *Body) bool {
	return bodyDeltaExceedsThreshold(body0, body1, Config.EnableThresholdBoundsScale)
}

func bodyDeltaExceedsThreshold(body0, body1 *Body, scale float64) bool {
	delta0, rot0 := body0.sweepDelta()
	delta1, rot1 := body1.sweepDelta()
	return deltaExceedsThresholdPair(body0.ccdAxisThreshold, delta0, rot0, body1.ccdAxisThreshold, delta1, rot1, scale)
}

// VelocityDeltaExceedsThreshold applies the pairwise form to two bodies
// using the displacement their velocities produce over dt, for callers
// that run before end-of-step positions exist.
func VelocityDeltaExceedsThreshold(body0, body1 *Body, dt float64) bool {
	return velocityDeltaExceedsThreshold(body0, body1, dt, Config.EnableThresholdBoundsScale)
}

func velocityDeltaExceedsThreshold(body0, body1 *Body, dt float64, scale float64) bool {
	delta0, rot0 := body0.velocityDelta(dt)
	delta1, rot1 := body1.velocityDelta(dt)
	return deltaExceedsThresholdPair(body0.ccdAxisThreshold, delta0, rot0, body1.ccdAxisThreshold, delta1, rot1, scale)
}
