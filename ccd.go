package ccd

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const infinity float64 = math.MaxFloat64

// InfiniteTOI marks a swept constraint with no impact left in the step.
// It sorts after every real impact time and is never consumed.
const InfiniteTOI float64 = math.MaxFloat64

// IndexNone marks an empty endpoint, island or manifold slot.
const IndexNone int = -1

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

func absVec(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])}
}

func minVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

func maxVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}

func minComponent(v mgl64.Vec3) float64 {
	return math.Min(v[0], math.Min(v[1], v[2]))
}

// resize returns s with length n, reusing its backing array when it is
// large enough. Contents are unspecified.
func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
