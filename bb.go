package ccd

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BB is an axis-aligned 3D bounding box.
type BB struct {
	Min, Max mgl64.Vec3
}

// NewBB is convenience constructor for BB structs.
func NewBB(min, max mgl64.Vec3) BB {
	return BB{Min: min, Max: max}
}

func (bb BB) String() string {
	return fmt.Sprintf("%v %v", bb.Min, bb.Max)
}

// NewBBForExtents constructs a BB centered on a point with the given extents (half sizes).
func NewBBForExtents(c mgl64.Vec3, hw, hh, hd float64) BB {
	h := mgl64.Vec3{hw, hh, hd}
	return BB{
		Min: c.Sub(h),
		Max: c.Add(h),
	}
}

// NewBBForSphere constructs a BB for a sphere with the given position and radius.
func NewBBForSphere(p mgl64.Vec3, r float64) BB {
	return NewBBForExtents(p, r, r, r)
}

// Intersects returns true if a and b intersect.
func (a BB) Intersects(b BB) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] > b.Max[i] || b.Min[i] > a.Max[i] {
			return false
		}
	}
	return true
}

// Contains returns true if other lies completely within bb.
func (bb BB) Contains(other BB) bool {
	for i := 0; i < 3; i++ {
		if bb.Min[i] > other.Min[i] || bb.Max[i] < other.Max[i] {
			return false
		}
	}
	return true
}

// ContainsVect returns true if bb contains v.
func (bb BB) ContainsVect(v mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if v[i] < bb.Min[i] || v[i] > bb.Max[i] {
			return false
		}
	}
	return true
}

// Merge returns a bounding box that holds both bounding boxes.
func (a BB) Merge(b BB) BB {
	return BB{
		Min: minVec(a.Min, b.Min),
		Max: maxVec(a.Max, b.Max),
	}
}

// Expand returns a bounding box that holds both bb and v.
func (bb BB) Expand(v mgl64.Vec3) BB {
	return BB{
		Min: minVec(bb.Min, v),
		Max: maxVec(bb.Max, v),
	}
}

// Center returns the center of a bounding box.
func (bb BB) Center() mgl64.Vec3 {
	return bb.Min.Add(bb.Max).Mul(0.5)
}

// Extents returns the full size of the bounding box along each axis.
func (bb BB) Extents() mgl64.Vec3 {
	return bb.Max.Sub(bb.Min)
}

// Volume returns the volume of the bounding box.
func (bb BB) Volume() float64 {
	e := bb.Extents()
	return e[0] * e[1] * e[2]
}

// SegmentQuery returns the fraction along the segment query the BB is hit.
// Returns ccd.InfiniteTOI if it doesn't hit.
func (bb BB) SegmentQuery(a, b mgl64.Vec3) float64 {
	delta := b.Sub(a)
	tmin := -infinity
	tmax := infinity

	for i := 0; i < 3; i++ {
		if delta[i] == 0 {
			if a[i] < bb.Min[i] || bb.Max[i] < a[i] {
				return infinity
			}
		} else {
			t1 := (bb.Min[i] - a[i]) / delta[i]
			t2 := (bb.Max[i] - a[i]) / delta[i]
			tmin = math.Max(tmin, math.Min(t1, t2))
			tmax = math.Min(tmax, math.Max(t1, t2))
		}
	}

	if tmin <= tmax && 0 <= tmax && tmin <= 1.0 {
		return math.Max(tmin, 0.0)
	}
	return infinity
}

// IntersectsSegment returns true if the bounding box intersects the line segment with ends a and b.
func (bb BB) IntersectsSegment(a, b mgl64.Vec3) bool {
	return bb.SegmentQuery(a, b) != infinity
}

// Offset returns a bounding box offseted by v.
func (bb BB) Offset(v mgl64.Vec3) BB {
	return BB{
		Min: bb.Min.Add(v),
		Max: bb.Max.Add(v),
	}
}
