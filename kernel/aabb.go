package kernel

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// PointBox returns the degenerate AABB containing only the given point.
func PointBox(p mgl64.Vec3) AABB {
	return AABB{Min: p, Max: p}
}

// BoxOf returns the smallest AABB containing all the given points.
func BoxOf(points ...mgl64.Vec3) AABB {
	box := PointBox(points[0])
	for _, p := range points[1:] {
		box = box.Union(PointBox(p))
	}
	return box
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Union returns the smallest AABB containing both a and other.
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{
			min(a.Min.X(), other.Min.X()),
			min(a.Min.Y(), other.Min.Y()),
			min(a.Min.Z(), other.Min.Z()),
		},
		Max: mgl64.Vec3{
			max(a.Max.X(), other.Max.X()),
			max(a.Max.Y(), other.Max.Y()),
			max(a.Max.Z(), other.Max.Z()),
		},
	}
}

// Center returns the midpoint of the AABB.
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// LongestAxis returns the axis index (0=X, 1=Y, 2=Z) along which the AABB extends furthest.
func (a AABB) LongestAxis() int {
	d := a.Max.Sub(a.Min)
	axis := 0
	if d.Y() > d.X() {
		axis = 1
	}
	if d.Z() > d[axis] {
		axis = 2
	}
	return axis
}
