package kernel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Segment is a closed 3D line segment between two endpoints.
type Segment struct {
	A, B mgl64.Vec3
}

// Triangle is a 3D triangle given by its three corners.
type Triangle struct {
	A, B, C mgl64.Vec3
}

// NewSegment constructs the segment between a and b.
func NewSegment(a, b mgl64.Vec3) Segment {
	return Segment{A: a, B: b}
}

// NewTriangle constructs the triangle with corners a, b, c.
func NewTriangle(a, b, c mgl64.Vec3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Degenerate reports whether the triangle's corners are collinear.
func (t Triangle) Degenerate() bool {
	return Collinear(t.A, t.B, t.C)
}

// AABB returns the bounding box of the triangle.
func (t Triangle) AABB() AABB {
	return BoxOf(t.A, t.B, t.C)
}

// normal returns the (unnormalized) plane normal of the triangle.
func (t Triangle) normal() mgl64.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// IntersectsSegment reports whether the closed segment s and the triangle t
// share at least one point. Touching configurations (an endpoint on the
// triangle, the segment grazing an edge) count as intersecting.
//
// t must not be degenerate.
func IntersectsSegment(t Triangle, s Segment) bool {
	n := t.normal()

	d1 := n.Dot(s.A.Sub(t.A))
	d2 := n.Dot(s.B.Sub(t.A))

	// Both endpoints strictly on one side of the supporting plane.
	if d1 > volumeEps && d2 > volumeEps {
		return false
	}
	if d1 < -volumeEps && d2 < -volumeEps {
		return false
	}

	axis := dominantAxis(n)

	onPlane1 := math.Abs(d1) <= volumeEps
	onPlane2 := math.Abs(d2) <= volumeEps

	if onPlane1 && onPlane2 {
		// Coplanar segment: solve in 2D on the dominant projection plane.
		a, b, c := dropAxis(t.A, axis), dropAxis(t.B, axis), dropAxis(t.C, axis)
		p, q := dropAxis(s.A, axis), dropAxis(s.B, axis)

		if pointInTriangle2D(p, a, b, c) || pointInTriangle2D(q, a, b, c) {
			return true
		}
		return segmentsIntersect2D(p, q, a, b) ||
			segmentsIntersect2D(p, q, b, c) ||
			segmentsIntersect2D(p, q, c, a)
	}

	// One endpoint on the plane, or a proper plane crossing: a single
	// candidate point remains.
	var hit mgl64.Vec3
	switch {
	case onPlane1:
		hit = s.A
	case onPlane2:
		hit = s.B
	default:
		f := d1 / (d1 - d2)
		hit = s.A.Add(s.B.Sub(s.A).Mul(f))
	}

	return pointInTriangle2D(dropAxis(hit, axis),
		dropAxis(t.A, axis), dropAxis(t.B, axis), dropAxis(t.C, axis))
}

// Intersects reports whether the two triangles share at least one point.
// Touching configurations count as intersecting; adjacency filtering is the
// caller's concern.
//
// Neither triangle may be degenerate.
func Intersects(t1, t2 Triangle) bool {
	// Mutual plane-side rejection: if all corners of one triangle lie
	// strictly on one side of the other's supporting plane, the triangles
	// cannot meet.
	n2 := t2.normal()
	e1 := n2.Dot(t1.A.Sub(t2.A))
	e2 := n2.Dot(t1.B.Sub(t2.A))
	e3 := n2.Dot(t1.C.Sub(t2.A))
	if (e1 > volumeEps && e2 > volumeEps && e3 > volumeEps) ||
		(e1 < -volumeEps && e2 < -volumeEps && e3 < -volumeEps) {
		return false
	}

	n1 := t1.normal()
	f1 := n1.Dot(t2.A.Sub(t1.A))
	f2 := n1.Dot(t2.B.Sub(t1.A))
	f3 := n1.Dot(t2.C.Sub(t1.A))
	if (f1 > volumeEps && f2 > volumeEps && f3 > volumeEps) ||
		(f1 < -volumeEps && f2 < -volumeEps && f3 < -volumeEps) {
		return false
	}

	coplanar := math.Abs(e1) <= volumeEps && math.Abs(e2) <= volumeEps && math.Abs(e3) <= volumeEps
	if coplanar {
		axis := dominantAxis(n2)
		return trianglesOverlap2D(
			[3]mgl64.Vec2{dropAxis(t1.A, axis), dropAxis(t1.B, axis), dropAxis(t1.C, axis)},
			[3]mgl64.Vec2{dropAxis(t2.A, axis), dropAxis(t2.B, axis), dropAxis(t2.C, axis)},
		)
	}

	// General position: two non-coplanar triangles intersect exactly when an
	// edge of one crosses the other.
	return IntersectsSegment(t2, Segment{t1.A, t1.B}) ||
		IntersectsSegment(t2, Segment{t1.B, t1.C}) ||
		IntersectsSegment(t2, Segment{t1.C, t1.A}) ||
		IntersectsSegment(t1, Segment{t2.A, t2.B}) ||
		IntersectsSegment(t1, Segment{t2.B, t2.C}) ||
		IntersectsSegment(t1, Segment{t2.C, t2.A})
}

// ============================================================================
// 2D helpers (dominant-axis projections)
// ============================================================================

const orient2DEps = 1e-12

// dominantAxis returns the axis (0=X, 1=Y, 2=Z) with the largest absolute
// component of n. Projecting along it keeps the projected area maximal.
func dominantAxis(n mgl64.Vec3) int {
	ax, ay, az := math.Abs(n.X()), math.Abs(n.Y()), math.Abs(n.Z())
	switch {
	case ax >= ay && ax >= az:
		return 0
	case ay >= az:
		return 1
	default:
		return 2
	}
}

// dropAxis projects p onto the coordinate plane orthogonal to the given axis.
func dropAxis(p mgl64.Vec3, axis int) mgl64.Vec2 {
	switch axis {
	case 0:
		return mgl64.Vec2{p.Y(), p.Z()}
	case 1:
		return mgl64.Vec2{p.X(), p.Z()}
	default:
		return mgl64.Vec2{p.X(), p.Y()}
	}
}

// orient2D returns twice the signed area of the triangle abc.
func orient2D(a, b, c mgl64.Vec2) float64 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

// pointInTriangle2D reports whether p lies inside or on the triangle abc,
// regardless of the triangle's winding.
func pointInTriangle2D(p, a, b, c mgl64.Vec2) bool {
	d1 := orient2D(a, b, p)
	d2 := orient2D(b, c, p)
	d3 := orient2D(c, a, p)

	hasNeg := d1 < -orient2DEps || d2 < -orient2DEps || d3 < -orient2DEps
	hasPos := d1 > orient2DEps || d2 > orient2DEps || d3 > orient2DEps
	return !(hasNeg && hasPos)
}

// onSegment2D reports whether p, known to be collinear with ab, lies within
// the segment's extent.
func onSegment2D(a, b, p mgl64.Vec2) bool {
	return p.X() >= min(a.X(), b.X())-orient2DEps && p.X() <= max(a.X(), b.X())+orient2DEps &&
		p.Y() >= min(a.Y(), b.Y())-orient2DEps && p.Y() <= max(a.Y(), b.Y())+orient2DEps
}

// segmentsIntersect2D reports whether the closed segments p1p2 and q1q2 share
// a point, including endpoint touches and collinear overlap.
func segmentsIntersect2D(p1, p2, q1, q2 mgl64.Vec2) bool {
	d1 := orient2D(q1, q2, p1)
	d2 := orient2D(q1, q2, p2)
	d3 := orient2D(p1, p2, q1)
	d4 := orient2D(p1, p2, q2)

	if ((d1 > orient2DEps && d2 < -orient2DEps) || (d1 < -orient2DEps && d2 > orient2DEps)) &&
		((d3 > orient2DEps && d4 < -orient2DEps) || (d3 < -orient2DEps && d4 > orient2DEps)) {
		return true
	}

	if math.Abs(d1) <= orient2DEps && onSegment2D(q1, q2, p1) {
		return true
	}
	if math.Abs(d2) <= orient2DEps && onSegment2D(q1, q2, p2) {
		return true
	}
	if math.Abs(d3) <= orient2DEps && onSegment2D(p1, p2, q1) {
		return true
	}
	if math.Abs(d4) <= orient2DEps && onSegment2D(p1, p2, q2) {
		return true
	}
	return false
}

// trianglesOverlap2D reports whether two coplanar (projected) triangles share
// a point: a corner of one inside the other, or any pair of edges crossing.
func trianglesOverlap2D(t1, t2 [3]mgl64.Vec2) bool {
	for _, p := range t1 {
		if pointInTriangle2D(p, t2[0], t2[1], t2[2]) {
			return true
		}
	}
	for _, p := range t2 {
		if pointInTriangle2D(p, t1[0], t1[1], t1[2]) {
			return true
		}
	}
	for i := 0; i < 3; i++ {
		a, b := t1[i], t1[(i+1)%3]
		for j := 0; j < 3; j++ {
			if segmentsIntersect2D(a, b, t2[j], t2[(j+1)%3]) {
				return true
			}
		}
	}
	return false
}
