package kernel

import "github.com/go-gl/mathgl/mgl64"

// Geometry is the capability set the self-intersection routines need from a
// geometric kernel. The default implementation is Exact; callers with a
// filtered or interval-arithmetic kernel can substitute their own.
type Geometry interface {
	// Collinear reports whether p, q, r lie on one line.
	Collinear(p, q, r mgl64.Vec3) bool
	// Coplanar reports whether p, q, r, s lie in one plane.
	Coplanar(p, q, r, s mgl64.Vec3) bool
	// CoplanarOrientation classifies s against the line pq within the common
	// plane of the coplanar points p, q, r, s. See the package-level function.
	CoplanarOrientation(p, q, r, s mgl64.Vec3) Orientation
	// Intersects reports whether two non-degenerate triangles share a point.
	Intersects(t1, t2 Triangle) bool
	// IntersectsSegment reports whether a non-degenerate triangle and a
	// closed segment share a point.
	IntersectsSegment(t Triangle, s Segment) bool
}

// Exact implements Geometry with the package predicates.
type Exact struct{}

func (Exact) Collinear(p, q, r mgl64.Vec3) bool     { return Collinear(p, q, r) }
func (Exact) Coplanar(p, q, r, s mgl64.Vec3) bool   { return Coplanar(p, q, r, s) }
func (Exact) Intersects(t1, t2 Triangle) bool       { return Intersects(t1, t2) }
func (Exact) IntersectsSegment(t Triangle, s Segment) bool {
	return IntersectsSegment(t, s)
}
func (Exact) CoplanarOrientation(p, q, r, s mgl64.Vec3) Orientation {
	return CoplanarOrientation(p, q, r, s)
}
