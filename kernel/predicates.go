// Package kernel provides the geometric primitives used by the
// self-intersection routines: axis-aligned boxes, orientation and
// coplanarity predicates, and triangle/segment intersection tests.
//
// All predicates operate on mgl64.Vec3 points and classify against small
// documented tolerances rather than raw float equality, so that exactly
// constructed configurations (shared planes, collinear triples) are
// recognized despite rounding in the intermediate products.
package kernel

import "github.com/go-gl/mathgl/mgl64"

// Orientation is the tri-state result of the planar orientation predicates.
type Orientation int

const (
	Negative Orientation = -1
	Zero     Orientation = 0
	Positive Orientation = 1
)

const (
	// crossEps - squared length below which a cross product counts as null
	crossEps = 1e-18
	// volumeEps - signed volume magnitude below which four points count as coplanar
	volumeEps = 1e-12
)

// signedVolume computes the triple product (q-p)x(r-p).(s-p), six times the
// signed volume of the tetrahedron pqrs.
func signedVolume(p, q, r, s mgl64.Vec3) float64 {
	return q.Sub(p).Cross(r.Sub(p)).Dot(s.Sub(p))
}

// Collinear reports whether the three points lie on a single line.
func Collinear(p, q, r mgl64.Vec3) bool {
	return q.Sub(p).Cross(r.Sub(p)).LenSqr() < crossEps
}

// Coplanar reports whether the four points lie in a single plane.
func Coplanar(p, q, r, s mgl64.Vec3) bool {
	v := signedVolume(p, q, r, s)
	return v > -volumeEps && v < volumeEps
}

// CoplanarOrientation classifies s against the line pq within the common
// plane of the four (coplanar) points p, q, r, s:
//
//   - Positive: r and s lie strictly on the same side of pq
//   - Negative: r and s lie strictly on opposite sides of pq
//   - Zero: s lies on the line pq
//
// The classification compares the normals of (p, q, r) and (p, q, s): for
// coplanar points both are parallel to the common plane normal, and their dot
// product is positive exactly when r and s fall on the same side of pq.
func CoplanarOrientation(p, q, r, s mgl64.Vec3) Orientation {
	pq := q.Sub(p)
	nr := pq.Cross(r.Sub(p))
	ns := pq.Cross(s.Sub(p))

	if ns.LenSqr() < crossEps {
		return Zero
	}
	if nr.LenSqr() < crossEps {
		// r on the line pq: no side to compare against
		return Zero
	}

	if nr.Dot(ns) > 0 {
		return Positive
	}
	return Negative
}
