// Package polymesh implements self-intersection detection on triangulated
// surface meshes: finding every unordered pair of non-adjacent faces whose
// triangles truly overlap in space, as opposed to merely touching along a
// shared edge or vertex.
//
// The mesh representation and the geometric kernel are collaborators behind
// the FaceMesh and kernel.Geometry interfaces; the halfedge subpackage
// provides a default mesh and kernel.Exact a default kernel.
package polymesh

import "github.com/go-gl/mathgl/mgl64"

// FaceID identifies a triangular face of a mesh.
type FaceID int

// VertexID identifies a vertex of a mesh.
type VertexID int

// InvalidFace marks the absence of a face, e.g. across a border edge.
const InvalidFace FaceID = -1

// FaceMesh is the view of a triangle mesh needed by the self-intersection
// routines. Any half-edge or face-vertex mesh can implement it; corner and
// edge numbering must be consistent: edge i of a face runs from corner i to
// corner (i+1)%3, and the corners of every face are given in one fixed
// rotation order.
type FaceMesh interface {
	// Faces lists every face of the mesh.
	Faces() []FaceID
	// FaceVertices returns the three corner vertices of f in rotation order.
	FaceVertices(f FaceID) [3]VertexID
	// OppositeFace returns the face on the other side of edge i of f, or
	// InvalidFace if that edge is a border.
	OppositeFace(f FaceID, i int) FaceID
	// Point returns the position of v.
	Point(v VertexID) mgl64.Vec3
}

// PointFunc maps a vertex to its position. It substitutes for the mesh's
// intrinsic points when set through WithVertexPoints.
type PointFunc func(VertexID) mgl64.Vec3

// FacePair is an unordered pair of intersecting faces. Degenerate faces are
// reported as the self-pair (f, f).
type FacePair struct {
	F, G FaceID
}
