// Package halfedge provides a compact half-edge triangle mesh that satisfies
// the polymesh.FaceMesh interface. Faces, vertices and half-edges are
// referenced by integer handles into flat slices; face f owns half-edges
// 3f, 3f+1, 3f+2, where half-edge 3f+i runs from corner i to corner (i+1)%3.
package halfedge

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/oesi82/polymesh"
)

const noTwin = int32(-1)

// edge is one directed side of a face.
type edge struct {
	origin polymesh.VertexID
	twin   int32 // index of the opposite half-edge, or noTwin on a border
}

// Mesh is a triangle mesh under construction or query. Triangles are added
// one at a time; vertices are welded by exact position, and twin half-edges
// are linked as soon as both sides exist. The zero value is not usable; use
// New.
type Mesh struct {
	points []mgl64.Vec3
	edges  []edge

	weld    map[mgl64.Vec3]polymesh.VertexID
	twinMap map[[2]polymesh.VertexID]int32
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{
		weld:    make(map[mgl64.Vec3]polymesh.VertexID),
		twinMap: make(map[[2]polymesh.VertexID]int32),
	}
}

// AddVertex returns the vertex at position p, creating it if no vertex with
// exactly that position exists yet.
func (m *Mesh) AddVertex(p mgl64.Vec3) polymesh.VertexID {
	if v, ok := m.weld[p]; ok {
		return v
	}
	v := polymesh.VertexID(len(m.points))
	m.points = append(m.points, p)
	m.weld[p] = v
	return v
}

// AddTriangle adds the triangle with corners p, q, r, welding its corners
// against existing vertices, and returns the new face. Across each
// undirected edge only the first two incident half-edges are linked as
// twins; additional fan-out on a non-manifold edge is left unlinked.
func (m *Mesh) AddTriangle(p, q, r mgl64.Vec3) polymesh.FaceID {
	return m.AddFace(m.AddVertex(p), m.AddVertex(q), m.AddVertex(r))
}

// AddFace adds the triangle with the given corner vertices.
func (m *Mesh) AddFace(v0, v1, v2 polymesh.VertexID) polymesh.FaceID {
	f := polymesh.FaceID(len(m.edges) / 3)
	corners := [3]polymesh.VertexID{v0, v1, v2}

	for i := 0; i < 3; i++ {
		e := int32(len(m.edges))
		from, to := corners[i], corners[(i+1)%3]
		m.edges = append(m.edges, edge{origin: from, twin: noTwin})

		if opp, ok := m.twinMap[[2]polymesh.VertexID{to, from}]; ok && m.edges[opp].twin == noTwin {
			m.edges[opp].twin = e
			m.edges[e].twin = opp
		}
		if _, ok := m.twinMap[[2]polymesh.VertexID{from, to}]; !ok {
			m.twinMap[[2]polymesh.VertexID{from, to}] = e
		}
	}

	return f
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.edges) / 3
}

// VertexCount returns the number of welded vertices.
func (m *Mesh) VertexCount() int {
	return len(m.points)
}

// Faces lists every face of the mesh.
func (m *Mesh) Faces() []polymesh.FaceID {
	faces := make([]polymesh.FaceID, m.FaceCount())
	for i := range faces {
		faces[i] = polymesh.FaceID(i)
	}
	return faces
}

// FaceVertices returns the three corner vertices of f in rotation order.
func (m *Mesh) FaceVertices(f polymesh.FaceID) [3]polymesh.VertexID {
	e := int(f) * 3
	return [3]polymesh.VertexID{
		m.edges[e].origin,
		m.edges[e+1].origin,
		m.edges[e+2].origin,
	}
}

// OppositeFace returns the face across edge i of f, or polymesh.InvalidFace
// if that edge is a border.
func (m *Mesh) OppositeFace(f polymesh.FaceID, i int) polymesh.FaceID {
	t := m.edges[int(f)*3+i].twin
	if t == noTwin {
		return polymesh.InvalidFace
	}
	return polymesh.FaceID(t / 3)
}

// Point returns the position of v.
func (m *Mesh) Point(v polymesh.VertexID) mgl64.Vec3 {
	return m.points[v]
}
