package polymesh_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/oesi82/polymesh"
	"github.com/oesi82/polymesh/halfedge"
	"github.com/oesi82/polymesh/kernel"
)

func tetrahedron() *halfedge.Mesh {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{1, 0, 0}
	c := mgl64.Vec3{0, 1, 0}
	d := mgl64.Vec3{0, 0, 1}

	m := halfedge.New()
	m.AddTriangle(a, c, b)
	m.AddTriangle(a, b, d)
	m.AddTriangle(b, c, d)
	m.AddTriangle(c, a, d)
	return m
}

func TestTetrahedronIsCleanAcrossStrategies(t *testing.T) {
	m := tetrahedron()

	// Every face pair of a tetrahedron shares an edge or a vertex, and no
	// pair folds flat, so the mesh is self-intersection free.
	require.Empty(t, polymesh.SelfIntersections(m, nil))
	require.Empty(t, polymesh.SelfIntersections(m, nil,
		polymesh.WithStrategy(polymesh.Parallel)))
	require.False(t, polymesh.DoesSelfIntersect(m))
}

func TestPiercedSheet(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{2, 0, 0}
	c := mgl64.Vec3{2, 2, 0}
	d := mgl64.Vec3{0, 2, 0}

	m := halfedge.New()
	f0 := m.AddTriangle(a, b, c)
	f1 := m.AddTriangle(a, c, d)
	pierce := m.AddTriangle(
		mgl64.Vec3{0.5, 0.5, -1},
		mgl64.Vec3{1.5, 0.5, 1},
		mgl64.Vec3{0.5, 1.5, 1},
	)

	want := map[polymesh.FacePair]bool{
		{F: f0, G: pierce}: true,
		{F: f1, G: pierce}: true,
	}

	require.Equal(t, want, normalizedSet(polymesh.SelfIntersections(m, nil)))
	require.Equal(t, want, normalizedSet(polymesh.SelfIntersections(m, nil,
		polymesh.WithStrategy(polymesh.Parallel), polymesh.WithRandomSeed(42))))
	require.True(t, polymesh.DoesSelfIntersect(m))
}

func TestWithVertexPointsOverridesMeshPositions(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{1, 0, 0}
	c := mgl64.Vec3{0, 1, 0}
	d := mgl64.Vec3{0, 0, 1}

	m := halfedge.New()
	f0 := m.AddTriangle(a, c, b)
	f1 := m.AddTriangle(a, b, d)
	f2 := m.AddTriangle(b, c, d)
	f3 := m.AddTriangle(c, a, d)

	// Projecting onto z=0 collapses the apex d onto a. The two faces holding
	// both a and d turn degenerate; the remaining two flatten onto the same
	// triangle and fold onto each other across their shared edge.
	flatten := func(v polymesh.VertexID) mgl64.Vec3 {
		p := m.Point(v)
		return mgl64.Vec3{p.X(), p.Y(), 0}
	}

	require.False(t, polymesh.DoesSelfIntersect(m))
	require.True(t, polymesh.DoesSelfIntersect(m, polymesh.WithVertexPoints(flatten)))

	pairs := polymesh.SelfIntersections(m, nil, polymesh.WithVertexPoints(flatten))
	require.Equal(t, map[polymesh.FacePair]bool{
		{F: f1, G: f1}: true,
		{F: f3, G: f3}: true,
		{F: f0, G: f2}: true,
	}, normalizedSet(pairs))
}

// countingGeometry wraps the exact kernel and records how often the
// degeneracy predicate runs.
type countingGeometry struct {
	kernel.Exact
	collinearCalls *int
}

func (g countingGeometry) Collinear(p, q, r mgl64.Vec3) bool {
	*g.collinearCalls++
	return g.Exact.Collinear(p, q, r)
}

func TestWithGeometrySubstitutesKernel(t *testing.T) {
	m := tetrahedron()

	calls := 0
	g := countingGeometry{collinearCalls: &calls}

	require.False(t, polymesh.DoesSelfIntersect(m, polymesh.WithGeometry(g)))
	require.Equal(t, m.FaceCount(), calls, "every face passes through the degeneracy check")
}

func normalizedSet(pairs []polymesh.FacePair) map[polymesh.FacePair]bool {
	set := make(map[polymesh.FacePair]bool, len(pairs))
	for _, p := range pairs {
		if p.G < p.F {
			p.F, p.G = p.G, p.F
		}
		set[p] = true
	}
	return set
}
