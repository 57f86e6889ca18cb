// Command selfcheck builds a few small meshes and reports their
// self-intersections with both execution strategies.
package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/oesi82/polymesh"
	"github.com/oesi82/polymesh/halfedge"
)

// tetrahedron is a closed, clean mesh: no self-intersection expected.
func tetrahedron() *halfedge.Mesh {
	m := halfedge.New()
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{1, 0, 0}
	c := mgl64.Vec3{0, 1, 0}
	d := mgl64.Vec3{0, 0, 1}

	m.AddTriangle(a, c, b)
	m.AddTriangle(a, b, d)
	m.AddTriangle(b, c, d)
	m.AddTriangle(c, a, d)
	return m
}

// pierced is a flat sheet with an extra triangle stabbed through it.
func pierced() *halfedge.Mesh {
	m := halfedge.New()
	m.AddTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, 0}, mgl64.Vec3{0, 4, 0})
	m.AddTriangle(mgl64.Vec3{4, 0, 0}, mgl64.Vec3{4, 4, 0}, mgl64.Vec3{0, 4, 0})
	// Crosses the z=0 plane inside the first triangle.
	m.AddTriangle(mgl64.Vec3{1, 1, -1}, mgl64.Vec3{2, 1, 1}, mgl64.Vec3{1, 2, 1})
	return m
}

// withSliver adds a zero-area triangle to an otherwise empty region.
func withSliver() *halfedge.Mesh {
	m := pierced()
	m.AddTriangle(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{11, 0, 0}, mgl64.Vec3{12, 0, 0})
	return m
}

func report(name string, m *halfedge.Mesh) {
	fmt.Printf("=== %s (%d faces, %d vertices)\n", name, m.FaceCount(), m.VertexCount())

	seq := polymesh.SelfIntersections(m, nil)
	fmt.Printf("  sequential: %d intersecting pair(s)\n", len(seq))
	for _, p := range seq {
		if p.F == p.G {
			fmt.Printf("    face %d is degenerate\n", p.F)
		} else {
			fmt.Printf("    faces %d and %d intersect\n", p.F, p.G)
		}
	}

	par := polymesh.SelfIntersections(m, nil,
		polymesh.WithStrategy(polymesh.Parallel),
		polymesh.WithRandomSeed(42),
	)
	fmt.Printf("  parallel:   %d intersecting pair(s)\n", len(par))
	fmt.Printf("  does self-intersect: %v\n\n", polymesh.DoesSelfIntersect(m))
}

func main() {
	report("tetrahedron", tetrahedron())
	report("pierced sheet", pierced())
	report("pierced sheet + sliver", withSliver())
}
