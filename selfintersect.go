package polymesh

import (
	"math/rand"
	"runtime"
	"sync/atomic"

	"github.com/oesi82/polymesh/kernel"
)

// tester decides true geometric intersection for a candidate face pair whose
// boxes overlap. It has no mutable state and is shared across workers.
type tester struct {
	m      FaceMesh
	points PointFunc
	geom   kernel.Geometry
}

// facesIntersect checks a candidate pair for a 'real' intersection, i.e. not
// simply a shared vertex or edge. The feature checks run in fixed priority
// order: shared edge first (true mesh neighbors are the common case and a
// plain triangle test would misreport them), then shared vertex, then the
// full triangle test.
func (t *tester) facesIntersect(h, g FaceID) bool {
	hv := t.m.FaceVertices(h)
	gv := t.m.FaceVertices(g)

	// Shared edge: the pair intersects only if the four corners are coplanar
	// and the two apexes fall on the same side of the shared edge, i.e. the
	// triangles fold flat onto each other instead of forming a proper
	// dihedral. The verdict is final either way.
	for i := 0; i < 3; i++ {
		if t.m.OppositeFace(h, i) != g {
			continue
		}

		a := t.points(hv[i])
		b := t.points(hv[(i+1)%3])
		c := t.points(hv[(i+2)%3])
		d := t.points(t.apexAcross(gv, hv[i], hv[(i+1)%3]))

		return t.geom.Coplanar(a, b, c, d) &&
			t.geom.CoplanarOrientation(a, b, c, d) == kernel.Positive
	}

	// Shared vertex: the faces touch at one corner; they truly intersect
	// only if the edge opposite the shared corner of one face pierces the
	// other face.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if hv[i] != gv[j] {
				continue
			}

			th := t.triangle(hv)
			tg := t.triangle(gv)
			sh := kernel.NewSegment(t.points(hv[(i+1)%3]), t.points(hv[(i+2)%3]))
			sg := kernel.NewSegment(t.points(gv[(j+1)%3]), t.points(gv[(j+2)%3]))

			return t.geom.IntersectsSegment(th, sg) ||
				t.geom.IntersectsSegment(tg, sh)
		}
	}

	// No shared feature: full triangle test.
	return t.geom.Intersects(t.triangle(hv), t.triangle(gv))
}

func (t *tester) triangle(v [3]VertexID) kernel.Triangle {
	return kernel.NewTriangle(t.points(v[0]), t.points(v[1]), t.points(v[2]))
}

// apexAcross returns the corner of gv that is not an endpoint of the shared
// edge (a, b).
func (t *tester) apexAcross(gv [3]VertexID, a, b VertexID) VertexID {
	for _, v := range gv {
		if v != a && v != b {
			return v
		}
	}
	return gv[0] // unreachable on a manifold triangle mesh
}

// SelfIntersections appends to out every unordered pair of distinct
// non-adjacent faces of m whose triangles intersect, plus a self-pair (f, f)
// for every degenerate face f, and returns the extended slice.
//
// Degenerate self-pairs are emitted before any geometric pair, and are the
// only pairs in which degenerate faces appear: a degenerate face's
// intersections with other faces are not detected.
//
// m must be a pure-triangle mesh.
func SelfIntersections(m FaceMesh, out []FacePair, opts ...Option) []FacePair {
	return SelfIntersectionsInRange(m.Faces(), m, out, opts...)
}

// SelfIntersectionsInRange restricts SelfIntersections to the given faces:
// only pairs with both faces in the range are considered.
func SelfIntersectionsInRange(faces []FaceID, m FaceMesh, out []FacePair, opts ...Option) []FacePair {
	o := resolveOptions(m, opts)
	out, _ = scan(faces, m, out, o, false)
	return out
}

// DoesSelfIntersect reports whether m has at least one self-intersection,
// including degenerate faces. It stops at the first intersection found.
func DoesSelfIntersect(m FaceMesh, opts ...Option) bool {
	return DoesSelfIntersectInRange(m.Faces(), m, opts...)
}

// DoesSelfIntersectInRange restricts DoesSelfIntersect to the given faces.
func DoesSelfIntersectInRange(faces []FaceID, m FaceMesh, opts ...Option) bool {
	o := resolveOptions(m, opts)
	_, found := scan(faces, m, nil, o, true)
	return found
}

// scan is the shared driver behind both public operations. In existence mode
// out stays untouched and the second result reports whether any intersection
// was found; in collection mode pairs are appended to out, subject to the
// maximum-count cap.
func scan(faces []FaceID, m FaceMesh, out []FacePair, o options, existsOnly bool) ([]FacePair, bool) {
	if o.limited && o.maxCount == 0 {
		return out, false
	}

	t := &tester{m: m, points: o.points, geom: o.geom}

	// Degeneracy pass: cheap, always sequential, runs before any spatial
	// structure exists. Degenerate faces never receive a box.
	count := uint(0)
	boxes := make([]Box, 0, len(faces))
	for _, f := range faces {
		v := m.FaceVertices(f)
		p, q, r := o.points(v[0]), o.points(v[1]), o.points(v[2])

		if o.geom.Collinear(p, q, r) {
			if existsOnly {
				return out, true
			}
			out = append(out, FacePair{f, f})
			count++
			if o.limited && count == o.maxCount {
				return out, false
			}
			continue
		}

		boxes = append(boxes, Box{
			AABB: kernel.BoxOf(p, q, r),
			Face: f,
		})
	}

	ptrs := make([]*Box, len(boxes))
	for i := range boxes {
		ptrs[i] = &boxes[i]
	}

	if o.strategy == Parallel {
		return scanParallel(ptrs, t, o, existsOnly, count, out)
	}
	return scanSequential(ptrs, t, o, existsOnly, count, out)
}

// scanSequential hands the boxes in original order to the pair enumeration;
// pairs reach out in discovery order and the cap is exact.
func scanSequential(ptrs []*Box, t *tester, o options, existsOnly bool, count uint, out []FacePair) ([]FacePair, bool) {
	found := false

	cb := func(a, b *Box) error {
		if !t.facesIntersect(a.Face, b.Face) {
			return nil
		}
		if existsOnly {
			found = true
			return errStopTraversal
		}
		out = append(out, FacePair{a.Face, b.Face})
		count++
		if o.limited && count == o.maxCount {
			return errStopTraversal
		}
		return nil
	}

	// The only possible error is the internal stop sentinel; it never
	// escapes past this point.
	_ = boxSelfIntersect(ptrs, defaultCutoff, cb)

	return out, found
}

// scanParallel shuffles the box pointers to balance subtree sizes, fans the
// leaf scans out across workers, and drains the concurrent sink sequentially
// afterwards. The cap is enforced through a shared atomic counter, so the
// final count may exceed the cap; it never falls short of it while true
// intersections remain.
func scanParallel(ptrs []*Box, t *tester, o options, existsOnly bool, count uint, out []FacePair) ([]FacePair, bool) {
	rng := rand.New(rand.NewSource(int64(o.seed)))
	rng.Shuffle(len(ptrs), func(i, j int) {
		ptrs[i], ptrs[j] = ptrs[j], ptrs[i]
	})

	workers := max(1, runtime.GOMAXPROCS(0))

	var (
		found   atomic.Bool
		counter atomic.Uint64
	)
	counter.Store(uint64(count))

	pairs := make(chan FacePair, workers*2)
	done := make(chan struct{})
	var collected []FacePair
	go func() {
		defer close(done)
		for p := range pairs {
			collected = append(collected, p)
		}
	}()

	cb := func(a, b *Box) error {
		if !t.facesIntersect(a.Face, b.Face) {
			return nil
		}
		if existsOnly {
			found.Store(true)
			return errStopTraversal
		}
		pairs <- FacePair{F: a.Face, G: b.Face}
		if o.limited && counter.Add(1) >= uint64(o.maxCount) {
			return errStopTraversal
		}
		return nil
	}

	boxSelfIntersectParallel(ptrs, defaultCutoff, workers, cb)
	close(pairs)
	<-done

	return append(out, collected...), found.Load()
}
