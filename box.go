package polymesh

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/oesi82/polymesh/kernel"
)

// Box couples the bounding box of a face with the face itself. Boxes are
// built once per scan and are read-only afterwards, so they can be shared
// freely across workers.
type Box struct {
	AABB kernel.AABB
	Face FaceID
}

// errStopTraversal cancels a box traversal from inside a callback. It is the
// package-internal replacement for exception-based unwinding: it is raised by
// the mode logic (existence test, cap reached) and must be swallowed before
// any public function returns.
var errStopTraversal = errors.New("polymesh: stop traversal")

// boxCallback receives every pair of boxes with overlapping extents, exactly
// once per unordered pair. Returning a non-nil error stops the traversal.
type boxCallback func(a, b *Box) error

// defaultCutoff is the subtree size below which box pairs are scanned by a
// single worker rather than split further.
const defaultCutoff = 2000

// ============================================================================
// Box tree
// ============================================================================

// boxNode is a node of the recursive AABB split over the box array. Leaves
// hold at most the cutoff number of boxes, sorted by their minimum X so that
// leaf scans can sweep instead of testing all pairs.
type boxNode struct {
	bounds      kernel.AABB
	boxes       []*Box // leaf only
	left, right *boxNode
}

func (n *boxNode) isLeaf() bool {
	return n.left == nil
}

func buildBoxTree(boxes []*Box, cutoff int) *boxNode {
	if len(boxes) == 0 {
		return nil
	}

	bounds := boxes[0].AABB
	for _, b := range boxes[1:] {
		bounds = bounds.Union(b.AABB)
	}

	if len(boxes) <= cutoff {
		sort.Slice(boxes, func(i, j int) bool {
			return boxes[i].AABB.Min.X() < boxes[j].AABB.Min.X()
		})
		return &boxNode{bounds: bounds, boxes: boxes}
	}

	// Median split on box centers along the widest axis of the node.
	axis := bounds.LongestAxis()
	sort.Slice(boxes, func(i, j int) bool {
		return boxes[i].AABB.Center()[axis] < boxes[j].AABB.Center()[axis]
	})
	mid := len(boxes) / 2

	return &boxNode{
		bounds: bounds,
		left:   buildBoxTree(boxes[:mid], cutoff),
		right:  buildBoxTree(boxes[mid:], cutoff),
	}
}

// leafSelfScan reports overlapping pairs within one leaf. The leaf is sorted
// by minimum X, so the inner loop stops at the first box starting past the
// current box's extent.
func leafSelfScan(boxes []*Box, cb boxCallback) error {
	for i := 0; i < len(boxes); i++ {
		a := boxes[i]
		for j := i + 1; j < len(boxes) && boxes[j].AABB.Min.X() <= a.AABB.Max.X(); j++ {
			if a.AABB.Overlaps(boxes[j].AABB) {
				if err := cb(a, boxes[j]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// leafCrossScan reports overlapping pairs between two disjoint leaves.
func leafCrossScan(as, bs []*Box, cb boxCallback) error {
	for _, a := range as {
		for _, b := range bs {
			if b.AABB.Min.X() > a.AABB.Max.X() {
				break
			}
			if a.AABB.Overlaps(b.AABB) {
				if err := cb(a, b); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// selfPairs enumerates every overlapping pair within the subtree, each
// unordered pair exactly once: the leaves partition the boxes, so a pair is
// seen either inside one leaf or across exactly one leaf pair.
func (n *boxNode) selfPairs(cb boxCallback) error {
	if n.isLeaf() {
		return leafSelfScan(n.boxes, cb)
	}
	if err := n.left.selfPairs(cb); err != nil {
		return err
	}
	if err := n.right.selfPairs(cb); err != nil {
		return err
	}
	return crossPairs(n.left, n.right, cb)
}

// crossPairs enumerates overlapping pairs with one box in each subtree.
func crossPairs(a, b *boxNode, cb boxCallback) error {
	if !a.bounds.Overlaps(b.bounds) {
		return nil
	}

	switch {
	case a.isLeaf() && b.isLeaf():
		return leafCrossScan(a.boxes, b.boxes, cb)
	case a.isLeaf():
		if err := crossPairs(a, b.left, cb); err != nil {
			return err
		}
		return crossPairs(a, b.right, cb)
	case b.isLeaf():
		if err := crossPairs(a.left, b, cb); err != nil {
			return err
		}
		return crossPairs(a.right, b, cb)
	default:
		if err := crossPairs(a.left, b.left, cb); err != nil {
			return err
		}
		if err := crossPairs(a.left, b.right, cb); err != nil {
			return err
		}
		if err := crossPairs(a.right, b.left, cb); err != nil {
			return err
		}
		return crossPairs(a.right, b.right, cb)
	}
}

// boxSelfIntersect invokes cb for every unordered pair of boxes with
// overlapping extents. A non-nil error from cb stops the traversal at exactly
// the triggering pair and is returned.
func boxSelfIntersect(boxes []*Box, cutoff int, cb boxCallback) error {
	root := buildBoxTree(boxes, cutoff)
	if root == nil {
		return nil
	}
	return root.selfPairs(cb)
}

// ============================================================================
// Parallel traversal
// ============================================================================

// boxJob is one unit of parallel work: a leaf self scan (b == nil) or a
// leaf/leaf cross scan.
type boxJob struct {
	a, b *boxNode
}

func collectSelfJobs(n *boxNode, jobs []boxJob) []boxJob {
	if n.isLeaf() {
		return append(jobs, boxJob{a: n})
	}
	jobs = collectSelfJobs(n.left, jobs)
	jobs = collectSelfJobs(n.right, jobs)
	return collectCrossJobs(n.left, n.right, jobs)
}

func collectCrossJobs(a, b *boxNode, jobs []boxJob) []boxJob {
	if !a.bounds.Overlaps(b.bounds) {
		return jobs
	}

	switch {
	case a.isLeaf() && b.isLeaf():
		return append(jobs, boxJob{a: a, b: b})
	case a.isLeaf():
		jobs = collectCrossJobs(a, b.left, jobs)
		return collectCrossJobs(a, b.right, jobs)
	case b.isLeaf():
		jobs = collectCrossJobs(a.left, b, jobs)
		return collectCrossJobs(a.right, b, jobs)
	default:
		jobs = collectCrossJobs(a.left, b.left, jobs)
		jobs = collectCrossJobs(a.left, b.right, jobs)
		jobs = collectCrossJobs(a.right, b.left, jobs)
		return collectCrossJobs(a.right, b.right, jobs)
	}
}

// boxSelfIntersectParallel runs the same enumeration with the cutoff-sized
// scans spread across worker goroutines. cb must be safe for concurrent use.
// Cancellation is cooperative: once any cb invocation returns a non-nil
// error, no new scan starts and running scans abort at their next pair, but
// pairs already in flight on other workers may still be delivered.
func boxSelfIntersectParallel(boxes []*Box, cutoff, workers int, cb boxCallback) {
	root := buildBoxTree(boxes, cutoff)
	if root == nil {
		return
	}

	jobs := collectSelfJobs(root, nil)

	var stop atomic.Bool
	guarded := func(a, b *Box) error {
		if stop.Load() {
			return errStopTraversal
		}
		return cb(a, b)
	}

	var wg sync.WaitGroup
	chunk := (len(jobs) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if stop.Load() {
					return
				}
				job := jobs[i]
				var err error
				if job.b == nil {
					err = leafSelfScan(job.a.boxes, guarded)
				} else {
					err = leafCrossScan(job.a.boxes, job.b.boxes, guarded)
				}
				if err != nil {
					stop.Store(true)
					return
				}
			}
		}(w*chunk, min((w+1)*chunk, len(jobs)))
	}
	wg.Wait()
}
