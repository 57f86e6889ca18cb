package polymesh

import "github.com/oesi82/polymesh/kernel"

// Strategy selects the execution strategy of a self-intersection scan.
type Strategy int

const (
	// Sequential scans box pairs on the calling goroutine, in discovery
	// order, with exact early-exit semantics.
	Sequential Strategy = iota
	// Parallel fans the scan out across worker goroutines. Output order is
	// unspecified and the maximum-count cap is enforced approximately.
	Parallel
	// ParallelIfAvailable behaves like Parallel; it exists for call sites
	// ported from environments where threading support is conditional.
	ParallelIfAvailable
)

type options struct {
	points   PointFunc
	geom     kernel.Geometry
	maxCount uint
	limited  bool
	seed     uint64
	strategy Strategy
}

// Option configures a self-intersection scan.
type Option func(*options)

// WithVertexPoints substitutes fn for the mesh's intrinsic vertex positions.
func WithVertexPoints(fn PointFunc) Option {
	return func(o *options) { o.points = fn }
}

// WithGeometry substitutes g for the default kernel.Exact geometry.
func WithGeometry(g kernel.Geometry) Option {
	return func(o *options) { o.geom = g }
}

// WithMaximumCount caps the number of reported pairs at n. A cap of 0 makes
// the scan return immediately with no work performed. Under the Parallel
// strategy the cap is approximate: the reported count may exceed n.
func WithMaximumCount(n uint) Option {
	return func(o *options) {
		o.maxCount = n
		o.limited = true
	}
}

// WithRandomSeed sets the seed of the shuffle that balances parallel subtree
// sizes. The shuffle never changes which pairs are found, only scheduling.
func WithRandomSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithStrategy selects the execution strategy. The default is Sequential.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

func resolveOptions(m FaceMesh, opts []Option) options {
	o := options{
		points:   m.Point,
		geom:     kernel.Exact{},
		strategy: Sequential,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.strategy == ParallelIfAvailable {
		o.strategy = Parallel
	}
	return o
}
