package kernel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestCollinear(t *testing.T) {
	tests := []struct {
		name     string
		p, q, r  mgl64.Vec3
		expected bool
	}{
		{
			name: "points on the X axis",
			p:    mgl64.Vec3{0, 0, 0}, q: mgl64.Vec3{1, 0, 0}, r: mgl64.Vec3{5, 0, 0},
			expected: true,
		},
		{
			name: "points on a diagonal line",
			p:    mgl64.Vec3{1, 1, 1}, q: mgl64.Vec3{2, 2, 2}, r: mgl64.Vec3{-4, -4, -4},
			expected: true,
		},
		{
			name: "two coincident points",
			p:    mgl64.Vec3{1, 2, 3}, q: mgl64.Vec3{1, 2, 3}, r: mgl64.Vec3{7, 0, -1},
			expected: true,
		},
		{
			name: "proper triangle",
			p:    mgl64.Vec3{0, 0, 0}, q: mgl64.Vec3{1, 0, 0}, r: mgl64.Vec3{0, 1, 0},
			expected: false,
		},
		{
			name: "almost collinear but clearly off",
			p:    mgl64.Vec3{0, 0, 0}, q: mgl64.Vec3{1, 0, 0}, r: mgl64.Vec3{2, 0.01, 0},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Collinear(tt.p, tt.q, tt.r))
		})
	}
}

func TestCoplanar(t *testing.T) {
	tests := []struct {
		name       string
		p, q, r, s mgl64.Vec3
		expected   bool
	}{
		{
			name: "four points in the XY plane",
			p:    mgl64.Vec3{0, 0, 0}, q: mgl64.Vec3{1, 0, 0},
			r: mgl64.Vec3{0, 1, 0}, s: mgl64.Vec3{3, -2, 0},
			expected: true,
		},
		{
			name: "four points in a tilted plane",
			p:    mgl64.Vec3{0, 0, 0}, q: mgl64.Vec3{1, 0, 1},
			r: mgl64.Vec3{0, 1, 1}, s: mgl64.Vec3{1, 1, 2},
			expected: true,
		},
		{
			name: "fourth point off the plane",
			p:    mgl64.Vec3{0, 0, 0}, q: mgl64.Vec3{1, 0, 0},
			r: mgl64.Vec3{0, 1, 0}, s: mgl64.Vec3{0, 0, 1},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Coplanar(tt.p, tt.q, tt.r, tt.s))
		})
	}
}

func TestCoplanarOrientation(t *testing.T) {
	// Line pq is the X axis; r sits at y=1.
	p := mgl64.Vec3{0, 0, 0}
	q := mgl64.Vec3{1, 0, 0}
	r := mgl64.Vec3{0.5, 1, 0}

	tests := []struct {
		name     string
		s        mgl64.Vec3
		expected Orientation
	}{
		{"same side as r", mgl64.Vec3{0.5, 2, 0}, Positive},
		{"same side, far along the line", mgl64.Vec3{40, 0.1, 0}, Positive},
		{"opposite side of pq", mgl64.Vec3{0.5, -1, 0}, Negative},
		{"on the line pq", mgl64.Vec3{7, 0, 0}, Zero},
		{"coincident with p", mgl64.Vec3{0, 0, 0}, Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, CoplanarOrientation(p, q, r, tt.s))
		})
	}
}

func TestCoplanarOrientationTiltedPlane(t *testing.T) {
	// Same configuration rotated out of the coordinate planes: the predicate
	// must not depend on an axis-aligned embedding.
	p := mgl64.Vec3{0, 0, 0}
	q := mgl64.Vec3{1, 1, 0}
	r := mgl64.Vec3{0, 1, 1}
	sameSide := r.Mul(2.5)
	otherSide := r.Mul(-1)

	require.Equal(t, Positive, CoplanarOrientation(p, q, r, sameSide))
	require.Equal(t, Negative, CoplanarOrientation(p, q, r, otherSide))
	require.Equal(t, Zero, CoplanarOrientation(p, q, r, q.Mul(3)))
}
