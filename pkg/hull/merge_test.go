package hull

import (
	"testing"

	"github.com/chazu/convex/pkg/geom"
)

func TestMergeDisjointSolids(t *testing.T) {
	p := buildHull(t, cube(8)...)
	other := buildHull(t,
		vec(16, 0, 0), vec(24, 0, 0), vec(16, 8, 0), vec(16, 0, 8),
	)

	p.Merge(other)
	mustHoldInvariants(t, p)

	// The merged hull covers both operands and the gap between them.
	for _, pos := range []geom.Vec{vec(4, 4, 4), vec(17, 1, 1), vec(12, 1, 1)} {
		if !p.Contains(pos) {
			t.Errorf("merged hull should contain %v", pos)
		}
	}

	// The other operand is untouched.
	if other.VertexCount() != 4 {
		t.Errorf("merge modified its operand: vertices = %d", other.VertexCount())
	}
	mustHoldInvariants(t, other)
}

func TestMergeEqualsHullOfUnion(t *testing.T) {
	a := tetrahedron()
	b := []geom.Vec{vec(4, 4, 4), vec(12, 0, 0), vec(0, 12, 0), vec(0, 0, 12)}

	merged := buildHull(t, a...)
	merged.Merge(buildHull(t, b...))
	mustHoldInvariants(t, merged)

	direct := buildHull(t, append(append([]geom.Vec{}, a...), b...)...)

	if merged.VertexCount() != direct.VertexCount() {
		t.Errorf("vertices: merged = %d, direct = %d", merged.VertexCount(), direct.VertexCount())
	}
	for _, v := range direct.Vertices() {
		if !hasVertexAt(merged, v.Position) {
			t.Errorf("merged hull is missing vertex %v", v.Position)
		}
	}
}

func TestMergeDegenerateOperands(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		p := buildHull(t, cube(8)...)
		p.Merge(nil)
		if p.VertexCount() != 8 {
			t.Errorf("merging nil changed the hull: vertices = %d", p.VertexCount())
		}
	})

	t.Run("empty", func(t *testing.T) {
		p := buildHull(t, cube(8)...)
		p.Merge(New())
		if p.VertexCount() != 8 {
			t.Errorf("merging empty changed the hull: vertices = %d", p.VertexCount())
		}
	})

	t.Run("contained", func(t *testing.T) {
		p := buildHull(t, cube(8)...)
		p.Merge(buildHull(t, vec(1, 1, 1), vec(2, 2, 2), vec(3, 1, 2)))
		if p.VertexCount() != 8 {
			t.Errorf("merging a contained hull changed the hull: vertices = %d", p.VertexCount())
		}
	})

	t.Run("into empty", func(t *testing.T) {
		p := New()
		p.Merge(buildHull(t, tetrahedron()...))
		mustHoldInvariants(t, p)
		if !p.IsSolid() || p.VertexCount() != 4 {
			t.Errorf("merging into empty: solid=%v vertices=%d", p.IsSolid(), p.VertexCount())
		}
	})
}
