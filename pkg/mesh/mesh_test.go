package mesh

import (
	"math"
	"testing"

	"github.com/chazu/convex/pkg/geom"
	"github.com/chazu/convex/pkg/hull"
)

func tetra(t *testing.T) *hull.Polyhedron {
	t.Helper()
	p := hull.New()
	p.AddPoints([]geom.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 8, Y: 0, Z: 0}, {X: 0, Y: 8, Z: 0}, {X: 0, Y: 0, Z: 8},
	})
	return p
}

func box(t *testing.T) *hull.Polyhedron {
	t.Helper()
	p := hull.New()
	p.AddPoints([]geom.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 8, Y: 0, Z: 0}, {X: 8, Y: 8, Z: 0}, {X: 0, Y: 8, Z: 0},
		{X: 0, Y: 0, Z: 8}, {X: 8, Y: 0, Z: 8}, {X: 8, Y: 8, Z: 8}, {X: 0, Y: 8, Z: 8},
	})
	return p
}

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		indices  []uint32
		wantVerts, wantTris int
	}{
		{"empty", nil, nil, 0, 0},
		{"one triangle", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2}, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices, Indices: tt.indices}
			if got := m.VertexCount(); got != tt.wantVerts {
				t.Errorf("VertexCount() = %d, want %d", got, tt.wantVerts)
			}
			if got := m.TriangleCount(); got != tt.wantTris {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.wantTris)
			}
		})
	}
}

func TestTrianglesFanTriangulation(t *testing.T) {
	t.Run("tetrahedron", func(t *testing.T) {
		// Four triangular faces, one triangle each.
		if got := len(Triangles(tetra(t))); got != 4 {
			t.Errorf("triangles = %d, want 4", got)
		}
	})
	t.Run("box", func(t *testing.T) {
		// Six quad faces, two triangles each.
		if got := len(Triangles(box(t))); got != 12 {
			t.Errorf("triangles = %d, want 12", got)
		}
	})
	t.Run("degenerate", func(t *testing.T) {
		p := hull.New()
		p.AddPoint(geom.Vec{X: 1})
		if got := Triangles(p); got != nil {
			t.Errorf("point polyhedron yielded %d triangles, want none", len(got))
		}
	})
}

func TestBuildFlatShadedMesh(t *testing.T) {
	m := Build(tetra(t))

	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}
	if m.TriangleCount() != 4 {
		t.Errorf("TriangleCount() = %d, want 4", m.TriangleCount())
	}
	// Flat shading duplicates vertices per triangle.
	if m.VertexCount() != 12 {
		t.Errorf("VertexCount() = %d, want 12", m.VertexCount())
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("normals length %d != vertices length %d", len(m.Normals), len(m.Vertices))
	}

	// Every normal is unit length.
	for i := 0; i+2 < len(m.Normals); i += 3 {
		n := math.Sqrt(float64(
			m.Normals[i]*m.Normals[i] +
				m.Normals[i+1]*m.Normals[i+1] +
				m.Normals[i+2]*m.Normals[i+2]))
		if math.Abs(n-1) > 1e-5 {
			t.Fatalf("normal %d has length %g, want 1", i/3, n)
		}
	}
}

func TestBuildNormalsPointOutward(t *testing.T) {
	p := box(t)
	m := Build(p)

	center := [3]float32{4, 4, 4}
	for i := 0; i < m.VertexCount(); i++ {
		// The vector from the box center to the vertex must not oppose the
		// vertex normal.
		dot := float32(0)
		for j := 0; j < 3; j++ {
			dot += (m.Vertices[i*3+j] - center[j]) * m.Normals[i*3+j]
		}
		if dot <= 0 {
			t.Fatalf("normal of vertex %d points inward (dot = %g)", i, dot)
		}
	}
}

func TestCacheRebuildsOnFaceChanges(t *testing.T) {
	cache := NewCache()
	if !cache.Dirty() {
		t.Fatal("new cache should start dirty")
	}

	p := hull.NewWithCallback(cache)
	p.AddPoints([]geom.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 8, Y: 0, Z: 0}, {X: 0, Y: 8, Z: 0}, {X: 0, Y: 0, Z: 8},
	})

	m := cache.Mesh(p)
	if cache.Dirty() {
		t.Error("cache should be clean after a rebuild")
	}
	if m.TriangleCount() != 4 {
		t.Errorf("TriangleCount() = %d, want 4", m.TriangleCount())
	}

	// Unchanged polyhedron: same mesh, no rebuild.
	if cache.Mesh(p) != m {
		t.Error("clean cache should return the same mesh instance")
	}

	// A mutation through the kernel flips the dirty flag.
	p.AddPoint(geom.Vec{X: 8, Y: 8, Z: 8})
	if !cache.Dirty() {
		t.Fatal("face changes should mark the cache dirty")
	}
	m2 := cache.Mesh(p)
	if m2 == m {
		t.Error("dirty cache should rebuild the mesh")
	}
	if m2.TriangleCount() == m.TriangleCount() {
		t.Log("triangle count unchanged after growth; counts are shape-dependent")
	}
}

func TestCacheIgnoresNoOpPoints(t *testing.T) {
	cache := NewCache()
	p := hull.NewWithCallback(cache)
	p.AddPoints([]geom.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 8, Y: 0, Z: 0}, {X: 0, Y: 8, Z: 0}, {X: 0, Y: 0, Z: 8},
	})
	cache.Mesh(p)

	p.AddPoint(geom.Vec{X: 1, Y: 1, Z: 1})
	if cache.Dirty() {
		t.Error("an interior point changes no faces and must not dirty the cache")
	}
}
