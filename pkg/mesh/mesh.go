// Package mesh turns finished hull faces into triangle meshes suitable for
// rendering. It is the consumer side of the kernel's face callbacks: the
// kernel never depends on it.
package mesh

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/convex/pkg/hull"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // which brush this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Triangles fan-triangulates every face of the polyhedron. Faces are convex,
// so the fan around the first boundary vertex is always valid. Degenerate
// polyhedra without faces yield nil.
func Triangles(p *hull.Polyhedron) []*sdf.Triangle3 {
	var triangles []*sdf.Triangle3
	for _, f := range p.Faces() {
		positions := f.Positions()
		for i := 1; i < len(positions)-1; i++ {
			triangles = append(triangles, &sdf.Triangle3{
				positions[0], positions[i], positions[i+1],
			})
		}
	}
	return triangles
}

// SaveSTL writes the polyhedron's triangulation to an STL file.
func SaveSTL(path string, p *hull.Polyhedron) error {
	return render.SaveSTL(path, Triangles(p))
}

// Build produces a flat-shaded mesh from the polyhedron. Each triangle gets
// its own three vertices carrying the face normal, so faces stay visually
// flat.
func Build(p *hull.Polyhedron) *Mesh {
	m := &Mesh{}

	for _, f := range p.Faces() {
		n := f.Plane().Normal
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		positions := f.Positions()
		for i := 1; i < len(positions)-1; i++ {
			for _, v := range [3]int{0, i, i + 1} {
				pos := positions[v]
				idx := uint32(len(m.Vertices) / 3)
				m.Vertices = append(m.Vertices, float32(pos.X), float32(pos.Y), float32(pos.Z))
				m.Normals = append(m.Normals, nx, ny, nz)
				m.Indices = append(m.Indices, idx)
			}
		}
	}
	return m
}
