package hull

import (
	"github.com/chazu/convex/pkg/geom"
)

// Face is a closed cyclic boundary of half-edges together with its
// supporting plane. The plane normal points out of the polyhedron.
type Face struct {
	edge  *HalfEdge
	plane geom.Plane
}

// newFace links the given half-edges into a cycle, adopts them, and derives
// the supporting plane from the first three boundary positions. The boundary
// must wind counter-clockwise when viewed from outside.
func newFace(boundary []*HalfEdge, tol geom.Tolerance) *Face {
	if len(boundary) < 3 {
		panic("hull: face boundary requires at least three half-edges")
	}
	f := &Face{edge: boundary[0]}
	n := len(boundary)
	for i, h := range boundary {
		h.face = f
		h.next = boundary[(i+1)%n]
		h.prev = boundary[(i-1+n)%n]
	}
	plane, ok := geom.PlaneFromPoints(
		boundary[0].origin.Position,
		boundary[1].origin.Position,
		boundary[2].origin.Position,
		tol,
	)
	if !ok {
		panic("hull: face boundary is degenerate")
	}
	f.plane = plane
	return f
}

// Boundary returns one half-edge of the face's boundary cycle. The full
// cycle is reachable via Next.
func (f *Face) Boundary() *HalfEdge { return f.edge }

// Plane returns the supporting plane.
func (f *Face) Plane() geom.Plane { return f.plane }

// VertexCount returns the number of boundary vertices, which equals the
// boundary cycle length.
func (f *Face) VertexCount() int {
	count := 0
	h := f.edge
	for {
		count++
		h = h.next
		if h == f.edge {
			break
		}
	}
	return count
}

// Positions returns the boundary vertex positions in cycle order.
func (f *Face) Positions() []geom.Vec {
	var positions []geom.Vec
	h := f.edge
	for {
		positions = append(positions, h.origin.Position)
		h = h.next
		if h == f.edge {
			break
		}
	}
	return positions
}

// Status classifies a point against the supporting plane.
func (f *Face) Status(p geom.Vec, tol geom.Tolerance) geom.PointStatus {
	return f.plane.Status(p, tol)
}

// halfEdges collects the boundary cycle into a slice.
func (f *Face) halfEdges() []*HalfEdge {
	var hs []*HalfEdge
	h := f.edge
	for {
		hs = append(hs, h)
		h = h.next
		if h == f.edge {
			break
		}
	}
	return hs
}

// flip reverses the face orientation. Every half-edge comes to point the
// other way around the cycle, origins shift accordingly, and the plane is
// inverted. Only meaningful for a single-face (flat polygon) polyhedron,
// where no twins constrain the orientation.
func (f *Face) flip() {
	hs := f.halfEdges()
	n := len(hs)
	origins := make([]*Vertex, n)
	for i, h := range hs {
		origins[i] = h.origin
	}
	for i, h := range hs {
		h.origin = origins[(i+1)%n]
		h.next = hs[(i-1+n)%n]
		h.prev = hs[(i+1)%n]
		h.origin.leaving = h
	}
	f.plane = f.plane.Flipped()
}
