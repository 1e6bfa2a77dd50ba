// Package hull implements an incremental convex polyhedron kernel on a
// half-edge boundary representation. Points are added one at a time; the
// boundary stays 2-manifold, consistently oriented, and convex after every
// operation. Degenerate prefixes (empty, single point, single edge, flat
// polygon) are valid, distinguishable states.
//
// All operations are synchronous and single-threaded. A polyhedron
// exclusively owns its vertices, edges, and faces; no geometry object is
// ever shared between two instances. Concurrent access to one instance must
// be serialized by the caller.
package hull

import (
	"github.com/chazu/convex/pkg/geom"
)

// Vertex is a corner of the polyhedron. It keeps a back-reference to one
// outgoing half-edge, which the deletion walk uses to destroy each vertex
// exactly once.
type Vertex struct {
	Position geom.Vec

	leaving *HalfEdge
}

func newVertex(position geom.Vec) *Vertex {
	return &Vertex{Position: position}
}

// Leaving returns one half-edge whose origin is this vertex, or nil in
// degenerate states.
func (v *Vertex) Leaving() *HalfEdge {
	return v.leaving
}

// Incident reports whether the vertex lies on the boundary of the given
// face. It walks the outgoing half-edges around the vertex, which requires
// every incident edge to have a twin (face count > 1).
func (v *Vertex) Incident(f *Face) bool {
	h := v.leaving
	if h == nil {
		return false
	}
	cur := h
	for {
		if cur.face == f {
			return true
		}
		twin := cur.prev.Twin()
		if twin == nil || twin == h {
			return false
		}
		cur = twin
	}
}

// HalfEdge is one directed traversal direction of an undirected edge, linked
// to the next and previous half-edges around its face boundary. Traversal
// via Next, Prev, and Twin is O(1).
type HalfEdge struct {
	origin *Vertex
	next   *HalfEdge
	prev   *HalfEdge
	face   *Face
	edge   *Edge
}

// newHalfEdge creates a half-edge leaving origin. The vertex adopts it as
// its leaving reference if it has none yet.
func newHalfEdge(origin *Vertex) *HalfEdge {
	h := &HalfEdge{origin: origin}
	if origin.leaving == nil {
		origin.leaving = h
	}
	return h
}

// Origin returns the vertex the half-edge leaves.
func (h *HalfEdge) Origin() *Vertex { return h.origin }

// Next returns the next half-edge around the face boundary.
func (h *HalfEdge) Next() *HalfEdge { return h.next }

// Prev returns the previous half-edge around the face boundary.
func (h *HalfEdge) Prev() *HalfEdge { return h.prev }

// Face returns the face this half-edge bounds, or nil in degenerate states.
func (h *HalfEdge) Face() *Face { return h.face }

// Destination returns the vertex the half-edge points at.
func (h *HalfEdge) Destination() *Vertex {
	if h.edge != nil && h.edge.FullySpecified() {
		return h.edge.twin(h).origin
	}
	return h.next.origin
}

// Twin returns the opposite half-edge of the same undirected edge, or nil
// while the edge is a boundary (partially specified) edge.
func (h *HalfEdge) Twin() *HalfEdge {
	if h.edge == nil {
		return nil
	}
	if !h.edge.FullySpecified() {
		return nil
	}
	return h.edge.twin(h)
}

// Edge is an undirected edge holding up to two half-edges. It is fully
// specified once both are set; with only the first set it is a boundary
// edge, the transient state between splitting and resealing.
type Edge struct {
	first  *HalfEdge
	second *HalfEdge
}

// newEdge creates a partially specified edge from a single half-edge.
func newEdge(first *HalfEdge) *Edge {
	e := &Edge{first: first}
	first.edge = e
	return e
}

// newFullEdge creates a fully specified edge from two opposite half-edges.
func newFullEdge(first, second *HalfEdge) *Edge {
	e := &Edge{first: first, second: second}
	first.edge = e
	second.edge = e
	return e
}

// First returns the first half-edge.
func (e *Edge) First() *HalfEdge { return e.first }

// Second returns the second half-edge, or nil for a boundary edge.
func (e *Edge) Second() *HalfEdge { return e.second }

// FirstVertex returns the origin of the first half-edge.
func (e *Edge) FirstVertex() *Vertex { return e.first.origin }

// SecondVertex returns the origin of the second half-edge, falling back to
// the first half-edge's destination for boundary edges.
func (e *Edge) SecondVertex() *Vertex {
	if e.second != nil {
		return e.second.origin
	}
	return e.first.next.origin
}

// FullySpecified reports whether both half-edges are set.
func (e *Edge) FullySpecified() bool { return e.second != nil }

func (e *Edge) firstFace() *Face { return e.first.face }

func (e *Edge) secondFace() *Face {
	if e.second == nil {
		return nil
	}
	return e.second.face
}

// flip swaps the roles of the two half-edges.
func (e *Edge) flip() {
	e.first, e.second = e.second, e.first
}

// twin returns the half-edge opposite to h.
func (e *Edge) twin(h *HalfEdge) *HalfEdge {
	switch h {
	case e.first:
		return e.second
	case e.second:
		return e.first
	}
	panic("hull: half-edge does not belong to this edge")
}

// setSecondEdge installs h as the second half-edge of a boundary edge.
func (e *Edge) setSecondEdge(h *HalfEdge) {
	if e.second != nil {
		panic("hull: edge already fully specified")
	}
	e.second = h
	h.edge = e
}

// unsetSecondEdge detaches the second half-edge, demoting the edge to a
// boundary edge. The detached half-edge keeps no reference to the edge, so
// the deletion walk skips it.
func (e *Edge) unsetSecondEdge() {
	if e.second == nil {
		panic("hull: edge has no second half-edge")
	}
	e.second.edge = nil
	e.second = nil
}

// makeSecondEdge flips the edge if necessary so that h becomes the second
// half-edge.
func (e *Edge) makeSecondEdge(h *HalfEdge) {
	if e.first == h {
		e.flip()
	}
	if e.second != h {
		panic("hull: half-edge does not belong to this edge")
	}
}

// setFirstAsLeaving points the first half-edge's origin at it. Before a
// split this moves the leaving references of all seam vertices onto the
// surviving side.
func (e *Edge) setFirstAsLeaving() {
	e.first.origin.leaving = e.first
}
