package hull

import (
	"github.com/chazu/convex/pkg/geom"
)

// Polyhedron is a convex solid (or one of its degenerate prefixes)
// maintained incrementally as points are added and removed. It exclusively
// owns its vertices, edges, and faces and caches its axis-aligned bounding
// box.
type Polyhedron struct {
	vertices []*Vertex
	edges    []*Edge
	faces    []*Face

	bounds geom.Bounds
	tol    geom.Tolerance
	cb     Callback
}

// New creates an empty polyhedron with the default tolerance policy and a
// no-op callback.
func New() *Polyhedron {
	return NewWithCallback(nil)
}

// NewWithCallback creates an empty polyhedron that reports face creation and
// deletion to cb. A nil cb installs the no-op callback.
func NewWithCallback(cb Callback) *Polyhedron {
	if cb == nil {
		cb = nopCallback{}
	}
	return &Polyhedron{tol: geom.DefaultTolerance, cb: cb}
}

// SetTolerance replaces the plane-classification tolerance policy. It must
// be called before any points are added.
func (p *Polyhedron) SetTolerance(tol geom.Tolerance) {
	if !p.Empty() {
		panic("hull: tolerance must be set before adding points")
	}
	p.tol = tol
}

// Tolerance returns the active tolerance policy.
func (p *Polyhedron) Tolerance() geom.Tolerance { return p.tol }

// --- Queries ---

// VertexCount returns the number of vertices.
func (p *Polyhedron) VertexCount() int { return len(p.vertices) }

// EdgeCount returns the number of edges.
func (p *Polyhedron) EdgeCount() int { return len(p.edges) }

// FaceCount returns the number of faces.
func (p *Polyhedron) FaceCount() int { return len(p.faces) }

// Vertices returns the vertex list. The slice must not be modified.
func (p *Polyhedron) Vertices() []*Vertex { return p.vertices }

// Edges returns the edge list. The slice must not be modified.
func (p *Polyhedron) Edges() []*Edge { return p.edges }

// Faces returns the face list. The slice must not be modified.
func (p *Polyhedron) Faces() []*Face { return p.faces }

// Bounds returns the cached axis-aligned bounding box. It is the zero
// Bounds for an empty polyhedron.
func (p *Polyhedron) Bounds() geom.Bounds { return p.bounds }

// Empty reports whether the polyhedron has no geometry.
func (p *Polyhedron) Empty() bool { return len(p.vertices) == 0 }

// IsPoint reports the single-point degenerate state.
func (p *Polyhedron) IsPoint() bool { return len(p.vertices) == 1 }

// IsEdge reports the single-edge degenerate state.
func (p *Polyhedron) IsEdge() bool { return len(p.vertices) == 2 }

// IsPolygon reports the flat-polygon degenerate state.
func (p *Polyhedron) IsPolygon() bool { return len(p.faces) == 1 }

// IsSolid reports whether the polyhedron is a true solid with volume.
func (p *Polyhedron) IsSolid() bool { return len(p.faces) > 1 }

// FindVertex returns the vertex at the given position within tolerance, or
// nil if there is none.
func (p *Polyhedron) FindVertex(position geom.Vec) *Vertex {
	for _, v := range p.vertices {
		if v.Position.Equals(position, float64(p.tol)) {
			return v
		}
	}
	return nil
}

// Contains reports whether the point lies inside or on the boundary of the
// polyhedron, in whatever state it currently is.
func (p *Polyhedron) Contains(point geom.Vec) bool {
	switch {
	case p.Empty():
		return false
	case p.IsPoint():
		return p.vertices[0].Position.Equals(point, float64(p.tol))
	case p.IsEdge():
		a := p.vertices[0].Position
		b := p.vertices[1].Position
		return geom.LinearlyDependent(a, b, point, p.tol) &&
			geom.SegmentContains(a, b, point, p.tol)
	case p.IsPolygon():
		f := p.faces[0]
		return f.plane.Status(point, p.tol) == geom.Inside &&
			geom.PolygonContains(f.Positions(), f.plane.Normal, point, p.tol)
	default:
		for _, f := range p.faces {
			if f.plane.Status(point, p.tol) == geom.Above {
				return false
			}
		}
		return true
	}
}

// --- Internal collection management ---

// appendFace adopts a newly built face and reports its creation.
func (p *Polyhedron) appendFace(f *Face) {
	p.faces = append(p.faces, f)
	p.cb.FaceWasCreated(f)
}

// makeFace builds a face from the boundary and adopts it.
func (p *Polyhedron) makeFace(boundary []*HalfEdge) *Face {
	f := newFace(boundary, p.tol)
	p.appendFace(f)
	return f
}

// dropFace reports the face's imminent deletion and detaches it.
func (p *Polyhedron) dropFace(f *Face) {
	p.cb.FaceWillBeDeleted(f)
	for i, g := range p.faces {
		if g == f {
			p.faces = append(p.faces[:i], p.faces[i+1:]...)
			return
		}
	}
	panic("hull: face does not belong to this polyhedron")
}

// detachEdge removes the edge from the edge list.
func (p *Polyhedron) detachEdge(e *Edge) {
	for i, g := range p.edges {
		if g == e {
			p.edges = append(p.edges[:i], p.edges[i+1:]...)
			return
		}
	}
	panic("hull: edge does not belong to this polyhedron")
}

// detachVertex removes the vertex from the vertex list.
func (p *Polyhedron) detachVertex(v *Vertex) {
	for i, g := range p.vertices {
		if g == v {
			p.vertices = append(p.vertices[:i], p.vertices[i+1:]...)
			return
		}
	}
	panic("hull: vertex does not belong to this polyhedron")
}

// clear destroys all geometry, reporting each face deletion, and resets the
// bounding box. The tolerance policy and callback survive.
func (p *Polyhedron) clear() {
	for _, f := range p.faces {
		p.cb.FaceWillBeDeleted(f)
	}
	p.vertices = nil
	p.edges = nil
	p.faces = nil
	p.bounds = geom.Bounds{}
}

// updateBounds recomputes the bounding box from scratch over the surviving
// vertices. Needed after removals, where the removed vertex may have defined
// a bounding extremum.
func (p *Polyhedron) updateBounds() {
	positions := make([]geom.Vec, len(p.vertices))
	for i, v := range p.vertices {
		positions[i] = v.Position
	}
	p.bounds = geom.BoundsOf(positions)
}
