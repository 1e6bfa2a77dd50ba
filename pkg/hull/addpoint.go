package hull

import (
	"github.com/chazu/convex/pkg/geom"
)

// AddPoint grows the polyhedron to contain the given position. It never
// fails: duplicate, collinear-contained, and interior points leave the
// polyhedron unchanged. Returns true iff the shape actually changed, so
// callers know whether derived state needs invalidation.
func (p *Polyhedron) AddPoint(position geom.Vec) bool {
	changed := false
	switch p.VertexCount() {
	case 0:
		p.addFirstPoint(position)
		p.bounds = geom.BoundsAt(position)
		changed = true
	case 1:
		changed = p.addSecondPoint(position)
	case 2:
		changed = p.addThirdPoint(position)
	default:
		changed = p.addFurtherPoint(position)
	}
	if changed {
		p.bounds = p.bounds.Merge(position)
	}
	return changed
}

// AddPoints applies AddPoint to every position in order. The final hull
// shape is a function of the point set, not the insertion order. Returns
// true iff any point changed the shape.
func (p *Polyhedron) AddPoints(positions []geom.Vec) bool {
	changed := false
	for _, pos := range positions {
		if p.AddPoint(pos) {
			changed = true
		}
	}
	return changed
}

// RemoveVertex removes the given vertex and every incident face, then
// reseals the hole with cap faces over the remaining vertices. The vertex
// must belong to this polyhedron (by identity) and the polyhedron must be a
// solid; anything else is a programming error.
func (p *Polyhedron) RemoveVertex(v *Vertex) {
	if v == nil {
		panic("hull: nil vertex")
	}
	if !p.IsSolid() {
		panic("hull: removing a vertex requires a solid")
	}
	owned := false
	for _, u := range p.vertices {
		if u == v {
			owned = true
			break
		}
	}
	if !owned {
		panic("hull: vertex does not belong to this polyhedron")
	}

	seam := p.createSeam(splitByConnectivity(v))
	p.split(seam)
	p.sealWithMultiplePolygons(seam)
	p.updateBounds()
}

// Merge grows the polyhedron to the convex hull of the union of both
// polyhedra by re-inserting every vertex position of the other. The hull of
// the union of two convex sets is the hull of their combined vertex sets,
// so no face-merging logic is needed. The other polyhedron may be empty and
// is never modified.
func (p *Polyhedron) Merge(other *Polyhedron) {
	if other == nil {
		return
	}
	for _, v := range other.vertices {
		p.AddPoint(v.Position)
	}
}

// --- State machine steps ---

// addFirstPoint creates the sole vertex of an empty polyhedron.
func (p *Polyhedron) addFirstPoint(position geom.Vec) {
	p.vertices = append(p.vertices, newVertex(position))
}

// addSecondPoint extends a single point to a degenerate two-vertex edge,
// unless the position duplicates the existing vertex.
func (p *Polyhedron) addSecondPoint(position geom.Vec) bool {
	only := p.vertices[0]
	if position.Equals(only.Position, float64(p.tol)) {
		return false
	}

	v := newVertex(position)
	p.vertices = append(p.vertices, v)

	h1 := newHalfEdge(only)
	h2 := newHalfEdge(v)
	p.edges = append(p.edges, newFullEdge(h1, h2))
	return true
}

// addThirdPoint either extends the existing edge (collinear point) or forms
// the first flat polygon.
func (p *Polyhedron) addThirdPoint(position geom.Vec) bool {
	v1 := p.vertices[0]
	v2 := p.vertices[1]
	if geom.LinearlyDependent(v1.Position, v2.Position, position, p.tol) {
		return p.addPointToEdge(position)
	}
	return p.addPointToPolygon(position)
}

// addPointToEdge handles a collinear third point: a no-op if it lies within
// the current segment, otherwise the endpoint it extends past moves to the
// new position.
func (p *Polyhedron) addPointToEdge(position geom.Vec) bool {
	v1 := p.vertices[0]
	v2 := p.vertices[1]
	if geom.SegmentContains(v1.Position, v2.Position, position, p.tol) {
		return false
	}
	if position.Sub(v1.Position).Dot(v2.Position.Sub(v1.Position)) < 0 {
		v1.Position = position
	} else {
		v2.Position = position
	}
	return true
}

// addFurtherPoint dispatches on the flat-polygon versus solid state.
func (p *Polyhedron) addFurtherPoint(position geom.Vec) bool {
	if p.FaceCount() == 1 {
		return p.addFurtherPointToPolygon(position)
	}
	return p.addFurtherPointToSolid(position)
}

// addFurtherPointToPolygon classifies the point against the polygon's
// plane: a coplanar point folds into the polygon, everything else turns the
// polygon into a true solid. An "above" point first flips the polygon so
// that the new apex always lies below it.
func (p *Polyhedron) addFurtherPointToPolygon(position geom.Vec) bool {
	face := p.faces[0]
	switch face.plane.Status(position, p.tol) {
	case geom.Inside:
		return p.addPointToPolygon(position)
	case geom.Above:
		face.flip()
		fallthrough
	default: // geom.Below
		return p.makeSolid(position)
	}
}

// addPointToPolygon folds a coplanar point into the polygon (or forms the
// first polygon from two vertices and a non-collinear point) by recomputing
// the 2D convex hull of the boundary positions. Points inside the polygon
// change nothing.
func (p *Polyhedron) addPointToPolygon(position geom.Vec) bool {
	var positions []geom.Vec
	var normal geom.Vec

	if p.FaceCount() == 1 {
		face := p.faces[0]
		positions = face.Positions()
		normal = face.plane.Normal
		if geom.PolygonContains(positions, normal, position, p.tol) {
			return false
		}
	} else {
		a := p.vertices[0].Position
		b := p.vertices[1].Position
		positions = []geom.Vec{a, b}
		normal = b.Sub(a).Cross(position.Sub(a)).Normalize()
	}

	positions = append(positions, position)
	hull2d := geom.ConvexHull2D(positions, normal, p.tol)
	if hull2d == nil {
		panic("hull: polygon boundary is degenerate")
	}

	p.clear()
	p.makePolygon(hull2d)
	// clear zeroed the cached bounds; recompute them from the rebuilt
	// boundary rather than merging into the zero box.
	p.updateBounds()
	return true
}

// makePolygon builds a flat polygon from at least three coplanar positions
// in counter-clockwise order. The polyhedron must be empty.
func (p *Polyhedron) makePolygon(positions []geom.Vec) {
	if !p.Empty() {
		panic("hull: polyhedron must be empty")
	}
	if len(positions) < 3 {
		panic("hull: polygon requires at least three positions")
	}

	boundary := make([]*HalfEdge, 0, len(positions))
	for _, pos := range positions {
		v := newVertex(pos)
		h := newHalfEdge(v)
		e := newEdge(h)

		p.vertices = append(p.vertices, v)
		boundary = append(boundary, h)
		p.edges = append(p.edges, e)
	}
	p.makeFace(boundary)
}

// makeSolid converts the flat polygon into a true solid by weaving a cone
// over its boundary with the new point as apex. The point must lie below
// the polygon's plane.
func (p *Polyhedron) makeSolid(position geom.Vec) bool {
	face := p.faces[0]
	seam := &Seam{}

	// The seam must run counter-clockwise as seen from the apex side, so
	// iterate the boundary in reverse.
	first := face.edge
	current := first
	for {
		seam.Append(current.edge)
		current = current.prev
		if current == first {
			break
		}
	}

	p.weave(seam, position)
	return true
}

// addFurtherPointToSolid adds a point to a true solid: interior points are
// no-ops; for exterior points the faces visible from the point are split
// away and a new cone is woven over the hole.
func (p *Polyhedron) addFurtherPointToSolid(position geom.Vec) bool {
	if p.Contains(position) {
		return false
	}

	seam := p.createSeam(splitByVisibility(position, p.tol))
	if seam.Empty() {
		return false
	}

	p.split(seam)
	p.weave(seam, position)
	return true
}
