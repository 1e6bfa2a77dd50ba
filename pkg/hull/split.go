package hull

// split cuts the polyhedron along the seam and destroys the region on the
// non-matching side: every face, edge, and vertex reachable from it. The
// seam edges are demoted to boundary edges; the surviving region keeps a
// valid half-edge structure with an open hole that sealing or weaving must
// close before the operation returns.
func (p *Polyhedron) split(seam *Seam) {
	if seam.Size() < 3 {
		panic("hull: seam must have at least three edges")
	}

	// The second half-edge of the first seam edge is the entry point into
	// the doomed region. Remember it before the seam edges are demoted.
	first := seam.First().Second()

	// Move the seam vertices' leaving references onto the surviving side,
	// then detach the doomed half-edges from their edges.
	for _, e := range seam.edges {
		e.setFirstAsLeaving()
		e.unsetSecondEdge()
	}

	visited := make(map[*Face]bool)
	p.deleteFaces(first, visited)
}

// deleteFaces recursively destroys the face of the given half-edge and every
// face reachable from it through twin links, stopping at the seam boundary
// where the detached half-edges no longer reference an edge.
//
// A fully specified edge's twin face is recursed into before the edge itself
// is downgraded; the second encounter of the edge (from the other face)
// deletes it. A vertex is destroyed only when the half-edge being processed
// is exactly the vertex's leaving reference, so each vertex dies exactly
// once no matter how many incident half-edges the walk visits.
func (p *Polyhedron) deleteFaces(first *HalfEdge, visited map[*Face]bool) {
	face := first.face
	if visited[face] {
		return
	}
	visited[face] = true

	current := first
	for {
		edge := current.edge
		if edge != nil {
			if edge.FullySpecified() {
				p.deleteFaces(edge.twin(current), visited)
			}
			if edge.FullySpecified() {
				edge.makeSecondEdge(current)
				edge.unsetSecondEdge()
			} else {
				current.edge = nil
				p.detachEdge(edge)
			}
		}
		if current.origin.leaving == current {
			p.detachVertex(current.origin)
		}
		current = current.next
		if current == first {
			break
		}
	}

	p.dropFace(face)
}
