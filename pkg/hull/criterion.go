package hull

import (
	"github.com/chazu/convex/pkg/geom"
)

// matchResult classifies an edge by which of its adjacent faces satisfy the
// splitting criterion.
type matchResult int

const (
	matchNeither matchResult = iota
	matchFirst
	matchSecond
	matchBoth
)

// criterionKind selects one of the two fixed splitting criteria. Both are
// known at compile time, so the criterion is a closed tagged variant rather
// than an open interface.
type criterionKind int

const (
	byConnectivity criterionKind = iota
	byVisibility
)

// splittingCriterion bipartitions the faces into a matching set (the kept
// region) and its complement (the doomed region) and derives the seam as the
// boundary between them.
type splittingCriterion struct {
	kind   criterionKind
	vertex *Vertex  // byConnectivity: the vertex being removed
	point  geom.Vec // byVisibility: the point being added
	tol    geom.Tolerance
}

// splitByConnectivity matches the faces NOT incident to v; the seam is the
// loop around the doomed vertex.
func splitByConnectivity(v *Vertex) splittingCriterion {
	return splittingCriterion{kind: byConnectivity, vertex: v}
}

// splitByVisibility matches the faces the point lies below, i.e. the faces
// not visible from it; the seam separates the visible region from the rest.
func splitByVisibility(point geom.Vec, tol geom.Tolerance) splittingCriterion {
	return splittingCriterion{kind: byVisibility, point: point, tol: tol}
}

func (c splittingCriterion) matchesFace(f *Face) bool {
	switch c.kind {
	case byConnectivity:
		return !c.vertex.Incident(f)
	case byVisibility:
		return f.plane.Status(c.point, c.tol) == geom.Below
	}
	panic("hull: unknown splitting criterion")
}

func (c splittingCriterion) matchesEdge(e *Edge) matchResult {
	first := c.matchesFace(e.firstFace())
	second := c.matchesFace(e.secondFace())
	switch {
	case first && second:
		return matchBoth
	case first:
		return matchFirst
	case second:
		return matchSecond
	}
	return matchNeither
}

// findFirstSplittingEdge scans the edges for one where exactly one adjacent
// face matches, flipping it if needed so the matching face is first. Returns
// nil when no edge qualifies: there is no seam, and the operation is a
// no-op.
func (c splittingCriterion) findFirstSplittingEdge(edges []*Edge) *Edge {
	for _, e := range edges {
		switch c.matchesEdge(e) {
		case matchSecond:
			e.flip()
			fallthrough
		case matchFirst:
			return e
		}
	}
	return nil
}

// findNextSplittingEdge walks counter-clockwise from the previous seam edge
// via twin/previous links around the shared vertex until the next qualifying
// edge is found. Because the matching set induces a simply connected
// boundary on a convex solid, this yields one connected CCW loop.
func (c splittingCriterion) findNextSplittingEdge(last *Edge) *Edge {
	h := last.First().prev
	next := h.edge

	result := c.matchesEdge(next)
	for result != matchFirst && result != matchSecond && next != last {
		h = h.Twin().prev
		next = h.edge
		result = c.matchesEdge(next)
	}

	if result != matchFirst && result != matchSecond {
		return nil
	}
	if result == matchSecond {
		next.flip()
	}
	return next
}

// createSeam walks the mesh along the criterion boundary and collects the
// seam loop. An empty seam means the criterion found nothing to split: the
// point is already inside the hull, or there is nothing to remove.
func (p *Polyhedron) createSeam(c splittingCriterion) *Seam {
	seam := &Seam{}

	first := c.findFirstSplittingEdge(p.edges)
	if first != nil {
		current := first
		for {
			if current == nil {
				panic("hull: seam is not a closed loop")
			}
			seam.Append(current)
			current = c.findNextSplittingEdge(current)
			if current == first {
				break
			}
		}
	}
	return seam
}
