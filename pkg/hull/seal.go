package hull

import (
	"github.com/chazu/convex/pkg/geom"
)

// sealWithSinglePolygon closes a triangular seam with one new face built
// entirely from existing vertices. Seams handed to this path are always
// exactly three edges long and therefore planar.
func (p *Polyhedron) sealWithSinglePolygon(seam *Seam) {
	if seam.Size() != 3 {
		panic("hull: single-polygon sealing requires a triangular seam")
	}

	boundary := make([]*HalfEdge, 0, seam.Size())
	for _, e := range seam.edges {
		if e.FullySpecified() {
			panic("hull: seam edge is already sealed")
		}
		h := newHalfEdge(e.SecondVertex())
		boundary = append(boundary, h)
		e.setSecondEdge(h)
	}
	p.makeFace(boundary)
}

// shiftSeamForSealing is the rotation predicate for multiple-polygon
// sealing: the far vertex of the last seam edge must lie strictly below the
// plane through the first three seam vertices, and no interior seam vertex
// may lie above it. Starting from such a rotation the greedy cap growth
// never produces a non-convex face.
func (p *Polyhedron) shiftSeamForSealing(seam *Seam) bool {
	first := seam.First()
	second := seam.Second()
	v1 := first.FirstVertex()
	v2 := first.SecondVertex()
	v3 := second.FirstVertex()

	// The cap plane must face away from the hull: its normal is
	// cross(v3-v1, v2-v1), so v3 comes before v2.
	plane, ok := geom.PlaneFromPoints(v1.Position, v3.Position, v2.Position, p.tol)
	if !ok {
		panic("hull: collinear seam vertices")
	}

	v4 := seam.Last().SecondVertex()
	if plane.Status(v4.Position, p.tol) != geom.Below {
		return false
	}

	if seam.Size() < 5 {
		return true
	}
	for i := 2; i < seam.Size()-1; i++ {
		v := seam.At(i).FirstVertex()
		if plane.Status(v.Position, p.tol) == geom.Above {
			return false
		}
	}
	return true
}

// sealWithMultiplePolygons closes a seam of any size with the minimal set of
// convex coplanar cap faces, introducing no new vertices. Each cap grows
// greedily while the following seam vertices stay coplanar with its plane;
// when growth must stop, one synthetic interior edge bridges the remaining
// gap and replaces the consumed prefix of the seam.
func (p *Polyhedron) sealWithMultiplePolygons(seam *Seam) {
	if seam.Size() < 3 {
		panic("hull: seam must have at least three edges")
	}
	if seam.Size() == 3 {
		p.sealWithSinglePolygon(seam)
		return
	}

	seam.Shift(p.shiftSeamForSealing)

	for !seam.Empty() {
		if seam.Size() < 3 {
			panic("hull: seam collapsed during sealing")
		}

		i := 0
		firstEdge := seam.At(i)
		i++
		secondEdge := seam.At(i)
		i++

		firstBoundary := newHalfEdge(firstEdge.SecondVertex())
		secondBoundary := newHalfEdge(secondEdge.SecondVertex())
		boundary := []*HalfEdge{firstBoundary, secondBoundary}

		firstEdge.setSecondEdge(firstBoundary)
		secondEdge.setSecondEdge(secondBoundary)

		v1 := firstEdge.FirstVertex()
		v2 := firstEdge.SecondVertex()
		v3 := secondEdge.FirstVertex()
		// Only the Inside classification is tested below, so the orientation
		// of this plane does not matter.
		plane, ok := geom.PlaneFromPoints(v1.Position, v2.Position, v3.Position, p.tol)
		if !ok {
			panic("hull: collinear seam vertices")
		}

		// Grow the cap while the following seam vertices stay on its plane.
		lastVertex := v3
		for i < seam.Size() && plane.Status(seam.At(i).FirstVertex().Position, p.tol) == geom.Inside {
			cur := seam.At(i)
			i++
			h := newHalfEdge(cur.SecondVertex())
			boundary = append(boundary, h)
			cur.setSecondEdge(h)
			lastVertex = cur.FirstVertex()
		}

		if i < seam.Size() {
			lastBoundary := newHalfEdge(lastVertex)
			boundary = append(boundary, lastBoundary)

			bridge := newEdge(lastBoundary)
			p.edges = append(p.edges, bridge)
			seam.Replace(i, bridge)
		} else {
			seam.Clear()
		}

		p.makeFace(boundary)
	}
}
