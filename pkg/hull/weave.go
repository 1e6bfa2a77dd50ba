package hull

import (
	"github.com/chazu/convex/pkg/geom"
)

// shiftSeamForWeaving is the rotation predicate for weaving: the plane
// through the apex and the last seam edge must classify the first seam
// edge's far vertex as strictly below. A rotation violating this would
// produce a non-convex fan face. No rotation may ever classify it as above;
// that would mean the seam itself is not convex.
func (p *Polyhedron) shiftSeamForWeaving(seam *Seam, apex geom.Vec) bool {
	last := seam.Last()
	first := seam.First()

	v1 := last.FirstVertex()
	v2 := last.SecondVertex()
	v3 := first.FirstVertex()

	// The plane must face away from the hull: its normal is
	// cross(v2-apex, v1-apex), so v2 comes before v1.
	plane, ok := geom.PlaneFromPoints(apex, v2.Position, v1.Position, p.tol)
	if !ok {
		panic("hull: apex is collinear with a seam edge")
	}

	status := plane.Status(v3.Position, p.tol)
	if status == geom.Above {
		panic("hull: seam is not convex around the apex")
	}
	return status == geom.Below
}

// weave closes the seam with a cone of faces sharing one new vertex at the
// apex position. Each seam edge contributes a triangle {apex, far vertex,
// near vertex}; consecutive triangles merge into a single face while the
// following seam vertices stay coplanar with it, the same rule sealing
// uses. One new radial edge joins the apex to each retained fan boundary
// vertex, and one closing edge stitches the first and last fan faces.
func (p *Polyhedron) weave(seam *Seam, apex geom.Vec) *Vertex {
	if seam.Size() < 3 {
		panic("hull: seam must have at least three edges")
	}
	if !seam.Shift(func(s *Seam) bool { return p.shiftSeamForWeaving(s, apex) }) {
		panic("hull: no seam rotation admits weaving")
	}

	top := newVertex(apex)

	var first, last *HalfEdge
	i := 0
	for i < seam.Size() {
		edge := seam.At(i)
		i++
		if edge.FullySpecified() {
			panic("hull: seam edge is already sealed")
		}

		v1 := edge.SecondVertex()
		v2 := edge.FirstVertex()

		h1 := newHalfEdge(top)
		h2 := newHalfEdge(v1)
		h3 := newHalfEdge(v2)
		h := h3

		boundary := []*HalfEdge{h1, h2, h3}
		edge.setSecondEdge(h2)

		if i < seam.Size() {
			// Only the Inside classification is tested below, so the
			// orientation of this plane does not matter.
			plane, ok := geom.PlaneFromPoints(top.Position, v2.Position, v1.Position, p.tol)
			if !ok {
				panic("hull: apex is collinear with a seam edge")
			}

			// Merge the following seam edges into this face while their far
			// vertices stay on its plane.
			next := seam.At(i)
			for plane.Status(next.FirstVertex().Position, p.tol) == geom.Inside {
				next.setSecondEdge(h)

				h = newHalfEdge(next.FirstVertex())
				boundary = append(boundary, h)

				i++
				if i == seam.Size() {
					break
				}
				next = seam.At(i)
			}
		}

		p.makeFace(boundary)

		if last != nil {
			p.edges = append(p.edges, newFullEdge(h1, last))
		}
		if first == nil {
			first = h1
		}
		last = h
	}

	if first.face == last.face {
		panic("hull: weaving produced a single face")
	}
	p.edges = append(p.edges, newFullEdge(first, last))
	p.vertices = append(p.vertices, top)
	return top
}
