package hull

import (
	"fmt"

	"github.com/chazu/convex/pkg/geom"
)

// CheckInvariant verifies the structural and geometric invariants of the
// polyhedron: consistent counts for the degenerate states, closed and
// consistently linked face boundary cycles, twin symmetry, the Euler
// characteristic V-E+F = 2 once there is more than one face, and convexity.
// It returns nil when the polyhedron is valid. Intended for tests and
// validation layers; the mutating operations maintain these invariants
// internally.
func (p *Polyhedron) CheckInvariant() error {
	switch {
	case p.Empty():
		if len(p.edges) != 0 || len(p.faces) != 0 {
			return fmt.Errorf("empty polyhedron has %d edges and %d faces", len(p.edges), len(p.faces))
		}
		return nil
	case p.IsPoint():
		if len(p.edges) != 0 || len(p.faces) != 0 {
			return fmt.Errorf("point has %d edges and %d faces", len(p.edges), len(p.faces))
		}
		return nil
	case p.IsEdge():
		if len(p.edges) != 1 || len(p.faces) != 0 {
			return fmt.Errorf("edge has %d edges and %d faces", len(p.edges), len(p.faces))
		}
		return nil
	}

	if err := p.checkFaces(); err != nil {
		return err
	}
	if err := p.checkEdges(); err != nil {
		return err
	}
	if err := p.checkVertices(); err != nil {
		return err
	}

	if p.IsSolid() {
		v, e, f := len(p.vertices), len(p.edges), len(p.faces)
		if v-e+f != 2 {
			return fmt.Errorf("euler characteristic violated: V=%d E=%d F=%d", v, e, f)
		}
		if err := p.checkConvex(); err != nil {
			return err
		}
	}
	return nil
}

// checkFaces verifies that every face boundary is a closed cycle of at
// least three half-edges with consistent next/prev links and face
// back-references.
func (p *Polyhedron) checkFaces() error {
	for i, f := range p.faces {
		count := 0
		h := f.edge
		for {
			if h.face != f {
				return fmt.Errorf("face %d: half-edge references another face", i)
			}
			if h.next.prev != h || h.prev.next != h {
				return fmt.Errorf("face %d: boundary links are inconsistent", i)
			}
			count++
			if count > len(p.edges)*2 {
				return fmt.Errorf("face %d: boundary does not close", i)
			}
			h = h.next
			if h == f.edge {
				break
			}
		}
		if count < 3 {
			return fmt.Errorf("face %d: boundary has only %d half-edges", i, count)
		}
	}
	return nil
}

// checkEdges verifies edge/half-edge back-references and, for solids, that
// every edge has a twin.
func (p *Polyhedron) checkEdges() error {
	for i, e := range p.edges {
		if e.first == nil {
			return fmt.Errorf("edge %d: first half-edge unset", i)
		}
		if e.first.edge != e {
			return fmt.Errorf("edge %d: first half-edge references another edge", i)
		}
		if e.second != nil && e.second.edge != e {
			return fmt.Errorf("edge %d: second half-edge references another edge", i)
		}
		if p.IsSolid() && !e.FullySpecified() {
			return fmt.Errorf("edge %d: boundary edge in a solid", i)
		}
	}
	return nil
}

// checkVertices verifies that every vertex leaves through a half-edge that
// actually originates at it.
func (p *Polyhedron) checkVertices() error {
	for i, v := range p.vertices {
		if v.leaving == nil {
			return fmt.Errorf("vertex %d: no leaving half-edge", i)
		}
		if v.leaving.origin != v {
			return fmt.Errorf("vertex %d: leaving half-edge originates elsewhere", i)
		}
	}
	return nil
}

// checkConvex verifies that no vertex lies strictly above any face plane.
func (p *Polyhedron) checkConvex() error {
	for i, f := range p.faces {
		for j, v := range p.vertices {
			if f.plane.Status(v.Position, p.tol) == geom.Above {
				return fmt.Errorf("vertex %d lies above face %d: not convex", j, i)
			}
		}
	}
	return nil
}
