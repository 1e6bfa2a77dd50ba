package hull

// Seam is an ordered, cyclic list of boundary edges: the frontier between
// the region of the polyhedron being removed and the region being kept.
// Seam edges are oriented so that the kept (criterion-matching) face is the
// edge's first face, and consecutive edges chain so that each edge's first
// vertex is the next edge's second vertex, forming a counter-clockwise loop.
//
// A seam lives only on the call stack of one operation: it is constructed,
// consumed by split and sealing or weaving, and discarded.
type Seam struct {
	edges []*Edge
}

// Append adds an edge at the tail. The edge must connect to the current tail
// through a shared vertex; anything else is a malformed seam and a
// programming error.
func (s *Seam) Append(e *Edge) {
	if e == nil {
		panic("hull: nil seam edge")
	}
	if len(s.edges) > 0 {
		last := s.edges[len(s.edges)-1]
		if last.FirstVertex() != e.SecondVertex() {
			panic("hull: seam edge does not connect to the previous edge")
		}
	}
	s.edges = append(s.edges, e)
}

// Shift cyclically rotates the seam (front to back) until the predicate
// holds for the whole seam. At most one full rotation is tried; if no
// rotation satisfies the predicate, the seam is left rotated back to its
// original order and Shift reports false.
func (s *Seam) Shift(pred func(*Seam) bool) bool {
	for i := 0; i < len(s.edges); i++ {
		if pred(s) {
			return true
		}
		s.rotate()
	}
	return false
}

// rotate moves the front edge to the back.
func (s *Seam) rotate() {
	if len(s.edges) == 0 {
		panic("hull: cannot rotate an empty seam")
	}
	s.edges = append(s.edges[1:], s.edges[0])
}

// Replace drops the consumed prefix [0, prefixEnd) and appends one
// replacement edge, the synthetic interior edge bridging the remaining gap
// during multiple-polygon sealing.
func (s *Seam) Replace(prefixEnd int, e *Edge) {
	rest := make([]*Edge, 0, len(s.edges)-prefixEnd+1)
	rest = append(rest, s.edges[prefixEnd:]...)
	s.edges = append(rest, e)
}

// Clear empties the seam.
func (s *Seam) Clear() { s.edges = nil }

// Empty reports whether the seam has no edges.
func (s *Seam) Empty() bool { return len(s.edges) == 0 }

// Size returns the number of seam edges.
func (s *Seam) Size() int { return len(s.edges) }

// At returns the i-th seam edge.
func (s *Seam) At(i int) *Edge { return s.edges[i] }

// First returns the front edge.
func (s *Seam) First() *Edge {
	if len(s.edges) == 0 {
		panic("hull: empty seam")
	}
	return s.edges[0]
}

// Second returns the edge after the front.
func (s *Seam) Second() *Edge {
	if len(s.edges) < 2 {
		panic("hull: seam has no second edge")
	}
	return s.edges[1]
}

// Last returns the tail edge.
func (s *Seam) Last() *Edge {
	if len(s.edges) == 0 {
		panic("hull: empty seam")
	}
	return s.edges[len(s.edges)-1]
}
