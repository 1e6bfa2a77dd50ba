// Package scene holds named convex brushes, the map-editor view of the hull
// kernel: every brush is one convex polyhedron owned by the scene.
package scene

import (
	"fmt"
	"sort"

	"github.com/chazu/convex/pkg/hull"
)

// Scene is a registry of named brushes. It is the top-level structure
// produced by script evaluation.
type Scene struct {
	brushes map[string]*hull.Polyhedron
	Version uint64
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{brushes: make(map[string]*hull.Polyhedron)}
}

// Add registers a brush under the given name, replacing any previous brush
// with that name.
func (s *Scene) Add(name string, p *hull.Polyhedron) {
	s.brushes[name] = p
}

// Lookup returns the brush with the given name, or nil.
func (s *Scene) Lookup(name string) *hull.Polyhedron {
	return s.brushes[name]
}

// MustLookup returns the brush with the given name, or panics.
func (s *Scene) MustLookup(name string) *hull.Polyhedron {
	p := s.Lookup(name)
	if p == nil {
		panic(fmt.Sprintf("scene: no brush named %q", name))
	}
	return p
}

// Remove deletes the brush with the given name. Unknown names are ignored.
func (s *Scene) Remove(name string) {
	delete(s.brushes, name)
}

// Names returns the brush names in sorted order.
func (s *Scene) Names() []string {
	names := make([]string, 0, len(s.brushes))
	for name := range s.brushes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of brushes.
func (s *Scene) Count() int {
	return len(s.brushes)
}
