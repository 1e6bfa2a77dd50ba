package scene

import (
	"reflect"
	"testing"

	"github.com/chazu/convex/pkg/geom"
	"github.com/chazu/convex/pkg/hull"
)

func solidBrush(t *testing.T) *hull.Polyhedron {
	t.Helper()
	p := hull.New()
	p.AddPoints([]geom.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 8, Y: 0, Z: 0}, {X: 0, Y: 8, Z: 0}, {X: 0, Y: 0, Z: 8},
	})
	return p
}

func TestSceneAddLookupRemove(t *testing.T) {
	s := New()
	if s.Count() != 0 {
		t.Fatalf("new scene has %d brushes, want 0", s.Count())
	}

	p := solidBrush(t)
	s.Add("wall", p)

	if got := s.Lookup("wall"); got != p {
		t.Error("Lookup returned a different brush")
	}
	if s.Lookup("missing") != nil {
		t.Error("Lookup of an unknown name should return nil")
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}

	// Adding under the same name replaces.
	p2 := solidBrush(t)
	s.Add("wall", p2)
	if s.Lookup("wall") != p2 || s.Count() != 1 {
		t.Error("Add should replace an existing brush of the same name")
	}

	s.Remove("wall")
	if s.Lookup("wall") != nil || s.Count() != 0 {
		t.Error("Remove should delete the brush")
	}
	s.Remove("missing") // unknown names are ignored
}

func TestSceneNamesAreSorted(t *testing.T) {
	s := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		s.Add(name, solidBrush(t))
	}
	want := []string{"alpha", "mid", "zeta"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestMustLookupPanicsOnUnknownName(t *testing.T) {
	s := New()
	defer func() {
		if recover() == nil {
			t.Error("MustLookup did not panic for an unknown name")
		}
	}()
	s.MustLookup("missing")
}
