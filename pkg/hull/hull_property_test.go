package hull

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/golang/geo/r3"
	quickhull "github.com/markus-wa/quickhull-go/v2"

	"github.com/chazu/convex/pkg/geom"
)

// randomLatticePoints returns n random points on a small integer lattice,
// seeded with a fixed tetrahedron so the set always spans a solid. Integer
// coordinates keep every orientation test exact, so the comparisons below
// cannot be poisoned by floating-point noise.
func randomLatticePoints(rng *rand.Rand, n int) []geom.Vec {
	points := []geom.Vec{
		vec(0, 0, 0), vec(10, 0, 0), vec(0, 10, 0), vec(0, 0, 10),
	}
	for i := 0; i < n; i++ {
		points = append(points, vec(
			float64(rng.Intn(11)),
			float64(rng.Intn(11)),
			float64(rng.Intn(11)),
		))
	}
	return points
}

// positionKey gives a map key for a lattice position.
func positionKey(v geom.Vec) string {
	return fmt.Sprintf("%.0f,%.0f,%.0f", v.X, v.Y, v.Z)
}

// vertexKeys returns the sorted position keys of all hull vertices.
func vertexKeys(p *Polyhedron) []string {
	keys := make([]string, 0, p.VertexCount())
	for _, v := range p.Vertices() {
		keys = append(keys, positionKey(v.Position))
	}
	sort.Strings(keys)
	return keys
}

// oracleKeys computes the extreme points of the cloud with the quickhull
// reference implementation and returns their sorted position keys.
func oracleKeys(points []geom.Vec) []string {
	cloud := make([]r3.Vector, len(points))
	for i, p := range points {
		cloud[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
	}

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(cloud, true, true, 1e-7)

	seen := make(map[string]bool)
	var keys []string
	for _, idx := range ch.Indices {
		k := positionKey(points[idx])
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRandomHullsMatchQuickhull(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for run := 0; run < 25; run++ {
		points := randomLatticePoints(rng, 4+rng.Intn(12))

		p := New()
		p.AddPoints(points)
		mustHoldInvariants(t, p)

		got := vertexKeys(p)
		want := oracleKeys(points)
		if !equalKeys(got, want) {
			t.Fatalf("run %d: hull vertices diverge from quickhull\npoints: %v\ngot:  %v\nwant: %v",
				run, points, got, want)
		}

		for _, pos := range points {
			if !p.Contains(pos) {
				t.Fatalf("run %d: input point %v not contained in the hull", run, pos)
			}
		}
	}
}

func TestHullIsInsertionOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for run := 0; run < 10; run++ {
		points := randomLatticePoints(rng, 4+rng.Intn(10))

		reference := New()
		reference.AddPoints(points)
		want := vertexKeys(reference)

		for shuffle := 0; shuffle < 4; shuffle++ {
			shuffled := append([]geom.Vec{}, points...)
			rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})

			p := New()
			p.AddPoints(shuffled)
			mustHoldInvariants(t, p)

			if got := vertexKeys(p); !equalKeys(got, want) {
				t.Fatalf("run %d shuffle %d: insertion order changed the hull\ngot:  %v\nwant: %v",
					run, shuffle, got, want)
			}
		}
	}
}

func TestInvariantsHoldAfterEveryInsertion(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	points := randomLatticePoints(rng, 40)

	p := New()
	for i, pos := range points {
		p.AddPoint(pos)
		if err := p.CheckInvariant(); err != nil {
			t.Fatalf("invariant violated after inserting point %d (%v): %v", i, pos, err)
		}
	}
}
