package geom

import "sort"

// planeBasis returns two unit vectors spanning the plane with the given
// normal, chosen so that (u, w, normal) is a right-handed frame. Points
// projected onto (u, w) therefore wind counter-clockwise when viewed from
// the normal side.
func planeBasis(normal Vec) (u, w Vec) {
	ref := Vec{X: 1}
	ax, ay, az := abs(normal.X), abs(normal.Y), abs(normal.Z)
	if ax >= ay && ax >= az {
		ref = Vec{Y: 1}
	}
	u = normal.Cross(ref).Normalize()
	w = normal.Cross(u)
	return u, w
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// point2 is a projected plane point that remembers its 3D original.
type point2 struct {
	x, y float64
	p    Vec
}

func cross2(o, a, b point2) float64 {
	return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
}

// ConvexHull2D computes the convex hull of a set of points that lie on a
// common plane with the given normal. The hull is returned in
// counter-clockwise order about the normal, with collinear boundary points
// and near-duplicates dropped, so the result contains exactly the extreme
// points. Returns nil for fewer than three distinct points.
func ConvexHull2D(points []Vec, normal Vec, tol Tolerance) []Vec {
	u, w := planeBasis(normal)

	projected := make([]point2, 0, len(points))
	for _, p := range points {
		pt := point2{x: u.Dot(p), y: w.Dot(p), p: p}
		dup := false
		for _, q := range projected {
			if q.p.Equals(p, float64(tol)) {
				dup = true
				break
			}
		}
		if !dup {
			projected = append(projected, pt)
		}
	}
	if len(projected) < 3 {
		return nil
	}

	sort.Slice(projected, func(i, j int) bool {
		if projected[i].x != projected[j].x {
			return projected[i].x < projected[j].x
		}
		return projected[i].y < projected[j].y
	})

	// Andrew's monotone chain. The strict turn test discards collinear
	// points so that only extreme points survive.
	var lower, upper []point2
	for _, p := range projected {
		for len(lower) >= 2 && cross2(lower[len(lower)-2], lower[len(lower)-1], p) <= float64(tol) {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(projected) - 1; i >= 0; i-- {
		p := projected[i]
		for len(upper) >= 2 && cross2(upper[len(upper)-2], upper[len(upper)-1], p) <= float64(tol) {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := make([]Vec, 0, len(lower)+len(upper)-2)
	for _, p := range lower[:len(lower)-1] {
		hull = append(hull, p.p)
	}
	for _, p := range upper[:len(upper)-1] {
		hull = append(hull, p.p)
	}
	if len(hull) < 3 {
		return nil
	}
	return hull
}

// PolygonContains reports whether p lies inside or on the boundary of the
// convex polygon given by points in counter-clockwise order about normal.
// The point is assumed to be coplanar with the polygon.
func PolygonContains(points []Vec, normal Vec, p Vec, tol Tolerance) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		if b.Sub(a).Cross(p.Sub(a)).Dot(normal) < -float64(tol) {
			return false
		}
	}
	return true
}
