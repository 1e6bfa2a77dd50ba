// Package geom provides the vector, plane, and tolerance primitives used by
// the convex hull kernel. Vectors are deadsy/sdfx v3.Vec values so that
// geometry flows into sdfx-based mesh output without conversion.
package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vec is the kernel-wide 3D vector type.
type Vec = v3.Vec

// Tolerance is the pluggable plane-classification tolerance policy. A point
// within Tolerance of a plane is classified as lying on it.
type Tolerance float64

// DefaultTolerance is used when a caller does not supply its own policy.
const DefaultTolerance Tolerance = 1e-6

// PointStatus classifies a point against an oriented plane.
type PointStatus int

const (
	Above  PointStatus = iota // in front of the plane (normal side)
	Inside                    // on the plane, within tolerance
	Below                     // behind the plane
)

func (s PointStatus) String() string {
	switch s {
	case Above:
		return "above"
	case Inside:
		return "inside"
	case Below:
		return "below"
	default:
		return "unknown"
	}
}

// Plane is an oriented plane in Hesse normal form: Normal·p = Dist.
type Plane struct {
	Normal Vec
	Dist   float64
}

// PlaneFromPoints builds the plane through three points, oriented so that
// the normal is Cross(b-a, c-a) normalized. Returns false when the points
// are collinear within tolerance and no plane is determined.
func PlaneFromPoints(a, b, c Vec, tol Tolerance) (Plane, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Length() <= float64(tol) {
		return Plane{}, false
	}
	n = n.Normalize()
	return Plane{Normal: n, Dist: n.Dot(a)}, true
}

// DistanceTo returns the signed distance from p to the plane.
func (pl Plane) DistanceTo(p Vec) float64 {
	return pl.Normal.Dot(p) - pl.Dist
}

// Status classifies p against the plane under the given tolerance.
func (pl Plane) Status(p Vec, tol Tolerance) PointStatus {
	d := pl.DistanceTo(p)
	if d > float64(tol) {
		return Above
	}
	if d < -float64(tol) {
		return Below
	}
	return Inside
}

// Flipped returns the same plane with reversed orientation.
func (pl Plane) Flipped() Plane {
	return Plane{Normal: pl.Normal.Neg(), Dist: -pl.Dist}
}

// LinearlyDependent reports whether the three points are collinear within
// tolerance.
func LinearlyDependent(a, b, c Vec, tol Tolerance) bool {
	return b.Sub(a).Cross(c.Sub(a)).Length() <= float64(tol)
}

// SegmentContains reports whether p lies on the segment [a, b]. The caller
// must ensure p is collinear with a and b.
func SegmentContains(a, b, p Vec, tol Tolerance) bool {
	d := b.Sub(a)
	t := p.Sub(a).Dot(d)
	return t >= -float64(tol) && t <= d.Length2()+float64(tol)
}
