package geom

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec
	Max Vec
}

// BoundsAt returns a degenerate box containing exactly one point.
func BoundsAt(p Vec) Bounds {
	return Bounds{Min: p, Max: p}
}

// BoundsOf computes the bounding box of a point set. An empty set yields the
// zero Bounds.
func BoundsOf(points []Vec) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := BoundsAt(points[0])
	for _, p := range points[1:] {
		b = b.Merge(p)
	}
	return b
}

// Merge returns the smallest box containing both b and p.
func (b Bounds) Merge(p Vec) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Size returns the box extents along each axis.
func (b Bounds) Size() Vec {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box, within tolerance.
func (b Bounds) Contains(p Vec, tol Tolerance) bool {
	t := float64(tol)
	return p.X >= b.Min.X-t && p.X <= b.Max.X+t &&
		p.Y >= b.Min.Y-t && p.Y <= b.Max.Y+t &&
		p.Z >= b.Min.Z-t && p.Z <= b.Max.Z+t
}
