package geom

import "math"

// Region is an axis-aligned square, described by its center and full side
// length. Regions are immutable once constructed.
type Region struct {
	Center Vec2
	Size   float64
}

func NewRegion(center Vec2, size float64) Region {
	return Region{Center: center, Size: size}
}

// Contains reports whether p lies inside the region. The boundary is closed:
// a point exactly on an edge counts as contained.
func (r Region) Contains(p Vec2) bool {
	half := r.Size / 2
	return math.Abs(p.X-r.Center.X) <= half && math.Abs(p.Y-r.Center.Y) <= half
}

// Quadrant returns the child region with index i, enumerated SW, SE, NW, NE.
// Each child has half the parent's side length.
func (r Region) Quadrant(i int) Region {
	quarter := r.Size / 4
	offsets := [4]Vec2{
		{-quarter, -quarter},
		{quarter, -quarter},
		{-quarter, quarter},
		{quarter, quarter},
	}
	return Region{Center: r.Center.Add(offsets[i]), Size: r.Size / 2}
}
