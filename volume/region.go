// Package volume provides the read-only voxel container and region
// arithmetic consumed by the marching-cubes extractor and mesh decimator.
package volume

import "fmt"

// Vec3I is an integer lattice coordinate, X fastest-varying.
type Vec3I struct {
	X, Y, Z int32
}

// Add returns the componentwise sum.
func (v Vec3I) Add(o Vec3I) Vec3I {
	return Vec3I{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the componentwise difference.
func (v Vec3I) Sub(o Vec3I) Vec3I {
	return Vec3I{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Vec3F is a single-precision float lattice coordinate.
type Vec3F struct {
	X, Y, Z float32
}

// FloatOf converts an integer coordinate to its float equivalent.
func FloatOf(v Vec3I) Vec3F {
	return Vec3F{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Region is an axis-aligned box of cells with inclusive bounds.
type Region struct {
	Lower, Upper Vec3I
}

// NewRegion builds a region from inclusive lower/upper corners.
func NewRegion(lower, upper Vec3I) Region {
	return Region{Lower: lower, Upper: upper}
}

// Width returns the number of cells along X.
func (r Region) Width() int32 { return r.Upper.X - r.Lower.X + 1 }

// Height returns the number of cells along Y.
func (r Region) Height() int32 { return r.Upper.Y - r.Lower.Y + 1 }

// Depth returns the number of cells along Z.
func (r Region) Depth() int32 { return r.Upper.Z - r.Lower.Z + 1 }

// IsValid reports whether the region is non-empty, i.e. upper >= lower on
// every axis.
func (r Region) IsValid() bool {
	return r.Upper.X >= r.Lower.X && r.Upper.Y >= r.Lower.Y && r.Upper.Z >= r.Lower.Z
}

// Shift translates the region by the given offset.
func (r Region) Shift(offset Vec3I) Region {
	return Region{Lower: r.Lower.Add(offset), Upper: r.Upper.Add(offset)}
}

// CropTo clamps the region so that it lies entirely within other. The
// result may be invalid (upper < lower on some axis) if the two regions
// do not intersect; callers must check IsValid.
func (r Region) CropTo(other Region) Region {
	return Region{
		Lower: Vec3I{
			max(r.Lower.X, other.Lower.X),
			max(r.Lower.Y, other.Lower.Y),
			max(r.Lower.Z, other.Lower.Z),
		},
		Upper: Vec3I{
			min(r.Upper.X, other.Upper.X),
			min(r.Upper.Y, other.Upper.Y),
			min(r.Upper.Z, other.Upper.Z),
		},
	}
}

// Contains reports whether p lies inside the region (inclusive bounds).
func (r Region) Contains(p Vec3I) bool {
	return p.X >= r.Lower.X && p.X <= r.Upper.X &&
		p.Y >= r.Lower.Y && p.Y <= r.Upper.Y &&
		p.Z >= r.Lower.Z && p.Z <= r.Upper.Z
}

// Union returns the smallest region enclosing both r and other. If either
// region is invalid, the other is returned unchanged.
func (r Region) Union(other Region) Region {
	if !r.IsValid() {
		return other
	}
	if !other.IsValid() {
		return r
	}
	min := func(a, b int32) int32 {
		if a < b {
			return a
		}
		return b
	}
	max := func(a, b int32) int32 {
		if a > b {
			return a
		}
		return b
	}
	return Region{
		Lower: Vec3I{min(r.Lower.X, other.Lower.X), min(r.Lower.Y, other.Lower.Y), min(r.Lower.Z, other.Lower.Z)},
		Upper: Vec3I{max(r.Upper.X, other.Upper.X), max(r.Upper.Y, other.Upper.Y), max(r.Upper.Z, other.Upper.Z)},
	}
}

// Grow returns a region expanded by n cells on every face (n may be negative).
func (r Region) Grow(n int32) Region {
	d := Vec3I{n, n, n}
	return Region{Lower: r.Lower.Sub(d), Upper: r.Upper.Add(d)}
}

func (r Region) String() string {
	return fmt.Sprintf("[(%d,%d,%d) -> (%d,%d,%d)]", r.Lower.X, r.Lower.Y, r.Lower.Z, r.Upper.X, r.Upper.Y, r.Upper.Z)
}
