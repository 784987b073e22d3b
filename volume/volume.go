package volume

// Volume is a dense, read-only-from-the-core 3D voxel field, indexed
// row-major with X fastest-varying. A voxel is "solid" when its value is
// non-zero.
type Volume struct {
	width, height, depth int32
	voxels                []uint8
}

// New allocates a Volume of the given extent, all voxels initially zero
// (empty).
func New(width, height, depth int32) *Volume {
	if width <= 0 || height <= 0 || depth <= 0 {
		panic("volume: non-positive dimension")
	}
	return &Volume{
		width:  width,
		height: height,
		depth:  depth,
		voxels: make([]uint8, int(width)*int(height)*int(depth)),
	}
}

// FromVoxels wraps an existing row-major voxel slice. len(voxels) must
// equal width*height*depth.
func FromVoxels(width, height, depth int32, voxels []uint8) *Volume {
	if int(width)*int(height)*int(depth) != len(voxels) {
		panic("volume: voxel slice does not match dimensions")
	}
	return &Volume{width: width, height: height, depth: depth, voxels: voxels}
}

// Width returns the extent along X.
func (v *Volume) Width() int32 { return v.width }

// Height returns the extent along Y.
func (v *Volume) Height() int32 { return v.height }

// Depth returns the extent along Z.
func (v *Volume) Depth() int32 { return v.depth }

// Voxels exposes the backing row-major slice for serialization.
func (v *Volume) Voxels() []uint8 { return v.voxels }

func (v *Volume) index(x, y, z int32) int {
	return int(x) + int(y)*int(v.width) + int(z)*int(v.width)*int(v.height)
}

func (v *Volume) inBounds(x, y, z int32) bool {
	return x >= 0 && x < v.width && y >= 0 && y < v.height && z >= 0 && z < v.depth
}

// Sample performs an unchecked read. Callers must ensure (x,y,z) is inside
// the volume; an out-of-bounds coordinate panics only when its linear
// index falls outside the backing slice and otherwise reads a different
// voxel, matching the core's contract that sample() is only used where
// the caller has already established the coordinate is valid.
func (v *Volume) Sample(x, y, z int32) uint8 {
	return v.voxels[v.index(x, y, z)]
}

// SampleWithBounds returns 0 for any coordinate outside the volume.
func (v *Volume) SampleWithBounds(x, y, z int32) uint8 {
	if !v.inBounds(x, y, z) {
		return 0
	}
	return v.voxels[v.index(x, y, z)]
}

// Set writes a voxel value; used only by callers building or editing a
// volume, never by the extractor or decimator.
func (v *Volume) Set(x, y, z int32, value uint8) {
	v.voxels[v.index(x, y, z)] = value
}

// SampleSubSampled returns the value representing the volume at (x,y,z)
// decimated to a step of 1<<level: level 0 is a direct sample, and level
// > 0 averages every voxel in the step x step x step block whose lower
// corner is (x,y,z), rounding to the nearest integer. Averaging (rather
// than picking the single corner voxel) means a decimated extraction
// reflects the density of the whole skipped block instead of aliasing
// onto whichever lattice point happens to land on the sparser grid.
func (v *Volume) SampleSubSampled(x, y, z, level int32) uint8 {
	if level <= 0 {
		return v.Sample(x, y, z)
	}
	step := int32(1) << uint(level)
	return v.averageBlock(x, y, z, step, false)
}

// SampleSubSampledWithBounds is the bounds-checked variant of
// SampleSubSampled; voxels outside the volume contribute zero to the
// average rather than faulting.
func (v *Volume) SampleSubSampledWithBounds(x, y, z, level int32) uint8 {
	if level <= 0 {
		return v.SampleWithBounds(x, y, z)
	}
	step := int32(1) << uint(level)
	return v.averageBlock(x, y, z, step, true)
}

func (v *Volume) averageBlock(x, y, z, step int32, bounds bool) uint8 {
	var sum, count int32
	for dz := int32(0); dz < step; dz++ {
		for dy := int32(0); dy < step; dy++ {
			for dx := int32(0); dx < step; dx++ {
				cx, cy, cz := x+dx, y+dy, z+dz
				if bounds {
					if !v.inBounds(cx, cy, cz) {
						count++
						continue
					}
					sum += int32(v.voxels[v.index(cx, cy, cz)])
					count++
					continue
				}
				sum += int32(v.voxels[v.index(cx, cy, cz)])
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return uint8((sum + count/2) / count)
}

// EnclosingRegion returns the full extent of the volume as a Region.
func (v *Volume) EnclosingRegion() Region {
	return Region{
		Lower: Vec3I{0, 0, 0},
		Upper: Vec3I{v.width - 1, v.height - 1, v.depth - 1},
	}
}

// Contains reports whether p lies at least boundary cells inside the
// volume's extent on every axis.
func (v *Volume) Contains(p Vec3I, boundary int32) bool {
	r := v.EnclosingRegion()
	return p.X >= r.Lower.X+boundary && p.X <= r.Upper.X-boundary &&
		p.Y >= r.Lower.Y+boundary && p.Y <= r.Upper.Y-boundary &&
		p.Z >= r.Lower.Z+boundary && p.Z <= r.Upper.Z-boundary
}
