// Package mc implements marching-cubes surface extraction over a
// volume.Volume, including level-of-detail decimated sampling and
// normal estimation.
package mc

import (
	"github.com/victorbstan/polyvox/mesh"
	"github.com/victorbstan/polyvox/volume"
)

// Options controls a single extraction pass.
type Options struct {
	// Lod is the level of detail; step size between samples is
	// max(1, 1<<Lod).
	Lod int32
}

// ExtractRegion runs marching cubes over region (cropped to the volume's
// own extent) and appends the resulting surface to a fresh SurfaceMesh.
//
// Extraction sweeps the region one Z slice at a time, keeping two
// sliceGrids: one holds the cube configurations and edge-vertex indices
// already computed for the slice below, the other is built fresh for the
// slice at the current Z. Once both are in hand, triangles for every
// non-empty cube on the lower slice are emitted by looking its twelve edge
// vertices up across the two grids, and the current grid becomes the lower
// one for the next Z step. This avoids ever caching a vertex by its
// endpoint coordinates: each edge vertex is emitted once into one grid
// slot, and every cube sharing that edge looks it up in that same slot.
//
// Per the design note permitting implementations to skip the eight-case
// neighbour-bitmask derivation for clarity, buildSlice reads every cube
// corner directly through the volume's bounds-checked sampler rather than
// deriving seven of them from an adjacent cell's already-computed corners;
// the resulting configuration is identical either way.
func ExtractRegion(vol *volume.Volume, region volume.Region, opts Options) *mesh.SurfaceMesh {
	step := int32(1)
	if opts.Lod > 0 {
		step = int32(1) << uint(opts.Lod)
	}

	croppedToVolume := region.CropTo(vol.EnclosingRegion())
	out := &mesh.SurfaceMesh{Region: croppedToVolume}

	sweep := croppedToVolume
	if step > 1 {
		contract := 2*step - 1
		sweep.Upper.X -= contract
		sweep.Upper.Y -= contract
		sweep.Upper.Z -= contract
	}
	if !sweep.IsValid() {
		out.LodRecords = append(out.LodRecords, mesh.LodRecord{Begin: 0, End: 0})
		return out
	}

	nx := (sweep.Upper.X - sweep.Lower.X) / step
	ny := (sweep.Upper.Y - sweep.Lower.Y) / step
	nz := (sweep.Upper.Z - sweep.Lower.Z) / step
	if nx < 1 || ny < 1 || nz < 1 {
		out.LodRecords = append(out.LodRecords, mesh.LodRecord{Begin: 0, End: 0})
		return out
	}

	var prev *sliceGrids
	for zr := int32(0); zr <= nz; zr++ {
		z := sweep.Lower.Z + zr*step
		cur := newSliceGrids(nx, ny)
		buildSlice(vol, sweep.Lower, step, z, opts.Lod, nx, ny, out, cur)
		if prev != nil {
			emitSliceTriangles(prev, cur, out)
		}
		prev = cur
	}

	out.LodRecords = append(out.LodRecords, mesh.LodRecord{Begin: 0, End: uint32(len(out.Indices))})
	return out
}

// axisVertex places a vertex at the midpoint of a cube edge that runs
// along axis (0=X, 1=Y, 2=Z) from corner a to corner b. The normal is the
// axis-aligned unit vector whose sign is positive when a is solid and b is
// empty, negative otherwise; gradient-based smoothing is never applied
// here and is left entirely to exporter-side post-processing.
func axisVertex(axis int, a volume.Vec3I, av uint8, b volume.Vec3I, bv uint8) mesh.Vertex {
	pos := volume.Vec3F{
		X: (float32(a.X) + float32(b.X)) / 2,
		Y: (float32(a.Y) + float32(b.Y)) / 2,
		Z: (float32(a.Z) + float32(b.Z)) / 2,
	}

	sign := float32(-1)
	if av != 0 && bv == 0 {
		sign = 1
	}

	var normal volume.Vec3F
	switch axis {
	case 0:
		normal.X = sign
	case 1:
		normal.Y = sign
	case 2:
		normal.Z = sign
	}

	return mesh.Vertex{Position: pos, Normal: normal, Material: av | bv}
}
