package mc

import (
	"fmt"

	"github.com/victorbstan/polyvox/mesh"
	"github.com/victorbstan/polyvox/volume"
)

// noVertex marks a not-yet-emitted entry in an edge-index grid.
const noVertex = ^uint32(0)

// edgeGrid is a (nx+1)x(ny+1) grid of vertex indices for one cube-edge
// orientation (X, Y, or Z) within a single Z slice.
type edgeGrid struct {
	nx, ny int32
	idx    []uint32
}

func newEdgeGrid(nx, ny int32) edgeGrid {
	g := edgeGrid{nx: nx, ny: ny, idx: make([]uint32, (nx+1)*(ny+1))}
	for i := range g.idx {
		g.idx[i] = noVertex
	}
	return g
}

func (g *edgeGrid) at(x, y int32) uint32 { return g.idx[y*(g.nx+1)+x] }
func (g *edgeGrid) set(x, y int32, v uint32) { g.idx[y*(g.nx+1)+x] = v }

func (g *edgeGrid) clear() {
	for i := range g.idx {
		g.idx[i] = noVertex
	}
}

// sliceGrids holds one Z slice's worth of scratch state: the per-cell
// cube configuration (bitmask) and the three edge-index grids vertex
// emit populates. nx, ny are the number of real cube positions along X
// and Y; the edge grids are sized nx+1 by ny+1 to hold the one-past-last
// column/row a neighbouring cube's edge lookup needs.
type sliceGrids struct {
	nx, ny  int32
	bitmask []uint8
	gx, gy, gz edgeGrid
}

func newSliceGrids(nx, ny int32) *sliceGrids {
	return &sliceGrids{
		nx:      nx,
		ny:      ny,
		bitmask: make([]uint8, nx*ny),
		gx:      newEdgeGrid(nx, ny),
		gy:      newEdgeGrid(nx, ny),
		gz:      newEdgeGrid(nx, ny),
	}
}

func (s *sliceGrids) clear() {
	for i := range s.bitmask {
		s.bitmask[i] = 0
	}
	s.gx.clear()
	s.gy.clear()
	s.gz.clear()
}

// buildSlice runs the Slice Bitmask Build and Slice Vertex Emit steps for
// the Z slice at z, over cube positions xr in [0,nx] and yr in [0,ny]
// (the extra row and column supply edge vertices a neighbouring real cube
// needs but never carry a cube configuration of their own).
//
// Per the original design note permitting implementations to skip the
// eight-case neighbour-bitmask derivation for clarity, every cube corner
// is read directly through the volume's bounds-checked sampler rather
// than reused from an adjacent cell's already-computed bitmask; the
// resulting configuration is identical either way.
func buildSlice(vol *volume.Volume, lower volume.Vec3I, step, z int32, lod int32, nx, ny int32, out *mesh.SurfaceMesh, g *sliceGrids) {
	sample := func(x, y, z int32) uint8 { return vol.SampleSubSampledWithBounds(x, y, z, lod) }

	for yr := int32(0); yr <= ny; yr++ {
		for xr := int32(0); xr <= nx; xr++ {
			x := lower.X + xr*step
			y := lower.Y + yr*step
			v0 := sample(x, y, z)

			if xr < nx {
				v1 := sample(x+step, y, z)
				if (v0 == 0) != (v1 == 0) {
					idx := out.AddVertex(axisVertex(0, volume.Vec3I{X: x, Y: y, Z: z}, v0, volume.Vec3I{X: x + step, Y: y, Z: z}, v1))
					g.gx.set(xr, yr, idx)
				}
			}
			if yr < ny {
				v3 := sample(x, y+step, z)
				if (v0 == 0) != (v3 == 0) {
					idx := out.AddVertex(axisVertex(1, volume.Vec3I{X: x, Y: y, Z: z}, v0, volume.Vec3I{X: x, Y: y + step, Z: z}, v3))
					g.gy.set(xr, yr, idx)
				}
			}
			v4 := sample(x, y, z+step)
			if (v0 == 0) != (v4 == 0) {
				idx := out.AddVertex(axisVertex(2, volume.Vec3I{X: x, Y: y, Z: z}, v0, volume.Vec3I{X: x, Y: y, Z: z + step}, v4))
				g.gz.set(xr, yr, idx)
			}

			if xr < nx && yr < ny {
				var cfg int
				for c := 0; c < 8; c++ {
					off := cornerOffset[c]
					if sample(x+off.X*step, y+off.Y*step, z+off.Z*step) != 0 {
						cfg |= 1 << uint(c)
					}
				}
				g.bitmask[yr*nx+xr] = uint8(cfg)
			}
		}
	}
}

// emitSliceTriangles runs the Slice Index Emit step for every non-empty
// cube on the previous slice, consuming its own bitmask plus the six edge
// grids split across prev and next per the edge->grid table.
func emitSliceTriangles(prev, next *sliceGrids, out *mesh.SurfaceMesh) {
	nx, ny := prev.nx, prev.ny
	var e [12]uint32

	lookup := func(edge int, g *edgeGrid, xr, yr int32) uint32 {
		v := g.at(xr, yr)
		if v == noVertex {
			panic(fmt.Sprintf("mc: missing edge vertex for cube edge %d at slice cell (%d,%d)", edge, xr, yr))
		}
		return v
	}

	for yr := int32(0); yr < ny; yr++ {
		for xr := int32(0); xr < nx; xr++ {
			cfg := prev.bitmask[yr*nx+xr]
			bits := edgeTable[cfg]
			if bits == 0 {
				continue
			}

			if bits&(1<<0) != 0 {
				e[0] = lookup(0, &prev.gx, xr, yr)
			}
			if bits&(1<<1) != 0 {
				e[1] = lookup(1, &prev.gy, xr+1, yr)
			}
			if bits&(1<<2) != 0 {
				e[2] = lookup(2, &prev.gx, xr, yr+1)
			}
			if bits&(1<<3) != 0 {
				e[3] = lookup(3, &prev.gy, xr, yr)
			}
			if bits&(1<<4) != 0 {
				e[4] = lookup(4, &next.gx, xr, yr)
			}
			if bits&(1<<5) != 0 {
				e[5] = lookup(5, &next.gy, xr+1, yr)
			}
			if bits&(1<<6) != 0 {
				e[6] = lookup(6, &next.gx, xr, yr+1)
			}
			if bits&(1<<7) != 0 {
				e[7] = lookup(7, &next.gy, xr, yr)
			}
			if bits&(1<<8) != 0 {
				e[8] = lookup(8, &prev.gz, xr, yr)
			}
			if bits&(1<<9) != 0 {
				e[9] = lookup(9, &prev.gz, xr+1, yr)
			}
			if bits&(1<<10) != 0 {
				e[10] = lookup(10, &prev.gz, xr+1, yr+1)
			}
			if bits&(1<<11) != 0 {
				e[11] = lookup(11, &prev.gz, xr, yr+1)
			}

			tris := triTable[cfg]
			for i := 0; i+2 < len(tris) && tris[i] >= 0; i += 3 {
				out.AddTriangle(e[tris[i]], e[tris[i+1]], e[tris[i+2]])
			}
		}
	}
}
