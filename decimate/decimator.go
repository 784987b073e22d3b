// Package decimate reduces a mesh.SurfaceMesh's triangle count through
// repeated edge collapse, while refusing to touch edges that carry
// information the rest of the pipeline depends on: material boundaries,
// region-face boundaries (so neighbouring chunks keep matching edges),
// and collapses that would flip a triangle's facing or bend a smooth
// surface past a caller-chosen angle.
package decimate

import (
	"math"

	"go.uber.org/zap"

	"github.com/victorbstan/polyvox/mesh"
	"github.com/victorbstan/polyvox/volume"
)

// Logger receives warn-level diagnostics from this package, e.g. a pass
// that collapsed nothing before MaxPasses was reached. No-op by default.
var Logger = zap.NewNop()

// Options configures a decimation run.
type Options struct {
	// NormalThreshold is the minimum cosine similarity an edge's two
	// vertex normals must have for the edge to be a collapse candidate,
	// and the minimum a triangle's face normal may drift to before a
	// collapse that would rotate it is refused. 1.0 permits only
	// perfectly flat regions to collapse; 0.999 (the baseline
	// PositionMaterial threshold this is grounded on) is a reasonable
	// default on geometry with estimated normals.
	NormalThreshold float32
	// LockRegionFaces refuses to grow the set of region faces any vertex
	// sits on, so decimating a chunk independently still leaves its
	// border matching its neighbours.
	LockRegionFaces bool
	// MaxPasses bounds the number of full sweeps over the mesh; the
	// algorithm also stops early once a pass collapses nothing.
	MaxPasses int
}

// DefaultOptions mirrors the fixed 0.999 threshold the original decimator
// uses when a vertex carries no user-supplied normal tolerance.
func DefaultOptions() Options {
	return Options{NormalThreshold: 0.999, LockRegionFaces: true, MaxPasses: 32}
}

// regionFace bits identify which of the six faces of a mesh's Region a
// vertex lies on; a vertex can sit on more than one (an edge or corner).
const (
	faceLowerX uint8 = 1 << 0
	faceUpperX uint8 = 1 << 1
	faceLowerY uint8 = 1 << 2
	faceUpperY uint8 = 1 << 3
	faceLowerZ uint8 = 1 << 4
	faceUpperZ uint8 = 1 << 5
)

func regionFaceBits(p volume.Vec3F, r volume.Region) uint8 {
	var bits uint8
	if p.X == float32(r.Lower.X) {
		bits |= faceLowerX
	}
	if p.X == float32(r.Upper.X) {
		bits |= faceUpperX
	}
	if p.Y == float32(r.Lower.Y) {
		bits |= faceLowerY
	}
	if p.Y == float32(r.Upper.Y) {
		bits |= faceUpperY
	}
	if p.Z == float32(r.Lower.Z) {
		bits |= faceLowerZ
	}
	if p.Z == float32(r.Upper.Z) {
		bits |= faceUpperZ
	}
	return bits
}

// Decimate returns a reduced copy of m; the input is left untouched.
func Decimate(m *mesh.SurfaceMesh, opts Options) *mesh.SurfaceMesh {
	out := m.Clone()
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = 32
	}

	d := &decimator{mesh: out, opts: opts}
	d.fillInitialVertexMetadata()

	for pass := 0; pass < opts.MaxPasses; pass++ {
		d.buildConnectivityData()
		d.classifyVertices()
		collapsed := d.performDecimationPass()
		if collapsed == 0 {
			Logger.Warn("decimation pass made no progress, stopping early",
				zap.Int("pass", pass), zap.Int("max_passes", opts.MaxPasses))
			break
		}
	}

	out.RemoveDegenerateTris()
	out.RemoveUnusedVertices()
	out.LodRecords = out.LodRecords[:0]
	out.LodRecords = append(out.LodRecords, mesh.LodRecord{Begin: 0, End: uint32(len(out.Indices))})
	return out
}

type decimator struct {
	mesh *mesh.SurfaceMesh
	opts Options

	regionFaces []uint8 // fixed at startup, from original vertex positions
	removed     []bool  // vertex removed by a collapse this run

	neighbors []map[uint32]struct{}
	triangles []map[int]struct{} // vertex -> set of triangle indices (Indices[3*t:3*t+3])

	isOnMaterialEdge []bool          // recomputed every pass
	vertexNormal     []volume.Vec3F  // recomputed every pass
}

// fillInitialVertexMetadata records which region faces each vertex starts
// on. Surviving vertices never move (a collapse keeps the destination's
// position), so this only needs computing once, up front.
func (d *decimator) fillInitialVertexMetadata() {
	n := len(d.mesh.Vertices)
	d.removed = make([]bool, n)
	d.regionFaces = make([]uint8, n)
	if !d.opts.LockRegionFaces {
		return
	}
	r := d.mesh.Region
	for i, v := range d.mesh.Vertices {
		d.regionFaces[i] = regionFaceBits(v.Position, r)
	}
}

// buildConnectivityData rebuilds the vertex adjacency and vertex->triangle
// maps from the mesh's current index buffer. Called at the start of every
// pass since the previous pass may have collapsed edges and changed it.
func (d *decimator) buildConnectivityData() {
	n := len(d.mesh.Vertices)
	d.neighbors = make([]map[uint32]struct{}, n)
	d.triangles = make([]map[int]struct{}, n)
	for i := 0; i < n; i++ {
		d.neighbors[i] = make(map[uint32]struct{})
		d.triangles[i] = make(map[int]struct{})
	}

	idx := d.mesh.Indices
	for t := 0; t*3+2 < len(idx); t++ {
		a, b, c := idx[t*3], idx[t*3+1], idx[t*3+2]
		for _, v := range [3]uint32{a, b, c} {
			d.triangles[v][t] = struct{}{}
		}
		addEdge(d.neighbors, a, b)
		addEdge(d.neighbors, b, c)
		addEdge(d.neighbors, c, a)
	}
}

func addEdge(neighbors []map[uint32]struct{}, a, b uint32) {
	neighbors[a][b] = struct{}{}
	neighbors[b][a] = struct{}{}
}

// classifyVertices recomputes, from the current triangle set, which
// vertices sit on a material boundary and what normal each vertex carries
// for the purposes of the normal-preservation and region-face checks: a
// vertex keeps its own carried normal if it has one, otherwise its normal
// is the normalized sum of its incident triangles' face normals.
func (d *decimator) classifyVertices() {
	n := len(d.mesh.Vertices)
	d.isOnMaterialEdge = make([]bool, n)
	d.vertexNormal = make([]volume.Vec3F, n)

	verts := d.mesh.Vertices
	idx := d.mesh.Indices
	faceNormalSum := make([]volume.Vec3F, n)

	for t := 0; t*3+2 < len(idx); t++ {
		a, b, c := idx[t*3], idx[t*3+1], idx[t*3+2]
		ma, mb, mc := verts[a].Material, verts[b].Material, verts[c].Material
		if ma != mb || mb != mc {
			d.isOnMaterialEdge[a] = true
			d.isOnMaterialEdge[b] = true
			d.isOnMaterialEdge[c] = true
		}
		fn := triangleNormal(verts[a].Position, verts[b].Position, verts[c].Position)
		faceNormalSum[a] = addVec(faceNormalSum[a], fn)
		faceNormalSum[b] = addVec(faceNormalSum[b], fn)
		faceNormalSum[c] = addVec(faceNormalSum[c], fn)
	}

	for i, v := range verts {
		if v.Normal != (volume.Vec3F{}) {
			d.vertexNormal[i] = v.Normal
		} else {
			d.vertexNormal[i] = normalize(faceNormalSum[i])
		}
	}
}

func addVec(a, b volume.Vec3F) volume.Vec3F {
	return volume.Vec3F{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// performDecimationPass sweeps every live edge once, attempting a
// collapse on each. A vertex that has already been absorbed or has
// absorbed another vertex this pass is skipped for the rest of the pass,
// so a single pass never chains collapses through a vertex that just
// moved.
func (d *decimator) performDecimationPass() int {
	touched := make([]bool, len(d.mesh.Vertices))
	collapses := 0

	for v0 := range d.neighbors {
		if d.removed[v0] || touched[v0] {
			continue
		}
		for v1 := range d.neighbors[v0] {
			if d.removed[v1] || touched[uint32(v1)] {
				continue
			}
			if d.attemptEdgeCollapse(uint32(v0), v1) {
				touched[v0] = true
				touched[v1] = true
				collapses++
				break
			}
		}
	}
	return collapses
}

// attemptEdgeCollapse tries merging v1 into v0, keeping v0's position. It
// refuses whenever any of the original decimator's collapse vetoes apply:
// a material boundary, a region-face vertex that would gain faces or tilt
// its normal, a normal discontinuity beyond the configured threshold, a
// non-manifold collapse, or a resulting flipped face.
func (d *decimator) attemptEdgeCollapse(v0, v1 uint32) bool {
	if !d.canCollapseMaterialEdge(v1) {
		return false
	}
	if !d.canCollapseRegionFace(v0, v1) {
		return false
	}
	if !d.canCollapseNormalEdge(v0, v1) {
		return false
	}
	if !d.isManifoldLink(v0, v1) {
		return false
	}
	if d.collapseChangesFaceNormals(v0, v1) {
		return false
	}

	d.collapse(v0, v1)
	return true
}

// canCollapseMaterialEdge refuses to move src when it sits on a material
// boundary, regardless of what it would collapse onto: a vertex only
// counts as being on a material edge once, from the triangles already
// touching it, not from a pairwise comparison against the specific
// collapse target.
func (d *decimator) canCollapseMaterialEdge(src uint32) bool {
	return !d.isOnMaterialEdge[src]
}

// canCollapseRegionFace permits src (the vertex being removed) to collapse
// onto dst only if dst already sits on every region face src does — so an
// edge-on-a-face vertex may collapse onto a corner, but a corner may never
// collapse onto a plain edge vertex — and, when src does sit on a region
// face, only if dst's normal agrees closely enough that the chunk border
// stays visually flat.
func (d *decimator) canCollapseRegionFace(dst, src uint32) bool {
	srcFaces := d.regionFaces[src]
	dstFaces := d.regionFaces[dst]
	if srcFaces & ^dstFaces != 0 {
		return false
	}
	if srcFaces == 0 {
		return true
	}
	n0 := d.vertexNormal[dst]
	n1 := d.vertexNormal[src]
	dot := n0.X*n1.X + n0.Y*n1.Y + n0.Z*n1.Z
	return dot >= 0.999
}

// canCollapseNormalEdge requires the two vertices' classified normals to
// agree within NormalThreshold (as a cosine similarity).
func (d *decimator) canCollapseNormalEdge(v0, v1 uint32) bool {
	n0 := d.vertexNormal[v0]
	n1 := d.vertexNormal[v1]
	dot := n0.X*n1.X + n0.Y*n1.Y + n0.Z*n1.Z
	return dot >= d.opts.NormalThreshold
}

// isManifoldLink is the standard link condition for a manifold edge
// collapse: the vertices adjacent to both v0 and v1 must be exactly the
// (at most two) vertices shared by the triangles straddling the edge. When
// more vertices are shared, collapsing would pinch the mesh into a
// non-manifold configuration. This is a structural safeguard the original
// decimator does not need to express explicitly, since its fixed grid
// topology can't produce the configurations it rules out; it earns its
// keep here because arbitrary collapses can.
func (d *decimator) isManifoldLink(v0, v1 uint32) bool {
	shared := 0
	for n := range d.neighbors[v0] {
		if _, ok := d.neighbors[v1][n]; ok {
			shared++
		}
	}
	return shared <= 2
}

// collapseChangesFaceNormals reports whether moving v1 onto v0 would
// rotate any triangle currently touching v1 (other than the ones removed
// by the collapse itself) past the configured normal threshold.
func (d *decimator) collapseChangesFaceNormals(v0, v1 uint32) bool {
	idx := d.mesh.Indices
	verts := d.mesh.Vertices
	for t := range d.triangles[v1] {
		a, b, c := idx[t*3], idx[t*3+1], idx[t*3+2]
		if a == v0 || b == v0 || c == v0 {
			continue // removed by the collapse, not reshaped by it
		}
		before := triangleNormal(verts[a].Position, verts[b].Position, verts[c].Position)

		na, nb, nc := a, b, c
		switch v1 {
		case a:
			na = v0
		case b:
			nb = v0
		case c:
			nc = v0
		}
		after := triangleNormal(verts[na].Position, verts[nb].Position, verts[nc].Position)

		dot := before.X*after.X + before.Y*after.Y + before.Z*after.Z
		if dot < d.opts.NormalThreshold {
			return true
		}
	}
	return false
}

func triangleNormal(a, b, c volume.Vec3F) volume.Vec3F {
	e1 := volume.Vec3F{X: b.X - a.X, Y: b.Y - a.Y, Z: b.Z - a.Z}
	e2 := volume.Vec3F{X: c.X - a.X, Y: c.Y - a.Y, Z: c.Z - a.Z}
	cross := volume.Vec3F{
		X: e1.Y*e2.Z - e1.Z*e2.Y,
		Y: e1.Z*e2.X - e1.X*e2.Z,
		Z: e1.X*e2.Y - e1.Y*e2.X,
	}
	return normalize(cross)
}

func normalize(v volume.Vec3F) volume.Vec3F {
	lenSq := v.X*v.X + v.Y*v.Y + v.Z*v.Z
	if lenSq < 1e-12 {
		return volume.Vec3F{}
	}
	inv := float32(1.0 / math.Sqrt(float64(lenSq)))
	return volume.Vec3F{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

// collapse rewrites every triangle referencing v1 to reference v0 instead
// and marks v1 removed. Degenerate triangles this introduces are dropped
// by the caller's final RemoveDegenerateTris pass.
func (d *decimator) collapse(v0, v1 uint32) {
	idx := d.mesh.Indices
	for i, x := range idx {
		if x == v1 {
			idx[i] = v0
		}
	}
	d.removed[v1] = true
}
