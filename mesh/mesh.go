// Package mesh holds the indexed triangle mesh produced by the extractor
// and consumed by the decimator and exporters.
package mesh

import "github.com/victorbstan/polyvox/volume"

// Vertex is a single surface vertex: position and normal in the
// coordinates of the volume the mesh was extracted from (positions are
// not offset by the mesh Region's lower corner), plus the material
// carried across from the voxel(s) that produced it.
type Vertex struct {
	Position volume.Vec3F
	Normal   volume.Vec3F
	Material uint8
}

// LodRecord is a contiguous [Begin, End) range into a SurfaceMesh's index
// array.
type LodRecord struct {
	Begin, End uint32
}

// SurfaceMesh is the output sink described by the core: an indexed
// triangle mesh plus its owning region and LOD ranges.
type SurfaceMesh struct {
	Vertices   []Vertex
	Indices    []uint32
	Region     volume.Region
	LodRecords []LodRecord
}

// Clear empties the mesh, ready for reuse by a fresh extraction.
func (m *SurfaceMesh) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
	m.LodRecords = m.LodRecords[:0]
}

// AddVertex appends a vertex and returns its index.
func (m *SurfaceMesh) AddVertex(v Vertex) uint32 {
	m.Vertices = append(m.Vertices, v)
	return uint32(len(m.Vertices) - 1)
}

// AddTriangle appends the three indices of a triangle, in winding order.
func (m *SurfaceMesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// IndexCount returns the number of indices (3x triangle count).
func (m *SurfaceMesh) IndexCount() int {
	return len(m.Indices)
}

// RemoveDegenerateTris deletes any triangle with two or more equal
// indices, compacting the index array in a single pass.
func (m *SurfaceMesh) RemoveDegenerateTris() {
	write := 0
	for read := 0; read+3 <= len(m.Indices); read += 3 {
		a, b, c := m.Indices[read], m.Indices[read+1], m.Indices[read+2]
		if a == b || b == c || c == a {
			continue
		}
		m.Indices[write], m.Indices[write+1], m.Indices[write+2] = a, b, c
		write += 3
	}
	m.Indices = m.Indices[:write]
}

// RemoveUnusedVertices drops every vertex that no triangle references and
// rewrites indices to match, preserving the relative order of the
// surviving vertices.
func (m *SurfaceMesh) RemoveUnusedVertices() {
	used := make([]bool, len(m.Vertices))
	for _, idx := range m.Indices {
		used[idx] = true
	}
	remap := make([]uint32, len(m.Vertices))
	newVerts := make([]Vertex, 0, len(m.Vertices))
	for i, u := range used {
		if !u {
			continue
		}
		remap[i] = uint32(len(newVerts))
		newVerts = append(newVerts, m.Vertices[i])
	}
	for i, idx := range m.Indices {
		m.Indices[i] = remap[idx]
	}
	m.Vertices = newVerts
}

// Clone returns a deep copy suitable for feeding to a decimator, which
// mutates its output independently of the input.
func (m *SurfaceMesh) Clone() *SurfaceMesh {
	out := &SurfaceMesh{
		Vertices:   append([]Vertex(nil), m.Vertices...),
		Indices:    append([]uint32(nil), m.Indices...),
		Region:     m.Region,
		LodRecords: append([]LodRecord(nil), m.LodRecords...),
	}
	return out
}
