package decimate

import (
	"testing"

	"github.com/victorbstan/polyvox/mesh"
	"github.com/victorbstan/polyvox/volume"
)

// flatQuad builds two coplanar triangles sharing an edge, forming a
// simple flat quad in the XY plane, all one material, no region lock.
func flatQuad() *mesh.SurfaceMesh {
	m := &mesh.SurfaceMesh{
		Region: volume.NewRegion(volume.Vec3I{X: -100, Y: -100, Z: -100}, volume.Vec3I{X: 100, Y: 100, Z: 100}),
	}
	up := volume.Vec3F{Z: 1}
	v0 := m.AddVertex(mesh.Vertex{Position: volume.Vec3F{X: 0, Y: 0}, Normal: up, Material: 1})
	v1 := m.AddVertex(mesh.Vertex{Position: volume.Vec3F{X: 1, Y: 0}, Normal: up, Material: 1})
	v2 := m.AddVertex(mesh.Vertex{Position: volume.Vec3F{X: 1, Y: 1}, Normal: up, Material: 1})
	v3 := m.AddVertex(mesh.Vertex{Position: volume.Vec3F{X: 0, Y: 1}, Normal: up, Material: 1})
	m.AddTriangle(v0, v1, v2)
	m.AddTriangle(v0, v2, v3)
	return m
}

func TestDecimateReducesFlatQuad(t *testing.T) {
	m := flatQuad()
	out := Decimate(m, Options{NormalThreshold: 0.9, LockRegionFaces: false, MaxPasses: 8})
	if len(out.Indices) >= len(m.Indices) {
		t.Fatalf("expected fewer indices after decimation, got %d (started with %d)", len(out.Indices), len(m.Indices))
	}
}

func TestDecimateNeverCollapsesAcrossMaterials(t *testing.T) {
	m := &mesh.SurfaceMesh{Region: volume.NewRegion(volume.Vec3I{X: -100, Y: -100, Z: -100}, volume.Vec3I{X: 100, Y: 100, Z: 100})}
	up := volume.Vec3F{Z: 1}
	v0 := m.AddVertex(mesh.Vertex{Position: volume.Vec3F{X: 0, Y: 0}, Normal: up, Material: 1})
	v1 := m.AddVertex(mesh.Vertex{Position: volume.Vec3F{X: 1, Y: 0}, Normal: up, Material: 2})
	v2 := m.AddVertex(mesh.Vertex{Position: volume.Vec3F{X: 1, Y: 1}, Normal: up, Material: 1})
	m.AddTriangle(v0, v1, v2)

	out := Decimate(m, Options{NormalThreshold: 0.9, LockRegionFaces: false, MaxPasses: 8})
	if len(out.Vertices) != 3 {
		t.Fatalf("expected all 3 vertices to survive a material boundary, got %d", len(out.Vertices))
	}
}

func TestDecimateRespectsRegionFaceLock(t *testing.T) {
	m := flatQuad()
	// Shrink the region so every quad vertex (X,Y in {0,1}) sits exactly on
	// one of its faces.
	m.Region = volume.NewRegion(volume.Vec3I{X: 0, Y: 0, Z: -100}, volume.Vec3I{X: 1, Y: 1, Z: 100})
	out := Decimate(m, Options{NormalThreshold: 0.9, LockRegionFaces: true, MaxPasses: 8})
	if len(out.Vertices) != len(m.Vertices) {
		t.Fatalf("expected no collapses with every vertex locked, got %d vertices (started with %d)", len(out.Vertices), len(m.Vertices))
	}
}

func TestDecimateEmptyMesh(t *testing.T) {
	m := &mesh.SurfaceMesh{}
	out := Decimate(m, DefaultOptions())
	if len(out.Vertices) != 0 || len(out.Indices) != 0 {
		t.Fatal("expected decimating an empty mesh to produce an empty mesh")
	}
}
