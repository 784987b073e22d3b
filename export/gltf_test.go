package export

import (
	"bytes"
	"testing"

	"github.com/victorbstan/polyvox/mesh"
	"github.com/victorbstan/polyvox/volume"
)

func triangleMesh() *mesh.SurfaceMesh {
	var m mesh.SurfaceMesh
	a := m.AddVertex(mesh.Vertex{Position: volume.Vec3F{X: 0}, Normal: volume.Vec3F{Z: 1}, Material: 1})
	b := m.AddVertex(mesh.Vertex{Position: volume.Vec3F{X: 1}, Normal: volume.Vec3F{Z: 1}, Material: 1})
	c := m.AddVertex(mesh.Vertex{Position: volume.Vec3F{X: 1, Y: 1}, Normal: volume.Vec3F{Z: 1}, Material: 1})
	m.AddTriangle(a, b, c)
	return &m
}

func TestExportGLBProducesGLBMagic(t *testing.T) {
	data, err := ExportGLB(triangleMesh(), DefaultPalette())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || !bytes.Equal(data[:4], []byte("glTF")) {
		t.Fatalf("expected a glTF binary header, got %v", data[:min(4, len(data))])
	}
}

func TestExportGLBFileWritesFile(t *testing.T) {
	path := t.TempDir() + "/chunk.glb"
	if err := ExportGLBFile(triangleMesh(), DefaultPalette(), path); err != nil {
		t.Fatal(err)
	}
}

func TestExportGLBMultiCombinesMeshes(t *testing.T) {
	path := t.TempDir() + "/pack.glb"
	entries := []NamedMesh{
		{Name: "a", Mesh: triangleMesh()},
		{Name: "b", Mesh: triangleMesh()},
	}
	if err := ExportGLBMulti(entries, DefaultPalette(), path); err != nil {
		t.Fatal(err)
	}
}
