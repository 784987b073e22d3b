package mc

import (
	"testing"

	"github.com/victorbstan/polyvox/volume"
)

func singleVoxelVolume() *volume.Volume {
	v := volume.New(4, 4, 4)
	v.Set(1, 1, 1, 42)
	return v
}

func TestExtractRegionSingleVoxelProducesClosedSurface(t *testing.T) {
	v := singleVoxelVolume()
	m := ExtractRegion(v, v.EnclosingRegion(), Options{})

	if len(m.Vertices) == 0 {
		t.Fatal("expected vertices for an isolated solid voxel")
	}
	if len(m.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(m.Indices))
	}
	if len(m.Indices) == 0 {
		t.Fatal("expected at least one triangle")
	}

	for _, vtx := range m.Vertices {
		if vtx.Material != 42 {
			t.Fatalf("expected material 42, got %d", vtx.Material)
		}
	}
}

func TestExtractRegionEmptyVolumeProducesNoMesh(t *testing.T) {
	v := volume.New(4, 4, 4)
	m := ExtractRegion(v, v.EnclosingRegion(), Options{})
	if len(m.Vertices) != 0 || len(m.Indices) != 0 {
		t.Fatalf("expected empty mesh, got %d verts %d indices", len(m.Vertices), len(m.Indices))
	}
}

func TestExtractRegionSharesVerticesAcrossAdjacentCells(t *testing.T) {
	v := volume.New(4, 4, 4)
	v.Set(1, 1, 1, 1)
	v.Set(2, 1, 1, 1)
	m := ExtractRegion(v, v.EnclosingRegion(), Options{})

	seen := make(map[[3]float32]bool)
	for _, vtx := range m.Vertices {
		key := [3]float32{vtx.Position.X, vtx.Position.Y, vtx.Position.Z}
		if seen[key] {
			t.Fatalf("duplicate vertex at %v, cache failed to share it", key)
		}
		seen[key] = true
	}
}

func TestExtractRegionWithLodUsesDecimatedStep(t *testing.T) {
	v := volume.New(8, 8, 8)
	for z := int32(0); z < 8; z++ {
		for y := int32(0); y < 8; y++ {
			for x := int32(0); x < 8; x++ {
				if x < 4 {
					v.Set(x, y, z, 1)
				}
			}
		}
	}
	m := ExtractRegion(v, v.EnclosingRegion(), Options{Lod: 1})
	if len(m.Vertices) == 0 {
		t.Fatal("expected a surface at the material boundary even under LOD")
	}
}

func TestExtractRegionCropsToVolumeBounds(t *testing.T) {
	v := singleVoxelVolume()
	oversized := volume.NewRegion(volume.Vec3I{X: -5, Y: -5, Z: -5}, volume.Vec3I{X: 20, Y: 20, Z: 20})
	m := ExtractRegion(v, oversized, Options{})
	if m.Region != v.EnclosingRegion() {
		t.Fatalf("expected region cropped to volume bounds, got %v", m.Region)
	}
}

func TestExtractRegionProducesAxisAlignedNormals(t *testing.T) {
	v := singleVoxelVolume()
	m := ExtractRegion(v, v.EnclosingRegion(), Options{})
	for _, vtx := range m.Vertices {
		if vtx.Normal.X == 0 && vtx.Normal.Y == 0 && vtx.Normal.Z == 0 {
			t.Fatalf("expected a non-zero axis-aligned normal, got %v", vtx.Normal)
		}
		axes := 0
		for _, c := range []float32{vtx.Normal.X, vtx.Normal.Y, vtx.Normal.Z} {
			if c != 0 {
				axes++
				if c != 1 && c != -1 {
					t.Fatalf("expected a unit axis-aligned component, got %v", vtx.Normal)
				}
			}
		}
		if axes != 1 {
			t.Fatalf("expected exactly one non-zero axis in normal, got %v", vtx.Normal)
		}
	}
}

func TestExtractRegionPlanarInterfaceFacesOutward(t *testing.T) {
	v := volume.New(4, 4, 4)
	for z := int32(0); z < 2; z++ {
		for y := int32(0); y < 4; y++ {
			for x := int32(0); x < 4; x++ {
				v.Set(x, y, z, 1)
			}
		}
	}
	m := ExtractRegion(v, v.EnclosingRegion(), Options{})
	for i := 0; i+2 < len(m.Indices); i += 3 {
		n := m.Vertices[m.Indices[i]].Normal
		if n.X != 0 || n.Y != 0 || n.Z != 1 {
			t.Fatalf("expected every triangle normal to be (0,0,+1) on a flat +Z interface, got %v", n)
		}
	}
}
