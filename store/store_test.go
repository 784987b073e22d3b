package store

import (
	"path/filepath"
	"testing"

	"github.com/victorbstan/polyvox/volume"
)

func sampleVolume() *volume.Volume {
	v := volume.New(8, 8, 8)
	v.Set(0, 0, 0, 1)
	v.Set(1, 0, 0, 1)
	v.Set(7, 7, 7, 5)
	return v
}

func TestEncodeDecodeChunkRoundTrip(t *testing.T) {
	v := sampleVolume()
	data := EncodeChunk(v, 4)
	got, err := DecodeChunk(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width() != v.Width() || got.Height() != v.Height() || got.Depth() != v.Depth() {
		t.Fatalf("dimension mismatch: got %dx%dx%d", got.Width(), got.Height(), got.Depth())
	}
	for i, want := range v.Voxels() {
		if got.Voxels()[i] != want {
			t.Fatalf("voxel %d: got %d want %d", i, got.Voxels()[i], want)
		}
	}
}

func TestBestEncodingPicksSmallestForSparseData(t *testing.T) {
	voxels := make([]uint8, 512)
	voxels[10] = 1
	enc := bestEncoding(voxels, 4)
	if enc.encoding&^encCompressed == encDense {
		t.Fatal("expected a sparse-style encoding to win on near-empty data")
	}
}

func TestChangeSetRoundTrip(t *testing.T) {
	cs := ChangeSet{Edits: []VoxelEdit{
		{Index: 0, Value: 7},
		{Index: 511, Value: 255},
		{Index: 42, Value: 1},
	}}
	data := EncodeChangeSet(cs, 512)
	got, err := DecodeChangeSet(data, 512)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Edits) != len(cs.Edits) {
		t.Fatalf("got %d edits, want %d", len(got.Edits), len(cs.Edits))
	}
	for i, e := range cs.Edits {
		if got.Edits[i] != e {
			t.Fatalf("edit %d: got %+v want %+v", i, got.Edits[i], e)
		}
	}
}

func TestStoreSaveLoadApplyChangeSet(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, 4)
	if err != nil {
		t.Fatal(err)
	}
	coord := ChunkCoord{X: 0, Y: 0, Z: 0}
	v := sampleVolume()
	if err := s.SaveChunk(coord, v); err != nil {
		t.Fatal(err)
	}
	if !s.HasChunk(coord) {
		t.Fatal("expected HasChunk to report the saved chunk")
	}

	cs := ChangeSet{Edits: []VoxelEdit{{Index: uint32(3 + 3*8 + 3*64), Value: 9}}}
	dirty, err := s.ApplyChangeSet(coord, cs)
	if err != nil {
		t.Fatal(err)
	}
	if !dirty.Contains(volume.Vec3I{X: 3, Y: 3, Z: 3}) {
		t.Fatalf("expected dirty region to contain the edited voxel, got %v", dirty)
	}

	reloaded, err := s.LoadChunk(coord)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Sample(3, 3, 3) != 9 {
		t.Fatalf("got %d want 9", reloaded.Sample(3, 3, 3))
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	v1 := sampleVolume()
	v2 := volume.New(4, 4, 4)
	v2.Set(1, 1, 1, 3)

	entries := []PackEntry{
		{Coord: ChunkCoord{X: 0, Y: 0, Z: 0}, Data: EncodeChunk(v1, 4)},
		{Coord: ChunkCoord{X: 1, Y: 0, Z: 0}, Data: EncodeChunk(v2, 4)},
	}
	archive, err := Pack(entries)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unpack(archive)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	decoded, err := DecodeChunk(got[1].Data)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Sample(1, 1, 1) != 3 {
		t.Fatalf("got %d want 3", decoded.Sample(1, 1, 1))
	}
}

func TestChunkCoordFileName(t *testing.T) {
	c := ChunkCoord{X: -1, Y: 2, Z: 3}
	if got := filepath.Base(c.fileName()); got != "chunk_-1_2_3.pvox" {
		t.Fatalf("got %q", got)
	}
}
