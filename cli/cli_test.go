package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"github.com/victorbstan/polyvox/store"
)

func itoa(n int32) string { return strconv.FormatInt(int64(n), 10) }

func TestRunGenChunkAndExtract(t *testing.T) {
	chunkDir := t.TempDir()
	coord := store.ChunkCoord{X: 0, Y: 0, Z: 0}
	logger := zap.NewNop()

	if err := RunGenChunk(8, 8, 8, 50, chunkDir, coord, 42, logger); err != nil {
		t.Fatal(err)
	}

	s, err := store.NewStore(chunkDir, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !s.HasChunk(coord) {
		t.Fatal("expected genchunk to have saved a chunk file")
	}

	outPath := filepath.Join(t.TempDir(), "out.glb")
	if err := RunExtract(chunkDir, coord, 0, 0, outPath, logger); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || string(data[:4]) != "glTF" {
		t.Fatalf("expected a glb file at %s", outPath)
	}
}

func TestRunExtractWithDecimation(t *testing.T) {
	chunkDir := t.TempDir()
	coord := store.ChunkCoord{X: 1, Y: 0, Z: 0}
	logger := zap.NewNop()

	if err := RunGenChunk(8, 8, 8, 80, chunkDir, coord, 7, logger); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(t.TempDir(), "out.glb")
	if err := RunExtract(chunkDir, coord, 0, 0.999, outPath, logger); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatal(err)
	}
}

func TestRunPackAndUnpackRoundTrip(t *testing.T) {
	chunkDir := t.TempDir()
	logger := zap.NewNop()
	coords := []store.ChunkCoord{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}
	for _, c := range coords {
		if err := RunGenChunk(4, 4, 4, 30, chunkDir, c, 3, logger); err != nil {
			t.Fatal(err)
		}
	}

	inputs := make([]string, len(coords))
	for i, c := range coords {
		inputs[i] = filepath.Join(chunkDir, "chunk_"+itoa(c.X)+"_"+itoa(c.Y)+"_"+itoa(c.Z)+".pvox")
	}

	archivePath := filepath.Join(t.TempDir(), "region.pvoxpack")
	if err := RunPack(archivePath, inputs, logger); err != nil {
		t.Fatal(err)
	}

	outDir := t.TempDir()
	if err := RunUnpack(archivePath, outDir, logger); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(coords) {
		t.Fatalf("got %d unpacked files, want %d", len(entries), len(coords))
	}
}
