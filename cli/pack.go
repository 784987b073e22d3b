package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/victorbstan/polyvox/store"
)

// RunPack reads a list of .pvox chunk files, parses each filename back
// into a ChunkCoord (the format SaveChunk writes, "chunk_X_Y_Z.pvox"),
// and archives them into a single .pvoxpack at outPath. Grounded on the
// teacher's vopl2voplpack, adapted from the teacher's zlib-per-entry pack
// to a whole-archive zstd pack (see the store package's pack.go for why).
func RunPack(outPath string, inputFiles []string, logger *zap.Logger) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("cli: no chunk files provided")
	}
	entries := make([]store.PackEntry, len(inputFiles))
	for i, path := range inputFiles {
		coord, err := parseChunkFileName(path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cli: reading %s: %w", path, err)
		}
		entries[i] = store.PackEntry{Coord: coord, Data: data}
	}

	archive, err := store.Pack(entries)
	if err != nil {
		return fmt.Errorf("cli: packing: %w", err)
	}
	if err := os.WriteFile(outPath, archive, 0o644); err != nil {
		return fmt.Errorf("cli: writing %s: %w", outPath, err)
	}
	logger.Info("packed chunks", zap.Int("count", len(entries)), zap.String("out", outPath))
	return nil
}

// RunUnpack reads a .pvoxpack archive and writes each entry back out as
// an individual .pvox file into outDir, named by its ChunkCoord.
func RunUnpack(packPath, outDir string, logger *zap.Logger) error {
	archive, err := os.ReadFile(packPath)
	if err != nil {
		return fmt.Errorf("cli: reading %s: %w", packPath, err)
	}
	entries, err := store.Unpack(archive)
	if err != nil {
		return fmt.Errorf("cli: unpacking: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("cli: creating %s: %w", outDir, err)
	}
	for _, e := range entries {
		name := fmt.Sprintf("chunk_%d_%d_%d.pvox", e.Coord.X, e.Coord.Y, e.Coord.Z)
		if err := os.WriteFile(filepath.Join(outDir, name), e.Data, 0o644); err != nil {
			return fmt.Errorf("cli: writing %s: %w", name, err)
		}
	}
	logger.Info("unpacked archive", zap.Int("count", len(entries)), zap.String("out_dir", outDir))
	return nil
}

func parseChunkFileName(path string) (store.ChunkCoord, error) {
	base := strings.TrimSuffix(filepath.Base(path), ".pvox")
	parts := strings.Split(base, "_")
	if len(parts) != 4 || parts[0] != "chunk" {
		return store.ChunkCoord{}, fmt.Errorf("cli: %s is not a chunk_X_Y_Z.pvox file", path)
	}
	x, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return store.ChunkCoord{}, fmt.Errorf("cli: %s: %w", path, err)
	}
	y, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		return store.ChunkCoord{}, fmt.Errorf("cli: %s: %w", path, err)
	}
	z, err := strconv.ParseInt(parts[3], 10, 32)
	if err != nil {
		return store.ChunkCoord{}, fmt.Errorf("cli: %s: %w", path, err)
	}
	return store.ChunkCoord{X: int32(x), Y: int32(y), Z: int32(z)}, nil
}
