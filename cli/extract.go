// Package cli implements the Run* entry points behind the polyvoxtool
// subcommands: one function per command, each taking already-parsed
// arguments and doing the actual work, mirroring the teacher's
// utils.Run* functions.
package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/victorbstan/polyvox/decimate"
	"github.com/victorbstan/polyvox/export"
	"github.com/victorbstan/polyvox/mc"
	"github.com/victorbstan/polyvox/store"
)

// RunExtract loads the chunk at coord from the store rooted at chunkDir,
// runs the surface extractor over its full extent at the given LOD, and
// writes the result as a GLB to outPath. If decimateThreshold is > 0 the
// extracted mesh is decimated (cosine-similarity normal threshold) before
// export.
func RunExtract(chunkDir string, coord store.ChunkCoord, lod int32, decimateThreshold float32, outPath string, logger *zap.Logger) error {
	s, err := store.NewStore(chunkDir, 4)
	if err != nil {
		return fmt.Errorf("cli: opening store: %w", err)
	}
	s.Logger = logger

	vol, err := s.LoadChunk(coord)
	if err != nil {
		return fmt.Errorf("cli: loading chunk %+v: %w", coord, err)
	}

	opts := mc.Options{Lod: lod}
	surface := mc.ExtractRegion(vol, vol.EnclosingRegion(), opts)

	if decimateThreshold > 0 {
		decimate.Logger = logger
		dopts := decimate.DefaultOptions()
		dopts.NormalThreshold = decimateThreshold
		before := len(surface.Indices) / 3
		surface = decimate.Decimate(surface, dopts)
		logger.Info("decimated extracted mesh",
			zap.Int("triangles_before", before), zap.Int("triangles_after", len(surface.Indices)/3))
	}

	export.Logger = logger
	if err := export.ExportGLBFile(surface, export.DefaultPalette(), outPath); err != nil {
		return fmt.Errorf("cli: exporting glb: %w", err)
	}
	logger.Info("extracted chunk to glb",
		zap.String("out", outPath), zap.Int32("lod", lod), zap.Int("vertices", len(surface.Vertices)))
	return nil
}
