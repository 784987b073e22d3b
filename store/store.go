package store

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/victorbstan/polyvox/volume"
)

// ChunkCoord addresses one chunk in a grid of fixed-size chunks.
type ChunkCoord struct {
	X, Y, Z int32
}

func (c ChunkCoord) fileName() string {
	return fmt.Sprintf("chunk_%d_%d_%d.pvox", c.X, c.Y, c.Z)
}

// Store persists chunks as individual PVOX files under a directory. It
// is not concurrency-safe: callers touching the same chunk from multiple
// goroutines must serialize externally.
type Store struct {
	dir string
	bpp uint8

	// Logger receives warn-level diagnostics, e.g. a change-set edit that
	// required clamping its dirty region to the chunk's own bounds. It is
	// never nil; NewStore defaults it to a no-op logger.
	Logger *zap.Logger
}

// NewStore opens a chunk store rooted at dir, creating it if necessary.
// bpp is the bits-per-voxel used for newly saved chunks.
func NewStore(dir string, bpp uint8) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, bpp: bpp, Logger: zap.NewNop()}, nil
}

func (s *Store) path(c ChunkCoord) string {
	return filepath.Join(s.dir, c.fileName())
}

// SaveChunk writes vol to disk at coord, overwriting any existing chunk.
func (s *Store) SaveChunk(coord ChunkCoord, vol *volume.Volume) error {
	data := EncodeChunk(vol, s.bpp)
	return os.WriteFile(s.path(coord), data, 0o644)
}

// LoadChunk reads the chunk at coord back into memory.
func (s *Store) LoadChunk(coord ChunkCoord) (*volume.Volume, error) {
	data, err := os.ReadFile(s.path(coord))
	if err != nil {
		return nil, err
	}
	return DecodeChunk(data)
}

// HasChunk reports whether a chunk file exists at coord.
func (s *Store) HasChunk(coord ChunkCoord) bool {
	_, err := os.Stat(s.path(coord))
	return err == nil
}

// ApplyChangeSet loads the chunk at coord, applies every edit in cs, and
// rewrites it to disk. It returns the region (in the chunk's local voxel
// coordinates, grown by one cell on every face) that callers must
// re-extract, since a marching-cubes cell touching an edited voxel spans
// into its neighbours.
func (s *Store) ApplyChangeSet(coord ChunkCoord, cs ChangeSet) (volume.Region, error) {
	vol, err := s.LoadChunk(coord)
	if err != nil {
		return volume.Region{}, err
	}

	// Start from an empty (invalid) region so Union takes the first edit's
	// bounds as they are.
	dirty := volume.NewRegion(volume.Vec3I{X: 0, Y: 0, Z: 0}, volume.Vec3I{X: -1, Y: -1, Z: -1})
	w, h := vol.Width(), vol.Height()
	for _, e := range cs.Edits {
		x := int32(e.Index) % w
		y := (int32(e.Index) / w) % h
		z := int32(e.Index) / (w * h)
		vol.Set(x, y, z, e.Value)
		dirty = dirty.Union(volume.NewRegion(volume.Vec3I{X: x, Y: y, Z: z}, volume.Vec3I{X: x, Y: y, Z: z}))
	}
	if !dirty.IsValid() {
		return dirty, s.SaveChunk(coord, vol)
	}
	grown := dirty.Grow(1)
	dirty = grown.CropTo(vol.EnclosingRegion())
	if dirty != grown {
		s.Logger.Warn("change-set dirty region clamped to chunk bounds",
			zap.Int32("coord_x", coord.X), zap.Int32("coord_y", coord.Y), zap.Int32("coord_z", coord.Z))
	}

	if err := s.SaveChunk(coord, vol); err != nil {
		return volume.Region{}, err
	}
	return dirty, nil
}
