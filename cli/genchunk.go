package cli

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/victorbstan/polyvox/store"
	"github.com/victorbstan/polyvox/volume"
)

// RunGenChunk creates a single chunk of the given extent, fills the given
// percentage of its voxels with random material ids in [1,255], and saves
// it into the store rooted at outDir under coord. Grounded on the
// teacher's noise-chunk generator, adapted from a fixed 16x16x16 grid to
// an arbitrary extent and from a 6-bit palette index to a full byte of
// material id.
func RunGenChunk(width, height, depth int32, fillPercent float64, outDir string, coord store.ChunkCoord, seed int64, logger *zap.Logger) error {
	if fillPercent < 0 {
		fillPercent = 0
	}
	if fillPercent > 100 {
		fillPercent = 100
	}

	vol := volume.New(width, height, depth)
	total := int(width) * int(height) * int(depth)
	want := int(float64(total)*(fillPercent/100.0) + 0.5)
	if want > total {
		want = total
	}

	idx := make([]int, total)
	for i := range idx {
		idx[i] = i
	}
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < want; i++ {
		j := i + r.Intn(total-i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	w, h := width, height
	for k := 0; k < want; k++ {
		i := int32(idx[k])
		z := i / (w * h)
		rem := i % (w * h)
		y := rem / w
		x := rem % w
		material := uint8(1 + r.Intn(255))
		vol.Set(x, y, z, material)
	}

	s, err := store.NewStore(outDir, 8)
	if err != nil {
		return fmt.Errorf("cli: opening store: %w", err)
	}
	s.Logger = logger
	if err := s.SaveChunk(coord, vol); err != nil {
		return fmt.Errorf("cli: saving generated chunk: %w", err)
	}
	logger.Info("generated chunk",
		zap.Int32("width", width), zap.Int32("height", height), zap.Int32("depth", depth),
		zap.Float64("fill_percent", fillPercent), zap.Int("voxels_filled", want))
	return nil
}
