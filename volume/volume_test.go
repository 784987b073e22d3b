package volume

import "testing"

func TestNewPanicsOnNonPositiveDimension(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on zero dimension")
		}
	}()
	New(0, 1, 1)
}

func TestSetAndSample(t *testing.T) {
	v := New(4, 4, 4)
	v.Set(1, 2, 3, 9)
	if got := v.Sample(1, 2, 3); got != 9 {
		t.Fatalf("got %d want 9", got)
	}
}

func TestSampleWithBoundsOutOfRange(t *testing.T) {
	v := New(4, 4, 4)
	if got := v.SampleWithBounds(-1, 0, 0); got != 0 {
		t.Fatalf("got %d want 0", got)
	}
	if got := v.SampleWithBounds(4, 0, 0); got != 0 {
		t.Fatalf("got %d want 0", got)
	}
}

func TestSampleSubSampledLevel0IsDirectSample(t *testing.T) {
	v := New(4, 4, 4)
	v.Set(1, 1, 1, 55)
	if got := v.SampleSubSampled(1, 1, 1, 0); got != 55 {
		t.Fatalf("got %d want 55", got)
	}
}

func TestSampleSubSampledAveragesBlock(t *testing.T) {
	v := New(4, 4, 4)
	// Fill the 2x2x2 block at origin with a mix of 0 and 255, which should
	// average to something between.
	v.Set(0, 0, 0, 255)
	v.Set(1, 0, 0, 255)
	v.Set(0, 1, 0, 0)
	v.Set(1, 1, 0, 0)
	v.Set(0, 0, 1, 255)
	v.Set(1, 0, 1, 0)
	v.Set(0, 1, 1, 0)
	v.Set(1, 1, 1, 0)
	got := v.SampleSubSampled(0, 0, 0, 1)
	if got == 0 || got == 255 {
		t.Fatalf("expected a blended value, got %d", got)
	}
}

func TestSampleSubSampledWithBoundsTreatsOutsideAsZero(t *testing.T) {
	v := New(2, 2, 2)
	for z := int32(0); z < 2; z++ {
		for y := int32(0); y < 2; y++ {
			for x := int32(0); x < 2; x++ {
				v.Set(x, y, z, 255)
			}
		}
	}
	// Sampling a 4x4x4 decimated block starting at origin pulls in voxels
	// outside the 2x2x2 volume, which should count as empty.
	got := v.SampleSubSampledWithBounds(0, 0, 0, 2)
	if got >= 255 {
		t.Fatalf("expected out-of-bounds voxels to drag the average down, got %d", got)
	}
}

func TestEnclosingRegion(t *testing.T) {
	v := New(4, 5, 6)
	r := v.EnclosingRegion()
	if r.Width() != 4 || r.Height() != 5 || r.Depth() != 6 {
		t.Fatalf("got %dx%dx%d", r.Width(), r.Height(), r.Depth())
	}
}

func TestFromVoxelsPanicsOnSizeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on size mismatch")
		}
	}()
	FromVoxels(2, 2, 2, make([]uint8, 4))
}
