package volume

import "testing"

func TestRegionWidthHeightDepth(t *testing.T) {
	r := NewRegion(Vec3I{X: 0, Y: 0, Z: 0}, Vec3I{X: 3, Y: 5, Z: 7})
	if r.Width() != 4 || r.Height() != 6 || r.Depth() != 8 {
		t.Fatalf("got %d x %d x %d", r.Width(), r.Height(), r.Depth())
	}
}

func TestRegionIsValid(t *testing.T) {
	valid := NewRegion(Vec3I{X: 0, Y: 0, Z: 0}, Vec3I{X: 1, Y: 1, Z: 1})
	if !valid.IsValid() {
		t.Fatal("expected valid region")
	}
	invalid := NewRegion(Vec3I{X: 5, Y: 0, Z: 0}, Vec3I{X: 1, Y: 1, Z: 1})
	if invalid.IsValid() {
		t.Fatal("expected invalid region")
	}
}

func TestRegionCropTo(t *testing.T) {
	r := NewRegion(Vec3I{X: -5, Y: -5, Z: -5}, Vec3I{X: 20, Y: 20, Z: 20})
	bounds := NewRegion(Vec3I{X: 0, Y: 0, Z: 0}, Vec3I{X: 9, Y: 9, Z: 9})
	cropped := r.CropTo(bounds)
	if cropped != bounds {
		t.Fatalf("expected crop to clamp fully to bounds, got %v", cropped)
	}
}

func TestRegionCropToDisjointIsInvalid(t *testing.T) {
	r := NewRegion(Vec3I{X: 0, Y: 0, Z: 0}, Vec3I{X: 1, Y: 1, Z: 1})
	other := NewRegion(Vec3I{X: 10, Y: 10, Z: 10}, Vec3I{X: 20, Y: 20, Z: 20})
	cropped := r.CropTo(other)
	if cropped.IsValid() {
		t.Fatal("expected disjoint crop to be invalid")
	}
}

func TestRegionContains(t *testing.T) {
	r := NewRegion(Vec3I{X: 0, Y: 0, Z: 0}, Vec3I{X: 9, Y: 9, Z: 9})
	if !r.Contains(Vec3I{X: 5, Y: 5, Z: 5}) {
		t.Fatal("expected point inside region to be contained")
	}
	if r.Contains(Vec3I{X: 10, Y: 5, Z: 5}) {
		t.Fatal("expected point outside region to not be contained")
	}
}

func TestRegionUnion(t *testing.T) {
	a := NewRegion(Vec3I{X: 0, Y: 0, Z: 0}, Vec3I{X: 1, Y: 1, Z: 1})
	b := NewRegion(Vec3I{X: 5, Y: 5, Z: 5}, Vec3I{X: 9, Y: 9, Z: 9})
	u := a.Union(b)
	want := NewRegion(Vec3I{X: 0, Y: 0, Z: 0}, Vec3I{X: 9, Y: 9, Z: 9})
	if u != want {
		t.Fatalf("got %v want %v", u, want)
	}
}

func TestRegionGrow(t *testing.T) {
	r := NewRegion(Vec3I{X: 2, Y: 2, Z: 2}, Vec3I{X: 4, Y: 4, Z: 4})
	grown := r.Grow(1)
	want := NewRegion(Vec3I{X: 1, Y: 1, Z: 1}, Vec3I{X: 5, Y: 5, Z: 5})
	if grown != want {
		t.Fatalf("got %v want %v", grown, want)
	}
}

func TestRegionShift(t *testing.T) {
	r := NewRegion(Vec3I{X: 0, Y: 0, Z: 0}, Vec3I{X: 1, Y: 1, Z: 1})
	shifted := r.Shift(Vec3I{X: 10, Y: 0, Z: 0})
	want := NewRegion(Vec3I{X: 10, Y: 0, Z: 0}, Vec3I{X: 11, Y: 1, Z: 1})
	if shifted != want {
		t.Fatalf("got %v want %v", shifted, want)
	}
}
