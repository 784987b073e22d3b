package export

import "testing"

func TestParseHexColorSixDigits(t *testing.T) {
	rgba, err := ParseHexColor("#FF0000")
	if err != nil {
		t.Fatal(err)
	}
	if rgba != [4]float32{1, 0, 0, 1} {
		t.Fatalf("got %v", rgba)
	}
}

func TestParseHexColorEightDigits(t *testing.T) {
	rgba, err := ParseHexColor("#00FF0080")
	if err != nil {
		t.Fatal(err)
	}
	if rgba[0] != 0 || rgba[1] != 1 || rgba[2] != 0 {
		t.Fatalf("got %v", rgba)
	}
	if rgba[3] < 0.49 || rgba[3] > 0.51 {
		t.Fatalf("expected ~0.5 alpha, got %v", rgba[3])
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	if _, err := ParseHexColor("#ZZZ"); err == nil {
		t.Fatal("expected an error for an invalid hex color")
	}
}

func TestPaletteColorForFallsBackToWhite(t *testing.T) {
	p := Palette{}
	rgba, err := p.ColorFor(99)
	if err != nil {
		t.Fatal(err)
	}
	if rgba != [4]float32{1, 1, 1, 1} {
		t.Fatalf("got %v", rgba)
	}
}

func TestDefaultPaletteCoversLowMaterialIds(t *testing.T) {
	p := DefaultPalette()
	if _, ok := p[1]; !ok {
		t.Fatal("expected material 1 to be covered")
	}
}
