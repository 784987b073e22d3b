// Package export renders a mesh.SurfaceMesh to glTF/GLB, the interchange
// format consumed by external viewers and game engines.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Logger receives warn-level diagnostics from this package, e.g. a
// material id with no palette entry falling back to opaque white. It is
// a package-level no-op logger by default; callers that want to see
// these warnings should replace it, typically once at program startup.
var Logger = zap.NewNop()

// Palette maps a material id to its display color, expressed as an
// "#RRGGBB" or "#RRGGBBAA" hex string.
type Palette map[uint8]string

// DefaultPalette gives every material id 1-15 a distinct hue and leaves
// material 0 (empty, never emitted as a vertex) unset; callers with a
// richer material table should build their own Palette instead.
func DefaultPalette() Palette {
	hues := []string{
		"#CCCCCCFF", "#8B5A2BFF", "#4E944FFF", "#5B8DEFFF",
		"#E0C341FF", "#C0392BFF", "#9B59B6FF", "#1ABC9CFF",
		"#E67E22FF", "#34495EFF", "#F1948AFF", "#7FB3D5FF",
		"#58D68DFF", "#F5B041FF", "#AF7AC5FF",
	}
	p := make(Palette, len(hues))
	for i, h := range hues {
		p[uint8(i+1)] = h
	}
	return p
}

// ParseHexColor parses a "#RRGGBB" or "#RRGGBBAA" string into a
// normalized [0,1] RGBA tuple.
func ParseHexColor(hex string) ([4]float32, error) {
	var out [4]float32
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 && len(s) != 8 {
		return out, fmt.Errorf("export: invalid hex color %q", hex)
	}
	if len(s) == 6 {
		s += "FF"
	}
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return out, fmt.Errorf("export: invalid hex color %q: %w", hex, err)
		}
		out[i] = float32(v) / 255
	}
	return out, nil
}

// ColorFor looks up a material's color, falling back to opaque white for
// an id the palette does not cover.
func (p Palette) ColorFor(material uint8) ([4]float32, error) {
	hex, ok := p[material]
	if !ok {
		Logger.Warn("material has no palette entry, falling back to white", zap.Uint8("material", material))
		return [4]float32{1, 1, 1, 1}, nil
	}
	return ParseHexColor(hex)
}
