// Package colormatch finds the catalog product whose nominal color is
// closest to a color picked in the customizer.
package colormatch

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// similarityDivisor scales RGB distance to percentage points.
	// The maximum distance is about 441.7, so similarity never reaches
	// exactly 0 through distance alone.
	similarityDivisor = 4.4

	// MatchThreshold is exclusive.
	MatchThreshold = 70.0
)

type namedColor struct {
	name string
	hex  string
}

// palette is scanned in order and the first substring hit wins,
// so longer names must precede their prefixes ("blanc perlé" before "blanc").
var palette = []namedColor{
	{name: "vert jungle", hex: "#3d7c4a"},
	{name: "blanc perlé", hex: "#f5f5f0"},
	{name: "blanc", hex: "#f5f5f0"},
	{name: "rouge", hex: "#c41e3a"},
	{name: "bleu", hex: "#1e90ff"},
	{name: "jaune", hex: "#ffd700"},
	{name: "noir", hex: "#1a1a1a"},
	{name: "gris", hex: "#898989"},
	{name: "orange", hex: "#ff6b35"},
}

type RGB struct {
	R, G, B uint8
}

// ParseHex accepts "#rrggbb" or "rrggbb", case-insensitive.
func ParseHex(s string) (RGB, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 || strings.IndexFunc(s, notHexDigit) >= 0 {
		return RGB{}, false
	}

	c, err := colorful.Hex("#" + s)
	if err != nil {
		return RGB{}, false
	}

	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, true
}

func notHexDigit(r rune) bool {
	return !('0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F')
}

// Distance is the Euclidean distance between two hex colors in 0-255 RGB space.
// It is +Inf when either side does not parse.
func Distance(hex1, hex2 string) float64 {
	a, ok := ParseHex(hex1)
	if !ok {
		return math.Inf(1)
	}
	b, ok := ParseHex(hex2)
	if !ok {
		return math.Inf(1)
	}

	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)

	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// HexForColorName returns the palette hex of the first palette name
// contained in the lowercased color name.
func HexForColorName(colorName string) (string, bool) {
	lower := strings.ToLower(colorName)
	for _, c := range palette {
		if strings.Contains(lower, c.name) {
			return c.hex, true
		}
	}
	return "", false
}

func similarity(distance float64) float64 {
	if math.IsInf(distance, 1) {
		return 0
	}
	return math.Max(0, 100-distance/similarityDivisor)
}
