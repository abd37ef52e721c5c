package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// colorful scales CIE Lab down by 100; labScale restores conventional units
// so that distances and the convergence epsilon are in ΔE76.
const labScale = 100.0

// RGB is an 8-bit sRGB colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the colour as "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the colour as a lower-case "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses a "#rrggbb" string.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Lab is a point in CIE L*a*b* (D65), L in [0, 100].
type Lab struct {
	L, A, B float64
}

// ToLab converts an sRGB colour to Lab. sRGB gamma is decoded and the D65
// reference white is used.
func ToLab(c RGB) Lab {
	l, a, b := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Lab()
	return Lab{L: l * labScale, A: a * labScale, B: b * labScale}
}

// RGB converts the point back to sRGB. Out-of-gamut channels are clamped to
// [0, 1] rather than gamut-mapped.
func (p Lab) RGB() RGB {
	r, g, b := colorful.Lab(p.L/labScale, p.A/labScale, p.B/labScale).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// distance is the Euclidean distance between two points (ΔE76).
func (p Lab) distance(other Lab) float64 {
	dl := p.L - other.L
	da := p.A - other.A
	db := p.B - other.B
	return math.Sqrt(dl*dl + da*da + db*db)
}
