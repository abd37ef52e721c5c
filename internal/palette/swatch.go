package palette

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

// Default swatch strip dimensions.
const (
	SwatchWidth  = 400
	SwatchHeight = 100
)

// RenderSwatch draws the palette as equal-width vertical bands.
func RenderSwatch(p Palette, width, height int) (*image.RGBA, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	if width < len(p) || height < 1 {
		return nil, fmt.Errorf("swatch too small: %dx%d for %d colours", width, height, len(p))
	}

	colours, err := p.RGB()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	band := float64(width) / float64(len(colours))
	for i, c := range colours {
		x0 := int(float64(i) * band)
		x1 := int(float64(i+1) * band)
		if i == len(colours)-1 {
			x1 = width
		}
		fill := image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		draw.Draw(img, image.Rect(x0, 0, x1, height), fill, image.Point{}, draw.Src)
	}
	return img, nil
}

// WriteSwatchPNG renders the palette strip and encodes it as PNG.
func WriteSwatchPNG(w io.Writer, p Palette, width, height int) error {
	img, err := RenderSwatch(p, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode swatch: %w", err)
	}
	return nil
}

// SwatchFileName returns the default download name for a palette strip, e.g.
// "sunset-palette-5-colors.png".
func SwatchFileName(source string, count int) string {
	base := filepath.Base(source)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "image"
	}
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return fmt.Sprintf("%s-palette-%d-colors.png", base, count)
}
