package palette

import (
	"fmt"
	"image"
	"slices"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Resample selects the kernel used to scale an image onto the sample grid.
type Resample string

const (
	// ResampleAuto uses nearest-neighbour when the grid is at least as large as
	// the source in both dimensions and approximate bilinear otherwise.
	ResampleAuto Resample = "auto"
	// ResampleNearest uses nearest-neighbour sampling.
	ResampleNearest Resample = "nearest"
	// ResampleBilinear uses approximate bilinear filtering.
	ResampleBilinear Resample = "bilinear"
	// ResampleCatmullRom uses the Catmull-Rom cubic kernel.
	ResampleCatmullRom Resample = "catmullrom"
	// ResampleLanczos uses a Lanczos-3 kernel.
	ResampleLanczos Resample = "lanczos"
)

// ValidResamples returns the accepted resample kernel names.
func ValidResamples() []Resample {
	return []Resample{ResampleAuto, ResampleNearest, ResampleBilinear, ResampleCatmullRom, ResampleLanczos}
}

// ParseResample converts a string to a Resample.
func ParseResample(s string) (Resample, error) {
	r := Resample(s)
	if slices.Contains(ValidResamples(), r) {
		return r, nil
	}
	return "", fmt.Errorf("invalid resample kernel: %s (valid: %v)", s, ValidResamples())
}

// SampleOptions configures the sampling grid.
type SampleOptions struct {
	// Size is the edge length of the square grid.
	Size int
	// AlphaThreshold drops pixels whose 8-bit alpha is below it.
	AlphaThreshold uint8
	// Resample picks the scaling kernel.
	Resample Resample
}

// DefaultSampleOptions returns a 200x200 grid dropping pixels with alpha < 128.
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{
		Size:           200,
		AlphaThreshold: 128,
		Resample:       ResampleAuto,
	}
}

// Validate validates the sample options.
func (o SampleOptions) Validate() error {
	if o.Size < 1 {
		return fmt.Errorf("sample size must be at least 1, got %d", o.Size)
	}
	if o.Size > 2048 {
		return fmt.Errorf("sample size too large: %d (maximum: 2048)", o.Size)
	}
	if _, err := ParseResample(string(o.Resample)); err != nil {
		return err
	}
	return nil
}

// Sample scales img into a Size x Size grid, ignoring aspect ratio, and
// returns the colour of every pixel whose alpha reaches the threshold, in
// scan order.
func Sample(img image.Image, opts SampleOptions) ([]RGB, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrImageLoad)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrImageLoad)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	grid := scaleToGrid(img, opts.Size, opts.Resample)

	samples := make([]RGB, 0, opts.Size*opts.Size)
	for y := 0; y < opts.Size; y++ {
		row := grid.Pix[y*grid.Stride : y*grid.Stride+opts.Size*4]
		for i := 0; i < len(row); i += 4 {
			if row[i+3] < opts.AlphaThreshold {
				continue
			}
			samples = append(samples, RGB{R: row[i], G: row[i+1], B: row[i+2]})
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: all %d sampled pixels are below alpha %d",
			ErrEmptyInput, opts.Size*opts.Size, opts.AlphaThreshold)
	}
	return samples, nil
}

// scaleToGrid draws img onto a non-premultiplied size x size canvas.
func scaleToGrid(img image.Image, size int, kernel Resample) *image.NRGBA {
	src := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))

	if kernel == ResampleAuto {
		kernel = ResampleBilinear
		if src.Dx() <= size && src.Dy() <= size {
			kernel = ResampleNearest
		}
	}

	switch kernel {
	case ResampleLanczos:
		scaled := resize.Resize(uint(size), uint(size), img, resize.Lanczos3) // #nosec G115 -- size is validated
		draw.Draw(dst, dst.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	case ResampleNearest:
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	case ResampleCatmullRom:
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	default:
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	}
	return dst
}

// distinctColours counts the distinct colours in samples.
func distinctColours(samples []RGB) int {
	seen := make(map[RGB]struct{}, 64)
	for _, s := range samples {
		seen[s] = struct{}{}
	}
	return len(seen)
}
