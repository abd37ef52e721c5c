package palette

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func fillRect(img *image.NRGBA, rect image.Rectangle, fill color.NRGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
}

func solidImage(w, h int, fill color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), fill)
	return img
}

func TestSampleGridSize(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		resample Resample
	}{
		{name: "upscale square", w: 50, h: 50, resample: ResampleAuto},
		{name: "downscale wide", w: 640, h: 120, resample: ResampleAuto},
		{name: "nearest", w: 300, h: 300, resample: ResampleNearest},
		{name: "bilinear", w: 300, h: 300, resample: ResampleBilinear},
		{name: "catmullrom", w: 300, h: 300, resample: ResampleCatmullRom},
		{name: "lanczos", w: 300, h: 300, resample: ResampleLanczos},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solidImage(tt.w, tt.h, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
			opts := DefaultSampleOptions()
			opts.Resample = tt.resample

			samples, err := Sample(img, opts)
			if err != nil {
				t.Fatalf("Sample() error = %v", err)
			}
			if len(samples) != opts.Size*opts.Size {
				t.Errorf("len(samples) = %d, want %d", len(samples), opts.Size*opts.Size)
			}
			for _, s := range samples {
				if absDiff(s.R, 10) > 1 || absDiff(s.G, 200) > 1 || absDiff(s.B, 30) > 1 {
					t.Fatalf("sample = %v, want ~rgb(10, 200, 30)", s)
				}
			}
		})
	}
}

func TestSampleFiltersTranslucentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	fillRect(img, image.Rect(0, 0, 50, 100), color.NRGBA{R: 0, G: 0, B: 255, A: 0})
	fillRect(img, image.Rect(50, 0, 75, 100), color.NRGBA{R: 0, G: 255, B: 0, A: 127})
	fillRect(img, image.Rect(75, 0, 100, 100), color.NRGBA{R: 255, G: 0, B: 0, A: 128})

	samples, err := Sample(img, DefaultSampleOptions())
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	// Only the right quarter reaches alpha 128.
	if want := 200 * 200 / 4; len(samples) != want {
		t.Errorf("len(samples) = %d, want %d", len(samples), want)
	}
	for _, s := range samples {
		if s.R < 250 || s.G > 5 || s.B > 5 {
			t.Fatalf("sample = %v, want red", s)
		}
	}
}

func TestSampleErrors(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		opts SampleOptions
		want error
	}{
		{
			name: "nil image",
			img:  nil,
			opts: DefaultSampleOptions(),
			want: ErrImageLoad,
		},
		{
			name: "empty bounds",
			img:  image.NewNRGBA(image.Rect(0, 0, 0, 0)),
			opts: DefaultSampleOptions(),
			want: ErrImageLoad,
		},
		{
			name: "fully transparent",
			img:  image.NewNRGBA(image.Rect(0, 0, 50, 50)),
			opts: DefaultSampleOptions(),
			want: ErrEmptyInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(tt.img, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Sample() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSampleOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    SampleOptions
		wantErr bool
	}{
		{name: "defaults", opts: DefaultSampleOptions()},
		{name: "zero size", opts: SampleOptions{Size: 0, Resample: ResampleAuto}, wantErr: true},
		{name: "huge size", opts: SampleOptions{Size: 4096, Resample: ResampleAuto}, wantErr: true},
		{name: "unknown kernel", opts: SampleOptions{Size: 10, Resample: "box"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDistinctColours(t *testing.T) {
	samples := []RGB{{R: 1}, {R: 1}, {G: 2}, {B: 3}, {G: 2}}
	if got := distinctColours(samples); got != 3 {
		t.Errorf("distinctColours() = %d, want 3", got)
	}
}
