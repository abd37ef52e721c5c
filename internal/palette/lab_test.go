package palette

import (
	"math"
	"testing"
)

func absDiff(a, b uint8) int {
	return int(math.Abs(float64(a) - float64(b)))
}

func TestLabRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
	}{
		{name: "mid grey", rgb: RGB{R: 128, G: 128, B: 128}},
		{name: "black", rgb: RGB{R: 0, G: 0, B: 0}},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}},
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}},
		{name: "green", rgb: RGB{R: 0, G: 255, B: 0}},
		{name: "blue", rgb: RGB{R: 0, G: 0, B: 255}},
		{name: "teal", rgb: RGB{R: 18, G: 140, B: 126}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToLab(tt.rgb).RGB()
			if absDiff(got.R, tt.rgb.R) > 2 || absDiff(got.G, tt.rgb.G) > 2 || absDiff(got.B, tt.rgb.B) > 2 {
				t.Errorf("ToLab(%v).RGB() = %v, want within 2 of %v", tt.rgb, got, tt.rgb)
			}
		})
	}
}

func TestToLabReferencePoints(t *testing.T) {
	tests := []struct {
		name  string
		rgb   RGB
		wantL float64
	}{
		{name: "black", rgb: RGB{R: 0, G: 0, B: 0}, wantL: 0},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, wantL: 100},
		{name: "mid grey", rgb: RGB{R: 128, G: 128, B: 128}, wantL: 53.59},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lab := ToLab(tt.rgb)
			if math.Abs(lab.L-tt.wantL) > 0.1 {
				t.Errorf("ToLab(%v).L = %.3f, want %.2f", tt.rgb, lab.L, tt.wantL)
			}
			// Neutral colours sit near the a/b origin; go-colorful's D65
			// constants leave white a few hundredths off it.
			if math.Abs(lab.A) > 0.05 || math.Abs(lab.B) > 0.05 {
				t.Errorf("ToLab(%v) a,b = %.4f,%.4f, want ~0", tt.rgb, lab.A, lab.B)
			}
		})
	}
}

func TestLabRGBClampsOutOfGamut(t *testing.T) {
	got := Lab{L: 50, A: 200, B: -200}.RGB()
	if got.Hex() == "" {
		t.Fatal("expected hex for clamped colour")
	}
	// Extreme a/b pushes green below zero; clamping pins it.
	if got.G != 0 {
		t.Errorf("RGB().G = %d, want 0 after clamping", got.G)
	}
}

func TestLabDistance(t *testing.T) {
	a := Lab{L: 0, A: 0, B: 0}
	b := Lab{L: 3, A: 4, B: 0}
	if got := a.distance(b); got != 5 {
		t.Errorf("distance() = %v, want 5", got)
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: "#ff0000"},
		{name: "mixed", rgb: RGB{R: 26, G: 43, B: 60}, want: "#1a2b3c"},
		{name: "black", rgb: RGB{}, want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
			parsed, err := ParseHex(tt.want)
			if err != nil {
				t.Fatalf("ParseHex(%q) error = %v", tt.want, err)
			}
			if parsed != tt.rgb {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.want, parsed, tt.rgb)
			}
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	if _, err := ParseHex("not-a-colour"); err == nil {
		t.Error("ParseHex() expected error for invalid input")
	}
}
