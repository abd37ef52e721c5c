package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/internal/palette"
)

func testPalette() palette.Palette {
	return palette.Palette{
		{Hex: "#ff0000", Percent: "75.0"},
		{Hex: "#0000ff", Percent: "25.0"},
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range validFormats() {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) returned error: %v", f, err)
		}
	}
	if err := validateFormat("yaml"); err == nil {
		t.Error("validateFormat(\"yaml\") should fail")
	}
}

func TestFormatPalette(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{
			name:   "hex",
			format: formatHex,
			want:   "#ff0000  75.0%\n#0000ff  25.0%\n",
		},
		{
			name:   "list",
			format: formatList,
			want:   "#ff0000, #0000ff\n",
		},
		{
			name:   "table",
			format: formatTable,
			want: "#  HEX      RGB             SHARE\n" +
				"-  -------  --------------  -----\n" +
				"1  #ff0000  rgb(255, 0, 0)  75.0%\n" +
				"2  #0000ff  rgb(0, 0, 255)  25.0%\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatPalette(testPalette(), tt.format, false)
			if err != nil {
				t.Fatalf("formatPalette() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("formatPalette() =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestFormatPaletteJSON(t *testing.T) {
	got, err := formatPalette(testPalette(), formatJSON, false)
	if err != nil {
		t.Fatalf("formatPalette() error = %v", err)
	}

	var decoded struct {
		Count  int `json:"count"`
		Colors []struct {
			Hex     string `json:"hex"`
			Percent string `json:"percent"`
		} `json:"colors"`
	}
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Count != 2 || len(decoded.Colors) != 2 {
		t.Fatalf("expected 2 colours, got count=%d len=%d", decoded.Count, len(decoded.Colors))
	}
	if decoded.Colors[1].Hex != "#0000ff" || decoded.Colors[1].Percent != "25.0" {
		t.Errorf("unexpected second entry: %+v", decoded.Colors[1])
	}
}

func TestFormatPaletteUnknown(t *testing.T) {
	if _, err := formatPalette(testPalette(), "xml", false); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFormatHexLinesPreview(t *testing.T) {
	got, err := formatHexLines(testPalette(), true)
	if err != nil {
		t.Fatalf("formatHexLines() error = %v", err)
	}
	if !strings.Contains(got, ansiBgPrefix+"255;0;0"+ansiSuffix) {
		t.Errorf("expected red background escape, got %q", got)
	}
	if strings.Count(got, ansiReset) != 2 {
		t.Errorf("expected one reset per entry, got %q", got)
	}
}

func TestColourPreviewContrast(t *testing.T) {
	tests := []struct {
		name   string
		colour palette.RGB
		fg     string
	}{
		{"light background", palette.RGB{R: 250, G: 240, B: 200}, ansiFgPrefix + "0;0;0" + ansiSuffix},
		{"dark background", palette.RGB{R: 0, G: 0, B: 255}, ansiFgPrefix + "255;255;255" + ansiSuffix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colourPreview(tt.colour, previewWidth)
			if !strings.Contains(got, tt.fg) {
				t.Errorf("colourPreview(%v) = %q, want foreground %q", tt.colour, got, tt.fg)
			}
			if !strings.Contains(got, " "+tt.colour.Hex()+" ") {
				t.Errorf("expected centred hex code, got %q", got)
			}
		})
	}
}

func TestResolvePreview(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		mode    string
		want    bool
		wantErr bool
	}{
		{previewAlways, true, false},
		{previewNever, false, false},
		{previewAuto, false, false},
		{"", false, false},
		{"sometimes", false, true},
	}

	for _, tt := range tests {
		got, err := resolvePreview(tt.mode, &buf)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolvePreview(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("resolvePreview(%q) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOutput(&buf, "", "hello\n"); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("stdout = %q, want %q", buf.String(), "hello\n")
	}

	path := filepath.Join(t.TempDir(), "palette.txt")
	buf.Reset()
	if err := writeOutput(&buf, path, "#ffffff\n"); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing on stdout when writing to a file, got %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if string(data) != "#ffffff\n" {
		t.Errorf("file content = %q, want %q", data, "#ffffff\n")
	}
}
