package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/palette"
)

// Output formats accepted by --format.
const (
	formatHex   = "hex"
	formatList  = "list"
	formatJSON  = "json"
	formatTable = "table"
)

// Preview modes accepted by --preview.
const (
	previewAuto   = "auto"
	previewAlways = "always"
	previewNever  = "never"
)

// ANSI escape codes for truecolour blocks.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	previewWidth = 9
)

func validFormats() []string {
	return []string{formatHex, formatList, formatJSON, formatTable}
}

func validateFormat(format string) error {
	if !slices.Contains(validFormats(), format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(validFormats(), ", "))
	}
	return nil
}

// resolvePreview decides whether ANSI previews are written to w.
func resolvePreview(mode string, w io.Writer) (bool, error) {
	switch mode {
	case previewAlways:
		return true, nil
	case previewNever:
		return false, nil
	case previewAuto, "":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil // #nosec G115 -- file descriptors fit in int
	default:
		return false, fmt.Errorf("invalid preview mode: %s (valid: auto, always, never)", mode)
	}
}

// formatPalette renders p in the requested format.
func formatPalette(p palette.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case formatHex:
		return formatHexLines(p, showPreview)
	case formatList:
		return p.JoinHex() + "\n", nil
	case formatJSON:
		data, err := p.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case formatTable:
		return formatTableRows(p)
	default:
		return "", validateFormat(format)
	}
}

// formatHexLines writes one "hex percent%" line per entry.
func formatHexLines(p palette.Palette, showPreview bool) (string, error) {
	var sb strings.Builder
	for _, e := range p {
		if showPreview {
			rgb, err := palette.ParseHex(e.Hex)
			if err != nil {
				return "", err
			}
			sb.WriteString(colourPreview(rgb, previewWidth))
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s %5s%%\n", e.Hex, e.Percent)
	}
	return sb.String(), nil
}

// formatTableRows renders the palette as an aligned table.
func formatTableRows(p palette.Palette) (string, error) {
	colours, err := p.RGB()
	if err != nil {
		return "", err
	}

	table := NewTable([]string{"#", "HEX", "RGB", "SHARE"})
	for i, e := range p {
		table.AddRow([]string{fmt.Sprintf("%d", i+1), e.Hex, colours[i].String(), e.Percent + "%"})
	}
	return table.Render(), nil
}

// colourPreview returns a truecolour block with the hex code printed in a
// contrasting colour.
func colourPreview(c palette.RGB, width int) string {
	text := c.Hex()
	if len(text) < width {
		pad := (width - len(text)) / 2
		text = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)
	}

	var fg palette.RGB
	if palette.ToLab(c).L < 50 {
		fg = palette.RGB{R: 255, G: 255, B: 255}
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgc := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)
	return bg + fgc + text + ansiReset
}

// writeOutput writes s to path, or to w when path is empty.
func writeOutput(w io.Writer, path, s string) error {
	if path == "" {
		_, err := io.WriteString(w, s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil { // #nosec G306 - Output files need standard read permissions
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
