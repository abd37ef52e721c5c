package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/palette"
)

type extractOptions struct {
	pipeline extractionFlags
	format   string
	output   string
	swatch     bool
	swatchFile string
	preview    string
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a palette of dominant colours from an image file or HTTP(S) URL.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # Extract 5 colours (default) from an image
  swatch extract photo.jpg

  # Extract 8 colours as JSON
  swatch extract -c 8 -f json photo.png

  # Print every hex code on one line, ready to paste
  swatch extract -f list photo.png

  # Also save the palette as a 400x100 PNG strip (photo-palette-5-colors.png)
  swatch extract --swatch photo.jpg

  # Save the strip under a chosen name
  swatch extract --swatch-file strip.png photo.jpg

  # Reproducible clustering without the cache
  swatch extract --seed-mode manual --seed 42 photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	opts.pipeline.register(flags)
	flags.StringVarP(&opts.format, "format", "f", formatHex, "output format (hex, list, json, table)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.BoolVar(&opts.swatch, "swatch", false, "write the palette as a PNG strip named after the image")
	flags.StringVar(&opts.swatchFile, "swatch-file", "", "write the palette as a PNG strip to this file")
	flags.StringVar(&opts.preview, "preview", previewAuto, "show colour previews: auto, always, never")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, opts *extractOptions, source string) error {
	logger := newLogger(cmd)

	if err := validateFormat(opts.format); err != nil {
		return err
	}

	extractor, err := opts.pipeline.newExtractor(logger)
	if err != nil {
		return err
	}

	logger.Debug("loading image", "source", source)
	content, err := image.NewSmartLoader().Load(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	logger.Debug("extracting palette", "colours", opts.pipeline.colours, "seed_mode", opts.pipeline.seedMode)
	p, err := extractor.Extract(cmd.Context(), content, opts.pipeline.colours)
	if err != nil {
		logger.Error("failed to extract palette", "source", source, "kind", palette.Kind(err))
		return fmt.Errorf("failed to extract palette: %w", err)
	}
	logger.Debug("extracted palette", "colours", p.Len())

	showPreview := false
	if opts.output == "" {
		showPreview, err = resolvePreview(opts.preview, cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	out, err := formatPalette(p, opts.format, showPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.output, out); err != nil {
		return err
	}

	if opts.swatch || opts.swatchFile != "" {
		path := opts.swatchFile
		if path == "" {
			path = palette.SwatchFileName(source, opts.pipeline.colours)
		}
		if err := writeSwatch(path, p); err != nil {
			return err
		}
		logger.Info("wrote palette swatch", "path", path)
	}

	return nil
}

// writeSwatch writes the palette strip PNG to path.
func writeSwatch(path string, p palette.Palette) error {
	f, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create swatch file: %w", err)
	}
	if err := palette.WriteSwatchPNG(f, p, palette.SwatchWidth, palette.SwatchHeight); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close swatch file: %w", err)
	}
	return nil
}
