package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/palette"
)

type batchOptions struct {
	pipeline        extractionFlags
	format          string
	preview         string
	swatch          bool
	swatchDir       string
	continueOnError bool
}

// countingCache wraps a Cache and counts hits.
type countingCache struct {
	palette.Cache
	hits atomic.Int64
}

func (c *countingCache) Get(key string) (palette.Palette, bool) {
	p, ok := c.Cache.Get(key)
	if ok {
		c.hits.Add(1)
	}
	return p, ok
}

func newBatchCmd() *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Extract palettes from every image in a directory",
		Long: `Extract a palette from each supported image in a directory (non-recursive).

Files are processed in name order with one shared result cache, so identical
images are clustered only once.

Examples:
  # Palettes for every image in ./wallpapers
  swatch batch ./wallpapers

  # Save a palette strip per image into ./strips
  swatch batch --swatch --swatch-dir ./strips -c 6 ./wallpapers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	opts.pipeline.register(flags)
	flags.StringVarP(&opts.format, "format", "f", formatHex, "output format (hex, list, json, table)")
	flags.StringVar(&opts.preview, "preview", previewAuto, "show colour previews: auto, always, never")
	flags.BoolVar(&opts.swatch, "swatch", false, "write a PNG strip for each image")
	flags.StringVar(&opts.swatchDir, "swatch-dir", ".", "directory for the PNG strips written by --swatch")
	flags.BoolVar(&opts.continueOnError, "continue-on-error", true, "keep going when an image fails")

	return cmd
}

// runBatch executes the batch command.
func runBatch(cmd *cobra.Command, opts *batchOptions, dir string) error {
	logger := newLogger(cmd)

	if err := validateFormat(opts.format); err != nil {
		return err
	}

	files, err := image.ScanDirectoryForImages(dir)
	if err != nil {
		return err
	}

	cache := &countingCache{Cache: palette.NewMemoryCache()}
	extractor, err := opts.pipeline.newExtractor(logger, palette.WithCache(cache))
	if err != nil {
		return err
	}

	showPreview, err := resolvePreview(opts.preview, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	heading := color.New(color.FgCyan, color.Bold)
	if showPreview {
		heading.EnableColor()
	} else {
		heading.DisableColor()
	}

	out := cmd.OutOrStdout()
	loader := image.NewFileLoader()
	var failed int
	swatchNames := make(map[string]bool)

	for _, path := range files {
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		p, err := extractFile(cmd, extractor, loader, path, opts.pipeline.colours)
		if err != nil {
			failed++
			logger.Error("failed to extract palette", "file", path, "kind", palette.Kind(err), "error", err)
			if !opts.continueOnError {
				return fmt.Errorf("failed to extract palette from %s: %w", path, err)
			}
			continue
		}

		text, err := formatPalette(p, opts.format, showPreview)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		if _, err := heading.Fprintln(out, filepath.Base(path)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, text); err != nil {
			return err
		}

		if opts.swatch {
			name := uniqueSwatchName(path, opts.pipeline.colours, swatchNames)
			if name != palette.SwatchFileName(path, opts.pipeline.colours) {
				logger.Warn("swatch name already used in this batch, keeping the extension", "file", path, "swatch", name)
			}
			swatchPath := filepath.Join(opts.swatchDir, name)
			if err := writeSwatch(swatchPath, p); err != nil {
				return err
			}
			logger.Debug("wrote palette swatch", "path", swatchPath)
		}
	}

	logger.Debug("batch complete", "files", len(files), "failed", failed, "cached", cache.Len())
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d images, %d failed, %d cache hits\n",
			len(files), failed, cache.hits.Load())
	}

	if failed == len(files) {
		return fmt.Errorf("failed to extract a palette from any of %d images", len(files))
	}
	return nil
}

func extractFile(cmd *cobra.Command, e *palette.Extractor, l image.Loader, path string, k int) (palette.Palette, error) {
	content, err := l.Load(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	return e.Extract(cmd.Context(), content, k)
}

// uniqueSwatchName returns the strip name for path that no earlier file in
// the batch has taken. Images differing only by extension, such as a.png and
// a.jpg, keep their extension in the name; further clashes get a counter.
func uniqueSwatchName(path string, k int, used map[string]bool) string {
	name := palette.SwatchFileName(path, k)
	if used[name] {
		stem := strings.ReplaceAll(filepath.Base(path), ".", "-")
		name = palette.SwatchFileName(stem, k)
		for i := 2; used[name]; i++ {
			name = palette.SwatchFileName(stem+"-"+strconv.Itoa(i), k)
		}
	}
	used[name] = true
	return name
}
