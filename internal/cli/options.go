package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/palette"
	"github.com/jmylchreest/swatch/internal/seed"
)

// extractionFlags holds the pipeline flags shared by extract and batch.
type extractionFlags struct {
	colours         int
	seedMode        string
	seedValue       int64
	resample        string
	size            int
	alphaThreshold  int
	maxIterations   int
	epsilon         float64
	allowDuplicates bool
}

// register adds the pipeline flags to fs.
func (f *extractionFlags) register(fs *pflag.FlagSet) {
	sample := palette.DefaultSampleOptions()
	cluster := palette.DefaultClusterOptions()

	fs.IntVarP(&f.colours, "colours", "c", defaultColours(),
		fmt.Sprintf("number of colours to extract (%d-%d)", palette.MinColours, palette.MaxColours))
	fs.StringVar(&f.seedMode, "seed-mode", defaultSeedMode(), "k-means seed mode: random, manual, content")
	fs.Int64Var(&f.seedValue, "seed", 0, "k-means seed value (only used with --seed-mode=manual)")
	fs.StringVar(&f.resample, "resample", string(sample.Resample), "grid resampling kernel: auto, nearest, bilinear, catmullrom, lanczos")
	fs.IntVar(&f.size, "size", sample.Size, "edge length of the square sampling grid")
	fs.IntVar(&f.alphaThreshold, "alpha-threshold", int(sample.AlphaThreshold), "drop pixels with alpha below this value (0-255)")
	fs.IntVar(&f.maxIterations, "max-iterations", cluster.MaxIterations, "maximum k-means iterations")
	fs.Float64Var(&f.epsilon, "epsilon", cluster.Epsilon, "stop when no centroid component moves more than this (Lab units)")
	fs.BoolVar(&f.allowDuplicates, "allow-duplicates", false, "allow more colours than the image has distinct colours (duplicates possible)")
}

// seedConfig converts the seed flags.
func (f *extractionFlags) seedConfig() (seed.Config, error) {
	mode, err := seed.ParseMode(f.seedMode)
	if err != nil {
		return seed.Config{}, err
	}
	cfg := seed.Config{Mode: mode}
	if mode == seed.ModeManual {
		v := f.seedValue
		cfg.Value = &v
	}
	return cfg, cfg.Validate()
}

// sampleOptions converts the sampling flags.
func (f *extractionFlags) sampleOptions() (palette.SampleOptions, error) {
	if f.alphaThreshold < 0 || f.alphaThreshold > 255 {
		return palette.SampleOptions{}, fmt.Errorf("alpha threshold must be within 0-255, got %d", f.alphaThreshold)
	}
	resample, err := palette.ParseResample(f.resample)
	if err != nil {
		return palette.SampleOptions{}, err
	}
	opts := palette.SampleOptions{
		Size:           f.size,
		AlphaThreshold: uint8(f.alphaThreshold), // #nosec G115 -- range checked above
		Resample:       resample,
	}
	return opts, opts.Validate()
}

// validate checks every pipeline flag.
func (f *extractionFlags) validate() error {
	if err := palette.ValidateCount(f.colours); err != nil {
		return err
	}
	if _, err := f.seedConfig(); err != nil {
		return err
	}
	if _, err := f.sampleOptions(); err != nil {
		return err
	}
	return palette.ClusterOptions{MaxIterations: f.maxIterations, Epsilon: f.epsilon}.Validate()
}

// newExtractor builds an Extractor from the flags. extra options are applied
// last.
func (f *extractionFlags) newExtractor(logger hclog.Logger, extra ...palette.Option) (*palette.Extractor, error) {
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	seedCfg, _ := f.seedConfig()
	sampleOpts, _ := f.sampleOptions()

	opts := []palette.Option{
		palette.WithLogger(logger.Named("palette")),
		palette.WithSeed(seedCfg),
		palette.WithSampleOptions(sampleOpts),
		palette.WithClusterOptions(palette.ClusterOptions{
			MaxIterations: f.maxIterations,
			Epsilon:       f.epsilon,
		}),
		palette.WithAllowDuplicates(f.allowDuplicates),
	}
	return palette.NewExtractor(append(opts, extra...)...), nil
}
