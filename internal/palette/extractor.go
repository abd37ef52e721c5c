// Package palette extracts dominant-colour palettes from images.
//
// An extraction samples the image onto a fixed grid, drops translucent
// pixels, converts the rest to CIE Lab, clusters them with k-means and
// reports each cluster as a hex colour with its population share. Results
// are cached per (content, k).
package palette

import (
	"context"
	"fmt"
	"image"
	"math/rand"

	"github.com/hashicorp/go-hclog"

	imageloader "github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/seed"
)

// DecodeFunc decodes encoded image bytes.
type DecodeFunc func(data []byte) (image.Image, error)

// Extractor runs the extraction pipeline and owns the result cache.
// It is safe for concurrent use if its Cache is.
type Extractor struct {
	cache           Cache
	logger          hclog.Logger
	seed            seed.Config
	sample          SampleOptions
	cluster         ClusterOptions
	decode          DecodeFunc
	allowDuplicates bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCache sets the result cache.
func WithCache(c Cache) Option {
	return func(e *Extractor) { e.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// WithSeed sets how each extraction's random source is seeded.
func WithSeed(c seed.Config) Option {
	return func(e *Extractor) { e.seed = c }
}

// WithSampleOptions sets the sampling grid options.
func WithSampleOptions(o SampleOptions) Option {
	return func(e *Extractor) { e.sample = o }
}

// WithClusterOptions sets the k-means options.
func WithClusterOptions(o ClusterOptions) Option {
	return func(e *Extractor) { e.cluster = o }
}

// WithDecoder replaces the image decoder.
func WithDecoder(d DecodeFunc) Option {
	return func(e *Extractor) { e.decode = d }
}

// WithAllowDuplicates relaxes the distinct-colour check: extraction only
// requires k opaque samples, and centroids may coincide when the image has
// fewer than k distinct colours.
func WithAllowDuplicates(allow bool) Option {
	return func(e *Extractor) { e.allowDuplicates = allow }
}

// NewExtractor creates an Extractor with an in-memory cache, random seeding
// and default sampling and clustering options.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		cache:   NewMemoryCache(),
		logger:  hclog.NewNullLogger(),
		seed:    seed.DefaultConfig(),
		sample:  DefaultSampleOptions(),
		cluster: DefaultClusterOptions(),
		decode:  imageloader.Decode,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cache returns the extractor's result cache.
func (e *Extractor) Cache() Cache {
	return e.cache
}

// Extract returns the k-colour palette of the encoded image in content.
// A cached palette for the same content and k is returned without decoding
// or clustering.
func (e *Extractor) Extract(ctx context.Context, content []byte, k int) (Palette, error) {
	if err := ValidateCount(k); err != nil {
		return nil, err
	}

	key := e.cacheKey(content, k)
	if cached, ok := e.cache.Get(key); ok {
		e.logger.Debug("palette cache hit", "key", key)
		return cached, nil
	}
	e.logger.Debug("palette cache miss", "key", key, "bytes", len(content))

	img, err := e.decode(content)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrImageLoad, err)
		e.logger.Debug("palette extraction failed", "kind", Kind(err), "error", err)
		return nil, err
	}

	rng, err := e.seed.Rand(content)
	if err != nil {
		return nil, fmt.Errorf("failed to seed random source: %w", err)
	}

	p, err := e.ExtractImage(ctx, img, k, rng)
	if err != nil {
		e.logger.Debug("palette extraction failed", "kind", Kind(err), "error", err)
		return nil, err
	}

	e.cache.Put(key, p)
	return p, nil
}

// cacheKey extends ContentKey with the sampling and clustering options, so
// Extractors configured differently can share one Cache.
func (e *Extractor) cacheKey(content []byte, k int) string {
	return fmt.Sprintf("%s/%d:%d:%s/%d:%g/%t",
		ContentKey(content, k),
		e.sample.Size, e.sample.AlphaThreshold, e.sample.Resample,
		e.cluster.MaxIterations, e.cluster.Epsilon,
		e.allowDuplicates)
}

// ExtractImage runs the pipeline on a decoded image without consulting the
// cache.
func (e *Extractor) ExtractImage(ctx context.Context, img image.Image, k int, rng *rand.Rand) (Palette, error) {
	if err := ValidateCount(k); err != nil {
		return nil, err
	}

	samples, err := Sample(img, e.sample)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("sampled image",
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy(),
		"grid", e.sample.Size, "opaque", len(samples))

	if !e.allowDuplicates {
		if distinct := distinctColours(samples); distinct < k {
			return nil, fmt.Errorf("%w: %d distinct opaque colours, %d requested",
				ErrInsufficientSamples, distinct, k)
		}
	}

	points := make([]Lab, len(samples))
	for i, s := range samples {
		points[i] = ToLab(s)
	}

	clustering, err := Cluster(ctx, points, k, rng, e.cluster)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("clustered samples",
		"k", k, "iterations", clustering.Iterations, "converged", clustering.Converged)

	return BuildPalette(clustering, len(samples)), nil
}
