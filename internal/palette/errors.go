package palette

import (
	"errors"
	"fmt"
)

// Extraction failure kinds. Callers match them with errors.Is; the wrapped
// message carries the detail.
var (
	// ErrImageLoad is returned when the source image cannot be decoded.
	ErrImageLoad = errors.New("image load failed")

	// ErrEmptyInput is returned when no pixel survives the alpha filter.
	ErrEmptyInput = errors.New("no opaque pixels in image")

	// ErrInsufficientSamples is returned when the image holds fewer distinct
	// opaque colours (or points) than the requested cluster count.
	ErrInsufficientSamples = errors.New("insufficient samples for cluster count")

	// ErrInvalidCount is returned when the requested colour count is outside
	// [MinColours, MaxColours].
	ErrInvalidCount = errors.New("invalid colour count")
)

// Colour count bounds accepted by the Extractor.
const (
	MinColours     = 2
	MaxColours     = 10
	DefaultColours = 5
)

// ValidateCount checks that k is within the supported range.
func ValidateCount(k int) error {
	if k < MinColours || k > MaxColours {
		return fmt.Errorf("%w: %d (valid: %d-%d)", ErrInvalidCount, k, MinColours, MaxColours)
	}
	return nil
}

// Kind returns a stable name for the failure kind of err, for logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrImageLoad):
		return "image_load"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrInsufficientSamples):
		return "insufficient_samples"
	case errors.Is(err, ErrInvalidCount):
		return "invalid_count"
	default:
		return "unknown"
	}
}
