// Package seed provides random sources for k-means centroid initialisation.
// Random mode (the default) varies every run; manual and content modes make
// uncached extractions reproducible.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"slices"
	"time"
)

// Mode determines how the random seed for k-means clustering is generated.
type Mode string

const (
	// ModeRandom uses a non-deterministic seed (varies each run).
	ModeRandom Mode = "random"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeContent derives the seed from a hash of the image content.
	ModeContent Mode = "content"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode   // Seed mode
	Value *int64 // Seed value (only used when Mode is ModeManual)
}

// DefaultConfig returns a random-mode configuration.
func DefaultConfig() Config {
	return Config{Mode: ModeRandom}
}

// Manual returns a configuration pinned to value.
func Manual(value int64) Config {
	return Config{Mode: ModeManual, Value: &value}
}

// Validate checks that the configuration can produce a seed.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Mode == ModeManual && c.Value == nil {
		return fmt.Errorf("seed value is required for manual seed mode")
	}
	return nil
}

// Calculate determines the seed value based on the seed mode.
// content is the raw image bytes (required for ModeContent).
func Calculate(content []byte, config Config) (int64, error) {
	switch config.Mode {
	case ModeContent:
		if len(content) == 0 {
			return 0, fmt.Errorf("content is required for content-based seed mode")
		}
		return ContentSeed(content), nil
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *config.Value, nil
	case ModeRandom, "":
		return GenerateRandomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// Rand returns a fresh generator for one extraction.
func (c Config) Rand(content []byte) (*rand.Rand, error) {
	s, err := Calculate(content, c)
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(s)), nil // #nosec G404 -- clustering does not need a CSPRNG
}

// ContentSeed derives a deterministic seed from content.
func ContentSeed(content []byte) int64 {
	hash := sha256.Sum256(content)
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}

// GenerateRandomSeed generates a non-deterministic random seed.
func GenerateRandomSeed() int64 {
	// #nosec G404 -- Random seed generation is intentionally non-deterministic
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeRandom, ModeManual, ModeContent}
}

// ParseMode converts a string to a Mode.
// Returns an error if the string is not a valid mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: random, manual, content)", s)
}
