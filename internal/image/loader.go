// Package image provides utilities for reading and decoding images.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

// Loader reads raw image bytes from a source.
type Loader interface {
	// Load returns the encoded image at path.
	Load(ctx context.Context, path string) ([]byte, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads an image file.
func (l *FileLoader) Load(_ context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	fetch      httputil.FetchOptions
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
	}
}

// Load reads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if !IsURL(path) {
		return l.fileLoader.Load(ctx, path)
	}

	data, err := httputil.Fetch(ctx, path, l.fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	return data, nil
}

// Decode decodes an encoded image.
// Supported formats: JPEG, PNG, GIF, WebP, BMP, TIFF.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

// isImageFile checks if a file has a supported image extension.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages returns the supported image files in dirPath,
// sorted by name. It does not recurse into subdirectories, but follows
// symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil {
			// Skip entries we can't stat (broken symlinks, permission issues).
			continue
		}
		if info.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}

	sort.Strings(imageFiles)
	return imageFiles, nil
}
