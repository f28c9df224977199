// Package image loads source images from files, directories, archives and
// URLs, and encodes rendered output.
package image

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/pixelize/internal/compression"
	"github.com/jmylchreest/pixelize/internal/security"
	"github.com/jmylchreest/pixelize/internal/util/imagecache"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(ctx context.Context, path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem. Compressed images
// (.gz, .zst, .xz, .bz2) are decompressed by extension, and zip or tar
// archives yield their first image entry.
type FileLoader struct {
	logger hclog.Logger
}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader(logger hclog.Logger) *FileLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FileLoader{logger: logger}
}

// Load loads an image from a file path.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
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

	return l.decode(data, filepath.Base(path))
}

// decode unwraps archives and compression, then decodes the image.
func (l *FileLoader) decode(data []byte, name string) (image.Image, error) {
	if compression.IsArchive(name) {
		entry, entryName, err := compression.ExtractImage(data, name, IsImageFile)
		if err != nil {
			return nil, fmt.Errorf("failed to extract image from %s: %w", name, err)
		}
		l.logger.Debug("extracted image from archive", "archive", name, "entry", entryName)
		data, name = entry, entryName
	}

	rc, inner, err := compression.Open(bytes.NewReader(data), name)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
	}
	defer rc.Close()

	img, format, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", inner, err)
	}

	l.logger.Debug("decoded image",
		"name", inner,
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())
	return img, nil
}

// ValidateImagePath checks that path is an HTTP(S) URL, a directory, or an
// existing file with a supported image extension.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if isURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file or directory not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return nil
	}

	if !IsImageFile(path) && !compression.IsArchive(path) {
		return fmt.Errorf("unsupported image file: %s (supported: %v)", path, SupportedImageExtensions())
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

// IsImageFile reports whether name has a supported image extension, looking
// through a compression extension (photo.png.zst counts).
func IsImageFile(name string) bool {
	_, inner := compression.DetectFormat(name)
	ext := strings.ToLower(filepath.Ext(inner))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages scans a directory and returns all valid image files.
// It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}
		if IsImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}

	return imageFiles, nil
}

// SelectRandomImage selects a random image from a list of image paths.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("image path list is empty")
	}

	i, err := rand.Int(rand.Reader, big.NewInt(int64(len(imagePaths))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return imagePaths[i.Int64()], nil
}

// ResolveImagePath resolves a path that could be a file or directory.
// Directories resolve to a random image inside them; files and URLs are
// returned as-is.
func ResolveImagePath(path string) (string, error) {
	if isURL(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	return SelectRandomImage(imageFiles)
}

// SmartLoader loads images from local files, directories and HTTPS URLs.
// Remote images are downloaded into the image cache before decoding.
type SmartLoader struct {
	fileLoader  *FileLoader
	cache       imagecache.CacheOptions
	validateURL func(string) error
	logger      hclog.Logger
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(logger hclog.Logger, cache imagecache.CacheOptions) *SmartLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SmartLoader{
		fileLoader:  NewFileLoader(logger),
		cache:       cache,
		validateURL: security.ValidateHTTPURL,
		logger:      logger,
	}
}

// Load loads an image from a local file, a directory or an HTTPS URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if isURL(path) {
		return l.loadFromURL(ctx, path)
	}

	resolved, err := ResolveImagePath(path)
	if err != nil {
		return nil, err
	}
	if resolved != path {
		l.logger.Info("selected image from directory", "path", resolved)
	}

	return l.fileLoader.Load(ctx, resolved)
}

// loadFromURL downloads url into the cache and decodes the cached file.
func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	if err := l.validateURL(url); err != nil {
		return nil, fmt.Errorf("refusing to fetch image: %w", err)
	}

	cached, err := imagecache.DownloadAndCache(ctx, url, l.cache)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	l.logger.Debug("using cached image", "url", url, "path", cached)

	return l.fileLoader.Load(ctx, cached)
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
