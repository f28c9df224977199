// Package compression transparently decompresses image inputs and pulls
// images out of archives.
package compression

import (
	"compress/bzip2"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/pixelize/internal/security"
)

// Format is a single-stream compression format.
type Format string

const (
	FormatNone  Format = ""
	FormatGzip  Format = "gzip"
	FormatZstd  Format = "zstd"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
)

var suffixes = []struct {
	ext    string
	format Format
}{
	{".gz", FormatGzip},
	{".zst", FormatZstd},
	{".xz", FormatXz},
	{".bz2", FormatBzip2},
}

// DetectFormat returns the compression format implied by name's extension and
// the name with that extension removed.
func DetectFormat(name string) (Format, string) {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.ext) {
			return s.format, name[:len(name)-len(s.ext)]
		}
	}
	return FormatNone, name
}

// NewReader wraps r with a decompressor for f. The result is limited to
// security.MaxDecodedBytes. FormatNone returns r unchanged.
func NewReader(r io.Reader, f Format) (io.ReadCloser, error) {
	var (
		dr      io.Reader
		closeFn func() error
	)

	switch f {
	case FormatNone:
		return io.NopCloser(r), nil
	case FormatGzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		dr, closeFn = gzr, gzr.Close
	case FormatZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		dr, closeFn = zr, func() error { zr.Close(); return nil }
	case FormatXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		dr = xzr
	case FormatBzip2:
		dr = bzip2.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", f)
	}

	return &readCloser{
		Reader:  security.NewLimitedReader(dr, security.MaxDecodedBytes),
		closeFn: closeFn,
	}, nil
}

// Open detects the compression format from name and wraps r accordingly.
// It returns the reader and the name with the compression extension removed.
func Open(r io.Reader, name string) (io.ReadCloser, string, error) {
	f, inner := DetectFormat(name)
	rc, err := NewReader(r, f)
	if err != nil {
		return nil, "", err
	}
	return rc, inner, nil
}

type readCloser struct {
	io.Reader
	closeFn func() error
}

func (rc *readCloser) Close() error {
	if rc.closeFn == nil {
		return nil
	}
	return rc.closeFn()
}
