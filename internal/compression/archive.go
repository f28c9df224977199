package compression

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/jmylchreest/pixelize/internal/security"
)

// ErrNoImage is returned when an archive holds no entry accepted by the matcher.
var ErrNoImage = errors.New("no image found in archive")

var tarSuffixes = []struct {
	ext    string
	format Format
}{
	{".tar", FormatNone},
	{".tar.gz", FormatGzip},
	{".tgz", FormatGzip},
	{".tar.zst", FormatZstd},
	{".tzst", FormatZstd},
	{".tar.xz", FormatXz},
	{".txz", FormatXz},
	{".tar.bz2", FormatBzip2},
	{".tbz2", FormatBzip2},
	{".tbz", FormatBzip2},
}

// IsArchive reports whether name has a zip or tar extension.
func IsArchive(name string) bool {
	if strings.HasSuffix(strings.ToLower(name), ".zip") {
		return true
	}
	_, ok := tarFormat(name)
	return ok
}

func tarFormat(name string) (Format, bool) {
	lower := strings.ToLower(name)
	for _, s := range tarSuffixes {
		if strings.HasSuffix(lower, s.ext) {
			return s.format, true
		}
	}
	return FormatNone, false
}

// ExtractImage returns the contents and name of the first archive entry whose
// name is accepted by match. Directories, hidden files and macOS resource
// forks are skipped.
func ExtractImage(data []byte, name string, match func(string) bool) ([]byte, string, error) {
	if strings.HasSuffix(strings.ToLower(name), ".zip") {
		return extractFromZip(data, match)
	}
	if f, ok := tarFormat(name); ok {
		return extractFromTar(data, f, match)
	}
	return nil, "", fmt.Errorf("not an archive: %s", name)
}

func candidate(name string, match func(string) bool) bool {
	if strings.HasPrefix(name, "__MACOSX/") || strings.HasPrefix(path.Base(name), ".") {
		return false
	}
	return match(name)
}

func extractFromZip(data []byte, match func(string) bool) ([]byte, string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create zip reader: %w", err)
	}

	var found []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		found = append(found, f.Name)
		if !candidate(f.Name, match) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		content, err := io.ReadAll(security.NewLimitedReader(rc, security.MaxDecodedBytes))
		closeErr := rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s from archive: %w", f.Name, err)
		}
		if closeErr != nil {
			return nil, "", fmt.Errorf("failed to close %s in archive: %w", f.Name, closeErr)
		}
		return content, f.Name, nil
	}

	return nil, "", fmt.Errorf("%w (found: %v)", ErrNoImage, found)
}

func extractFromTar(data []byte, f Format, match func(string) bool) ([]byte, string, error) {
	rc, err := NewReader(bytes.NewReader(data), f)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	tr := tar.NewReader(rc)
	var found []string
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read tar header: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		found = append(found, header.Name)
		if !candidate(header.Name, match) {
			continue
		}

		content, err := io.ReadAll(security.NewLimitedReader(tr, security.MaxDecodedBytes))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s from archive: %w", header.Name, err)
		}
		return content, header.Name, nil
	}

	return nil, "", fmt.Errorf("%w (found: %v)", ErrNoImage, found)
}
