package image

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    OutputFormat
		wantErr bool
	}{
		{path: "out.png", want: FormatPNG},
		{path: "out.JPG", want: FormatJPEG},
		{path: "out.jpeg", want: FormatJPEG},
		{path: "out.gif", want: FormatGIF},
		{path: "out.bmp", want: FormatBMP},
		{path: "out.tif", want: FormatTIFF},
		{path: "out.tiff", want: FormatTIFF},
		{path: "out.webp", wantErr: true},
		{path: "out", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("FormatFromPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	loader := NewFileLoader(nil)

	tests := []struct {
		name     string
		lossless bool
	}{
		{name: "out.png", lossless: true},
		{name: "out.bmp", lossless: true},
		{name: "out.tiff", lossless: true},
		{name: "out.jpg"},
		{name: "out.gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := Save(path, testImage()); err != nil {
				t.Fatalf("Save() error: %v", err)
			}

			img, err := loader.Load(context.Background(), path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if tt.lossless {
				assertTestImage(t, img)
				return
			}
			if img.Bounds() != testImage().Bounds() {
				t.Errorf("bounds = %v, want %v", img.Bounds(), testImage().Bounds())
			}
		})
	}

	if err := Save(filepath.Join(dir, "out.webp"), testImage()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.webp) error = %v, want ErrUnsupportedFormat", err)
	}
}
