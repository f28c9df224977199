package colour

import (
	"bytes"
	"strings"
	"testing"
)

func TestColourPreview(t *testing.T) {
	got := ColourPreview(RGB{R: 255, G: 99, B: 71}, 3)
	want := "\033[48;2;255;99;71m   \033[0m"
	if got != want {
		t.Errorf("ColourPreview() = %q, want %q", got, want)
	}

	if got := ColourPreview(RGB{R: 300, G: -5}, 1); !strings.HasPrefix(got, "\033[48;2;255;0;0m") {
		t.Errorf("Expected out-of-range channels to saturate, got %q", got)
	}
}

func TestColourPreviewWithText(t *testing.T) {
	tests := []struct {
		name   string
		colour RGB
		text   string
		width  int
		fg     string
		body   string
	}{
		{"dark background", Black, "ab", 6, "\033[38;2;255;255;255m", "  ab  "},
		{"light background", White, "ab", 5, "\033[38;2;0;0;0m", " ab  "},
		{"truncated", Black, "#112233", 4, "\033[38;2;255;255;255m", "#112"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColourPreviewWithText(tt.colour, tt.text, tt.width)
			if !strings.Contains(got, tt.fg) {
				t.Errorf("missing foreground %q in %q", tt.fg, got)
			}
			if !strings.HasSuffix(got, tt.body+ansiReset) {
				t.Errorf("body of %q, want %q", got, tt.body)
			}
		})
	}
}

func TestFormatColourWithPreview(t *testing.T) {
	got := FormatColourWithPreview(RGB{G: 255}, 2)
	if !strings.HasSuffix(got, " #00ff00") {
		t.Errorf("FormatColourWithPreview() = %q", got)
	}
}

func TestSupportsANSIColoursNonTerminal(t *testing.T) {
	if SupportsANSIColours(&bytes.Buffer{}) {
		t.Error("Expected no colour support for a buffer")
	}

	t.Setenv("NO_COLOR", "1")
	if SupportsANSIColours(&bytes.Buffer{}) {
		t.Error("Expected NO_COLOR to disable colours")
	}
}
