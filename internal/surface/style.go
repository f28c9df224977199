package surface

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/jmylchreest/pixelize/internal/colour"
)

var (
	// ErrUnknownStyle is returned for an unrecognised grid line style.
	ErrUnknownStyle = errors.New("unknown grid style")

	// ErrUnknownColour is returned when a grid colour is neither a CSS name nor hex.
	ErrUnknownColour = errors.New("unknown grid colour")
)

// LineStyle selects how grid lines are stroked.
type LineStyle string

const (
	// StyleStitch draws short dashes, like cross-stitch thread.
	StyleStitch LineStyle = "stitch"

	// StyleSolid draws continuous lines.
	StyleSolid LineStyle = "solid"
)

// LineWidth is the stroke width of grid lines in pixels.
const LineWidth = 1.0

// ValidLineStyles returns the supported grid line styles.
func ValidLineStyles() []LineStyle {
	return []LineStyle{StyleStitch, StyleSolid}
}

// ParseLineStyle converts a style name into a LineStyle.
func ParseLineStyle(name string) (LineStyle, error) {
	s := LineStyle(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(ValidLineStyles(), s) {
		return "", fmt.Errorf("%w: %s (valid styles: %v)", ErrUnknownStyle, name, ValidLineStyles())
	}
	return s, nil
}

// Dashes returns the dash pattern for the style, or nil for a continuous line.
func (s LineStyle) Dashes() []float64 {
	if s == StyleStitch {
		return []float64{1, 5}
	}
	return nil
}

// ParseColour parses a grid colour given as a CSS colour name ("darkgray") or a
// hex string ("#a9a9a9", "a9a9a9", "#aaa").
func ParseColour(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.NRGBA{}, fmt.Errorf("%w: empty value", ErrUnknownColour)
	}

	if c, ok := colornames.Map[name]; ok {
		return color.NRGBAModel.Convert(c).(color.NRGBA), nil
	}

	rgb, err := colour.ParseHex(name)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %s", ErrUnknownColour, s)
	}
	return rgb.NRGBA(), nil
}
