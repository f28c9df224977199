// Package colour provides the colour types, fixed palettes and colour reduction
// strategies used to turn sampled tile colours into pixel-art colours.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"iter"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a tile colour.
// Channels are ints rather than bytes: quantization with a light boost can
// legitimately produce values outside [0, 255].
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

var (
	// Black is the colour of a tile that has not been resolved yet.
	Black = RGB{R: 0, G: 0, B: 0}

	// White is the colour assigned to transparent tiles.
	White = RGB{R: 255, G: 255, B: 255}
)

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the clamped RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	c := rgb.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Key returns the canonical "r,g,b" key of the colour.
// Two colours share a key exactly when their channels are equal.
func (rgb RGB) Key() string {
	return fmt.Sprintf("%d,%d,%d", rgb.R, rgb.G, rgb.B)
}

// InRange reports whether every channel lies in [0, 255].
func (rgb RGB) InRange() bool {
	return rgb.Clamp() == rgb
}

// Clamp saturates every channel into [0, 255].
func (rgb RGB) Clamp() RGB {
	return RGB{R: clampChannel(rgb.R), G: clampChannel(rgb.G), B: clampChannel(rgb.B)}
}

// NRGBA converts the colour to an opaque color.NRGBA, saturating out of range channels.
func (rgb RGB) NRGBA() color.NRGBA {
	c := rgb.Clamp()
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
}

// toColorful returns the colour in go-colorful's normalised representation.
func (rgb RGB) toColorful() colorful.Color {
	c := rgb.Clamp()
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func clampChannel(v int) int {
	return max(0, min(255, v))
}

// ToRGB converts a color.Color to RGB, ignoring alpha.
// Premultiplied colours are converted to their straight-alpha channel values.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: int(n.R), G: int(n.G), B: int(n.B)}
}

// ParseHex parses "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, nil
}

// Palette is an ordered set of reference colours used for nearest-colour matching.
type Palette struct {
	Name    string
	Colours []RGB
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(name string, colours []RGB) *Palette {
	return &Palette{
		Name:    name,
		Colours: colours,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Colours)
}

// Validate reports ErrEmptyPalette for a nil or empty palette.
func (p *Palette) Validate() error {
	if p.Len() == 0 {
		return ErrEmptyPalette
	}
	return nil
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (RGB, error) {
	if index < 0 || index >= p.Len() {
		return RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, p.Len())
	}
	return p.Colours[index], nil
}

// All returns an iterator over the palette colours in scan order.
func (p *Palette) All() iter.Seq2[int, RGB] {
	return func(yield func(int, RGB) bool) {
		if p == nil {
			return
		}
		for i, c := range p.Colours {
			if !yield(i, c) {
				return
			}
		}
	}
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColours := make([]string, 0, p.Len())
	for _, c := range p.All() {
		hexColours = append(hexColours, c.Hex())
	}
	return hexColours
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Name    string       `json:"name,omitempty"`
	Count   int          `json:"count"`
	Colours []ColourJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, 0, p.Len())
	for _, c := range p.All() {
		colours = append(colours, ColourJSON{Hex: c.Hex(), RGB: c})
	}

	return json.MarshalIndent(PaletteJSON{
		Name:    p.Name,
		Count:   len(colours),
		Colours: colours,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if p.Len() == 0 {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette %s with %d colours:\n", p.Name, p.Len())
	for i, c := range p.All() {
		fmt.Fprintf(&b, "  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return b.String()
}
