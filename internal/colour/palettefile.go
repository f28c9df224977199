package colour

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadPaletteFile loads a custom palette from a JSON or text file.
//
// JSON files use the shape written by Palette.ToJSON; every entry needs a hex
// value or an in-range rgb triple. Text files list one hex colour per line and
// accept "colourN=hex" lines. Blank lines, "//" lines and "#" lines that are
// not hex colours ("# retro", "#Gameboy greens") are comments.
func LoadPaletteFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified palette file, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var colours []RGB
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		colours, err = parseJSONPalette(data)
	} else {
		colours, err = parseTextPalette(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse palette file %s: %w", path, err)
	}

	palette := NewPalette(name, colours)
	if err := palette.Validate(); err != nil {
		return nil, fmt.Errorf("palette file %s: %w", path, err)
	}
	return palette, nil
}

// parseJSONPalette parses the PaletteJSON format.
// Entries carrying a hex value win over their rgb triple.
func parseJSONPalette(data []byte) ([]RGB, error) {
	var pj struct {
		Colours []struct {
			Hex string `json:"hex"`
			RGB *RGB   `json:"rgb"`
		} `json:"colors"`
	}
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, err
	}

	colours := make([]RGB, 0, len(pj.Colours))
	for i, cj := range pj.Colours {
		if cj.Hex == "" {
			switch {
			case cj.RGB == nil:
				return nil, fmt.Errorf("colour %d: %w: no hex or rgb value", i+1, ErrInvalidColour)
			case !cj.RGB.InRange():
				return nil, fmt.Errorf("colour %d: %w: %s has channels outside 0-255", i+1, ErrInvalidColour, cj.RGB)
			}
			colours = append(colours, *cj.RGB)
			continue
		}
		rgb, err := ParseHex(cj.Hex)
		if err != nil {
			return nil, fmt.Errorf("colour %d: %w", i+1, err)
		}
		colours = append(colours, rgb)
	}
	return colours, nil
}

// parseTextPalette parses a simple text format palette.
func parseTextPalette(content string) ([]RGB, error) {
	var colours []RGB

	for lineNum, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		// Skip empty lines and comments. "#abc" is a colour, "# abc" and "#Retro" are comments.
		if line == "" || strings.HasPrefix(line, "//") || isHashComment(line) {
			continue
		}

		hex := line
		if key, value, ok := strings.Cut(line, "="); ok {
			key = strings.ToLower(strings.TrimSpace(key))
			if !strings.HasPrefix(key, "colour") && !strings.HasPrefix(key, "color") {
				return nil, fmt.Errorf("line %d: unsupported key %q (expected colourN=hex)", lineNum+1, key)
			}
			hex = strings.TrimSpace(value)
		}

		rgb, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
		}
		colours = append(colours, rgb)
	}

	return colours, nil
}

// isHashComment reports whether a "#" line is a comment rather than a hex
// colour. Lines whose remainder is made only of hex digits are colours, so a
// mistyped colour such as "#ff00" still fails to parse.
func isHashComment(line string) bool {
	rest, ok := strings.CutPrefix(line, "#")
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	for _, r := range rest {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return true
		}
	}
	return false
}
