package colour

import (
	"fmt"
	"slices"
)

// DefaultPaletteName is the palette used when none is configured.
const DefaultPaletteName = "retro"

// builtinPalettes holds the curated fixed palettes shipped with pixelize.
var builtinPalettes = map[string][]RGB{
	"retro": {
		{0, 0, 0},       // black
		{255, 255, 255}, // white
		{192, 192, 192}, // gray
		{255, 99, 71},   // tomato red
		{255, 0, 0},     // red
		{128, 0, 0},     // dark red
		{154, 205, 50},  // yellow green
		{0, 128, 0},     // green
		{0, 100, 0},     // dark green
		{0, 255, 255},   // aqua
		{0, 0, 255},     // blue
		{30, 144, 255},  // dodger blue
		{255, 165, 0},   // orange
		{205, 133, 63},  // peru
		{139, 69, 19},   // saddle brown
		{238, 130, 238}, // violet
		{148, 0, 211},   // dark violet
		{73, 0, 130},    // indigo
		{255, 255, 0},   // yellow
		{255, 222, 173}, // navajo white
		{210, 180, 140}, // tan
	},
	"gameboy": {
		{15, 56, 15},
		{48, 98, 48},
		{139, 172, 15},
		{155, 188, 15},
	},
	"pico8": {
		{0, 0, 0},
		{29, 43, 83},
		{126, 37, 83},
		{0, 135, 81},
		{171, 82, 54},
		{95, 87, 79},
		{194, 195, 199},
		{255, 241, 232},
		{255, 0, 77},
		{255, 163, 0},
		{255, 236, 39},
		{0, 228, 54},
		{41, 173, 255},
		{131, 118, 156},
		{255, 119, 168},
		{255, 204, 170},
	},
	"cga": {
		{0, 0, 0},
		{0, 0, 170},
		{0, 170, 0},
		{0, 170, 170},
		{170, 0, 0},
		{170, 0, 170},
		{170, 85, 0},
		{170, 170, 170},
		{85, 85, 85},
		{85, 85, 255},
		{85, 255, 85},
		{85, 255, 255},
		{255, 85, 85},
		{255, 85, 255},
		{255, 255, 85},
		{255, 255, 255},
	},
}

// BuiltinPaletteNames returns the names of the built-in palettes, sorted.
func BuiltinPaletteNames() []string {
	names := make([]string, 0, len(builtinPalettes))
	for name := range builtinPalettes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// BuiltinPalette returns a copy of the named built-in palette.
func BuiltinPalette(name string) (*Palette, error) {
	colours, ok := builtinPalettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (valid palettes: %v)", ErrUnknownPalette, name, BuiltinPaletteNames())
	}
	return NewPalette(name, slices.Clone(colours)), nil
}

// Retro returns the curated 21-colour retro palette.
func Retro() *Palette {
	p, _ := BuiltinPalette("retro")
	return p
}
