package pipeline

import (
	"fmt"
	"image/color"
	"os"

	"github.com/jmylchreest/pixelize/internal/colour"
	"github.com/jmylchreest/pixelize/internal/surface"
)

// Environment variables read by WithEnv.
const (
	EnvPalette    = "PIXELIZE_PALETTE"
	EnvGridColour = "PIXELIZE_GRID_COLOUR"
	EnvGridStyle  = "PIXELIZE_GRID_STYLE"
)

// Default settings.
const (
	DefaultRows       = 80
	DefaultLevel      = 4
	DefaultGridColour = "darkgray"
)

// Config holds every user-controlled pipeline parameter.
type Config struct {
	// Rows is the number of tile rows. Columns follow the surface aspect ratio.
	Rows int

	// Strategy selects how sampled colours are reduced.
	Strategy colour.Strategy

	// Palette names a built-in palette. Ignored when PaletteFile is set.
	Palette string

	// PaletteFile is a path to a text or JSON palette file.
	PaletteFile string

	// Metric is the palette matching distance.
	Metric colour.Metric

	// Quantize holds the bit-depth settings used by StrategyQuantize.
	Quantize colour.QuantizeParams

	// GridColour is a CSS colour name or hex value for the grid overlay.
	GridColour string

	// GridStyle is the grid overlay stroke style.
	GridStyle surface.LineStyle

	// Width and Height size the drawing surface. Zero uses the image's natural
	// size; setting only one keeps the image aspect ratio.
	Width  int
	Height int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Rows:       DefaultRows,
		Strategy:   colour.StrategyPalette,
		Palette:    colour.DefaultPaletteName,
		Metric:     colour.MetricRGB,
		Quantize:   colour.QuantizeParams{Level: DefaultLevel},
		GridColour: DefaultGridColour,
		GridStyle:  surface.StyleStitch,
	}
}

// WithEnv returns a copy of c with PIXELIZE_* environment overrides applied.
func (c Config) WithEnv() Config {
	if v := os.Getenv(EnvPalette); v != "" {
		c.Palette = v
	}
	if v := os.Getenv(EnvGridColour); v != "" {
		c.GridColour = v
	}
	if v := os.Getenv(EnvGridStyle); v != "" {
		c.GridStyle = surface.LineStyle(v)
	}
	return c
}

// Validate validates the configuration without touching the filesystem.
// Every error wraps ErrConfiguration.
func (c Config) Validate() error {
	if c.Rows < 1 {
		return configError(fmt.Errorf("row count must be at least 1, got %d", c.Rows))
	}
	if c.Width < 0 || c.Height < 0 {
		return configError(fmt.Errorf("surface size cannot be negative, got %dx%d", c.Width, c.Height))
	}
	if _, err := colour.ParseStrategy(string(c.Strategy)); err != nil {
		return configError(err)
	}

	switch c.Strategy {
	case colour.StrategyPalette:
		if c.Metric != "" {
			if _, err := colour.ParseMetric(string(c.Metric)); err != nil {
				return configError(err)
			}
		}
		if c.PaletteFile == "" {
			if _, err := colour.BuiltinPalette(c.Palette); err != nil {
				return configError(err)
			}
		}
	case colour.StrategyQuantize:
		if err := c.Quantize.Validate(); err != nil {
			return configError(err)
		}
	}

	if _, err := c.GridStroke(); err != nil {
		return err
	}
	return nil
}

// ResolvePalette returns the palette file when set, otherwise the named built-in.
func (c Config) ResolvePalette() (*colour.Palette, error) {
	if c.PaletteFile != "" {
		p, err := colour.LoadPaletteFile(c.PaletteFile)
		if err != nil {
			return nil, configError(err)
		}
		return p, nil
	}

	p, err := colour.BuiltinPalette(c.Palette)
	if err != nil {
		return nil, configError(err)
	}
	return p, nil
}

// Reducer builds the colour reducer for the selected strategy.
func (c Config) Reducer() (colour.Reducer, error) {
	rc := colour.ReducerConfig{
		Strategy: c.Strategy,
		Metric:   c.Metric,
		Quantize: c.Quantize,
	}

	if c.Strategy == colour.StrategyPalette {
		p, err := c.ResolvePalette()
		if err != nil {
			return nil, err
		}
		rc.Palette = p
	}

	r, err := colour.NewReducer(rc)
	if err != nil {
		return nil, configError(err)
	}
	return r, nil
}

// Stroke is the resolved grid overlay appearance.
type Stroke struct {
	Colour color.NRGBA
	Style  surface.LineStyle
}

// GridStroke parses the grid colour and style.
func (c Config) GridStroke() (Stroke, error) {
	col, err := surface.ParseColour(c.GridColour)
	if err != nil {
		return Stroke{}, configError(err)
	}
	style, err := surface.ParseLineStyle(string(c.GridStyle))
	if err != nil {
		return Stroke{}, configError(err)
	}
	return Stroke{Colour: col, Style: style}, nil
}
