package pipeline

import (
	"errors"
	"testing"

	"github.com/jmylchreest/pixelize/internal/colour"
	"github.com/jmylchreest/pixelize/internal/surface"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error: %v", err)
	}
	if cfg.Rows != DefaultRows {
		t.Errorf("Rows = %d, want %d", cfg.Rows, DefaultRows)
	}
	if cfg.Strategy != colour.StrategyPalette || cfg.Palette != colour.DefaultPaletteName {
		t.Errorf("strategy = %s/%s, want palette/%s", cfg.Strategy, cfg.Palette, colour.DefaultPaletteName)
	}
	if cfg.GridStyle != surface.StyleStitch || cfg.GridColour != "darkgray" {
		t.Errorf("grid = %s %s, want darkgray stitch", cfg.GridColour, cfg.GridStyle)
	}
	if cfg.Quantize.Clamp {
		t.Error("clamping should be opt-in")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default", mutate: func(*Config) {}},
		{name: "lab metric", mutate: func(c *Config) { c.Metric = colour.MetricLab }},
		{name: "empty metric", mutate: func(c *Config) { c.Metric = "" }},
		{name: "unknown metric", mutate: func(c *Config) { c.Metric = "hsv" }, wantErr: true},
		{name: "negative width", mutate: func(c *Config) { c.Width = -1 }, wantErr: true},
		{name: "level 9 ignored by palette strategy", mutate: func(c *Config) { c.Quantize.Level = 9 }},
		{name: "level 9 with quantize", mutate: func(c *Config) {
			c.Strategy = colour.StrategyQuantize
			c.Quantize.Level = 9
		}, wantErr: true},
		{name: "level 0 with quantize", mutate: func(c *Config) {
			c.Strategy = colour.StrategyQuantize
			c.Quantize.Level = 0
		}},
		{name: "hex grid colour", mutate: func(c *Config) { c.GridColour = "#336699" }},
		{name: "palette file skips built-in lookup", mutate: func(c *Config) {
			c.Palette = "unknown"
			c.PaletteFile = "palette.txt"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrConfiguration) {
					t.Errorf("Validate() error = %v, want ErrConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}

func TestConfigWithEnv(t *testing.T) {
	t.Setenv(EnvPalette, "gameboy")
	t.Setenv(EnvGridColour, "black")
	t.Setenv(EnvGridStyle, "solid")

	cfg := DefaultConfig().WithEnv()

	if cfg.Palette != "gameboy" {
		t.Errorf("Palette = %s, want gameboy", cfg.Palette)
	}
	if cfg.GridColour != "black" {
		t.Errorf("GridColour = %s, want black", cfg.GridColour)
	}
	if cfg.GridStyle != surface.StyleSolid {
		t.Errorf("GridStyle = %s, want solid", cfg.GridStyle)
	}
}

func TestConfigWithEnvUnset(t *testing.T) {
	t.Setenv(EnvPalette, "")

	if got := DefaultConfig().WithEnv(); got.Palette != colour.DefaultPaletteName {
		t.Errorf("Palette = %s, want %s", got.Palette, colour.DefaultPaletteName)
	}
}

func TestConfigReducer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palette = "gameboy"

	r, err := cfg.Reducer()
	if err != nil {
		t.Fatalf("Reducer() error: %v", err)
	}
	pr, ok := r.(*colour.PaletteReducer)
	if !ok {
		t.Fatalf("Reducer() = %T, want *colour.PaletteReducer", r)
	}
	if pr.Palette().Name != "gameboy" {
		t.Errorf("palette = %s, want gameboy", pr.Palette().Name)
	}
}
