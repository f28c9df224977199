package colour

import (
	"encoding/json"
	"errors"
	"image/color"
	"testing"
)

func TestNewPalette(t *testing.T) {
	colours := []RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
	}

	palette := NewPalette("primaries", colours)

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}

	if palette.Len() != 3 {
		t.Errorf("Expected palette length 3, got %d", palette.Len())
	}
	if palette.Name != "primaries" {
		t.Errorf("Expected name primaries, got %s", palette.Name)
	}
}

func TestPaletteValidate(t *testing.T) {
	tests := []struct {
		name    string
		palette *Palette
		wantErr bool
	}{
		{name: "nil palette", palette: nil, wantErr: true},
		{name: "empty palette", palette: NewPalette("empty", nil), wantErr: true},
		{name: "single colour", palette: NewPalette("one", []RGB{White}), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.palette.Validate()
			if tt.wantErr && !errors.Is(err, ErrEmptyPalette) {
				t.Errorf("Validate() = %v, want ErrEmptyPalette", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "straight alpha keeps channels",
			color: color.NRGBA{R: 200, G: 100, B: 50, A: 10},
			want:  RGB{R: 200, G: 100, B: 50},
		},
		{
			name:  "fully transparent",
			color: color.NRGBA{R: 0, G: 0, B: 0, A: 0},
			want:  RGB{R: 0, G: 0, B: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGB(tt.color)
			if got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: "#ff0000"},
		{name: "black", rgb: RGB{R: 0, G: 0, B: 0}, want: "#000000"},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: "#808080"},
		{name: "overflow saturates", rgb: RGB{R: 300, G: 256, B: -4}, want: "#ffff00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRGBStringAndKey(t *testing.T) {
	rgb := RGB{R: 260, G: 10, B: 0}

	if got := rgb.String(); got != "rgb(260, 10, 0)" {
		t.Errorf("String() = %s", got)
	}
	if got := rgb.Key(); got != "260,10,0" {
		t.Errorf("Key() = %s", got)
	}
	if rgb.InRange() {
		t.Error("InRange() = true for an overflowing channel")
	}
	if got := rgb.Clamp(); got != (RGB{R: 255, G: 10, B: 0}) {
		t.Errorf("Clamp() = %+v", got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{in: "#ff6347", want: RGB{R: 255, G: 99, B: 71}},
		{in: "1e90ff", want: RGB{R: 30, G: 144, B: 255}},
		{in: "#fff", want: White},
		{in: "  #000000 ", want: Black},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHex(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaletteToJSON(t *testing.T) {
	palette := NewPalette("duo", []RGB{{R: 255, G: 0, B: 0}, {R: 0, G: 0, B: 255}})

	data, err := palette.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if decoded.Count != 2 || decoded.Name != "duo" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Colours[1].Hex != "#0000ff" {
		t.Errorf("second colour hex = %s, want #0000ff", decoded.Colours[1].Hex)
	}
}

func TestBuiltinPalette(t *testing.T) {
	for _, name := range BuiltinPaletteNames() {
		t.Run(name, func(t *testing.T) {
			p, err := BuiltinPalette(name)
			if err != nil {
				t.Fatalf("BuiltinPalette(%s) error: %v", name, err)
			}
			if err := p.Validate(); err != nil {
				t.Errorf("built-in palette %s invalid: %v", name, err)
			}
			for i, c := range p.All() {
				if !c.InRange() {
					t.Errorf("colour %d out of range: %v", i, c)
				}
			}
		})
	}

	if _, err := BuiltinPalette("sepia"); !errors.Is(err, ErrUnknownPalette) {
		t.Errorf("expected ErrUnknownPalette, got %v", err)
	}

	if got := Retro().Len(); got != 21 {
		t.Errorf("retro palette has %d colours, want 21", got)
	}
}

func TestBuiltinPaletteReturnsCopy(t *testing.T) {
	p := Retro()
	p.Colours[0] = RGB{R: 1, G: 2, B: 3}

	if Retro().Colours[0] != Black {
		t.Error("mutating a returned palette changed the built-in palette")
	}
}
