package colour

import (
	"errors"
	"slices"
	"testing"
)

func TestMatchReturnsExactEntries(t *testing.T) {
	palette := Retro()

	for i, c := range palette.All() {
		got, err := Match(c, palette)
		if err != nil {
			t.Fatalf("Match() error: %v", err)
		}
		if got != c {
			t.Errorf("entry %d: Match(%v) = %v, want itself", i, c, got)
		}
	}
}

func TestMatchReturnsPaletteMember(t *testing.T) {
	palette := Retro()

	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				c := RGB{R: r, G: g, B: b}
				for _, m := range ValidMetrics() {
					got, err := MatchWith(c, palette, m)
					if err != nil {
						t.Fatalf("MatchWith(%v, %s) error: %v", c, m, err)
					}
					if !slices.Contains(palette.Colours, got) {
						t.Fatalf("MatchWith(%v, %s) = %v, not in palette", c, m, got)
					}
				}
			}
		}
	}
}

func TestMatchNearest(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want RGB
	}{
		{name: "near red", in: RGB{R: 250, G: 10, B: 5}, want: RGB{R: 255, G: 0, B: 0}},
		{name: "near black", in: RGB{R: 12, G: 8, B: 20}, want: Black},
		{name: "near white", in: RGB{R: 250, G: 250, B: 252}, want: White},
		{name: "near dodger blue", in: RGB{R: 35, G: 140, B: 240}, want: RGB{R: 30, G: 144, B: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.in, Retro())
			if err != nil {
				t.Fatalf("Match() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchTieKeepsFirstEntry(t *testing.T) {
	palette := NewPalette("ties", []RGB{
		{R: 0, G: 0, B: 0},
		{R: 10, G: 0, B: 0},
		{R: 0, G: 0, B: 0},
	})

	got, err := Match(RGB{R: 5, G: 0, B: 0}, palette)
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if got != (RGB{R: 0, G: 0, B: 0}) {
		t.Errorf("Match() = %v, want first equidistant entry", got)
	}
}

func TestMatchEmptyPalette(t *testing.T) {
	if _, err := Match(White, NewPalette("empty", nil)); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("Match() error = %v, want ErrEmptyPalette", err)
	}
	if _, err := Match(White, nil); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("Match(nil) error = %v, want ErrEmptyPalette", err)
	}
}

func TestMatchWithUnknownMetric(t *testing.T) {
	if _, err := MatchWith(White, Retro(), Metric("hsv")); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("MatchWith() error = %v, want ErrUnknownMetric", err)
	}
	if _, err := ParseMetric("hsv"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("ParseMetric() error = %v, want ErrUnknownMetric", err)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(Black, RGB{R: 3, G: 4, B: 0}); got != 5 {
		t.Errorf("Distance() = %f, want 5", got)
	}
	if got := Distance(White, White); got != 0 {
		t.Errorf("Distance() = %f, want 0", got)
	}
}
