package colour

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePaletteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write palette file: %v", err)
	}
	return path
}

func TestLoadPaletteFileText(t *testing.T) {
	path := writePaletteFile(t, "sunset.txt", `# sunset palette
#ff6347
colour1 = #ffa500

// trailing comment
#fff
`)

	p, err := LoadPaletteFile(path)
	if err != nil {
		t.Fatalf("LoadPaletteFile() error: %v", err)
	}

	want := []RGB{{R: 255, G: 99, B: 71}, {R: 255, G: 165, B: 0}, White}
	if p.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", p.Len(), len(want))
	}
	for i, c := range want {
		if p.Colours[i] != c {
			t.Errorf("colour %d = %v, want %v", i, p.Colours[i], c)
		}
	}
	if p.Name != "sunset" {
		t.Errorf("Name = %s, want sunset", p.Name)
	}
}

func TestLoadPaletteFileJSONRoundTrip(t *testing.T) {
	data, err := NewPalette("gb", []RGB{{R: 15, G: 56, B: 15}, {R: 155, G: 188, B: 15}}).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	path := writePaletteFile(t, "gb.json", string(data))

	p, err := LoadPaletteFile(path)
	if err != nil {
		t.Fatalf("LoadPaletteFile() error: %v", err)
	}
	if p.Len() != 2 || p.Colours[1] != (RGB{R: 155, G: 188, B: 15}) {
		t.Errorf("loaded palette = %v", p.Colours)
	}
}

func TestLoadPaletteFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "empty.txt", content: "# nothing here\n", wantErr: ErrEmptyPalette},
		{name: "bad.txt", content: "#ff0000\nnot-a-colour\n"},
		{name: "role.txt", content: "background=#000000\n"},
		{name: "bad.json", content: `{"colors": [`},
		{name: "typo.txt", content: "#112233\n#ff00\n"},
		{name: "empty-entry.json", content: `{"colors": [{"hex": "#000000"}, {}]}`, wantErr: ErrInvalidColour},
		{name: "range.json", content: `{"colors": [{"rgb": {"r": 900, "g": -5, "b": 3}}]}`, wantErr: ErrInvalidColour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPaletteFile(writePaletteFile(t, tt.name, tt.content))
			if err == nil {
				t.Fatal("LoadPaletteFile() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadPaletteFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadPaletteFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadPaletteFileHashComments(t *testing.T) {
	path := writePaletteFile(t, "gameboy.txt", `#Gameboy greens
#
#0f380f
# darkest first
#9bbc0f
`)

	p, err := LoadPaletteFile(path)
	if err != nil {
		t.Fatalf("LoadPaletteFile() error: %v", err)
	}
	want := []RGB{{R: 15, G: 56, B: 15}, {R: 155, G: 188, B: 15}}
	if p.Len() != len(want) || p.Colours[0] != want[0] || p.Colours[1] != want[1] {
		t.Errorf("colours = %v, want %v", p.Colours, want)
	}
}

func TestLoadPaletteFileJSONRGBEntries(t *testing.T) {
	path := writePaletteFile(t, "mixed.json", `{"colors": [{"rgb": {"r": 1, "g": 2, "b": 3}}, {"hex": "#ffffff", "rgb": {"r": 0, "g": 0, "b": 0}}]}`)

	p, err := LoadPaletteFile(path)
	if err != nil {
		t.Fatalf("LoadPaletteFile() error: %v", err)
	}
	if p.Len() != 2 || p.Colours[0] != (RGB{R: 1, G: 2, B: 3}) || p.Colours[1] != White {
		t.Errorf("colours = %v", p.Colours)
	}
}
