package render

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{"#ff8000", 255, 128, 0, false},
		{"00ff00", 0, 255, 0, false},
		{" #0000FF ", 0, 0, 255, false},
		{"#fff", 0, 0, 0, true},
		{"#gg0000", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}
	for _, tt := range tests {
		r, g, b, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (r != tt.r || g != tt.g || b != tt.b) {
			t.Errorf("ParseColor(%q) = %d,%d,%d", tt.in, r, g, b)
		}
	}
}

func TestParseColorRandom(t *testing.T) {
	if _, _, _, err := ParseColor("random"); err != nil {
		t.Fatal(err)
	}
}

func TestParsePalette(t *testing.T) {
	got, err := ParsePalette([]string{"#ff0000", "", "#0000ff"})
	if err != nil {
		t.Fatal(err)
	}
	want := []color.Color{color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("palette[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := ParsePalette([]string{"nope"}); err == nil {
		t.Error("expected error for invalid entry")
	}
}
