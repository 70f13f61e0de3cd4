package parrot

import "testing"

func TestPlaceWithFlip(t *testing.T) {
	tests := []struct {
		name         string
		pos, extent  int
		flip         bool
		wantPos, ext int
	}{
		{"no flip", 5, 20, false, 5, 20},
		{"flip", 5, 20, true, 25, -20},
		{"flip at origin", 0, 8, true, 8, -8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ext := PlaceWithFlip(tt.pos, tt.extent, tt.flip)
			if pos != tt.wantPos || ext != tt.ext {
				t.Errorf("PlaceWithFlip(%d, %d, %v) = (%d, %d), want (%d, %d)",
					tt.pos, tt.extent, tt.flip, pos, ext, tt.wantPos, tt.ext)
			}
		})
	}
}

func TestPlaceWithFlipTwiceRestores(t *testing.T) {
	for pos := -3; pos <= 3; pos++ {
		for ext := 1; ext <= 5; ext++ {
			p1, e1 := PlaceWithFlip(pos, ext, true)
			p2, e2 := PlaceWithFlip(p1, e1, true)
			if p2 != pos || e2 != ext {
				t.Errorf("double flip of (%d, %d) = (%d, %d)", pos, ext, p2, e2)
			}
		}
	}
}

func TestResolveFlip(t *testing.T) {
	tests := []struct {
		layers []bool
		want   bool
	}{
		{nil, false},
		{[]bool{false, false, false}, false},
		{[]bool{true, false, false}, true},
		{[]bool{true, true, false}, false},
		{[]bool{true, true, true}, true},
		{[]bool{false, true, true}, false},
		{[]bool{false, false, true}, true},
	}
	for _, tt := range tests {
		if got := ResolveFlip(tt.layers...); got != tt.want {
			t.Errorf("ResolveFlip(%v) = %v, want %v", tt.layers, got, tt.want)
		}
	}
}
