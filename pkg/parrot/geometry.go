// geometry.go - Flip resolution and placement arithmetic.
package parrot

// PlaceWithFlip returns the position and extent to hand to a raster draw for
// one axis. A flipped placement starts at the far edge and carries a negative
// extent, which the surface draws mirrored.
func PlaceWithFlip(position, extent int, flip bool) (int, int) {
	if !flip {
		return position, extent
	}
	return position + extent, -extent
}

// ResolveFlip XORs flip layers: each true layer inverts the result of the
// layers before it.
func ResolveFlip(layers ...bool) bool {
	flip := false
	for _, l := range layers {
		flip = flip != l
	}
	return flip
}
