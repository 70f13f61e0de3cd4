// color.go - Color parsing for tint variants.
package render

import (
	"crypto/rand"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
)

// ParseColor parses a color string. Accepts "#rrggbb", "rrggbb" or "random".
func ParseColor(s string) (r, g, b uint8, err error) {
	if s == "random" {
		buf := make([]byte, 3)
		if _, err := rand.Read(buf); err != nil {
			return 0, 0, 0, fmt.Errorf("random color: %w", err)
		}
		return buf[0], buf[1], buf[2], nil
	}

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q: expected 6-char hex", s)
	}

	rv, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid red channel in %q: %w", s, err)
	}
	gv, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid green channel in %q: %w", s, err)
	}
	bv, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid blue channel in %q: %w", s, err)
	}

	return uint8(rv), uint8(gv), uint8(bv), nil
}

// ParsePalette parses a list of color strings into tint variants.
func ParsePalette(specs []string) ([]color.Color, error) {
	var out []color.Color
	for _, s := range specs {
		if strings.TrimSpace(s) == "" {
			continue
		}
		r, g, b, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return out, nil
}

// NewSolidImage creates a uniform solid-color image.
func NewSolidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}
