// Package render provides the raster surface that frame handlers are
// replayed onto, plus tint and color helpers.
//
// Drawing follows the canvas convention the placement geometry relies on:
// a negative width or height mirrors the image about the anchor point, so
// flipping never needs its own pixel pass.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

// Canvas is an RGBA surface.
type Canvas struct {
	img    *image.RGBA
	interp xdraw.Interpolator
}

// NewCanvas creates a transparent canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		interp: xdraw.ApproxBiLinear,
	}
}

// NewSurface is a parrot.SurfaceFactory backed by Canvas.
func NewSurface(w, h int) parrot.Surface {
	return NewCanvas(w, h)
}

// DrawImage scales img into the w by h rectangle anchored at (x, y) and
// composites it over the canvas. Negative extents mirror the draw.
func (c *Canvas) DrawImage(img image.Image, x, y, w, h int) {
	if img == nil || w == 0 || h == 0 {
		return
	}

	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		draw.Draw(c.img, image.Rect(x, y, x+w, y+h), img, b.Min, draw.Over)
		return
	}
	if b.Empty() {
		return
	}

	// Source to destination: scale by w/dx and h/dy, which are negative
	// when mirrored, then move the source origin onto the anchor.
	sx := float64(w) / float64(b.Dx())
	sy := float64(h) / float64(b.Dy())
	m := f64.Aff3{
		sx, 0, float64(x) - sx*float64(b.Min.X),
		0, sy, float64(y) - sy*float64(b.Min.Y),
	}
	c.interp.Transform(c.img, m, img, b, xdraw.Over, nil)
}

// Tint multiplies every pixel drawn so far by col. White becomes col;
// alpha is preserved.
func (c *Canvas) Tint(col color.Color) {
	r, g, b, _ := col.RGBA()
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = uint8(uint32(pix[i+0]) * r / 0xffff)
		pix[i+1] = uint8(uint32(pix[i+1]) * g / 0xffff)
		pix[i+2] = uint8(uint32(pix[i+2]) * b / 0xffff)
	}
}

// Image returns the canvas raster.
func (c *Canvas) Image() image.Image {
	return c.img
}
