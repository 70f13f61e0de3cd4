// gif.go - Animated GIF stream encoder with a transparent color key.
package media

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

// transparentIndex is the palette slot reserved for transparency.
const transparentIndex = 0

// GIFEncoder writes frames as an animated GIF. Frames are buffered and the
// file is written on Close.
type GIFEncoder struct {
	w       io.Writer
	cfg     parrot.StreamConfig
	palette color.Palette
	anim    *gif.GIF
}

// NewGIFEncoder creates a GIF encoder using the web-safe palette plus one
// transparent entry.
func NewGIFEncoder() *GIFEncoder {
	pal := make(color.Palette, 0, len(palette.WebSafe)+1)
	pal = append(pal, color.RGBA{})
	pal = append(pal, palette.WebSafe...)
	return &GIFEncoder{palette: pal}
}

// Start begins a new stream.
func (e *GIFEncoder) Start(w io.Writer, cfg parrot.StreamConfig) error {
	if w == nil {
		return errors.New("gif: nil writer")
	}
	e.w = w
	e.cfg = cfg
	e.anim = &gif.GIF{
		LoopCount: cfg.Repeat,
		Config: image.Config{
			ColorModel: e.palette,
			Width:      cfg.Width,
			Height:     cfg.Height,
		},
		BackgroundIndex: transparentIndex,
	}
	return nil
}

// AddFrame quantizes img to the palette. Pixels that are mostly transparent
// or match the transparent key map to the transparent index.
func (e *GIFEncoder) AddFrame(img image.Image) error {
	if e.anim == nil {
		return errors.New("gif: AddFrame before Start")
	}

	rect := image.Rect(0, 0, e.cfg.Width, e.cfg.Height)
	p := image.NewPaletted(rect, e.palette)
	draw.Draw(p, rect, img, img.Bounds().Min, draw.Src)

	var kr, kg, kb uint32
	hasKey := e.cfg.Transparent != nil
	if hasKey {
		kr, kg, kb, _ = e.cfg.Transparent.RGBA()
	}
	off := img.Bounds().Min
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			r, g, b, a := img.At(off.X+x, off.Y+y).RGBA()
			if a < 0x8000 || (hasKey && r == kr && g == kg && b == kb) {
				p.SetColorIndex(x, y, transparentIndex)
			}
		}
	}

	e.anim.Image = append(e.anim.Image, p)
	e.anim.Delay = append(e.anim.Delay, e.cfg.Delay/10)
	e.anim.Disposal = append(e.anim.Disposal, gif.DisposalBackground)
	return nil
}

// Close writes the GIF.
func (e *GIFEncoder) Close() error {
	if e.anim == nil {
		return errors.New("gif: Close before Start")
	}
	if len(e.anim.Image) == 0 {
		return errors.New("gif: no frames")
	}
	return gif.EncodeAll(e.w, e.anim)
}
