// apng.go - Animated PNG stream encoder.
package media

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/kettek/apng"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

// APNGEncoder writes frames as an animated PNG. Unlike GIF it keeps full
// alpha, so the transparent key is not applied. Frames are buffered and the
// file is written on Close.
type APNGEncoder struct {
	w    io.Writer
	cfg  parrot.StreamConfig
	anim *apng.APNG
}

// NewAPNGEncoder creates an APNG encoder.
func NewAPNGEncoder() *APNGEncoder {
	return &APNGEncoder{}
}

// Start binds w and cfg. Repeat 0 loops forever, as in GIF.
func (e *APNGEncoder) Start(w io.Writer, cfg parrot.StreamConfig) error {
	if w == nil {
		return errors.New("apng: nil writer")
	}
	if cfg.Delay > 0xffff {
		return fmt.Errorf("%w: apng: delay %dms does not fit a frame header", parrot.ErrConfig, cfg.Delay)
	}
	e.w = w
	e.cfg = cfg
	e.anim = &apng.APNG{LoopCount: uint(cfg.Repeat)}
	return nil
}

// AddFrame copies img onto a canvas-sized RGBA frame. Delays are written as
// milliseconds over a denominator of 1000.
func (e *APNGEncoder) AddFrame(img image.Image) error {
	if e.anim == nil {
		return errors.New("apng: AddFrame before Start")
	}

	rect := image.Rect(0, 0, e.cfg.Width, e.cfg.Height)
	frame := image.NewRGBA(rect)
	draw.Draw(frame, rect, img, img.Bounds().Min, draw.Src)

	e.anim.Frames = append(e.anim.Frames, apng.Frame{
		Image:            frame,
		DelayNumerator:   uint16(e.cfg.Delay),
		DelayDenominator: 1000,
	})
	return nil
}

// Close writes the APNG.
func (e *APNGEncoder) Close() error {
	if e.anim == nil {
		return errors.New("apng: Close before Start")
	}
	if len(e.anim.Frames) == 0 {
		return errors.New("apng: no frames")
	}
	return apng.Encode(e.w, *e.anim)
}
