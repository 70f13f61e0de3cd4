// handler.go - Per-frame draw instruction lists.
package parrot

import (
	"image"
	"image/color"

	"github.com/xob0t/GoParrot/pkg/sequence"
)

// DrawInstruction places one image on a frame.
type DrawInstruction struct {
	Image  image.Image
	X, Y   int
	Width  int
	Height int
}

// FrameHandler accumulates the draw instructions for one output frame.
type FrameHandler struct {
	instructions []DrawInstruction
	tint         color.Color
	tintAt       int // tint applies to instructions[:tintAt]
}

// NewFrameHandler returns a handler whose first instruction draws base over
// the full width by height canvas.
func NewFrameHandler(base image.Image, width, height int) *FrameHandler {
	h := &FrameHandler{}
	h.AddImage(base, 0, 0, width, height)
	return h
}

// AddImage appends a draw instruction. Later instructions paint over earlier
// ones.
func (h *FrameHandler) AddImage(img image.Image, x, y, w, hgt int) {
	h.instructions = append(h.instructions, DrawInstruction{
		Image: img, X: x, Y: y, Width: w, Height: hgt,
	})
}

// SetTint recolors everything added so far. Instructions added afterwards
// keep their own colors.
func (h *FrameHandler) SetTint(c color.Color) {
	h.tint = c
	h.tintAt = len(h.instructions)
}

// Tint returns the assigned tint, or nil.
func (h *FrameHandler) Tint() color.Color {
	return h.tint
}

// Instructions returns a copy of the draw instructions in replay order.
func (h *FrameHandler) Instructions() []DrawInstruction {
	out := make([]DrawInstruction, len(h.instructions))
	copy(out, h.instructions)
	return out
}

// Clone returns an independent copy. Images are shared; they are never
// written to.
func (h *FrameHandler) Clone() *FrameHandler {
	c := *h
	c.instructions = h.Instructions()
	return &c
}

// Render replays the instructions onto a fresh surface.
func (h *FrameHandler) Render(width, height int, newSurface SurfaceFactory) image.Image {
	s := newSurface(width, height)
	for i, in := range h.instructions {
		if i == h.tintAt && h.tint != nil {
			s.Tint(h.tint)
		}
		s.DrawImage(in.Image, in.X, in.Y, in.Width, in.Height)
	}
	if h.tintAt >= len(h.instructions) && h.tint != nil {
		s.Tint(h.tint)
	}
	return s.Image()
}

// HandlerList is the working list of frame handlers for one encode.
type HandlerList []*FrameHandler

// Clone deep-copies every handler.
func (l HandlerList) Clone() HandlerList {
	out := make(HandlerList, len(l))
	for i, h := range l {
		out[i] = h.Clone()
	}
	return out
}

// Replicate returns a fresh list of at least target handlers built by
// repeating the whole list. No two indices share a handler.
func (l HandlerList) Replicate(target int) (HandlerList, error) {
	return sequence.ReplicateFunc(l.Clone(), target, (*FrameHandler).Clone)
}
