// surface.go - Collaborator interfaces for rendering, encoding and loading.
package parrot

import (
	"context"
	"image"
	"image/color"
	"io"
)

// Surface is a raster that draw instructions are replayed onto.
type Surface interface {
	// DrawImage scales img into the rectangle at (x, y) sized w by h.
	// A negative w or h mirrors the draw about (x, y).
	DrawImage(img image.Image, x, y, w, h int)
	// Tint recolors everything drawn so far.
	Tint(c color.Color)
	Image() image.Image
}

// SurfaceFactory allocates a blank surface of the given size. One factory is
// created per composition session.
type SurfaceFactory func(width, height int) Surface

// StreamConfig holds the output stream parameters.
type StreamConfig struct {
	Width  int
	Height int
	Delay  int // per-frame delay in milliseconds
	// Repeat is the loop count; 0 loops forever.
	Repeat      int
	Transparent color.Color
}

// StreamEncoder writes rendered frames to an animated output stream.
type StreamEncoder interface {
	Start(w io.Writer, cfg StreamConfig) error
	AddFrame(img image.Image) error
	Close() error
}

// FrameSource lists and decodes the base frames of one character. List must
// return the same order on every call.
type FrameSource interface {
	List() ([]string, error)
	Decode(id string) (image.Image, error)
}

// OverlayLoader resolves an overlay identifier to a decoded overlay.
type OverlayLoader interface {
	Load(ctx context.Context, id string) (Overlay, error)
}
