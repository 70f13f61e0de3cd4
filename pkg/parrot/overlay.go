// overlay.go - Static and animated overlay synchronization.
package parrot

import (
	"fmt"
	"image"

	"github.com/kataras/golog"

	"github.com/xob0t/GoParrot/pkg/sequence"
)

var logger = golog.Child("[parrot]")

// OverlayOptions are the per-call overrides for one overlay.
type OverlayOptions struct {
	// Width and Height size the overlay; zero uses the overlay's own bounds.
	Width  int
	Height int
	// OffsetX and OffsetY shift every stamp after the flip transform.
	OffsetX int
	OffsetY int
	// FlipX and FlipY invert the base sequence's default flip.
	FlipX bool
	FlipY bool
}

func (o OverlayOptions) size(img image.Image) (int, int) {
	w, h := o.Width, o.Height
	if w == 0 {
		w = img.Bounds().Dx()
	}
	if h == 0 {
		h = img.Bounds().Dy()
	}
	return w, h
}

// SyncReport describes one synchronization step.
type SyncReport struct {
	Overlay  string
	Animated bool
	// Length is the working list length after the step.
	Length int
	// Skipped lists output frames that had no overlay frame to pair with.
	Skipped []int
}

// Synchronize layers overlay onto list and returns the new working list.
// list itself is left untouched.
func Synchronize(list HandlerList, seq *BaseSequence, overlay Overlay, opts OverlayOptions) (HandlerList, SyncReport, error) {
	switch ov := overlay.(type) {
	case *StaticImage:
		out, err := SyncStatic(list, seq, ov.Image, opts)
		if err != nil {
			return nil, SyncReport{}, fmt.Errorf("overlay %s: %w", ov.ID, err)
		}
		return out, SyncReport{Overlay: ov.ID, Length: len(out)}, nil
	case *AnimatedSequence:
		out, skipped, err := SyncAnimated(list, seq, ov.Frames, opts)
		if err != nil {
			return nil, SyncReport{}, fmt.Errorf("overlay %s: %w", ov.ID, err)
		}
		return out, SyncReport{Overlay: ov.ID, Animated: true, Length: len(out), Skipped: skipped}, nil
	default:
		return nil, SyncReport{}, fmt.Errorf("%w: unsupported overlay type %T", ErrMisuse, overlay)
	}
}

// SyncStatic stamps img on every handler at the placements of the base
// descriptor for that frame.
func SyncStatic(list HandlerList, seq *BaseSequence, img image.Image, opts OverlayOptions) (HandlerList, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: static overlay has no image", ErrLoad)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: empty working list", ErrConfig)
	}

	out := list.Clone()
	for i, h := range out {
		stampDescriptor(h, seq, seq.Descriptor(i), img, opts)
	}
	return out, nil
}

// SyncAnimated reconciles the working list with an animated overlay. Both
// are replicated to lcm(len(list), len(frames)) and paired index by index.
// It returns the new list and the indices that had no overlay frame.
func SyncAnimated(list HandlerList, seq *BaseSequence, frames []image.Image, opts OverlayOptions) (HandlerList, []int, error) {
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("%w: animated overlay has no frames", ErrDecode)
	}
	if len(list) == 0 {
		return nil, nil, fmt.Errorf("%w: empty working list", ErrConfig)
	}

	m, err := sequence.LCM(len(list), len(frames))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	out, err := list.Replicate(m)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	overlayFrames, err := sequence.Replicate(frames, m)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	logger.Debugf("animated overlay: %d handlers x %d frames -> %d", len(list), len(frames), len(out))

	skipped := PairFrames(out, overlayFrames, func(i int, h *FrameHandler, frame image.Image) {
		stampDescriptor(h, seq, seq.Descriptor(i), frame, opts)
	})
	return out, skipped, nil
}

// PairFrames calls apply for every handler index that has an overlay frame at
// the same index. Indices without one are logged and returned.
func PairFrames(handlers HandlerList, frames []image.Image, apply func(i int, h *FrameHandler, frame image.Image)) []int {
	var skipped []int
	for i, h := range handlers {
		if i >= len(frames) || frames[i] == nil {
			logger.Warnf("frame %d: no overlay frame to pair with (%d available), skipped", i, len(frames))
			skipped = append(skipped, i)
			continue
		}
		apply(i, h, frames[i])
	}
	return skipped
}

// stampDescriptor adds one draw instruction per placement in d.
func stampDescriptor(h *FrameHandler, seq *BaseSequence, d Descriptor, img image.Image, opts OverlayOptions) {
	w, hgt := opts.size(img)
	for _, p := range d.Placements() {
		x, dw := PlaceWithFlip(p.X, w, ResolveFlip(seq.FlipX, opts.FlipX, p.FlipX))
		y, dh := PlaceWithFlip(p.Y, hgt, ResolveFlip(seq.FlipY, opts.FlipY, p.FlipY))
		h.AddImage(img, x+opts.OffsetX, y+opts.OffsetY, dw, dh)
	}
}
