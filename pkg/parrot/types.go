// Package parrot composites a base animated sequence with overlays into a
// frame-accurate animated stream.
//
// The pipeline is: BuildHandlers creates one FrameHandler per output frame,
// Synchronize layers each overlay onto the working list, and Constructor
// renders the final list into a StreamEncoder.
package parrot

import (
	"fmt"
	"image"
)

// Placement anchors one overlay stamp on a base frame.
type Placement struct {
	X     int  `yaml:"x" json:"x"`
	Y     int  `yaml:"y" json:"y"`
	FlipX bool `yaml:"flipX,omitempty" json:"flipX,omitempty"`
	FlipY bool `yaml:"flipY,omitempty" json:"flipY,omitempty"`
}

// Descriptor is the placement entry for one base frame index. When Multiple
// is set the overlay is stamped once per entry and the inline Placement is
// ignored.
type Descriptor struct {
	Placement `yaml:",inline"`
	Multiple  []Placement `yaml:"multiple,omitempty" json:"multiple,omitempty"`
}

// Placements returns the stamps for this descriptor in draw order.
func (d Descriptor) Placements() []Placement {
	if len(d.Multiple) > 0 {
		return d.Multiple
	}
	return []Placement{d.Placement}
}

// BaseSequence is a loaded base character. It must not be modified after
// NewBaseSequence returns.
type BaseSequence struct {
	Name        string
	Frames      []image.Image
	Width       int
	Height      int
	FlipX       bool
	FlipY       bool
	Descriptors []Descriptor
}

// NewBaseSequence validates and returns a base sequence. Descriptors may be
// empty, in which case every overlay is anchored at the origin; otherwise
// there must be one per frame.
func NewBaseSequence(name string, frames []image.Image, width, height int, flipX, flipY bool, descriptors []Descriptor) (*BaseSequence, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: %q has no base frames", ErrConfig, name)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %q has invalid canvas %dx%d", ErrConfig, name, width, height)
	}
	if len(descriptors) > 0 && len(descriptors) < len(frames) {
		return nil, fmt.Errorf("%w: %q has %d placement descriptors for %d frames",
			ErrConfig, name, len(descriptors), len(frames))
	}
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("%w: %q frame %d is nil", ErrConfig, name, i)
		}
	}

	return &BaseSequence{
		Name:        name,
		Frames:      frames,
		Width:       width,
		Height:      height,
		FlipX:       flipX,
		FlipY:       flipY,
		Descriptors: descriptors,
	}, nil
}

// Len returns the base frame count.
func (s *BaseSequence) Len() int {
	return len(s.Frames)
}

// Descriptor returns the placement descriptor for output frame i.
func (s *BaseSequence) Descriptor(i int) Descriptor {
	if len(s.Descriptors) == 0 {
		return Descriptor{}
	}
	return s.Descriptors[i%len(s.Frames)]
}

// Overlay is either a StaticImage or an AnimatedSequence.
type Overlay interface {
	Source() string
	overlay()
}

// StaticImage is a single raster stamped on every output frame.
type StaticImage struct {
	ID    string
	Image image.Image
}

func (o *StaticImage) Source() string { return o.ID }
func (*StaticImage) overlay()         {}

// AnimatedSequence is an ordered list of overlay frames. It borrows the base
// sequence's placement descriptors.
type AnimatedSequence struct {
	ID     string
	Frames []image.Image
}

func (o *AnimatedSequence) Source() string { return o.ID }
func (*AnimatedSequence) overlay()         {}
