package parrot

import (
	"image"
	"image/color"
	"io"
)

// Shared fakes for the package tests.

type drawOp struct {
	img        image.Image
	x, y, w, h int
}

type recordingSurface struct {
	img   *image.RGBA
	ops   []drawOp
	tints []int // number of ops drawn when Tint was called
}

func (s *recordingSurface) DrawImage(img image.Image, x, y, w, h int) {
	s.ops = append(s.ops, drawOp{img, x, y, w, h})
}

func (s *recordingSurface) Tint(color.Color) { s.tints = append(s.tints, len(s.ops)) }

func (s *recordingSurface) Image() image.Image { return s.img }

type recorder struct {
	surfaces []*recordingSurface
}

func (r *recorder) factory(w, h int) Surface {
	s := &recordingSurface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	r.surfaces = append(r.surfaces, s)
	return s
}

type fakeEncoder struct {
	cfg     StreamConfig
	started bool
	closed  bool
	frames  []image.Image
	failAt  int
}

func (e *fakeEncoder) Start(_ io.Writer, cfg StreamConfig) error {
	e.started = true
	e.cfg = cfg
	return nil
}

func (e *fakeEncoder) AddFrame(img image.Image) error {
	if e.failAt > 0 && len(e.frames)+1 == e.failAt {
		return io.ErrShortWrite
	}
	e.frames = append(e.frames, img)
	return nil
}

func (e *fakeEncoder) Close() error {
	e.closed = true
	return nil
}

func newFrames(n int) []image.Image {
	frames := make([]image.Image, n)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, 10, 10))
	}
	return frames
}

func mustSequence(n int, descriptors []Descriptor) *BaseSequence {
	seq, err := NewBaseSequence("test", newFrames(n), 32, 32, false, false, descriptors)
	if err != nil {
		panic(err)
	}
	return seq
}

func uniformDescriptors(n int, p Placement) []Descriptor {
	d := make([]Descriptor, n)
	for i := range d {
		d[i] = Descriptor{Placement: p}
	}
	return d
}
