// constructor.go - Composition session driving handlers into an encoder.
package parrot

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
)

// DefaultDelay is the per-frame delay in milliseconds when none is set.
const DefaultDelay = 40

// TransparentKey is the color encoders treat as transparent.
var TransparentKey = color.RGBA{A: 255}

type state int

const (
	unconfigured state = iota
	configured
	finished
)

func (s state) String() string {
	switch s {
	case unconfigured:
		return "unconfigured"
	case configured:
		return "configured"
	default:
		return "finished"
	}
}

// EncodeConfig configures one encode.
type EncodeConfig struct {
	Delay  int           // milliseconds; 0 means DefaultDelay
	Colors []color.Color // tint variants; empty for an untinted parrot
}

// Constructor drives one composition session: Start, any number of
// AddOverlay calls, then Finish. It is not safe for concurrent use.
type Constructor struct {
	seq        *BaseSequence
	enc        StreamEncoder
	newSurface SurfaceFactory

	state    state
	variants []color.Color
	handlers HandlerList
	reports  []SyncReport
}

// NewConstructor returns a Constructor for seq that writes through enc.
// Missing collaborators are reported by Start.
func NewConstructor(seq *BaseSequence, enc StreamEncoder, newSurface SurfaceFactory) *Constructor {
	return &Constructor{
		seq:        seq,
		enc:        enc,
		newSurface: newSurface,
	}
}

// Start binds the output stream and derives the variant count.
func (c *Constructor) Start(w io.Writer, cfg EncodeConfig) error {
	if c.state != unconfigured {
		return fmt.Errorf("%w: Start called while %s", ErrMisuse, c.state)
	}
	switch {
	case c.seq == nil:
		return fmt.Errorf("%w: constructor has no base sequence", ErrConfig)
	case c.enc == nil:
		return fmt.Errorf("%w: constructor has no encoder", ErrConfig)
	case c.newSurface == nil:
		return fmt.Errorf("%w: constructor has no surface factory", ErrConfig)
	}

	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	err := c.enc.Start(w, StreamConfig{
		Width:       c.seq.Width,
		Height:      c.seq.Height,
		Delay:       delay,
		Repeat:      0,
		Transparent: TransparentKey,
	})
	if err != nil {
		return fmt.Errorf("start encoder: %w", err)
	}

	c.variants = cfg.Colors
	c.state = configured
	return nil
}

// Handlers returns the working list, building it on first use.
func (c *Constructor) Handlers() (HandlerList, error) {
	if c.state == unconfigured {
		return nil, fmt.Errorf("%w: handlers requested before Start", ErrMisuse)
	}
	if c.handlers == nil {
		c.handlers = BuildHandlers(c.seq, c.variants)
	}
	return c.handlers, nil
}

// AddOverlay layers an already loaded overlay onto the working list.
func (c *Constructor) AddOverlay(overlay Overlay, opts OverlayOptions) (SyncReport, error) {
	if c.state != configured {
		return SyncReport{}, fmt.Errorf("%w: AddOverlay called while %s", ErrMisuse, c.state)
	}
	list, err := c.Handlers()
	if err != nil {
		return SyncReport{}, err
	}

	out, report, err := Synchronize(list, c.seq, overlay, opts)
	if err != nil {
		return SyncReport{}, err
	}
	if len(report.Skipped) > 0 {
		logger.Warnf("overlay %s: %d of %d frames skipped", report.Overlay, len(report.Skipped), report.Length)
	}

	c.handlers = out
	c.reports = append(c.reports, report)
	return report, nil
}

// LoadOverlay loads id through loader and layers it. The load is the only
// step that blocks; ctx bounds it.
func (c *Constructor) LoadOverlay(ctx context.Context, loader OverlayLoader, id string, opts OverlayOptions) (SyncReport, error) {
	if c.state != configured {
		return SyncReport{}, fmt.Errorf("%w: LoadOverlay called while %s", ErrMisuse, c.state)
	}
	overlay, err := loader.Load(ctx, id)
	if err != nil {
		return SyncReport{}, err
	}
	return c.AddOverlay(overlay, opts)
}

// Reports returns the reports of every overlay added so far.
func (c *Constructor) Reports() []SyncReport {
	return c.reports
}

// Skipped returns the total number of skipped pairings across overlays.
func (c *Constructor) Skipped() int {
	n := 0
	for _, r := range c.reports {
		n += len(r.Skipped)
	}
	return n
}

// Finish renders every handler in order, writes it to the stream and closes
// the stream.
func (c *Constructor) Finish() error {
	if c.state != configured {
		return fmt.Errorf("%w: Finish called while %s", ErrMisuse, c.state)
	}
	list, err := c.Handlers()
	if err != nil {
		return err
	}
	c.state = finished

	for i, h := range list {
		if err := c.enc.AddFrame(c.renderFrame(h)); err != nil {
			return fmt.Errorf("encode frame %d: %w", i, err)
		}
	}
	if err := c.enc.Close(); err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}
	logger.Debugf("encoded %d frames for %q", len(list), c.seq.Name)
	return nil
}

func (c *Constructor) renderFrame(h *FrameHandler) image.Image {
	return h.Render(c.seq.Width, c.seq.Height, c.newSurface)
}
