// Package generator runs a full parrot composition: load the character,
// layer overlays and write the result in the format chosen by extension.
package generator

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kataras/golog"

	"github.com/xob0t/GoParrot/pkg/config"
	"github.com/xob0t/GoParrot/pkg/media"
	"github.com/xob0t/GoParrot/pkg/parrot"
	"github.com/xob0t/GoParrot/pkg/render"
)

var logger = golog.Child("[generator]")

// Overlay is one overlay to layer, in order.
type Overlay struct {
	Source  string `json:"source"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	OffsetX int    `json:"offsetX,omitempty"`
	OffsetY int    `json:"offsetY,omitempty"`
	FlipX   bool   `json:"flipX,omitempty"`
	FlipY   bool   `json:"flipY,omitempty"`
}

func (o Overlay) options() parrot.OverlayOptions {
	return parrot.OverlayOptions{
		Width:   o.Width,
		Height:  o.Height,
		OffsetX: o.OffsetX,
		OffsetY: o.OffsetY,
		FlipX:   o.FlipX,
		FlipY:   o.FlipY,
	}
}

// Config holds parameters for one composition.
type Config struct {
	Parrot   *config.Parrot
	Colors   []string // "#rrggbb" or "random"; empty for the plain character
	Delay    int      // milliseconds (default: parrot.DefaultDelay)
	Overlays []Overlay
	Loader   parrot.OverlayLoader
}

// Result summarizes a finished composition.
type Result struct {
	Frames  int
	Skipped int
	Reports []parrot.SyncReport
}

// Generate creates an output file. The format is inferred from the file
// extension:
//   - ".gif" -> animated GIF
//   - ".png" -> animated PNG
//   - ".avi" -> MJPEG AVI video
//   - ".zip" -> PNG frames and a manifest
func Generate(ctx context.Context, output string, cfg Config) (Result, error) {
	enc, err := media.NewEncoder(media.FormatFromPath(output))
	if err != nil {
		return Result{}, err
	}

	f, err := os.Create(output)
	if err != nil {
		return Result{}, fmt.Errorf("create %s: %w", output, err)
	}
	res, err := run(ctx, f, enc, cfg)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", output, cerr)
	}
	if err != nil {
		os.Remove(output)
		return Result{}, err
	}
	return res, nil
}

// GenerateToWriter writes the composition to w. The format is specified by
// ext (".gif", ".png", ".avi" or ".zip").
func GenerateToWriter(ctx context.Context, w io.Writer, ext string, cfg Config) (Result, error) {
	enc, err := media.NewEncoder(ext)
	if err != nil {
		return Result{}, err
	}
	return run(ctx, w, enc, cfg)
}

func run(ctx context.Context, w io.Writer, enc parrot.StreamEncoder, cfg Config) (Result, error) {
	if cfg.Parrot == nil {
		return Result{}, fmt.Errorf("%w: no character", parrot.ErrConfig)
	}
	if len(cfg.Overlays) > 0 && cfg.Loader == nil {
		return Result{}, fmt.Errorf("%w: overlays given without a loader", parrot.ErrMisuse)
	}

	colors, err := render.ParsePalette(cfg.Colors)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", parrot.ErrConfig, err)
	}

	seq, err := config.LoadSequence(cfg.Parrot, cfg.Parrot.FrameSource(len(colors) > 0))
	if err != nil {
		return Result{}, err
	}

	c := parrot.NewConstructor(seq, enc, render.NewSurface)
	if err := c.Start(w, parrot.EncodeConfig{Delay: cfg.Delay, Colors: colors}); err != nil {
		return Result{}, err
	}
	for _, o := range cfg.Overlays {
		if _, err := c.LoadOverlay(ctx, cfg.Loader, o.Source, o.options()); err != nil {
			return Result{}, fmt.Errorf("overlay %s: %w", o.Source, err)
		}
	}

	list, err := c.Handlers()
	if err != nil {
		return Result{}, err
	}
	if err := c.Finish(); err != nil {
		return Result{}, err
	}

	logger.Debugf("%s: %d frames, %d overlays, %d colors", seq.Name, len(list), len(cfg.Overlays), len(colors))
	return Result{Frames: len(list), Skipped: c.Skipped(), Reports: c.Reports()}, nil
}
