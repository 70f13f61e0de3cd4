// zip.go - PNG frame archive encoder.
package media

import (
	"archive/zip"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Manifest describes the frames in a ZIP archive.
type Manifest struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Delay  int      `json:"delay"`
	Repeat int      `json:"repeat"`
	Frames []string `json:"frames"`
}

// ZIPEncoder writes each frame as a PNG entry and a manifest.json last.
type ZIPEncoder struct {
	zw       *zip.Writer
	manifest Manifest
}

// NewZIPEncoder creates a ZIP encoder.
func NewZIPEncoder() *ZIPEncoder {
	return &ZIPEncoder{}
}

// Start begins a new archive.
func (e *ZIPEncoder) Start(w io.Writer, cfg parrot.StreamConfig) error {
	if w == nil {
		return errors.New("zip: nil writer")
	}
	e.zw = zip.NewWriter(w)
	e.manifest = Manifest{
		Width:  cfg.Width,
		Height: cfg.Height,
		Delay:  cfg.Delay,
		Repeat: cfg.Repeat,
	}
	return nil
}

// AddFrame writes img as the next frame_NNNN.png entry.
func (e *ZIPEncoder) AddFrame(img image.Image) error {
	if e.zw == nil {
		return errors.New("zip: AddFrame before Start")
	}
	name := fmt.Sprintf("frame_%04d.png", len(e.manifest.Frames))
	fw, err := e.zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := png.Encode(fw, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	e.manifest.Frames = append(e.manifest.Frames, name)
	return nil
}

// Close writes the manifest and finishes the archive.
func (e *ZIPEncoder) Close() error {
	if e.zw == nil {
		return errors.New("zip: Close before Start")
	}
	mw, err := e.zw.Create("manifest.json")
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	data, err := json.MarshalIndent(e.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if _, err := mw.Write(data); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return e.zw.Close()
}
