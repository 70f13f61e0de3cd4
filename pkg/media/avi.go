// avi.go - AVI stream encoder using the Motion JPEG (MJPEG) video codec.
// Each rendered frame becomes one JPEG keyframe. JPEG carries no alpha, so
// frames are flattened onto the transparent key color first.
package media

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"

	"github.com/xob0t/GoParrot/pkg/parrot"
	"github.com/xob0t/GoParrot/pkg/render"
)

// AVIEncoder buffers JPEG frames and writes the AVI container on Close,
// once every chunk size is known.
type AVIEncoder struct {
	w       io.Writer
	cfg     parrot.StreamConfig
	quality int
	frames  [][]byte
}

// NewAVIEncoder creates an AVI encoder.
func NewAVIEncoder() *AVIEncoder {
	return &AVIEncoder{quality: 95}
}

// Start begins a new stream.
func (e *AVIEncoder) Start(w io.Writer, cfg parrot.StreamConfig) error {
	if w == nil {
		return errors.New("avi: nil writer")
	}
	if cfg.Delay <= 0 {
		cfg.Delay = parrot.DefaultDelay
	}
	e.w = w
	e.cfg = cfg
	e.frames = nil
	return nil
}

// AddFrame encodes img as a JPEG.
func (e *AVIEncoder) AddFrame(img image.Image) error {
	if e.w == nil {
		return errors.New("avi: AddFrame before Start")
	}

	var key color.Color = parrot.TransparentKey
	if e.cfg.Transparent != nil {
		key = e.cfg.Transparent
	}
	flat := render.NewSolidImage(e.cfg.Width, e.cfg.Height, key)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, flat, &jpeg.Options{Quality: e.quality}); err != nil {
		return fmt.Errorf("failed to encode JPEG: %w", err)
	}
	e.frames = append(e.frames, buf.Bytes())
	return nil
}

// Close writes the RIFF container with every buffered frame.
func (e *AVIEncoder) Close() error {
	if e.w == nil {
		return errors.New("avi: Close before Start")
	}
	if len(e.frames) == 0 {
		return errors.New("avi: no frames")
	}

	bw := bufio.NewWriter(e.w)
	var werr error

	// Helper to write FourCC
	writeFourCC := func(s string) {
		if werr == nil {
			_, werr = bw.WriteString(s)
		}
	}

	// Helper to write uint32 little-endian
	writeUint32 := func(v uint32) {
		if werr == nil {
			werr = binary.Write(bw, binary.LittleEndian, v)
		}
	}

	// Helper to write uint16 little-endian
	writeUint16 := func(v uint16) {
		if werr == nil {
			werr = binary.Write(bw, binary.LittleEndian, v)
		}
	}

	writeBytes := func(b []byte) {
		if werr == nil {
			_, werr = bw.Write(b)
		}
	}

	width := uint32(e.cfg.Width)
	height := uint32(e.cfg.Height)
	delay := uint32(e.cfg.Delay)
	totalFrames := uint32(len(e.frames))

	// Calculate sizes
	var maxFrame, moviSize uint32 = 0, 4
	for _, f := range e.frames {
		size := uint32(len(f))
		maxFrame = max(maxFrame, size)
		moviSize += 8 + padded(size) // "00dc" + size + data
	}
	idx1Size := 8 + (totalFrames * 16) // idx1 header + entries

	// === RIFF Header ===
	hdrlSize := uint32(4 + 64 + 124) // LIST + avih + strl
	fileSize := 4 + (8 + hdrlSize) + (8 + moviSize) + idx1Size

	writeFourCC("RIFF")
	writeUint32(fileSize)
	writeFourCC("AVI ")

	// === hdrl LIST ===
	writeFourCC("LIST")
	writeUint32(hdrlSize)
	writeFourCC("hdrl")

	// === avih (Main AVI Header) - 56 bytes + 8 header ===
	writeFourCC("avih")
	writeUint32(56)
	writeUint32(delay * 1000)            // microseconds per frame
	writeUint32(maxFrame * 1000 / delay) // max bytes per sec
	writeUint32(0)                       // padding granularity
	writeUint32(0x10)                    // flags: AVIF_HASINDEX
	writeUint32(totalFrames)
	writeUint32(0)        // initial frames
	writeUint32(1)        // number of streams
	writeUint32(maxFrame) // suggested buffer size
	writeUint32(width)
	writeUint32(height)
	writeUint32(0) // reserved
	writeUint32(0) // reserved
	writeUint32(0) // reserved
	writeUint32(0) // reserved

	// === strl LIST (Stream List) ===
	writeFourCC("LIST")
	writeUint32(116) // strl size: strh(64) + strf(48) + 4
	writeFourCC("strl")

	// === strh (Stream Header) - 56 bytes + 8 header ===
	writeFourCC("strh")
	writeUint32(56)
	writeFourCC("vids") // fccType
	writeFourCC("MJPG") // fccHandler - MJPEG codec
	writeUint32(0)      // flags
	writeUint16(0)      // priority
	writeUint16(0)      // language
	writeUint32(0)      // initial frames
	writeUint32(delay)  // scale
	writeUint32(1000)   // rate: rate/scale = frames per second
	writeUint32(0)      // start
	writeUint32(totalFrames)
	writeUint32(maxFrame) // suggested buffer size
	writeUint32(0)        // quality
	writeUint32(0)        // sample size
	writeUint16(0)        // left
	writeUint16(0)        // top
	writeUint16(uint16(width))
	writeUint16(uint16(height))

	// === strf (Stream Format - BITMAPINFOHEADER) - 40 bytes + 8 header ===
	writeFourCC("strf")
	writeUint32(40)
	writeUint32(40)     // biSize
	writeUint32(width)  // biWidth
	writeUint32(height) // biHeight
	writeUint16(1)      // biPlanes
	writeUint16(24)     // biBitCount
	writeFourCC("MJPG") // biCompression
	writeUint32(width * height * 3)
	writeUint32(0) // biXPelsPerMeter
	writeUint32(0) // biYPelsPerMeter
	writeUint32(0) // biClrUsed
	writeUint32(0) // biClrImportant

	// === movi LIST ===
	writeFourCC("LIST")
	writeUint32(moviSize)
	writeFourCC("movi")

	for _, f := range e.frames {
		writeFourCC("00dc")
		writeUint32(uint32(len(f)))
		writeBytes(f)
		// Pad to even boundary
		if len(f)%2 != 0 {
			writeBytes([]byte{0})
		}
	}

	// === idx1 (Index) ===
	writeFourCC("idx1")
	writeUint32(totalFrames * 16)

	moviOffset := uint32(4) // offset from movi start
	for _, f := range e.frames {
		writeFourCC("00dc")
		writeUint32(0x10) // flags: AVIIF_KEYFRAME
		writeUint32(moviOffset)
		writeUint32(uint32(len(f)))
		moviOffset += 8 + padded(uint32(len(f)))
	}

	if werr != nil {
		return fmt.Errorf("write AVI: %w", werr)
	}
	return bw.Flush()
}

// padded rounds size up to an even byte count (AVI requirement).
func padded(size uint32) uint32 {
	return size + size%2
}
