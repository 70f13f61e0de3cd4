package media

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"testing"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

func streamConfig() parrot.StreamConfig {
	return parrot.StreamConfig{Width: 4, Height: 4, Delay: 40, Transparent: parrot.TransparentKey}
}

func TestNewEncoder(t *testing.T) {
	tests := map[string]string{
		".gif": "*media.GIFEncoder",
		"gif":  "*media.GIFEncoder",
		"":     "*media.GIFEncoder",
		".AVI": "*media.AVIEncoder",
		"zip":  "*media.ZIPEncoder",
		".png": "*media.APNGEncoder",
		"apng": "*media.APNGEncoder",
	}
	for format, want := range tests {
		enc, err := NewEncoder(format)
		if err != nil {
			t.Errorf("NewEncoder(%q): %v", format, err)
			continue
		}
		if got := fmt.Sprintf("%T", enc); got != want {
			t.Errorf("NewEncoder(%q) = %s, want %s", format, got, want)
		}
	}
	if _, err := NewEncoder(".mp4"); err == nil {
		t.Error("expected error for .mp4")
	}
	if got := FormatFromPath("out/Party.GIF"); got != ".gif" {
		t.Errorf("FormatFromPath = %q", got)
	}
}

func TestGIFEncoder(t *testing.T) {
	enc := NewGIFEncoder()
	var buf bytes.Buffer
	if err := enc.Start(&buf, streamConfig()); err != nil {
		t.Fatal(err)
	}

	frame := solid(4, 4, red)
	frame.SetRGBA(0, 0, color.RGBA{A: 255}) // transparent key
	frame.SetRGBA(1, 0, color.RGBA{})       // fully transparent
	for i := 0; i < 2; i++ {
		if err := enc.AddFrame(frame); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 2 {
		t.Fatalf("frames = %d, want 2", len(g.Image))
	}
	if g.LoopCount != 0 {
		t.Errorf("loop count = %d, want 0", g.LoopCount)
	}
	if g.Delay[0] != 4 {
		t.Errorf("delay = %d, want 4", g.Delay[0])
	}
	p := g.Image[0]
	for _, pt := range []image.Point{{0, 0}, {1, 0}} {
		if _, _, _, a := p.At(pt.X, pt.Y).RGBA(); a != 0 {
			t.Errorf("pixel %v should be transparent", pt)
		}
	}
	if r, _, _, a := p.At(2, 2).RGBA(); r != 0xffff || a != 0xffff {
		t.Error("pixel (2,2) should be opaque red")
	}
}

func TestGIFEncoderRequiresStart(t *testing.T) {
	enc := NewGIFEncoder()
	if err := enc.AddFrame(solid(1, 1, red)); err == nil {
		t.Error("AddFrame before Start should fail")
	}
	if err := enc.Close(); err == nil {
		t.Error("Close before Start should fail")
	}
}

func TestAPNGEncoder(t *testing.T) {
	enc := NewAPNGEncoder()
	var buf bytes.Buffer
	if err := enc.Start(&buf, streamConfig()); err != nil {
		t.Fatal(err)
	}
	frame := solid(4, 4, red)
	frame.SetRGBA(1, 1, color.RGBA{})
	for _, f := range []image.Image{frame, solid(4, 4, blue)} {
		if err := enc.AddFrame(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	// Plain PNG decoders see the first frame.
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("default image bounds = %v", img.Bounds())
	}
	if r, _, _, a := img.At(0, 0).RGBA(); r != 0xffff || a != 0xffff {
		t.Error("pixel (0,0) should be opaque red")
	}
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0 {
		t.Error("pixel (1,1) should keep its alpha")
	}

	actl := bytes.Index(data, []byte("acTL"))
	if actl < 0 {
		t.Fatal("missing acTL chunk")
	}
	if n := binary.BigEndian.Uint32(data[actl+4 : actl+8]); n != 2 {
		t.Errorf("acTL frames = %d, want 2", n)
	}
	if plays := binary.BigEndian.Uint32(data[actl+8 : actl+12]); plays != 0 {
		t.Errorf("acTL plays = %d, want 0 (forever)", plays)
	}
	if n := bytes.Count(data, []byte("fcTL")); n != 2 {
		t.Errorf("fcTL chunks = %d, want 2", n)
	}
	// delay_num and delay_den sit 20 bytes into fcTL
	fctl := bytes.Index(data, []byte("fcTL")) + 4
	num := binary.BigEndian.Uint16(data[fctl+20 : fctl+22])
	den := binary.BigEndian.Uint16(data[fctl+22 : fctl+24])
	if num != 40 || den != 1000 {
		t.Errorf("delay = %d/%d, want 40/1000", num, den)
	}
}

func TestAPNGEncoderErrors(t *testing.T) {
	enc := NewAPNGEncoder()
	if err := enc.AddFrame(solid(1, 1, red)); err == nil {
		t.Error("AddFrame before Start should fail")
	}
	if err := enc.Start(&bytes.Buffer{}, parrot.StreamConfig{Width: 1, Height: 1, Delay: 70000}); !errors.Is(err, parrot.ErrConfig) {
		t.Errorf("oversized delay: error = %v, want ErrConfig", err)
	}
	if err := enc.Start(&bytes.Buffer{}, streamConfig()); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err == nil {
		t.Error("Close without frames should fail")
	}
}

func TestAVIEncoder(t *testing.T) {
	enc := NewAVIEncoder()
	var buf bytes.Buffer
	if err := enc.Start(&buf, streamConfig()); err != nil {
		t.Fatal(err)
	}
	for _, c := range []color.Color{red, blue, red} {
		if err := enc.AddFrame(solid(4, 4, c)); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Fatalf("bad header %q", data[:12])
	}
	if size := binary.LittleEndian.Uint32(data[4:8]); int(size) != len(data)-8 {
		t.Errorf("RIFF size = %d, want %d", size, len(data)-8)
	}
	// dwTotalFrames sits 16 bytes into avih
	if n := binary.LittleEndian.Uint32(data[48:52]); n != 3 {
		t.Errorf("total frames = %d, want 3", n)
	}
	if n := bytes.Count(data, []byte("00dc")); n != 6 {
		t.Errorf("00dc chunks + index entries = %d, want 6", n)
	}
}

func TestZIPEncoder(t *testing.T) {
	enc := NewZIPEncoder()
	var buf bytes.Buffer
	if err := enc.Start(&buf, streamConfig()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := enc.AddFrame(solid(4, 4, blue)); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]*zip.File)
	for _, f := range zr.File {
		names[f.Name] = f
	}
	for _, n := range []string{"frame_0000.png", "frame_0001.png", "manifest.json"} {
		if names[n] == nil {
			t.Errorf("missing entry %s", n)
		}
	}

	rc, err := names["manifest.json"].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m.Delay != 40 || len(m.Frames) != 2 || m.Width != 4 {
		t.Errorf("manifest = %+v", m)
	}
}
