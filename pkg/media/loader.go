// loader.go - Overlay loading from assets, URLs and files.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"os"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/kataras/golog"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

var logger = golog.Child("[media]")

// AssetLookup resolves an in-memory asset id to its bytes.
type AssetLookup func(id string) ([]byte, bool)

// Loader loads overlays from uploaded assets, http(s) URLs or local files.
type Loader struct {
	client  *req.Client
	assets  AssetLookup
	noFiles bool
}

// NewLoader creates a loader whose HTTP requests time out after timeout.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{
		client: req.C().SetTimeout(timeout).SetUserAgent("goparrot"),
	}
}

// WithAssets makes the loader try lookup before URLs and files.
func (l *Loader) WithAssets(lookup AssetLookup) *Loader {
	l.assets = lookup
	return l
}

// WithoutFiles restricts the loader to assets and http(s) URLs. Any other id
// is a configuration error, reported without touching the filesystem.
func (l *Loader) WithoutFiles() *Loader {
	l.noFiles = true
	return l
}

// Load reads id and decodes it. The overlay kind is decided here, from the
// decoded content: a GIF with more than one frame is an AnimatedSequence,
// anything else a StaticImage.
func (l *Loader) Load(ctx context.Context, id string) (parrot.Overlay, error) {
	data, err := l.read(ctx, id)
	if err != nil {
		return nil, err
	}
	return Decode(id, data)
}

func (l *Loader) read(ctx context.Context, id string) ([]byte, error) {
	if l.assets != nil {
		if data, ok := l.assets(id); ok {
			return data, nil
		}
	}

	if strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://") {
		resp, err := l.client.R().SetContext(ctx).Get(id)
		if err != nil {
			return nil, fmt.Errorf("%w: fetch %s: %v", parrot.ErrLoad, id, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%w: fetch %s: status %d", parrot.ErrLoad, id, resp.StatusCode)
		}
		data, err := resp.ToBytes()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", parrot.ErrLoad, id, err)
		}
		return data, nil
	}

	if l.noFiles {
		return nil, fmt.Errorf("%w: overlay source must be an uploaded asset id or an http(s) URL", parrot.ErrConfig)
	}

	data, err := os.ReadFile(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", parrot.ErrLoad, err)
	}
	return data, nil
}

// Decode turns raw overlay bytes into an overlay.
func Decode(id string, data []byte) (parrot.Overlay, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: overlay %s: %v", parrot.ErrDecode, id, err)
	}

	if format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: overlay %s: %v", parrot.ErrDecode, id, err)
		}
		if len(g.Image) == 0 {
			return nil, fmt.Errorf("%w: overlay %s has no frames", parrot.ErrDecode, id)
		}
		if len(g.Image) > 1 {
			logger.Debugf("overlay %s: animated gif with %d frames", id, len(g.Image))
			return &parrot.AnimatedSequence{ID: id, Frames: Coalesce(g)}, nil
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: overlay %s: %v", parrot.ErrDecode, id, err)
	}
	return &parrot.StaticImage{ID: id, Image: img}, nil
}

// Coalesce renders each GIF frame onto the logical screen, honoring the
// disposal of the frame before it, and returns one full raster per frame.
func Coalesce(g *gif.GIF) []image.Image {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, p := range g.Image {
			bounds = bounds.Union(p.Bounds())
		}
	}

	canvas := image.NewRGBA(bounds)
	frames := make([]image.Image, 0, len(g.Image))
	for i, p := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var saved *image.RGBA
		if disposal == gif.DisposalPrevious {
			saved = cloneRGBA(canvas)
		}

		draw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)
		frames = append(frames, cloneRGBA(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = saved
		}
	}
	return frames
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
