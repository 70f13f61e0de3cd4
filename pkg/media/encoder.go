// encoder.go - Output format selection.
package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

// Output formats.
const (
	FormatGIF = ".gif"
	FormatAVI = ".avi"
	FormatZIP = ".zip"
	// FormatPNG is an animated PNG.
	FormatPNG = ".png"
)

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// NewEncoder returns a stream encoder for format:
//   - ".gif" -> animated GIF
//   - ".avi" -> MJPEG AVI video
//   - ".zip" -> archive of PNG frames plus a manifest
//   - ".png", ".apng" -> animated PNG
func NewEncoder(format string) (parrot.StreamEncoder, error) {
	if format != "" && !strings.HasPrefix(format, ".") {
		format = "." + format
	}
	switch strings.ToLower(format) {
	case "", FormatGIF:
		return NewGIFEncoder(), nil
	case FormatAVI:
		return NewAVIEncoder(), nil
	case FormatZIP:
		return NewZIPEncoder(), nil
	case FormatPNG, ".apng":
		return NewAPNGEncoder(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q: use .gif, .png, .avi or .zip", parrot.ErrConfig, format)
	}
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "avi":
		return "video/avi"
	case "zip":
		return "application/zip"
	case "png":
		return "image/png"
	case "apng":
		return "image/apng"
	default:
		return "image/gif"
	}
}
