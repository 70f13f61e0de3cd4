// Package media provides the file-facing collaborators of the compositor:
// base frame sources, overlay loading, and output stream encoders.
//
// Decoders for PNG, GIF, JPEG, BMP and WebP are registered on import.
package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

var frameExts = map[string]bool{
	".png": true, ".gif": true, ".jpg": true, ".jpeg": true, ".bmp": true, ".webp": true,
}

// DirFrameSource reads base frames from image files in a directory.
type DirFrameSource struct {
	Dir string
}

// List returns the frame files in natural order, so frame2 sorts before
// frame10.
func (s DirFrameSource) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list frames in %s: %v", parrot.ErrLoad, s.Dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !frameExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Stable(natural.StringSlice(files))

	for i, f := range files {
		files[i] = filepath.Join(s.Dir, f)
	}
	return files, nil
}

// Decode reads one frame file.
func (s DirFrameSource) Decode(id string) (image.Image, error) {
	f, err := os.Open(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", parrot.ErrLoad, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: frame %s: %v", parrot.ErrDecode, id, err)
	}
	return img, nil
}
