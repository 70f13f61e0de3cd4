// sequence.go - Turn a character config into a base sequence.
package config

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/xob0t/GoParrot/pkg/media"
	"github.com/xob0t/GoParrot/pkg/parrot"
)

// FrameSource returns the directory source for the character's frames. With
// white set it prefers the white frame directory when it exists.
func (p *Parrot) FrameSource(white bool) parrot.FrameSource {
	dir := p.resolve(p.FramesDir)
	if white {
		if wd := p.resolve(p.WhiteFramesDir); isDir(wd) {
			dir = wd
		} else {
			logger.Debugf("%s: no white frames in %s, tinting %s", p.Name, wd, dir)
		}
	}
	return media.DirFrameSource{Dir: dir}
}

func (p *Parrot) resolve(dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.Dir, dir)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// LoadSequence decodes the character's frames from src. Extra frames beyond
// p.Frames are ignored; missing ones are a config error.
func LoadSequence(p *Parrot, src parrot.FrameSource) (*parrot.BaseSequence, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	ids, err := src.List()
	if err != nil {
		return nil, err
	}
	if len(ids) < p.Frames {
		return nil, fmt.Errorf("%w: %q declares %d frames, found %d", parrot.ErrConfig, p.Name, p.Frames, len(ids))
	}
	if len(ids) > p.Frames {
		logger.Warnf("%s: using %d of %d frame files", p.Name, p.Frames, len(ids))
		ids = ids[:p.Frames]
	}

	frames := make([]image.Image, len(ids))
	for i, id := range ids {
		img, err := src.Decode(id)
		if err != nil {
			return nil, err
		}
		frames[i] = img
	}

	var descriptors []parrot.Descriptor
	if len(p.FollowingFrames) > 0 {
		descriptors = p.FollowingFrames[:p.Frames]
	}
	return parrot.NewBaseSequence(p.Name, frames, p.Width, p.Height, p.FlipX, p.FlipY, descriptors)
}
