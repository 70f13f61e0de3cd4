// Package config loads parrot character definitions from directories and
// .parrot bundles.
package config

import (
	"github.com/kataras/golog"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

var logger = golog.Child("[config]")

// Config file names tried by Load, in order.
var FileNames = []string{"parrot.yaml", "parrot.yml", "parrot.json"}

// BundleExt is the extension of zipped character bundles.
const BundleExt = ".parrot"

// Parrot describes one base character.
type Parrot struct {
	Name   string `yaml:"name" json:"name"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Frames int    `yaml:"frames" json:"frames"`
	FlipX  bool   `yaml:"flipX,omitempty" json:"flipX,omitempty"`
	FlipY  bool   `yaml:"flipY,omitempty" json:"flipY,omitempty"`

	// Directories relative to Dir. White frames are the untinted base used
	// when color variants are requested.
	FramesDir      string `yaml:"framesDir,omitempty" json:"framesDir,omitempty"`
	WhiteFramesDir string `yaml:"whiteFramesDir,omitempty" json:"whiteFramesDir,omitempty"`

	FollowingFrames []parrot.Descriptor `yaml:"followingFrames,omitempty" json:"followingFrames,omitempty"`

	// Dir is the directory the config was loaded from.
	Dir string `yaml:"-" json:"-"`
}

// ExampleYAML is written by `parrotify init`.
const ExampleYAML = `# Character definition. Frames are read from framesDir in natural order
# (frame2.png before frame10.png).
name: parrot
width: 128
height: 128
frames: 4
flipX: false
flipY: false
framesDir: frames
# Untinted frames used with --colors. Falls back to framesDir.
whiteFramesDir: white

# One entry per frame: where a following overlay is anchored.
# Use "multiple" to stamp the overlay more than once on a frame.
followingFrames:
  - {x: 40, y: 10}
  - {x: 42, y: 8}
  - {x: 44, y: 10, flipX: true}
  - multiple:
      - {x: 20, y: 10}
      - {x: 70, y: 10}
`

func (p *Parrot) applyDefaults() {
	if p.FramesDir == "" {
		p.FramesDir = "frames"
	}
	if p.WhiteFramesDir == "" {
		p.WhiteFramesDir = "white"
	}
}
