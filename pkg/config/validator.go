// validator.go - Character config validation.
package config

import (
	"fmt"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

// Validate checks that a character can be built into a base sequence.
func Validate(p *Parrot) error {
	if p == nil {
		return fmt.Errorf("%w: nil character", parrot.ErrConfig)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: character has no name", parrot.ErrConfig)
	}
	if p.Frames <= 0 {
		return fmt.Errorf("%w: %q: frames must be positive, got %d", parrot.ErrConfig, p.Name, p.Frames)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %q: invalid canvas %dx%d", parrot.ErrConfig, p.Name, p.Width, p.Height)
	}
	if n := len(p.FollowingFrames); n > 0 && n < p.Frames {
		return fmt.Errorf("%w: %q: %d followingFrames for %d frames", parrot.ErrConfig, p.Name, n, p.Frames)
	}
	return nil
}
