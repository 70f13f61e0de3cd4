// flags.go - Repeatable overlay flags.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/xob0t/GoParrot/pkg/generator"
)

// overlayFlags collects repeated --overlay flags. The --overlay-* flags
// modify the overlay named by the most recent --overlay.
type overlayFlags struct {
	list []generator.Overlay
}

func (o *overlayFlags) register(fs *flag.FlagSet) {
	fs.Func("overlay", "Overlay image, GIF or URL (repeatable)", func(s string) error {
		if s == "" {
			return fmt.Errorf("empty overlay source")
		}
		o.list = append(o.list, generator.Overlay{Source: s})
		return nil
	})
	o.intFlag(fs, "overlay-width", "Width of the last --overlay", func(ov *generator.Overlay, v int) { ov.Width = v })
	o.intFlag(fs, "overlay-height", "Height of the last --overlay", func(ov *generator.Overlay, v int) { ov.Height = v })
	o.intFlag(fs, "overlay-x", "X offset of the last --overlay", func(ov *generator.Overlay, v int) { ov.OffsetX = v })
	o.intFlag(fs, "overlay-y", "Y offset of the last --overlay", func(ov *generator.Overlay, v int) { ov.OffsetY = v })
	o.boolFlag(fs, "overlay-flip-x", "Mirror the last --overlay horizontally", func(ov *generator.Overlay, v bool) { ov.FlipX = v })
	o.boolFlag(fs, "overlay-flip-y", "Mirror the last --overlay vertically", func(ov *generator.Overlay, v bool) { ov.FlipY = v })
}

func (o *overlayFlags) last(name string) (*generator.Overlay, error) {
	if len(o.list) == 0 {
		return nil, fmt.Errorf("--%s must follow --overlay", name)
	}
	return &o.list[len(o.list)-1], nil
}

func (o *overlayFlags) intFlag(fs *flag.FlagSet, name, usage string, set func(*generator.Overlay, int)) {
	fs.Func(name, usage, func(s string) error {
		ov, err := o.last(name)
		if err != nil {
			return err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid --%s %q", name, s)
		}
		set(ov, v)
		return nil
	})
}

func (o *overlayFlags) boolFlag(fs *flag.FlagSet, name, usage string, set func(*generator.Overlay, bool)) {
	fs.BoolFunc(name, usage, func(s string) error {
		ov, err := o.last(name)
		if err != nil {
			return err
		}
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("invalid --%s %q", name, s)
		}
		set(ov, v)
		return nil
	})
}

// splitColors splits "#ff0000,#00ff00" into its entries.
func splitColors(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}
