// builder.go - Build the initial working list from a base sequence.
package parrot

import (
	"image/color"

	"github.com/xob0t/GoParrot/pkg/sequence"
)

// BuildHandlers creates the initial working list. The base sequence is
// repeated ceil(V/F) times, where V is the variant count (1 without variants)
// and F the base frame count, so the list covers every variant and still
// loops evenly. Variants are assigned round-robin over the full list.
func BuildHandlers(seq *BaseSequence, variants []color.Color) HandlerList {
	v := max(len(variants), 1)
	loops := sequence.CeilDiv(v, seq.Len())

	list := make(HandlerList, 0, loops*seq.Len())
	for i := 0; i < loops; i++ {
		for _, frame := range seq.Frames {
			list = append(list, NewFrameHandler(frame, seq.Width, seq.Height))
		}
	}

	if len(variants) > 0 {
		for i, h := range list {
			h.SetTint(variants[i%len(variants)])
		}
	}

	logger.Debugf("built %d handlers for %q (%d frames, %d variants)", len(list), seq.Name, seq.Len(), len(variants))
	return list
}
