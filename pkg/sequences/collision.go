package sequences

import (
	"time"

	"github.com/BitPonyLLC/ledseq/pkg/delay"
	"github.com/BitPonyLLC/ledseq/pkg/leds"
)

// CollisionSequence sends one light in from each end. They meet in the middle
// and carry on through each other.
type CollisionSequence struct {
	BaseSequence
}

// CollisionPause is the fixed wait after every collision frame.
const CollisionPause = 1 * time.Second

var _ Sequence = (*CollisionSequence)(nil) // ensures we conform to the Sequence interface

func init() {
	register("collision", 1, delay.CollisionSlot,
		"two lights start at opposite ends, run into each other and pass through",
		&CollisionSequence{})
}

// Frames shows (0x80 >> k) | (0x01 << k) for k = 0..6.
func (s *CollisionSequence) Frames() []Frame {
	frames := make([]Frame, 0, 7)

	left := leds.Pattern(0x80)
	right := leds.Pattern(0x01)
	for k := 0; k < 7; k++ {
		frames = append(frames, Frame{Pattern: left | right, Pause: CollisionPause})
		left >>= 1
		right <<= 1
	}

	return frames
}
