package sequences

import (
	"github.com/BitPonyLLC/ledseq/pkg/delay"
	"github.com/BitPonyLLC/ledseq/pkg/leds"
)

// ChaseSequence sweeps a single lit LED from one end of the bar to the other
// and back, like the scanner on the front of a certain talking car.
type ChaseSequence struct {
	BaseSequence
}

var _ Sequence = (*ChaseSequence)(nil) // ensures we conform to the Sequence interface

func init() {
	register("chase", 2, delay.ChaseSlot,
		"a single light sweeps from the top LED to the bottom one and back again",
		&ChaseSequence{})
}

// Frames runs 0x80 down to 0x01, then 0x02 up to 0x40, so the ends are not
// shown twice when the cycle repeats.
func (s *ChaseSequence) Frames() []Frame {
	frames := make([]Frame, 0, 14)

	p := leds.Pattern(0x80)
	for i := 0; i < 8; i++ {
		frames = append(frames, Frame{Pattern: p})
		p >>= 1
	}

	p = 0x02
	for i := 0; i < 6; i++ {
		frames = append(frames, Frame{Pattern: p})
		p <<= 1
	}

	return frames
}
