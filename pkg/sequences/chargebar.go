package sequences

import (
	"github.com/BitPonyLLC/ledseq/pkg/delay"
	"github.com/BitPonyLLC/ledseq/pkg/leds"
)

// ChargeBarSequence fills the bar one LED at a time from LED 0 and then
// drains it again.
type ChargeBarSequence struct {
	BaseSequence
}

var _ Sequence = (*ChargeBarSequence)(nil) // ensures we conform to the Sequence interface

func init() {
	register("charge-bar", 5, delay.ChargeBarSlot,
		"the bar fills up one LED at a time like a charging battery, then empties",
		&ChargeBarSequence{})
}

// Frames fills 0x01, 0x03 ... 0xFF and then drains 0x7F ... 0x00.
func (s *ChargeBarSequence) Frames() []Frame {
	frames := make([]Frame, 0, 2*leds.Count)

	p := leds.AllOff
	for i := 0; i < leds.Count; i++ {
		p = p<<1 | 1
		frames = append(frames, Frame{Pattern: p})
	}

	for i := 0; i < leds.Count; i++ {
		p >>= 1
		frames = append(frames, Frame{Pattern: p})
	}

	return frames
}
