package sequences

import (
	"github.com/BitPonyLLC/ledseq/pkg/delay"
	"github.com/BitPonyLLC/ledseq/pkg/leds"
)

// PendulumSequence swings a pair of lights around LED 3.
type PendulumSequence struct {
	BaseSequence
}

var _ Sequence = (*PendulumSequence)(nil) // ensures we conform to the Sequence interface

// a full swing and back; the table reads the same in both directions
var pendulumPatterns = [...]leds.Pattern{
	0x88, // *---*---
	0x48, // -*--*---
	0x28, // --*-*---
	0x18, // ---**---
	0x14, // ---*-*--
	0x12, // ---*--*-
	0x11, // ---*---*
	0x11, // ---*---*
	0x12, // ---*--*-
	0x14, // ---*-*--
	0x18, // ---**---
	0x28, // --*-*---
	0x48, // -*--*---
	0x88, // *---*---
}

func init() {
	register("pendulum", 4, delay.PendulumSlot,
		"a pair of lights swings from one end to the other around a fixed pivot",
		&PendulumSequence{})
}

func (s *PendulumSequence) Frames() []Frame {
	frames := make([]Frame, len(pendulumPatterns))
	for i, p := range pendulumPatterns {
		frames[i] = Frame{Pattern: p}
	}
	return frames
}
