// Package leds maps 8-bit patterns onto the eight LEDs of the board and onto
// their textual picture.
package leds

import (
	"fmt"
	"strings"

	"github.com/BitPonyLLC/ledseq/pkg/gpio"
)

// Pattern is one frame of the LED bar: bit i lights LED i.
type Pattern uint8

// Count is the number of LEDs on the bar.
const Count = 8

const (
	AllOff Pattern = 0x00
	AllOn  Pattern = 0xFF
)

// DefaultPins is the BCM GPIO number wired to each LED, LED 0 first.
var DefaultPins = [Count]int{14, 15, 18, 23, 24, 25, 8, 7}

// String draws the pattern most significant bit first, '*' for a lit LED and
// '-' for a dark one.
func (p Pattern) String() string {
	var sb strings.Builder
	for mask := Pattern(0x80); mask > 0; mask >>= 1 {
		if p&mask != 0 {
			sb.WriteByte('*')
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// Visualize is the pattern's picture terminated by a line break.
func Visualize(p Pattern) string {
	return p.String() + "\n"
}

// Renderer writes patterns to the pins of a gpio.Driver.
type Renderer struct {
	driver gpio.Driver
	pins   [Count]int
}

// NewRenderer uses DefaultPins.
func NewRenderer(driver gpio.Driver) *Renderer {
	return &Renderer{driver: driver, pins: DefaultPins}
}

// Pins returns the pin wired to each LED.
func (r *Renderer) Pins() [Count]int {
	return r.pins
}

// Configure makes every LED pin an output.
func (r *Renderer) Configure() error {
	for _, pin := range r.pins {
		err := r.driver.Configure(pin)
		if err != nil {
			return fmt.Errorf("unable to configure pin %d: %w", pin, err)
		}
	}
	return nil
}

// Render writes bit j of p to the pin of LED j, LED 0 first.
func (r *Renderer) Render(p Pattern) error {
	for j, pin := range r.pins {
		err := r.driver.Write(pin, gpio.LevelOf(uint8(p>>j)&1))
		if err != nil {
			return fmt.Errorf("unable to write pin %d: %w", pin, err)
		}
	}
	return nil
}

// Off turns every LED off.
func (r *Renderer) Off() error {
	return r.Render(AllOff)
}
