// Package gpio drives output pins on the hosts the LED board is wired to.
// Several backends are available; Open picks one by name.
package gpio

// Level describes the binary state of an output pin: either Low or High.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Driver sets output pins, addressed by their BCM GPIO number.
type Driver interface {
	// Configure makes pin an output, initially Low.
	Configure(pin int) error

	// Write sets a configured pin to Low or High.
	Write(pin int, level Level) error

	// Close releases every configured pin.
	Close() error
}

// LevelOf is High when bit is non-zero.
func LevelOf(bit uint8) Level {
	return bit != 0
}

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}
