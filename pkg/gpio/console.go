package gpio

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ConsoleDriver is a Driver with no hardware behind it. It remembers the last
// level of every pin and logs writes at trace level.
type ConsoleDriver struct {
	log    *zerolog.Logger
	mutex  sync.Mutex
	levels map[int]Level
}

var _ Driver = (*ConsoleDriver)(nil) // ensures we conform to the Driver interface

// NewConsole creates a ConsoleDriver. log may be nil.
func NewConsole(log *zerolog.Logger) *ConsoleDriver {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &ConsoleDriver{log: log, levels: map[int]Level{}}
}

func (d *ConsoleDriver) Configure(pin int) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.levels[pin] = Low
	d.log.Trace().Int("pin", pin).Msg("configured")
	return nil
}

func (d *ConsoleDriver) Write(pin int, level Level) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, ok := d.levels[pin]; !ok {
		return fmt.Errorf("pin %d is not configured", pin)
	}

	d.levels[pin] = level
	d.log.Trace().Int("pin", pin).Stringer("level", level).Msg("write")
	return nil
}

// lastLevel reports the last level written to pin.
func (d *ConsoleDriver) lastLevel(pin int) (Level, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	level, ok := d.levels[pin]
	return level, ok
}

func (d *ConsoleDriver) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.levels = map[int]Level{}
	return nil
}
