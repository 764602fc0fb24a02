package gpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// rpioDriver drives a Raspberry Pi through the memory-mapped GPIO registers.
// Requires root or access to /dev/gpiomem.
type rpioDriver struct {
	pins map[int]rpio.Pin
}

func openRPIO() (Driver, error) {
	err := rpio.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to map gpio memory: %w", err)
	}

	return &rpioDriver{pins: map[int]rpio.Pin{}}, nil
}

func (d *rpioDriver) Configure(pin int) error {
	if pin < 0 || pin > 53 {
		return fmt.Errorf("pin %d is out of range", pin)
	}

	p := rpio.Pin(pin)
	p.Output()
	p.Low()
	d.pins[pin] = p
	return nil
}

func (d *rpioDriver) Write(pin int, level Level) error {
	p, ok := d.pins[pin]
	if !ok {
		return fmt.Errorf("pin %d is not configured", pin)
	}

	if level {
		p.High()
	} else {
		p.Low()
	}

	return nil
}

func (d *rpioDriver) Close() error {
	for _, p := range d.pins {
		p.Input()
	}

	d.pins = map[int]rpio.Pin{}
	return rpio.Close()
}
