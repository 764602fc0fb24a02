package gpio

import (
	"fmt"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// periphDriver looks pins up by name in the periph.io registry, which covers
// the Raspberry Pi, Allwinner and other boards periph knows about.
type periphDriver struct {
	pins map[int]pgpio.PinIO
}

func openPeriph() (Driver, error) {
	_, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize periph host drivers: %w", err)
	}

	return &periphDriver{pins: map[int]pgpio.PinIO{}}, nil
}

func (d *periphDriver) Configure(pin int) error {
	name := fmt.Sprintf("GPIO%d", pin)
	p := gpioreg.ByName(name)
	if p == nil {
		return fmt.Errorf("unknown pin %s", name)
	}

	err := p.Out(pgpio.Low)
	if err != nil {
		return fmt.Errorf("unable to configure %s: %w", name, err)
	}

	d.pins[pin] = p
	return nil
}

func (d *periphDriver) Write(pin int, level Level) error {
	p, ok := d.pins[pin]
	if !ok {
		return fmt.Errorf("pin GPIO%d is not configured", pin)
	}

	err := p.Out(pgpio.Level(level))
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", p.Name(), err)
	}

	return nil
}

func (d *periphDriver) Close() error {
	var firstErr error
	for _, p := range d.pins {
		err := p.Halt()
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unable to halt %s: %w", p.Name(), err)
		}
	}

	d.pins = map[int]pgpio.PinIO{}
	return firstErr
}
