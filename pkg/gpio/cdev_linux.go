package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

const cdevSupported = true

// cdevLine is the part of *gpiocdev.Line the driver uses.
type cdevLine interface {
	SetValue(value int) error
	Reconfigure(options ...gpiocdev.LineConfigOption) error
	Close() error
}

// cdevDriver requests one line per pin from the Linux GPIO character device.
type cdevDriver struct {
	opts  Options
	lines map[int]cdevLine
}

func openCdev(opts Options) (Driver, error) {
	return &cdevDriver{opts: opts, lines: map[int]cdevLine{}}, nil
}

func (d *cdevDriver) Configure(pin int) error {
	if _, ok := d.lines[pin]; ok {
		return nil
	}

	options := []gpiocdev.LineReqOption{gpiocdev.AsOutput(0)}
	if d.opts.Consumer != "" {
		options = append(options, gpiocdev.WithConsumer(d.opts.Consumer))
	}

	line, err := gpiocdev.RequestLine(d.opts.Chip, pin, options...)
	if err != nil {
		return fmt.Errorf("unable to request %s line %d: %w", d.opts.Chip, pin, err)
	}

	d.lines[pin] = line
	return nil
}

func (d *cdevDriver) Write(pin int, level Level) error {
	line, ok := d.lines[pin]
	if !ok {
		return fmt.Errorf("%s line %d is not configured", d.opts.Chip, pin)
	}

	value := 0
	if level {
		value = 1
	}

	err := line.SetValue(value)
	if err != nil {
		return fmt.Errorf("unable to set %s line %d: %w", d.opts.Chip, pin, err)
	}

	return nil
}

// Close reverts the lines to inputs on the way out.
func (d *cdevDriver) Close() error {
	var firstErr error
	for pin, line := range d.lines {
		err := line.Reconfigure(gpiocdev.AsInput)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unable to revert %s line %d to input: %w", d.opts.Chip, pin, err)
		}

		err = line.Close()
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unable to release %s line %d: %w", d.opts.Chip, pin, err)
		}
	}

	d.lines = map[int]cdevLine{}
	return firstErr
}
