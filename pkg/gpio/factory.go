package gpio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
)

// Backend names accepted by Open.
const (
	Auto    = "auto"
	Cdev    = "gpiocdev"
	RPIO    = "rpio"
	Periph  = "periph"
	Console = "console"
)

// DefaultChip is the character device probed when no chip is configured.
const DefaultChip = "gpiochip0"

const devPath = "/dev"

// Options tune the backend chosen by Open.
type Options struct {
	// Chip is the GPIO character device used by the gpiocdev backend.
	Chip string

	// Consumer labels the lines requested through the character device.
	Consumer string
}

// Names lists the backends accepted by Open.
func Names() []string {
	names := []string{Auto, Cdev, RPIO, Periph, Console}
	sort.Strings(names)
	return names
}

// Open returns the named backend. Auto selects gpiocdev when the configured
// chip exists and falls back to the console backend otherwise, so the
// sequences can still be watched on a machine with no LEDs attached.
func Open(name string, opts Options, log *zerolog.Logger) (Driver, error) {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	if opts.Chip == "" {
		opts.Chip = DefaultChip
	}

	if name == "" || name == Auto {
		name = detect(opts.Chip)
		log.Info().Str("driver", name).Str("chip", opts.Chip).Msg("selected gpio driver")
	}

	switch name {
	case Cdev:
		return openCdev(opts)
	case RPIO:
		return openRPIO()
	case Periph:
		return openPeriph()
	case Console:
		return NewConsole(log), nil
	}

	return nil, fmt.Errorf("unknown gpio driver: %s", name)
}

//--------------------------------------------------------------------------------
// private

func detect(chip string) string {
	path := chip
	if !filepath.IsAbs(path) {
		path = filepath.Join(devPath, chip)
	}

	if _, err := os.Stat(path); err == nil && cdevSupported {
		return Cdev
	}

	return Console
}
