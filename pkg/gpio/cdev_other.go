//go:build !linux

package gpio

import "errors"

const cdevSupported = false

func openCdev(_ Options) (Driver, error) {
	return nil, errors.New("the gpiocdev driver requires linux")
}
