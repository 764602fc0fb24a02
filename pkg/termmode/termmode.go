// Package termmode switches an input terminal between its normal
// line-buffered mode and a raw mode where single keys can be read as soon as
// they are pressed, without being echoed.
package termmode

import (
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// State is a snapshot of the terminal attributes in effect before Enter.
type State struct {
	termios unix.Termios
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return fd >= 0 && term.IsTerminal(fd)
}

// Enter disables canonical input and echo on fd, applied immediately, and
// returns the attributes that were in effect beforehand. When fd is not a
// terminal nothing is changed and the returned state is nil.
func Enter(fd int) (*State, error) {
	if !IsTerminal(fd) {
		return nil, nil
	}

	attrs, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("unable to get terminal attributes: %w", err)
	}

	previous := &State{termios: *attrs}

	attrs.Lflag &^= unix.ICANON | unix.ECHO
	attrs.Cc[unix.VMIN] = 1
	attrs.Cc[unix.VTIME] = 0

	err = unix.IoctlSetTermios(fd, ioctlSetTermios, attrs)
	if err != nil {
		return nil, fmt.Errorf("unable to set terminal attributes: %w", err)
	}

	return previous, nil
}

// Restore re-applies a snapshot taken by Enter. A nil state is a no-op.
func Restore(fd int, state *State) error {
	if state == nil {
		return nil
	}

	attrs := state.termios
	err := unix.IoctlSetTermios(fd, ioctlSetTermios, &attrs)
	if err != nil {
		return fmt.Errorf("unable to restore terminal attributes: %w", err)
	}

	return nil
}

// WithRaw runs fn with fd in raw mode. The previous mode is restored on every
// way out of fn, including a panic.
func WithRaw(fd int, fn func() error) (err error) {
	state, err := Enter(fd)
	if err != nil {
		return err
	}

	defer func() {
		restoreErr := Restore(fd, state)
		if err == nil {
			err = restoreErr
		}
	}()

	return fn()
}
