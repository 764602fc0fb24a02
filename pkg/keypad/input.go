// Package keypad reads the console: whole lines for the menu, single bytes
// for the password prompt and non-blocking single keys while a sequence runs.
package keypad

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// how long a blocking read waits on the descriptor before checking whether
// it was cancelled
const readCheckMillis = 50

// Input is a byte-oriented console reader with push-back. Bytes handed to
// UnreadByte are returned by the next read of any kind, most recent first.
type Input struct {
	r       io.Reader
	fd      int
	pending []byte
}

// NewInput reads from a file, normally os.Stdin.
func NewInput(f *os.File) *Input {
	return &Input{r: f, fd: int(f.Fd())}
}

// NewReaderInput reads from a plain reader. Polling such an input treats the
// end of the stream as "no key pressed".
func NewReaderInput(r io.Reader) *Input {
	return &Input{r: r, fd: -1}
}

// Fd is the underlying file descriptor, or -1 when there is none.
func (in *Input) Fd() int {
	return in.fd
}

// UnreadByte pushes b back so it is the next byte read.
func (in *Input) UnreadByte(b byte) {
	in.pending = append([]byte{b}, in.pending...)
}

// ReadByteContext blocks until a byte is available or ctx is done, in which
// case ctx.Err() is returned. A plain reader that is also an io.Closer is
// closed on cancellation.
func (in *Input) ReadByteContext(ctx context.Context) (byte, error) {
	if b, ok := in.popPending(); ok {
		return b, nil
	}

	err := ctx.Err()
	if err != nil {
		return 0, err
	}

	if in.fd >= 0 {
		err = in.waitReadable(ctx)
		if err != nil {
			return 0, err
		}
	} else if closer, ok := in.r.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { closer.Close() })
		defer stop()
	}

	var buf [1]byte
	for {
		n, err := in.r.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return 0, err
		}
	}
}

// PollByte returns a byte only if one is available right now. ok is false
// when nothing has been typed, which is not an error.
func (in *Input) PollByte() (b byte, ok bool, err error) {
	if b, ok := in.popPending(); ok {
		return b, true, nil
	}

	if in.fd < 0 {
		return in.pollReader()
	}

	flags, err := unix.FcntlInt(uintptr(in.fd), unix.F_GETFL, 0)
	if err != nil {
		return 0, false, fmt.Errorf("unable to get input flags: %w", err)
	}

	if flags&unix.O_NONBLOCK == 0 {
		_, err = unix.FcntlInt(uintptr(in.fd), unix.F_SETFL, flags|unix.O_NONBLOCK)
		if err != nil {
			return 0, false, fmt.Errorf("unable to set non-blocking input: %w", err)
		}
		defer unix.FcntlInt(uintptr(in.fd), unix.F_SETFL, flags)
	}

	var buf [1]byte
	n, err := unix.Read(in.fd, buf[:])
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("unable to read input: %w", err)
	}

	if n == 0 {
		return 0, false, io.EOF
	}

	return buf[0], true, nil
}

// ReadLine returns the next line without its line ending. A final line
// without a newline is returned as is; io.EOF is only returned when nothing
// was read.
func (in *Input) ReadLine(ctx context.Context) (string, error) {
	var sb strings.Builder
	for {
		b, err := in.ReadByteContext(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				break
			}
			return "", err
		}

		if b == '\n' {
			break
		}

		sb.WriteByte(b)
	}

	return strings.TrimRight(sb.String(), "\r"), nil
}

// DiscardLine throws away everything up to and including the next newline,
// pushed back bytes included.
func (in *Input) DiscardLine(ctx context.Context) error {
	_, err := in.ReadLine(ctx)
	return err
}

//--------------------------------------------------------------------------------
// private

func (in *Input) buffered() int {
	return len(in.pending)
}

func (in *Input) popPending() (byte, bool) {
	if len(in.pending) == 0 {
		return 0, false
	}

	b := in.pending[0]
	in.pending = in.pending[1:]
	return b, true
}

func (in *Input) pollReader() (byte, bool, error) {
	var buf [1]byte
	n, err := in.r.Read(buf[:])
	if n == 1 {
		return buf[0], true, nil
	}

	if err == nil || errors.Is(err, io.EOF) {
		return 0, false, nil
	}

	return 0, false, err
}

// waitReadable returns once fd has something to read (or has hung up).
func (in *Input) waitReadable(ctx context.Context) error {
	fds := []unix.PollFd{{Fd: int32(in.fd), Events: unix.POLLIN}}
	for {
		err := ctx.Err()
		if err != nil {
			return err
		}

		n, err := unix.Poll(fds, readCheckMillis)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("unable to wait for input: %w", err)
		}

		if n > 0 {
			return nil
		}
	}
}
