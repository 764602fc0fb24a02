// Pidpath is a helper for managing a PID file so only one process drives the
// LED lines at a time.
package pidpath

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PidPath is the type for managing a PID file.
type PidPath struct {
	pidpath string
	perm    fs.FileMode
	ours    bool
}

// UnknownPID indicates the PID read from the file wasn't located as a running
// process.
const UnknownPID = -1

// NewPidPath manages a process ID file at pathname.
func NewPidPath(pathname string, perm fs.FileMode) *PidPath {
	return &PidPath{pidpath: pathname, perm: perm}
}

func (pp *PidPath) String() string {
	return fmt.Sprintf("%s pid=%v ours=%v", pp.pidpath, pp.Getpid(), pp.ours)
}

// CheckAndSet fails if another live process owns the file and otherwise
// claims it for the current process.
func (pp *PidPath) CheckAndSet() error {
	pid, err := pp.read()
	if err != nil {
		return err
	}

	if pid != UnknownPID && pid != os.Getpid() {
		return fmt.Errorf("another process is already driving the leds: %d", pid)
	}

	err = os.WriteFile(pp.pidpath, []byte(strconv.Itoa(os.Getpid())), pp.perm)
	if err != nil {
		return fmt.Errorf("unable to write to %s: %w", pp.pidpath, err)
	}

	// only declared ours once the write succeeded
	pp.ours = true
	return nil
}

// Getpid returns the live process recorded in the file, or UnknownPID.
func (pp *PidPath) Getpid() int {
	pid, err := pp.read()
	if err != nil {
		return UnknownPID
	}
	return pid
}

// Release removes the file if this process claimed it.
func (pp *PidPath) Release() error {
	if !pp.ours {
		return nil
	}

	pp.ours = false
	err := os.Remove(pp.pidpath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unable to remove %s: %w", pp.pidpath, err)
	}
	return nil
}

//--------------------------------------------------------------------------------
// private

func (pp *PidPath) read() (int, error) {
	content, err := os.ReadFile(pp.pidpath)
	if err != nil {
		if os.IsNotExist(err) {
			return UnknownPID, nil
		}
		return UnknownPID, fmt.Errorf("unable to read %s: %w", pp.pidpath, err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return UnknownPID, fmt.Errorf("unable to parse contents of %s: %w", pp.pidpath, err)
	}

	if pid == os.Getpid() {
		return pid, nil
	}

	err = syscall.Kill(pid, 0)
	if err == nil || err == syscall.EPERM {
		// EPERM: alive but owned by another user, probably root
		return pid, nil
	}

	// ESRCH: left behind by a process that is gone
	return UnknownPID, nil
}
