// Package shell is the interactive front end: a password gate followed by a
// menu that starts the LED sequences.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BitPonyLLC/ledseq/pkg/keypad"
	"github.com/BitPonyLLC/ledseq/pkg/sequences"
	"github.com/BitPonyLLC/ledseq/pkg/termmode"

	"github.com/rs/zerolog"
)

// State is where the shell is in its lifecycle.
type State int

const (
	Authenticating State = iota
	Menu
	Exited
	LockedOut
)

const (
	MaxAttempts      = 3
	CredentialLength = 5
	exitChoice       = 0
)

var stateNames = [...]string{"authenticating", "menu", "exited", "locked-out"}

// fixed at build time; compared as typed, with no hashing
var credential = []byte("09876")

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Shell talks to the user over a keypad.Input and an output stream.
type Shell struct {
	in    *keypad.Input
	out   io.Writer
	env   *sequences.Env
	log   *zerolog.Logger
	state State

	// the ENTER pressed after the password has not been read yet
	loginEnter bool
}

// New creates a shell in the Authenticating state.
func New(in *keypad.Input, out io.Writer, env *sequences.Env, log *zerolog.Logger) *Shell {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Shell{in: in, out: out, env: env, log: log, state: Authenticating}
}

// State reports the current state.
func (s *Shell) State() State {
	return s.state
}

// Run authenticates the user and, if that succeeds, serves the menu until the
// user exits, the input ends or ctx is cancelled. The final state is
// returned: Exited or LockedOut.
func (s *Shell) Run(ctx context.Context) (State, error) {
	ok, err := s.Authenticate(ctx)
	if err != nil {
		return s.state, err
	}

	if !ok {
		return s.state, nil
	}

	fmt.Fprint(s.out, "Welcome to the system!\n\n")
	err = s.Menu(ctx)
	fmt.Fprint(s.out, "Goodbye!\n")
	return s.state, err
}

// Authenticate gives the user MaxAttempts tries at the password. Running out
// of tries, or of input, leaves the shell LockedOut. Cancelling ctx leaves it
// Exited.
func (s *Shell) Authenticate(ctx context.Context) (bool, error) {
	s.state = Authenticating

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		entered, err := s.readCredential(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info().Msg("cancelled at the password prompt")
				s.state = Exited
				return false, nil
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return false, err
		}

		if bytes.Equal(entered, credential) {
			s.log.Info().Int("attempt", attempt).Msg("authenticated")
			s.state = Menu
			s.loginEnter = true
			return true, nil
		}

		s.log.Warn().Int("attempt", attempt).Msg("wrong password")
		fmt.Fprint(s.out, "Wrong password\n\n")
	}

	s.state = LockedOut
	return false, nil
}

// Menu reads one choice per round and runs the matching sequence, until 0 is
// chosen. Anything that is not a known choice reprints the menu.
func (s *Shell) Menu(ctx context.Context) error {
	s.state = Menu
	defer func() { s.state = Exited }()

	for ctx.Err() == nil {
		s.printMenu()

		line, err := s.readChoice(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("unable to read menu choice: %w", err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			s.invalid(line)
			continue
		}

		if choice == exitChoice {
			return nil
		}

		seq := sequences.ByKey(choice)
		if seq == nil {
			s.invalid(line)
			continue
		}

		err = s.play(ctx, seq)
		if err != nil {
			return err
		}
	}

	return nil
}

//--------------------------------------------------------------------------------
// private

// readCredential reads exactly CredentialLength keys in raw mode, echoing a
// '*' for each so the password never shows on screen.
func (s *Shell) readCredential(ctx context.Context) ([]byte, error) {
	fmt.Fprint(s.out, "Enter the password to access the system: ")

	entered := make([]byte, 0, CredentialLength)
	err := termmode.WithRaw(s.in.Fd(), func() error {
		for len(entered) < CredentialLength {
			b, err := s.in.ReadByteContext(ctx)
			if err != nil {
				return err
			}

			entered = append(entered, b)
			fmt.Fprint(s.out, "*")
		}
		return nil
	})

	fmt.Fprint(s.out, "\n")
	return entered, err
}

// readChoice reads one menu line. The first blank line after logging in is
// the ENTER that followed the password, so it is skipped without complaint.
func (s *Shell) readChoice(ctx context.Context) (string, error) {
	for {
		line, err := s.in.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		if s.loginEnter {
			s.loginEnter = false
			if strings.TrimSpace(line) == "" {
				continue
			}
		}

		return line, nil
	}
}

func (s *Shell) printMenu() {
	fmt.Fprint(s.out, "...LED SEQUENCE MENU...\n")
	fmt.Fprint(s.out, "Select the sequence to display:\n")
	for _, seq := range sequences.All() {
		base := seq.GetBase()
		fmt.Fprintf(s.out, "\t* %d. %s\n", base.Key, base.Title())
	}
	fmt.Fprintf(s.out, "\t* %d. (exit)\n", exitChoice)
	fmt.Fprint(s.out, "---> ")
}

func (s *Shell) invalid(line string) {
	s.log.Debug().Str("choice", line).Msg("invalid menu choice")
	fmt.Fprint(s.out, "Invalid option!\nPlease enter a valid option\n")
}

// play keeps the terminal raw for the whole run so keys pressed between
// polls are not echoed, then waits for ENTER, which also swallows the escape
// the poller pushed back.
func (s *Shell) play(ctx context.Context, seq sequences.Sequence) error {
	err := termmode.WithRaw(s.in.Fd(), func() error {
		return seq.Run(ctx, s.log, s.env)
	})
	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		return nil
	}

	fmt.Fprint(s.out, "Press ENTER to continue...\n")
	err = s.in.DiscardLine(ctx)
	if err != nil && !errors.Is(err, io.EOF) && ctx.Err() == nil {
		return fmt.Errorf("unable to read from the console: %w", err)
	}

	return nil
}
