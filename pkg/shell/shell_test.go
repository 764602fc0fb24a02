package shell

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/BitPonyLLC/ledseq/pkg/delay"
	"github.com/BitPonyLLC/ledseq/pkg/keypad"
	"github.com/BitPonyLLC/ledseq/pkg/leds"
	"github.com/BitPonyLLC/ledseq/pkg/sequences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuTitle = "...LED SEQUENCE MENU..."

type countingRenderer struct {
	renders int
	offs    int
}

func (r *countingRenderer) Render(leds.Pattern) error {
	r.renders++
	return nil
}

func (r *countingRenderer) Off() error {
	r.offs++
	return nil
}

func newTestShell(input string) (*Shell, *bytes.Buffer, *countingRenderer, *delay.Table) {
	return newShellOn(strings.NewReader(input))
}

func newShellOn(r io.Reader) (*Shell, *bytes.Buffer, *countingRenderer, *delay.Table) {
	in := keypad.NewReaderInput(r)
	table := delay.NewTable(time.Microsecond)
	renderer := &countingRenderer{}
	env := &sequences.Env{
		Renderer: renderer,
		Delayer:  &delay.Delayer{Table: table, Poller: keypad.NewPoller(in, table, nil)},
	}

	var out bytes.Buffer
	env.Out = &out
	return New(in, &out, env, nil), &out, renderer, table
}

func TestLockedOutAfterThreeFailures(t *testing.T) {
	sh, out, renderer, _ := newTestShell("abcdefghij12345")

	state, err := sh.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, LockedOut, state)
	assert.Equal(t, 3, strings.Count(out.String(), "Wrong password"))
	assert.NotContains(t, out.String(), menuTitle)
	assert.NotContains(t, out.String(), "09876", "password is masked")
	assert.Zero(t, renderer.renders)
}

func TestAuthenticateOnEachAttempt(t *testing.T) {
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		input := strings.Repeat("wrong", attempt-1) + "09876" + "0\n"
		sh, out, _, _ := newTestShell(input)

		state, err := sh.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, Exited, state, "attempt %d", attempt)
		assert.Equal(t, attempt-1, strings.Count(out.String(), "Wrong password"))
		assert.Contains(t, out.String(), "Welcome")
		assert.Contains(t, out.String(), "Goodbye")
	}
}

func TestMaskedEcho(t *testing.T) {
	sh, out, _, _ := newTestShell("09876")

	ok, err := sh.Authenticate(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Menu, sh.State())
	assert.Contains(t, out.String(), "*****\n")
}

func TestInputEndsDuringPassword(t *testing.T) {
	sh, _, _, _ := newTestShell("098")

	state, err := sh.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LockedOut, state)
}

func TestExitChoiceRunsNothing(t *testing.T) {
	sh, out, renderer, _ := newTestShell("09876" + "0\n")

	state, err := sh.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Exited, state)
	assert.Equal(t, 1, strings.Count(out.String(), menuTitle))
	assert.Zero(t, renderer.renders)
}

func TestEnterAfterPasswordIsNotAChoice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid int
		menus   int
	}{
		{name: "newline", input: "09876\n0\n", invalid: 0, menus: 1},
		{name: "carriage return", input: "09876\r\n0\n", invalid: 0, menus: 1},
		{name: "only the first blank line", input: "09876\n\n0\n", invalid: 1, menus: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, out, _, _ := newTestShell(tt.input)

			state, err := sh.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, Exited, state)
			assert.Equal(t, tt.invalid, strings.Count(out.String(), "Invalid option!"))
			assert.Equal(t, tt.menus, strings.Count(out.String(), menuTitle))
		})
	}
}

func TestInvalidChoicesReprintMenu(t *testing.T) {
	sh, out, renderer, _ := newTestShell("09876" + "9\nabc\n3\n\n0\n")

	state, err := sh.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Exited, state)
	assert.Equal(t, 4, strings.Count(out.String(), "Invalid option!"))
	assert.Equal(t, 5, strings.Count(out.String(), menuTitle))
	assert.Zero(t, renderer.renders)
}

func TestMenuListsSequences(t *testing.T) {
	sh, out, _, _ := newTestShell("09876" + "0\n")

	_, err := sh.Run(context.Background())
	require.NoError(t, err)

	for _, want := range []string{"1. Collision", "2. Chase", "4. Pendulum", "5. Charge Bar", "0. (exit)"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestEscapeReturnsToMenu(t *testing.T) {
	sh, out, renderer, table := newTestShell("09876" + "2\n" + "\x1b\n" + "0\n")

	state, err := sh.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Exited, state)
	assert.Equal(t, 1, renderer.renders, "cancelled during the first delay")
	assert.Equal(t, 1, renderer.offs)
	assert.Equal(t, 2, strings.Count(out.String(), menuTitle))
	assert.Contains(t, out.String(), "Chase:\n*-------\n")
	assert.Contains(t, out.String(), "Press ENTER to continue")
	assert.EqualValues(t, delay.DefaultUnits, table.Units(delay.ChaseSlot))
}

func TestSpeedKeysThenEscape(t *testing.T) {
	sh, _, renderer, table := newTestShell("09876" + "4\n" + "\x1b[A\x1b[A\x1b[B\x1b\n" + "0\n")

	state, err := sh.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Exited, state)
	assert.GreaterOrEqual(t, renderer.renders, 1)
	assert.EqualValues(t, delay.DefaultUnits-delay.StepUnits, table.Units(delay.PendulumSlot))
}

func TestCancelledContextEndsMenu(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sh, out, _, _ := newTestShell("09876" + "2\n")
	state, err := sh.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, Exited, state)
	assert.NotContains(t, out.String(), menuTitle)
}

func TestCancelWhileWaitingForInput(t *testing.T) {
	tests := []struct {
		name     string
		typed    string
		wantMenu bool
	}{
		{name: "password prompt", typed: ""},
		{name: "menu prompt", typed: "09876\n", wantMenu: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, w := io.Pipe()
			defer w.Close()

			sh, out, renderer, _ := newShellOn(r)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go func() {
				if tt.typed != "" {
					w.Write([]byte(tt.typed))
				}
				time.Sleep(50 * time.Millisecond)
				cancel()
			}()

			type result struct {
				state State
				err   error
			}
			done := make(chan result, 1)
			go func() {
				state, err := sh.Run(ctx)
				done <- result{state, err}
			}()

			select {
			case res := <-done:
				require.NoError(t, res.err)
				assert.Equal(t, Exited, res.state)
				assert.Equal(t, tt.wantMenu, strings.Contains(out.String(), menuTitle))
				assert.Zero(t, renderer.renders)
			case <-time.After(2 * time.Second):
				t.Fatal("shell still waiting for input after cancel")
			}
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "locked-out", LockedOut.String())
	assert.Equal(t, "menu", Menu.String())
	assert.Equal(t, "unknown", State(9).String())
}
