package keypad

import (
	"github.com/BitPonyLLC/ledseq/pkg/delay"
	"github.com/BitPonyLLC/ledseq/pkg/termmode"

	"github.com/rs/zerolog"
)

// Key is what a single poll decoded from the console.
type Key int

const (
	KeyNone Key = iota
	KeyFaster
	KeySlower
	KeyCancel
)

const (
	keyEscape = 27
	csiIntro  = '['
	ss3Intro  = 'O' // application cursor mode
	arrowUp   = 'A'
	arrowDown = 'B'
)

var keyNames = [...]string{"none", "faster", "slower", "cancel"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// Poller checks the console for speed and cancel keys between frames.
type Poller struct {
	in    *Input
	table *delay.Table
	log   *zerolog.Logger
}

var _ delay.Poller = (*Poller)(nil) // ensures we conform to the delay.Poller interface

// NewPoller creates a poller that reads from in and adjusts table.
func NewPoller(in *Input, table *delay.Table, log *zerolog.Logger) *Poller {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Poller{in: in, table: table, log: log}
}

// Poll reads at most one key without blocking, with the terminal in raw mode
// for the duration of the read. Up arrow (or w) shortens the delay of slot,
// down arrow (or s) lengthens it. A lone escape is pushed back onto the input
// and reported by returning true. Anything else, including no key at all,
// changes nothing.
func (p *Poller) Poll(slot int) bool {
	var key Key
	err := termmode.WithRaw(p.in.Fd(), func() error {
		var err error
		key, err = p.readKey()
		return err
	})
	if err != nil {
		p.log.Debug().Err(err).Msg("unable to poll keypad")
	}

	switch key {
	case KeyFaster:
		units := p.table.Faster(slot)
		p.log.Debug().Int("slot", slot).Int64("units", units).Msg("faster")
	case KeySlower:
		units := p.table.Slower(slot)
		p.log.Debug().Int("slot", slot).Int64("units", units).Msg("slower")
	case KeyCancel:
		p.in.UnreadByte(keyEscape)
		return true
	}

	return false
}

//--------------------------------------------------------------------------------
// private

func (p *Poller) readKey() (Key, error) {
	b, ok, err := p.in.PollByte()
	if err != nil || !ok {
		return KeyNone, err
	}

	switch b {
	case arrowUp, 'w', 'W':
		return KeyFaster, nil
	case arrowDown, 's', 'S':
		return KeySlower, nil
	case keyEscape:
		return p.readEscape()
	}

	return KeyNone, nil
}

// arrow keys arrive as ESC [ A / ESC [ B, or ESC O A / ESC O B in
// application cursor mode, so an escape only cancels when it is not the start
// of such a sequence
func (p *Poller) readEscape() (Key, error) {
	next, ok, err := p.in.PollByte()
	if err != nil || !ok {
		return KeyCancel, nil
	}

	if next != csiIntro && next != ss3Intro {
		p.in.UnreadByte(next)
		return KeyCancel, nil
	}

	final, ok, err := p.in.PollByte()
	if err != nil || !ok {
		return KeyNone, err
	}

	switch final {
	case arrowUp:
		return KeyFaster, nil
	case arrowDown:
		return KeySlower, nil
	}

	return KeyNone, nil
}
