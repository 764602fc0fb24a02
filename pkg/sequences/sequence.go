// Package sequences holds the LED animations offered by the menu. Each one
// loops over its frames until the delay between frames is cancelled.
package sequences

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/BitPonyLLC/ledseq/pkg/delay"
	"github.com/BitPonyLLC/ledseq/pkg/leds"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sequence is an endless LED animation.
type Sequence interface {
	GetBase() *BaseSequence
	Frames() []Frame
	Run(context.Context, *zerolog.Logger, *Env) error
	String() string
}

// Frame is one step of a sequence. Pause is an extra fixed wait after the
// frame is shown, before the adjustable delay.
type Frame struct {
	Pattern leds.Pattern
	Pause   time.Duration
}

// Renderer shows a pattern on the LEDs.
type Renderer interface {
	Render(leds.Pattern) error
	Off() error
}

// Waiter waits out the delay of a slot; false means stop the sequence.
type Waiter interface {
	Wait(ctx context.Context, slot int) bool
}

// Env is what a sequence needs to run.
type Env struct {
	Renderer Renderer
	Delayer  Waiter
	Out      io.Writer
}

// BaseSequence carries what every sequence shares and implements Run.
type BaseSequence struct {
	Name        string
	Key         int
	Slot        int
	Description string

	self Sequence // used to reach the real (child) sequence type
}

const keyHelp = "Press esc to end the sequence\n" +
	"Press up (or w) to speed it up\n" +
	"Press down (or s) to slow it down\n"

var titler = cases.Title(language.English)

// Get finds a sequence by name.
func Get(name string) Sequence {
	return registered[name]
}

// ByKey finds a sequence by its menu key.
func ByKey(key int) Sequence {
	for _, s := range registered {
		if s.GetBase().Key == key {
			return s
		}
	}
	return nil
}

// All returns every sequence ordered by menu key.
func All() []Sequence {
	all := make([]Sequence, 0, len(registered))
	for _, s := range registered {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].GetBase().Key < all[j].GetBase().Key })
	return all
}

func (s *BaseSequence) GetBase() *BaseSequence {
	return s
}

// Title is the name as shown in the menu.
func (s *BaseSequence) Title() string {
	return titler.String(strings.ReplaceAll(s.Name, "-", " "))
}

func (s *BaseSequence) String() string {
	return fmt.Sprintf("%s slot=%d", s.Name, s.Slot)
}

// Run shows the frames over and over. Every frame is rendered, drawn to
// env.Out and followed by the frame's pause and then the slot's delay. When
// either is cut short the LEDs are turned off and Run returns nil.
func (s *BaseSequence) Run(ctx context.Context, log *zerolog.Logger, env *Env) error {
	seqLog := log.With().Str("sequence", s.Name).Logger()
	seqLog.Info().Msg("started")
	defer seqLog.Info().Msg("stopped")

	frames := s.self.Frames()
	if len(frames) == 0 {
		return errors.New("sequence has no frames")
	}

	out := env.Out
	if out == nil {
		out = io.Discard
	}

	fmt.Fprint(out, keyHelp)
	fmt.Fprintf(out, "%s:\n", s.Title())

	for {
		for _, frame := range frames {
			err := env.Renderer.Render(frame.Pattern)
			if err != nil {
				s.turnOff(env)
				return fmt.Errorf("unable to show %s: %w", s.Name, err)
			}

			fmt.Fprint(out, leds.Visualize(frame.Pattern))

			if frame.Pause > 0 && !delay.Sleep(ctx, frame.Pause) {
				return s.turnOff(env)
			}

			if !env.Delayer.Wait(ctx, s.Slot) {
				return s.turnOff(env)
			}
		}
	}
}

//--------------------------------------------------------------------------------
// private

var registered = map[string]Sequence{}

func register(name string, key, slot int, description string, s Sequence) {
	base := s.GetBase()
	base.Name = name
	base.Key = key
	base.Slot = slot
	base.Description = description
	base.self = s

	registered[name] = s
}

func (s *BaseSequence) turnOff(env *Env) error {
	err := env.Renderer.Off()
	if err != nil {
		return fmt.Errorf("unable to turn off the leds: %w", err)
	}
	return nil
}
