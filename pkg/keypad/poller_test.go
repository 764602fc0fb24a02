package keypad

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/BitPonyLLC/ledseq/pkg/delay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPoller(keys string) (*Poller, *Input, *delay.Table) {
	in := NewReaderInput(strings.NewReader(keys))
	table := delay.NewTable(time.Microsecond)
	return NewPoller(in, table, nil), in, table
}

func TestPollAdjustsDelay(t *testing.T) {
	tests := []struct {
		name  string
		keys  string
		units int64
	}{
		{name: "no input", keys: "", units: delay.DefaultUnits},
		{name: "up arrow", keys: "\x1b[A", units: delay.DefaultUnits - delay.StepUnits},
		{name: "down arrow", keys: "\x1b[B", units: delay.DefaultUnits + delay.StepUnits},
		{name: "application up arrow", keys: "\x1bOA", units: delay.DefaultUnits - delay.StepUnits},
		{name: "application down arrow", keys: "\x1bOB", units: delay.DefaultUnits + delay.StepUnits},
		{name: "bare up code", keys: "A", units: delay.DefaultUnits - delay.StepUnits},
		{name: "bare down code", keys: "B", units: delay.DefaultUnits + delay.StepUnits},
		{name: "w key", keys: "w", units: delay.DefaultUnits - delay.StepUnits},
		{name: "S key", keys: "S", units: delay.DefaultUnits + delay.StepUnits},
		{name: "right arrow", keys: "\x1b[C", units: delay.DefaultUnits},
		{name: "other key", keys: "x", units: delay.DefaultUnits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poller, _, table := newTestPoller(tt.keys)

			assert.False(t, poller.Poll(delay.PendulumSlot))
			assert.Equal(t, tt.units, table.Units(delay.PendulumSlot))
			assert.EqualValues(t, delay.DefaultUnits, table.Units(delay.ChaseSlot))
		})
	}
}

func TestPollReadsOneKeyAtATime(t *testing.T) {
	poller, _, table := newTestPoller("\x1b[B\x1b[Bq")

	assert.False(t, poller.Poll(delay.ChaseSlot))
	assert.EqualValues(t, delay.DefaultUnits+delay.StepUnits, table.Units(delay.ChaseSlot))

	assert.False(t, poller.Poll(delay.ChaseSlot))
	assert.EqualValues(t, delay.DefaultUnits+2*delay.StepUnits, table.Units(delay.ChaseSlot))

	assert.False(t, poller.Poll(delay.ChaseSlot))
	assert.False(t, poller.Poll(delay.ChaseSlot))
	assert.EqualValues(t, delay.DefaultUnits+2*delay.StepUnits, table.Units(delay.ChaseSlot))
}

func TestPollFloorsAtMinimum(t *testing.T) {
	poller, _, table := newTestPoller(strings.Repeat("\x1b[A", 15))

	for i := 0; i < 15; i++ {
		assert.False(t, poller.Poll(delay.CollisionSlot))
	}

	assert.EqualValues(t, delay.MinUnits, table.Units(delay.CollisionSlot))
}

func TestPollEscapeCancels(t *testing.T) {
	poller, in, table := newTestPoller("\x1b")

	assert.True(t, poller.Poll(delay.ChaseSlot))
	assert.EqualValues(t, delay.DefaultUnits, table.Units(delay.ChaseSlot))

	b, err := in.ReadByteContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, byte(keyEscape), b, "escape is pushed back for the next reader")
}

func TestPollEscapeKeepsFollowingByte(t *testing.T) {
	poller, in, _ := newTestPoller("\x1b\n0\n")

	assert.True(t, poller.Poll(delay.ChaseSlot))

	line, err := in.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "\x1b", line)

	line, err = in.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0", line)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "cancel", KeyCancel.String())
	assert.Equal(t, "unknown", Key(42).String())
}
