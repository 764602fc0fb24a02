package delay

import (
	"context"
	"time"
)

// DefaultPollInterval is how often Wait checks for keys while it waits.
const DefaultPollInterval = 10 * time.Millisecond

// Poller reports whether the user asked to cancel the sequence bound to slot.
// It may also adjust that slot's entry in the Table.
type Poller interface {
	Poll(slot int) bool
}

// Delayer waits out a slot's delay while watching for cancellation.
type Delayer struct {
	Table        *Table
	Poller       Poller
	PollInterval time.Duration
}

// Wait blocks for the current delay of slot. The poller is consulted at the
// start and then once per PollInterval, and the slot's delay is re-read each
// time so speed changes apply to the wait in progress. Wait returns false as
// soon as the poller signals cancellation or ctx is done, and true once the
// full delay has elapsed.
func (d *Delayer) Wait(ctx context.Context, slot int) bool {
	interval := d.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	start := time.Now()
	for {
		if d.Poller != nil && d.Poller.Poll(slot) {
			return false
		}

		remaining := d.Table.Duration(slot) - time.Since(start)
		if remaining <= 0 {
			return true
		}

		if remaining > interval {
			remaining = interval
		}

		if !Sleep(ctx, remaining) {
			return false
		}
	}
}

// Sleep pauses for delay unless ctx is done first. It returns false when the
// pause was cut short.
func Sleep(ctx context.Context, delay time.Duration) bool {
	wake := time.NewTimer(delay)
	select {
	case <-ctx.Done():
		wake.Stop()
		return false
	case <-wake.C:
		return true
	}
}
