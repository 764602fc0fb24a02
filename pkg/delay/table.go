// Package delay holds the per-sequence delay table and the cancellable wait
// that every animation frame goes through.
package delay

import (
	"time"

	"go.uber.org/atomic"
)

// Slot identifies a sequence's entry in the Table.
const (
	ChaseSlot = iota
	CollisionSlot
	PendulumSlot
	ChargeBarSlot

	Slots
)

const (
	DefaultUnits = 10000
	MinUnits     = 1000
	StepUnits    = 1000

	// DefaultUnit is the wall time of one delay unit.
	DefaultUnit = 100 * time.Microsecond
)

// Table is the set of per-sequence delays, measured in abstract units. A
// slot never drops below MinUnits. Slot indices out of range are ignored by
// the mutators and read back as MinUnits.
type Table struct {
	unit  time.Duration
	slots [Slots]atomic.Int64
}

// NewTable creates a table with every slot at DefaultUnits. A non-positive
// unit selects DefaultUnit.
func NewTable(unit time.Duration) *Table {
	if unit <= 0 {
		unit = DefaultUnit
	}

	t := &Table{unit: unit}
	t.reset()
	return t
}

// reset puts every slot back to DefaultUnits.
func (t *Table) reset() {
	for i := range t.slots {
		t.slots[i].Store(DefaultUnits)
	}
}

// Unit is the wall time of a single delay unit.
func (t *Table) Unit() time.Duration {
	return t.unit
}

// Units returns the current magnitude of slot.
func (t *Table) Units(slot int) int64 {
	if !valid(slot) {
		return MinUnits
	}
	return t.slots[slot].Load()
}

// Duration converts the current magnitude of slot to wall time.
func (t *Table) Duration(slot int) time.Duration {
	return time.Duration(t.Units(slot)) * t.unit
}

// Set stores units into slot, clamped to MinUnits.
func (t *Table) Set(slot int, units int64) {
	if !valid(slot) {
		return
	}
	if units < MinUnits {
		units = MinUnits
	}
	t.slots[slot].Store(units)
}

// Faster shortens slot by StepUnits, never below MinUnits, and returns the
// new magnitude.
func (t *Table) Faster(slot int) int64 {
	return t.adjust(slot, -StepUnits)
}

// Slower lengthens slot by StepUnits and returns the new magnitude.
func (t *Table) Slower(slot int) int64 {
	return t.adjust(slot, StepUnits)
}

//--------------------------------------------------------------------------------
// private

func valid(slot int) bool {
	return slot >= 0 && slot < Slots
}

func (t *Table) adjust(slot int, by int64) int64 {
	if !valid(slot) {
		return MinUnits
	}

	for {
		current := t.slots[slot].Load()
		next := current + by
		if next < MinUnits {
			next = MinUnits
		}

		if t.slots[slot].CAS(current, next) {
			return next
		}
	}
}
