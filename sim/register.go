// Package sim simulates the LPC18xx vendor chip library on the host: every
// driver interface of package core, backed by in-memory registers that
// record what bring-up did to them.
package sim

import "sync"

// Register is a simulated 32-bit register with the volatile.Register32
// method set. Reads (Get, HasBits) are counted as polls.
type Register struct {
	mu     sync.Mutex
	value  uint32
	polls  int
	writes int

	// self-clearing bits, see ClearAfter
	clearMask  uint32
	clearPolls int
	countdown  int
	armed      bool
}

// NewRegister returns a register holding value.
func NewRegister(value uint32) *Register {
	return &Register{value: value, clearPolls: -1}
}

// ClearAfter makes the bits in mask self-clearing: once a write sets any of
// them, the next polls reads still see them set and the read after that
// sees them clear. polls < 0 means the bits never clear.
func (r *Register) ClearAfter(mask uint32, polls int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearMask = mask
	r.clearPolls = polls
	r.armed = false
}

func (r *Register) Get() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func (r *Register) HasBits(value uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()&value != 0
}

func (r *Register) Set(value uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.write(value)
}

func (r *Register) SetBits(value uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.write(r.value | value)
}

func (r *Register) ClearBits(value uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.write(r.value &^ value)
}

// Value returns the register contents without counting a poll.
func (r *Register) Value() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Polls returns the number of reads made through Get or HasBits.
func (r *Register) Polls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.polls
}

// Writes returns the number of writes made through Set, SetBits or
// ClearBits.
func (r *Register) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *Register) read() uint32 {
	r.polls++
	if r.armed {
		if r.countdown == 0 {
			r.value &^= r.clearMask
			r.armed = false
		} else {
			r.countdown--
		}
	}
	return r.value
}

func (r *Register) write(value uint32) {
	r.writes++
	if r.clearMask != 0 && r.clearPolls >= 0 && value&r.clearMask&^r.value != 0 {
		r.armed = true
		r.countdown = r.clearPolls
	}
	r.value = value
}

// poke changes bits from the outside world (an input level) without
// counting a write.
func (r *Register) poke(mask uint32, set bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set {
		r.value |= mask
	} else {
		r.value &^= mask
	}
}
