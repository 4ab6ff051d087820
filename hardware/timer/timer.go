// This file is part of Dotmatrix.
//
// Dotmatrix is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dotmatrix is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dotmatrix.  If not, see <https://www.gnu.org/licenses/>.

// Package timer implements the programmable timer: a free-running
// divider and a separately enabled overflow counter that requests the
// timer interrupt.
//
// The overflow reload is observably delayed by one machine cycle. A
// read of the counter inside that window yields zero, not the reload
// value. The delay is modelled as an explicit sub-state because
// conformance test programs specifically probe the boundary.
package timer

import (
	"fmt"

	"dotmatrix/hardware/interrupts"
)

// the number of internal counter cycles per overflow-counter
// increment, indexed by the rate-select field of the control register.
var rates = [4]uint16{1024, 16, 64, 256}

// control register bits.
const (
	tacEnable     = 0x04
	tacRateSelect = 0x03
)

// reloadDelay is the length of the window, in cycles, between overflow
// and the reload from TMA. one machine cycle.
const reloadDelay = 4

// Timer is the programmable timer. The free-running counter is
// sixteen bits wide; the externally visible divider is its upper
// eight bits.
type Timer struct {
	irq *interrupts.Interrupts

	// the free-running internal counter
	counter uint16

	// the overflow counter (TIMA), its reload value (TMA) and the
	// control register (TAC)
	tima uint8
	tma  uint8
	tac  uint8

	// cycles remaining until the delayed reload of tima from tma.
	// zero means no reload is in flight
	reload int
}

// NewTimer is the preferred method of initialisation for the Timer
// type.
func NewTimer(irq *interrupts.Interrupts) *Timer {
	return &Timer{irq: irq}
}

// Reset returns the timer to its power-on state.
func (tmr *Timer) Reset() {
	tmr.counter = 0
	tmr.tima = 0
	tmr.tma = 0
	tmr.tac = 0
	tmr.reload = 0
}

func (tmr *Timer) String() string {
	return fmt.Sprintf("DIV=%#02x TIMA=%#02x TMA=%#02x TAC=%#02x", tmr.ReadDivider(), tmr.tima, tmr.tma, tmr.tac)
}

// Step advances the timer by the given number of cycles. Cycles are
// always a multiple of 4, the length of one machine cycle.
func (tmr *Timer) Step(cycles int) {
	for ; cycles > 0; cycles -= 4 {
		tmr.tick()
	}
}

// tick advances the timer by one machine cycle.
func (tmr *Timer) tick() {
	if tmr.reload > 0 {
		tmr.reload -= 4
		if tmr.reload <= 0 {
			tmr.reload = 0
			tmr.tima = tmr.tma
		}
	}

	prev := tmr.counter
	tmr.counter += 4

	if tmr.tac&tacEnable == 0 {
		return
	}

	// the overflow counter increments when the internal counter
	// crosses a multiple of the selected rate. the counter wraps at a
	// multiple of every rate so wraparound needs no special case
	rate := rates[tmr.tac&tacRateSelect]
	if prev/rate != tmr.counter/rate {
		tmr.tima++
		if tmr.tima == 0 {
			// the interrupt is requested at the overflow boundary but
			// the reload from TMA lands one machine cycle later
			tmr.irq.Raise(interrupts.Timer)
			tmr.reload = reloadDelay
		}
	}
}

// ReadDivider returns the upper 8 bits of the free-running counter.
func (tmr *Timer) ReadDivider() uint8 {
	return uint8(tmr.counter >> 8)
}

// WriteDivider zeroes the free-running counter. The written value is
// irrelevant, a quirk of the hardware.
func (tmr *Timer) WriteDivider(_ uint8) {
	tmr.counter = 0
}

// ReadCounter returns the overflow counter. During the one machine
// cycle between overflow and reload the counter reads zero.
func (tmr *Timer) ReadCounter() uint8 {
	return tmr.tima
}

// WriteCounter sets the overflow counter directly.
func (tmr *Timer) WriteCounter(data uint8) {
	tmr.tima = data
}

// ReadModulo returns the reload value.
func (tmr *Timer) ReadModulo() uint8 {
	return tmr.tma
}

// WriteModulo sets the reload value.
func (tmr *Timer) WriteModulo(data uint8) {
	tmr.tma = data
}

// ReadControl returns the control register. The unused upper bits read
// as set.
func (tmr *Timer) ReadControl() uint8 {
	return tmr.tac | 0xf8
}

// WriteControl sets the control register: bit 2 enables the overflow
// counter, bits 0-1 select the rate.
func (tmr *Timer) WriteControl(data uint8) {
	tmr.tac = data & 0x07
}
