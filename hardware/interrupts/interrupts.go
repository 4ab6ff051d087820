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

// Package interrupts implements the interrupt controller. The
// controller is purely combinational: it holds the enable and request
// bitmasks, the master enable flag, and answers which single interrupt
// has the highest priority among those both requested and enabled.
//
// Peripherals request an interrupt by setting the corresponding request
// bit. The controller never clears a bit of its own accord; only an
// explicit software write or CPU dispatch does that.
package interrupts

import "fmt"

// Interrupt identifies one of the five interrupt sources. The value
// doubles as the bit position in the enable and request masks and as
// the priority rank (lower value, higher priority).
type Interrupt int

// The five interrupt sources in priority order.
const (
	VBlank Interrupt = iota
	Status
	Timer
	Serial
	Joypad
	numInterrupts
)

func (irq Interrupt) String() string {
	switch irq {
	case VBlank:
		return "VBLANK"
	case Status:
		return "STAT"
	case Timer:
		return "TIMER"
	case Serial:
		return "SERIAL"
	case Joypad:
		return "JOYPAD"
	}
	return "unknown"
}

// Vector returns the address the CPU jumps to when the interrupt is
// dispatched.
func (irq Interrupt) Vector() uint16 {
	return 0x0040 + uint16(irq)*0x0008
}

// Interrupts is the interrupt controller. It is owned by the console
// and shared, by reference, with every peripheral that can raise an
// interrupt.
type Interrupts struct {
	// enable and request masks. only the low five bits are meaningful
	Enable  uint8
	Request uint8

	// the master enable flag. the flag gates dispatch only; requests
	// accumulate regardless
	MasterEnable bool
}

func NewInterrupts() *Interrupts {
	return &Interrupts{}
}

// Reset returns the controller to its power-on state.
func (irq *Interrupts) Reset() {
	irq.Enable = 0
	irq.Request = 0
	irq.MasterEnable = false
}

func (irq *Interrupts) String() string {
	return fmt.Sprintf("IE=%#02x IF=%#02x IME=%v", irq.Enable, irq.Request, irq.MasterEnable)
}

// Raise sets the request bit for the interrupt.
func (irq *Interrupts) Raise(i Interrupt) {
	irq.Request |= 1 << uint(i)
}

// Acknowledge clears the request bit for the interrupt. Called by the
// CPU as part of dispatch.
func (irq *Interrupts) Acknowledge(i Interrupt) {
	irq.Request &^= 1 << uint(i)
}

// Pending returns the highest priority interrupt that is both requested
// and enabled. The master enable flag is not consulted; that is the
// CPU's concern (the shallow halt state resumes on a pending interrupt
// even when the master enable flag is off).
func (irq *Interrupts) Pending() (Interrupt, bool) {
	m := irq.Enable & irq.Request & 0x1f
	if m == 0 {
		return 0, false
	}
	for i := VBlank; i < numInterrupts; i++ {
		if m&(1<<uint(i)) != 0 {
			return i, true
		}
	}
	return 0, false
}

// ReadEnable returns the value of the interrupt enable register.
func (irq *Interrupts) ReadEnable() uint8 {
	return irq.Enable
}

// WriteEnable sets the interrupt enable register.
func (irq *Interrupts) WriteEnable(data uint8) {
	irq.Enable = data
}

// ReadRequest returns the value of the interrupt request register. The
// unused upper bits read as set, as they do on real hardware.
func (irq *Interrupts) ReadRequest() uint8 {
	return irq.Request | 0xe0
}

// WriteRequest sets the interrupt request register. Software can both
// raise and cancel requests this way.
func (irq *Interrupts) WriteRequest(data uint8) {
	irq.Request = data & 0x1f
}
