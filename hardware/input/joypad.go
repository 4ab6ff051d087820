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

// Package input implements the joypad: eight buttons multiplexed onto
// one register as two selectable nibbles. All lines are active low. A
// button press on a currently selected line requests the joypad
// interrupt.
package input

import (
	"dotmatrix/hardware/interrupts"
)

// Button identifies one of the eight inputs.
type Button int

// The eight buttons. The first four share the "action" nibble, the
// last four the "direction" nibble. The value modulo four is the bit
// position within the nibble.
const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonSelect:
		return "select"
	case ButtonStart:
		return "start"
	case ButtonRight:
		return "right"
	case ButtonLeft:
		return "left"
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	}
	return "unknown"
}

// select bits in the joypad register. Writing a zero to a bit selects
// the corresponding nibble.
const (
	selectActions    = 0x20
	selectDirections = 0x10
)

// Joypad is the state of the eight buttons and the nibble selection.
type Joypad struct {
	irq *interrupts.Interrupts

	// pressed state, one bit per Button. set means pressed, the
	// inversion to active-low happens at the register read
	buttons uint8

	// last written select bits, stored uninverted
	sel uint8
}

// NewJoypad is the preferred method of initialisation for the Joypad
// type.
func NewJoypad(irq *interrupts.Interrupts) *Joypad {
	return &Joypad{
		irq: irq,
		sel: selectActions | selectDirections,
	}
}

// nibble returns the active-low button lines for the current
// selection. With both nibbles selected the lines are wired-AND.
func (j *Joypad) nibble() uint8 {
	v := uint8(0x0f)
	if j.sel&selectActions == 0 {
		v &= ^j.buttons & 0x0f
	}
	if j.sel&selectDirections == 0 {
		v &= ^(j.buttons >> 4) & 0x0f
	}
	return v
}

// SetButton changes the state of one button. Pressing a button whose
// nibble is currently selected requests the joypad interrupt; the
// interrupt fires on the press edge only.
func (j *Joypad) SetButton(button Button, pressed bool) {
	mask := uint8(1) << uint(button)

	was := j.nibble()
	if pressed {
		j.buttons |= mask
	} else {
		j.buttons &^= mask
	}

	// a monitored line going low is the interrupt condition
	if was&^j.nibble() != 0 {
		j.irq.Raise(interrupts.Joypad)
	}
}

// ReadRegister services a CPU read of the joypad register. The top two
// bits are unused and read as set.
func (j *Joypad) ReadRegister() uint8 {
	return 0xc0 | j.sel | j.nibble()
}

// WriteRegister services a CPU write of the joypad register. Only the
// two select bits are writable.
func (j *Joypad) WriteRegister(data uint8) {
	j.sel = data & (selectActions | selectDirections)
}
