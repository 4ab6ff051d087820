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

// Package registers implements the register file of the SM83 CPU:
// eight 8-bit registers pairable into 16-bit views (AF, BC, DE, HL),
// the program counter, the stack pointer and the four flag bits.
//
// The register file is owned exclusively by the cpu package and is
// mutated only during instruction execution.
package registers

import "fmt"

// Flags represents the F register. The four flag bits are kept as
// booleans; Value() and Load() convert to and from the packed form.
// The low nibble of the packed form is always zero.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// Value returns the packed F register.
func (f Flags) Value() uint8 {
	var v uint8
	if f.Zero {
		v |= 0x80
	}
	if f.Subtract {
		v |= 0x40
	}
	if f.HalfCarry {
		v |= 0x20
	}
	if f.Carry {
		v |= 0x10
	}
	return v
}

// Load unpacks a value into the F register. The low nibble of the
// value is discarded; those bits do not exist in hardware.
func (f *Flags) Load(v uint8) {
	f.Zero = v&0x80 != 0
	f.Subtract = v&0x40 != 0
	f.HalfCarry = v&0x20 != 0
	f.Carry = v&0x10 != 0
}

func (f Flags) String() string {
	v := []rune("znhc")
	if f.Zero {
		v[0] = 'Z'
	}
	if f.Subtract {
		v[1] = 'N'
	}
	if f.HalfCarry {
		v[2] = 'H'
	}
	if f.Carry {
		v[3] = 'C'
	}
	return string(v)
}

// Registers is the register file.
type Registers struct {
	A uint8
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8
	F Flags

	PC uint16
	SP uint16
}

// NewRegisters returns a register file in the state left behind by the
// boot sequence of the original hardware. Execution begins at the
// cartridge entry point.
func NewRegisters() *Registers {
	r := &Registers{
		A:  0x01,
		B:  0x00,
		C:  0x13,
		D:  0x00,
		E:  0xd8,
		H:  0x01,
		L:  0x4d,
		PC: 0x0100,
		SP: 0xfffe,
	}
	r.F.Load(0xb0)
	return r
}

func (r *Registers) String() string {
	return fmt.Sprintf("AF=%#04x BC=%#04x DE=%#04x HL=%#04x SP=%#04x PC=%#04x %s",
		r.AF(), r.BC(), r.DE(), r.HL(), r.SP, r.PC, r.F)
}

// AF returns the 16-bit view of the A and F registers.
func (r *Registers) AF() uint16 {
	return uint16(r.A)<<8 | uint16(r.F.Value())
}

// SetAF loads the 16-bit view of the A and F registers.
func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.F.Load(uint8(v))
}

// BC returns the 16-bit view of the B and C registers.
func (r *Registers) BC() uint16 {
	return uint16(r.B)<<8 | uint16(r.C)
}

// SetBC loads the 16-bit view of the B and C registers.
func (r *Registers) SetBC(v uint16) {
	r.B = uint8(v >> 8)
	r.C = uint8(v)
}

// DE returns the 16-bit view of the D and E registers.
func (r *Registers) DE() uint16 {
	return uint16(r.D)<<8 | uint16(r.E)
}

// SetDE loads the 16-bit view of the D and E registers.
func (r *Registers) SetDE(v uint16) {
	r.D = uint8(v >> 8)
	r.E = uint8(v)
}

// HL returns the 16-bit view of the H and L registers.
func (r *Registers) HL() uint16 {
	return uint16(r.H)<<8 | uint16(r.L)
}

// SetHL loads the 16-bit view of the H and L registers.
func (r *Registers) SetHL(v uint16) {
	r.H = uint8(v >> 8)
	r.L = uint8(v)
}
