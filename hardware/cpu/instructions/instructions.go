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

// Package instructions defines the instruction set of the SM83 CPU as
// a flat, data-driven table: one Definition per opcode, carrying the
// byte length and cycle cost alongside the mnemonic. The cpu package
// keys its execution switch on the opcode byte and takes cycle counts
// from here, which keeps each opcode independently testable.
//
// There are two tables. The primary table covers the 256 one-byte
// opcodes; the extended table covers the 256 opcodes reached through
// the 0xcb prefix byte. Eleven primary opcodes have no definition at
// all; executing one of them is a fatal error, never a skip.
package instructions

import "fmt"

// Definition defines one instruction. Cycle counts are in clock cycles
// (four clock cycles to one machine cycle, so always a multiple of 4).
type Definition struct {
	OpCode   uint8
	Mnemonic string

	// total byte length including the opcode itself (and the 0xcb
	// prefix for extended opcodes)
	Bytes int

	// Cycles is the cost when the instruction's condition, if any,
	// fails. CyclesTaken is the cost when it passes; zero for
	// unconditional instructions
	Cycles      int
	CyclesTaken int

	// Defined is false for the eleven holes in the primary table
	Defined bool
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if !defn.Defined {
		return "undecoded instruction"
	}
	if defn.CyclesTaken > 0 {
		return fmt.Sprintf("%02x %s +%dbytes (%d/%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles, defn.CyclesTaken)
	}
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles)
}

// Primary returns the definition for a one-byte opcode. The second
// return value is false if the opcode has no definition.
func Primary(opcode uint8) (Definition, bool) {
	defn := primary[opcode]
	return defn, defn.Defined
}

// Extended returns the definition for an opcode reached through the
// 0xcb prefix. Every extended opcode is defined.
func Extended(opcode uint8) Definition {
	return extended[opcode]
}

func defn(opcode uint8, mnemonic string, bytes int, cycles int) Definition {
	return Definition{OpCode: opcode, Mnemonic: mnemonic, Bytes: bytes, Cycles: cycles, Defined: true}
}

func cond(opcode uint8, mnemonic string, bytes int, cycles int, taken int) Definition {
	return Definition{OpCode: opcode, Mnemonic: mnemonic, Bytes: bytes, Cycles: cycles, CyclesTaken: taken, Defined: true}
}

// the names of the eight register operands in opcode-encoding order.
// index 6 is the memory operand addressed by HL
var regOperand = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// the primary table is filled in by init(). the block-structured parts
// of the opcode space (the 0x40-0xbf loads and ALU operations) are
// generated from the encoding; the irregular parts are listed
// explicitly
var primary [256]Definition

// the extended (0xcb prefixed) opcode space is entirely regular and is
// generated from the encoding
var extended [256]Definition

func init() {
	for _, d := range primaryIrregular {
		primary[d.OpCode] = d
	}

	// 0x40 to 0x7f: LD r,r'. opcode 0x76 is the hole where LD
	// (HL),(HL) would be; it is the HALT instruction instead
	for op := 0x40; op <= 0x7f; op++ {
		if op == 0x76 {
			primary[op] = defn(0x76, "HALT", 1, 4)
			continue
		}
		dst := regOperand[(op>>3)&0x07]
		src := regOperand[op&0x07]
		c := 4
		if dst == "(HL)" || src == "(HL)" {
			c = 8
		}
		primary[op] = defn(uint8(op), fmt.Sprintf("LD %s,%s", dst, src), 1, c)
	}

	// 0x80 to 0xbf: ALU operations on A
	alu := [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
	for op := 0x80; op <= 0xbf; op++ {
		src := regOperand[op&0x07]
		c := 4
		if src == "(HL)" {
			c = 8
		}
		primary[op] = defn(uint8(op), alu[(op>>3)&0x07]+src, 1, c)
	}

	// extended opcode space: rotates/shifts/swap, then BIT, RES, SET
	rot := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
	for op := 0; op <= 0xff; op++ {
		src := regOperand[op&0x07]
		var mnemonic string
		c := 8
		switch op >> 6 {
		case 0:
			mnemonic = fmt.Sprintf("%s %s", rot[(op>>3)&0x07], src)
			if src == "(HL)" {
				c = 16
			}
		case 1:
			mnemonic = fmt.Sprintf("BIT %d,%s", (op>>3)&0x07, src)
			if src == "(HL)" {
				c = 12
			}
		case 2:
			mnemonic = fmt.Sprintf("RES %d,%s", (op>>3)&0x07, src)
			if src == "(HL)" {
				c = 16
			}
		case 3:
			mnemonic = fmt.Sprintf("SET %d,%s", (op>>3)&0x07, src)
			if src == "(HL)" {
				c = 16
			}
		}
		extended[op] = defn(uint8(op), mnemonic, 2, c)
	}
}

var primaryIrregular = []Definition{
	defn(0x00, "NOP", 1, 4),
	defn(0x01, "LD BC,d16", 3, 12),
	defn(0x02, "LD (BC),A", 1, 8),
	defn(0x03, "INC BC", 1, 8),
	defn(0x04, "INC B", 1, 4),
	defn(0x05, "DEC B", 1, 4),
	defn(0x06, "LD B,d8", 2, 8),
	defn(0x07, "RLCA", 1, 4),
	defn(0x08, "LD (a16),SP", 3, 20),
	defn(0x09, "ADD HL,BC", 1, 8),
	defn(0x0a, "LD A,(BC)", 1, 8),
	defn(0x0b, "DEC BC", 1, 8),
	defn(0x0c, "INC C", 1, 4),
	defn(0x0d, "DEC C", 1, 4),
	defn(0x0e, "LD C,d8", 2, 8),
	defn(0x0f, "RRCA", 1, 4),
	defn(0x10, "STOP", 2, 4),
	defn(0x11, "LD DE,d16", 3, 12),
	defn(0x12, "LD (DE),A", 1, 8),
	defn(0x13, "INC DE", 1, 8),
	defn(0x14, "INC D", 1, 4),
	defn(0x15, "DEC D", 1, 4),
	defn(0x16, "LD D,d8", 2, 8),
	defn(0x17, "RLA", 1, 4),
	defn(0x18, "JR r8", 2, 12),
	defn(0x19, "ADD HL,DE", 1, 8),
	defn(0x1a, "LD A,(DE)", 1, 8),
	defn(0x1b, "DEC DE", 1, 8),
	defn(0x1c, "INC E", 1, 4),
	defn(0x1d, "DEC E", 1, 4),
	defn(0x1e, "LD E,d8", 2, 8),
	defn(0x1f, "RRA", 1, 4),
	cond(0x20, "JR NZ,r8", 2, 8, 12),
	defn(0x21, "LD HL,d16", 3, 12),
	defn(0x22, "LD (HL+),A", 1, 8),
	defn(0x23, "INC HL", 1, 8),
	defn(0x24, "INC H", 1, 4),
	defn(0x25, "DEC H", 1, 4),
	defn(0x26, "LD H,d8", 2, 8),
	defn(0x27, "DAA", 1, 4),
	cond(0x28, "JR Z,r8", 2, 8, 12),
	defn(0x29, "ADD HL,HL", 1, 8),
	defn(0x2a, "LD A,(HL+)", 1, 8),
	defn(0x2b, "DEC HL", 1, 8),
	defn(0x2c, "INC L", 1, 4),
	defn(0x2d, "DEC L", 1, 4),
	defn(0x2e, "LD L,d8", 2, 8),
	defn(0x2f, "CPL", 1, 4),
	cond(0x30, "JR NC,r8", 2, 8, 12),
	defn(0x31, "LD SP,d16", 3, 12),
	defn(0x32, "LD (HL-),A", 1, 8),
	defn(0x33, "INC SP", 1, 8),
	defn(0x34, "INC (HL)", 1, 12),
	defn(0x35, "DEC (HL)", 1, 12),
	defn(0x36, "LD (HL),d8", 2, 12),
	defn(0x37, "SCF", 1, 4),
	cond(0x38, "JR C,r8", 2, 8, 12),
	defn(0x39, "ADD HL,SP", 1, 8),
	defn(0x3a, "LD A,(HL-)", 1, 8),
	defn(0x3b, "DEC SP", 1, 8),
	defn(0x3c, "INC A", 1, 4),
	defn(0x3d, "DEC A", 1, 4),
	defn(0x3e, "LD A,d8", 2, 8),
	defn(0x3f, "CCF", 1, 4),
	cond(0xc0, "RET NZ", 1, 8, 20),
	defn(0xc1, "POP BC", 1, 12),
	cond(0xc2, "JP NZ,a16", 3, 12, 16),
	defn(0xc3, "JP a16", 3, 16),
	cond(0xc4, "CALL NZ,a16", 3, 12, 24),
	defn(0xc5, "PUSH BC", 1, 16),
	defn(0xc6, "ADD A,d8", 2, 8),
	defn(0xc7, "RST 00H", 1, 16),
	cond(0xc8, "RET Z", 1, 8, 20),
	defn(0xc9, "RET", 1, 16),
	cond(0xca, "JP Z,a16", 3, 12, 16),
	defn(0xcb, "PREFIX CB", 1, 4),
	cond(0xcc, "CALL Z,a16", 3, 12, 24),
	defn(0xcd, "CALL a16", 3, 24),
	defn(0xce, "ADC A,d8", 2, 8),
	defn(0xcf, "RST 08H", 1, 16),
	cond(0xd0, "RET NC", 1, 8, 20),
	defn(0xd1, "POP DE", 1, 12),
	cond(0xd2, "JP NC,a16", 3, 12, 16),
	cond(0xd4, "CALL NC,a16", 3, 12, 24),
	defn(0xd5, "PUSH DE", 1, 16),
	defn(0xd6, "SUB d8", 2, 8),
	defn(0xd7, "RST 10H", 1, 16),
	cond(0xd8, "RET C", 1, 8, 20),
	defn(0xd9, "RETI", 1, 16),
	cond(0xda, "JP C,a16", 3, 12, 16),
	cond(0xdc, "CALL C,a16", 3, 12, 24),
	defn(0xde, "SBC A,d8", 2, 8),
	defn(0xdf, "RST 18H", 1, 16),
	defn(0xe0, "LDH (a8),A", 2, 12),
	defn(0xe1, "POP HL", 1, 12),
	defn(0xe2, "LD (C),A", 1, 8),
	defn(0xe5, "PUSH HL", 1, 16),
	defn(0xe6, "AND d8", 2, 8),
	defn(0xe7, "RST 20H", 1, 16),
	defn(0xe8, "ADD SP,r8", 2, 16),
	defn(0xe9, "JP (HL)", 1, 4),
	defn(0xea, "LD (a16),A", 3, 16),
	defn(0xee, "XOR d8", 2, 8),
	defn(0xef, "RST 28H", 1, 16),
	defn(0xf0, "LDH A,(a8)", 2, 12),
	defn(0xf1, "POP AF", 1, 12),
	defn(0xf2, "LD A,(C)", 1, 8),
	defn(0xf3, "DI", 1, 4),
	defn(0xf5, "PUSH AF", 1, 16),
	defn(0xf6, "OR d8", 2, 8),
	defn(0xf7, "RST 30H", 1, 16),
	defn(0xf8, "LD HL,SP+r8", 2, 12),
	defn(0xf9, "LD SP,HL", 1, 8),
	defn(0xfa, "LD A,(a16)", 3, 16),
	defn(0xfb, "EI", 1, 4),
	defn(0xfe, "CP d8", 2, 8),
	defn(0xff, "RST 38H", 1, 16),
}
