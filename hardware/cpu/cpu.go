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

package cpu

import (
	"fmt"

	"dotmatrix/curated"
	"dotmatrix/hardware/cpu/instructions"
	"dotmatrix/hardware/cpu/registers"
	"dotmatrix/hardware/interrupts"
)

// Memory is the interface the CPU requires of the memory bus. Every
// access is total; inaccessible regions return a sentinel value rather
// than an error.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// IllegalOpcode is a fatal error. An opcode with no decode-table entry
// signals either an unimplemented instruction or a bus defect; it is
// never silently skipped.
const IllegalOpcode = "cpu: illegal opcode (%#02x) at %#04x"

// InterruptCycles is the cost of dispatching an interrupt in place of
// an instruction fetch.
const InterruptCycles = 20

// HaltCycles is the cost of one idle step while the CPU is halted.
const HaltCycles = 4

// Result summarises the most recent call to ExecuteInstruction().
type Result struct {
	// address the instruction was fetched from
	Address uint16

	// the instruction definition. not valid when Interrupt is true
	Defn instructions.Definition

	// an interrupt was dispatched in place of a fetch
	Interrupt bool

	// elapsed cycles. always a multiple of 4
	Cycles int
}

func (r Result) String() string {
	if r.Interrupt {
		return fmt.Sprintf("%#04x interrupt dispatch (%d cycles)", r.Address, r.Cycles)
	}
	return fmt.Sprintf("%#04x %s (%d cycles)", r.Address, r.Defn.Mnemonic, r.Cycles)
}

// CPU implements the SM83 core of the handheld. Register logic is
// implemented by the registers sub-package; the instruction set is
// defined in the instructions sub-package.
type CPU struct {
	Regs *registers.Registers

	mem Memory
	irq *interrupts.Interrupts

	// the shallow halt state. the CPU stops fetching but resumes on
	// any requested and enabled interrupt, even while the master
	// enable flag is off
	Halted bool

	// the enable-interrupts instruction sets the master enable flag
	// only after the following instruction completes. this is the
	// explicit sub-state that models the delay
	enablePending bool

	// last result. the zero value indicates the CPU has not yet
	// executed anything since reset
	LastResult Result
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem Memory, irq *interrupts.Interrupts) *CPU {
	return &CPU{
		Regs: registers.NewRegisters(),
		mem:  mem,
		irq:  irq,
	}
}

func (mc *CPU) String() string {
	return mc.Regs.String()
}

// Reset reinitialises the CPU to the post-boot state.
func (mc *CPU) Reset() {
	mc.Regs = registers.NewRegisters()
	mc.Halted = false
	mc.enablePending = false
	mc.LastResult = Result{}
}

// Plumb a new Memory implementation into the CPU.
func (mc *CPU) Plumb(mem Memory) {
	mc.mem = mem
}

func (mc *CPU) fetch() uint8 {
	v := mc.mem.Read(mc.Regs.PC)
	mc.Regs.PC++
	return v
}

func (mc *CPU) fetch16() uint16 {
	lo := mc.fetch()
	hi := mc.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

func (mc *CPU) push16(v uint16) {
	mc.Regs.SP--
	mc.mem.Write(mc.Regs.SP, uint8(v>>8))
	mc.Regs.SP--
	mc.mem.Write(mc.Regs.SP, uint8(v))
}

func (mc *CPU) pop16() uint16 {
	lo := mc.mem.Read(mc.Regs.SP)
	mc.Regs.SP++
	hi := mc.mem.Read(mc.Regs.SP)
	mc.Regs.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// operand reads the 8-bit operand with the given encoding index. index
// six is the memory operand addressed by HL.
func (mc *CPU) operand(idx uint8) uint8 {
	switch idx {
	case 0:
		return mc.Regs.B
	case 1:
		return mc.Regs.C
	case 2:
		return mc.Regs.D
	case 3:
		return mc.Regs.E
	case 4:
		return mc.Regs.H
	case 5:
		return mc.Regs.L
	case 6:
		return mc.mem.Read(mc.Regs.HL())
	}
	return mc.Regs.A
}

func (mc *CPU) setOperand(idx uint8, v uint8) {
	switch idx {
	case 0:
		mc.Regs.B = v
	case 1:
		mc.Regs.C = v
	case 2:
		mc.Regs.D = v
	case 3:
		mc.Regs.E = v
	case 4:
		mc.Regs.H = v
	case 5:
		mc.Regs.L = v
	case 6:
		mc.mem.Write(mc.Regs.HL(), v)
	default:
		mc.Regs.A = v
	}
}

// ExecuteInstruction advances the CPU by one step: either the dispatch
// of a pending interrupt or the fetch/decode/execute of exactly one
// instruction. It returns the elapsed cycle count, always a multiple
// of 4. Conditional flow instructions cost more when taken.
func (mc *CPU) ExecuteInstruction() (int, error) {
	// interrupt dispatch takes the place of a fetch when the master
	// enable flag is on and an interrupt is both requested and enabled
	if i, ok := mc.irq.Pending(); ok && mc.irq.MasterEnable {
		mc.Halted = false
		mc.irq.MasterEnable = false
		mc.irq.Acknowledge(i)
		mc.LastResult = Result{Address: mc.Regs.PC, Interrupt: true, Cycles: InterruptCycles}
		mc.push16(mc.Regs.PC)
		mc.Regs.PC = i.Vector()
		return InterruptCycles, nil
	}

	if mc.Halted {
		// the shallow halt resumes on any requested and enabled
		// interrupt even while the master enable flag is off. in that
		// case no dispatch occurs and execution simply continues
		if _, ok := mc.irq.Pending(); ok {
			mc.Halted = false
		} else {
			return HaltCycles, nil
		}
	}

	// the enable-interrupts delay: a pending enable from the previous
	// instruction takes effect once this instruction completes. the
	// latch is left in place over the execute call so that a DI in
	// this slot can still cancel it
	enableAfter := mc.enablePending

	addr := mc.Regs.PC
	opcode := mc.fetch()

	defn, ok := instructions.Primary(opcode)
	if !ok {
		return 0, curated.Errorf(IllegalOpcode, opcode, addr)
	}

	var cycles int
	if opcode == 0xcb {
		ext := mc.fetch()
		cycles = mc.executeExtended(ext)
		defn = instructions.Extended(ext)
	} else {
		cycles = mc.execute(opcode, defn)
	}

	if enableAfter && mc.enablePending {
		mc.irq.MasterEnable = true
		mc.enablePending = false
	}

	mc.LastResult = Result{Address: addr, Defn: defn, Cycles: cycles}

	return cycles, nil
}

// execute performs the effect of a primary opcode, returning its cycle
// cost. The cost is taken from the definition; conditional flow
// instructions return the taken cost when the condition passes.
func (mc *CPU) execute(opcode uint8, defn instructions.Definition) int {
	r := mc.Regs

	// the two large block-structured parts of the opcode space first

	// 0x40 to 0x7f: LD r,r' (0x76 is HALT)
	if opcode >= 0x40 && opcode <= 0x7f {
		if opcode == 0x76 {
			mc.Halted = true
			return defn.Cycles
		}
		mc.setOperand((opcode>>3)&0x07, mc.operand(opcode&0x07))
		return defn.Cycles
	}

	// 0x80 to 0xbf: ALU operations on the accumulator
	if opcode >= 0x80 && opcode <= 0xbf {
		mc.alu((opcode>>3)&0x07, mc.operand(opcode&0x07))
		return defn.Cycles
	}

	switch opcode {
	case 0x00: // NOP

	case 0x01:
		r.SetBC(mc.fetch16())
	case 0x02:
		mc.mem.Write(r.BC(), r.A)
	case 0x03:
		r.SetBC(r.BC() + 1)
	case 0x04:
		r.B = mc.inc8(r.B)
	case 0x05:
		r.B = mc.dec8(r.B)
	case 0x06:
		r.B = mc.fetch()
	case 0x07: // RLCA
		r.A = mc.rlc(r.A)
		r.F.Zero = false
	case 0x08: // LD (a16),SP
		a := mc.fetch16()
		mc.mem.Write(a, uint8(r.SP))
		mc.mem.Write(a+1, uint8(r.SP>>8))
	case 0x09:
		mc.addHL(r.BC())
	case 0x0a:
		r.A = mc.mem.Read(r.BC())
	case 0x0b:
		r.SetBC(r.BC() - 1)
	case 0x0c:
		r.C = mc.inc8(r.C)
	case 0x0d:
		r.C = mc.dec8(r.C)
	case 0x0e:
		r.C = mc.fetch()
	case 0x0f: // RRCA
		r.A = mc.rrc(r.A)
		r.F.Zero = false

	case 0x10: // STOP. handled minimally: consume the padding byte and
		// behave as a halt
		mc.fetch()
		mc.Halted = true
	case 0x11:
		r.SetDE(mc.fetch16())
	case 0x12:
		mc.mem.Write(r.DE(), r.A)
	case 0x13:
		r.SetDE(r.DE() + 1)
	case 0x14:
		r.D = mc.inc8(r.D)
	case 0x15:
		r.D = mc.dec8(r.D)
	case 0x16:
		r.D = mc.fetch()
	case 0x17: // RLA
		r.A = mc.rl(r.A)
		r.F.Zero = false
	case 0x18: // JR r8
		mc.jumpRelative(mc.fetch())
	case 0x19:
		mc.addHL(r.DE())
	case 0x1a:
		r.A = mc.mem.Read(r.DE())
	case 0x1b:
		r.SetDE(r.DE() - 1)
	case 0x1c:
		r.E = mc.inc8(r.E)
	case 0x1d:
		r.E = mc.dec8(r.E)
	case 0x1e:
		r.E = mc.fetch()
	case 0x1f: // RRA
		r.A = mc.rr(r.A)
		r.F.Zero = false

	case 0x20:
		return mc.branchRelative(!r.F.Zero, defn)
	case 0x21:
		r.SetHL(mc.fetch16())
	case 0x22:
		mc.mem.Write(r.HL(), r.A)
		r.SetHL(r.HL() + 1)
	case 0x23:
		r.SetHL(r.HL() + 1)
	case 0x24:
		r.H = mc.inc8(r.H)
	case 0x25:
		r.H = mc.dec8(r.H)
	case 0x26:
		r.H = mc.fetch()
	case 0x27:
		mc.daa()
	case 0x28:
		return mc.branchRelative(r.F.Zero, defn)
	case 0x29:
		mc.addHL(r.HL())
	case 0x2a:
		r.A = mc.mem.Read(r.HL())
		r.SetHL(r.HL() + 1)
	case 0x2b:
		r.SetHL(r.HL() - 1)
	case 0x2c:
		r.L = mc.inc8(r.L)
	case 0x2d:
		r.L = mc.dec8(r.L)
	case 0x2e:
		r.L = mc.fetch()
	case 0x2f: // CPL
		r.A = ^r.A
		r.F.Subtract = true
		r.F.HalfCarry = true

	case 0x30:
		return mc.branchRelative(!r.F.Carry, defn)
	case 0x31:
		r.SP = mc.fetch16()
	case 0x32:
		mc.mem.Write(r.HL(), r.A)
		r.SetHL(r.HL() - 1)
	case 0x33:
		r.SP++
	case 0x34:
		mc.mem.Write(r.HL(), mc.inc8(mc.mem.Read(r.HL())))
	case 0x35:
		mc.mem.Write(r.HL(), mc.dec8(mc.mem.Read(r.HL())))
	case 0x36:
		mc.mem.Write(r.HL(), mc.fetch())
	case 0x37: // SCF
		r.F.Subtract = false
		r.F.HalfCarry = false
		r.F.Carry = true
	case 0x38:
		return mc.branchRelative(r.F.Carry, defn)
	case 0x39:
		mc.addHL(r.SP)
	case 0x3a:
		r.A = mc.mem.Read(r.HL())
		r.SetHL(r.HL() - 1)
	case 0x3b:
		r.SP--
	case 0x3c:
		r.A = mc.inc8(r.A)
	case 0x3d:
		r.A = mc.dec8(r.A)
	case 0x3e:
		r.A = mc.fetch()
	case 0x3f: // CCF
		r.F.Subtract = false
		r.F.HalfCarry = false
		r.F.Carry = !r.F.Carry

	case 0xc0:
		return mc.branchReturn(!r.F.Zero, defn)
	case 0xc1:
		r.SetBC(mc.pop16())
	case 0xc2:
		return mc.branchAbsolute(!r.F.Zero, defn)
	case 0xc3:
		r.PC = mc.fetch16()
	case 0xc4:
		return mc.branchCall(!r.F.Zero, defn)
	case 0xc5:
		mc.push16(r.BC())
	case 0xc6:
		mc.alu(aluADD, mc.fetch())
	case 0xc7:
		mc.rst(0x00)
	case 0xc8:
		return mc.branchReturn(r.F.Zero, defn)
	case 0xc9:
		r.PC = mc.pop16()
	case 0xca:
		return mc.branchAbsolute(r.F.Zero, defn)
	case 0xcc:
		return mc.branchCall(r.F.Zero, defn)
	case 0xcd: // CALL a16
		a := mc.fetch16()
		mc.push16(r.PC)
		r.PC = a
	case 0xce:
		mc.alu(aluADC, mc.fetch())
	case 0xcf:
		mc.rst(0x08)

	case 0xd0:
		return mc.branchReturn(!r.F.Carry, defn)
	case 0xd1:
		r.SetDE(mc.pop16())
	case 0xd2:
		return mc.branchAbsolute(!r.F.Carry, defn)
	case 0xd4:
		return mc.branchCall(!r.F.Carry, defn)
	case 0xd5:
		mc.push16(r.DE())
	case 0xd6:
		mc.alu(aluSUB, mc.fetch())
	case 0xd7:
		mc.rst(0x10)
	case 0xd8:
		return mc.branchReturn(r.F.Carry, defn)
	case 0xd9: // RETI. unlike EI the enable takes effect immediately
		r.PC = mc.pop16()
		mc.irq.MasterEnable = true
	case 0xda:
		return mc.branchAbsolute(r.F.Carry, defn)
	case 0xdc:
		return mc.branchCall(r.F.Carry, defn)
	case 0xde:
		mc.alu(aluSBC, mc.fetch())
	case 0xdf:
		mc.rst(0x18)

	case 0xe0:
		mc.mem.Write(0xff00+uint16(mc.fetch()), r.A)
	case 0xe1:
		r.SetHL(mc.pop16())
	case 0xe2:
		mc.mem.Write(0xff00+uint16(r.C), r.A)
	case 0xe5:
		mc.push16(r.HL())
	case 0xe6:
		mc.alu(aluAND, mc.fetch())
	case 0xe7:
		mc.rst(0x20)
	case 0xe8: // ADD SP,r8
		r.SP = mc.addSigned(r.SP, mc.fetch())
	case 0xe9:
		r.PC = r.HL()
	case 0xea:
		mc.mem.Write(mc.fetch16(), r.A)
	case 0xee:
		mc.alu(aluXOR, mc.fetch())
	case 0xef:
		mc.rst(0x28)

	case 0xf0:
		r.A = mc.mem.Read(0xff00 + uint16(mc.fetch()))
	case 0xf1:
		r.SetAF(mc.pop16())
	case 0xf2:
		r.A = mc.mem.Read(0xff00 + uint16(r.C))
	case 0xf3: // DI takes effect immediately and cancels a pending
		// enable
		mc.irq.MasterEnable = false
		mc.enablePending = false
	case 0xf5:
		mc.push16(r.AF())
	case 0xf6:
		mc.alu(aluOR, mc.fetch())
	case 0xf7:
		mc.rst(0x30)
	case 0xf8: // LD HL,SP+r8
		r.SetHL(mc.addSigned(r.SP, mc.fetch()))
	case 0xf9:
		r.SP = r.HL()
	case 0xfa:
		r.A = mc.mem.Read(mc.fetch16())
	case 0xfb: // EI. the master enable flag is set only after the
		// following instruction completes
		mc.enablePending = true
	case 0xfe:
		mc.alu(aluCP, mc.fetch())
	case 0xff:
		mc.rst(0x38)
	}

	return defn.Cycles
}

// executeExtended performs the effect of an opcode reached through the
// 0xcb prefix. The extension set is entirely regular: two bits of
// operation, three bits of sub-operation, three bits of operand.
func (mc *CPU) executeExtended(opcode uint8) int {
	defn := instructions.Extended(opcode)
	idx := opcode & 0x07
	bit := (opcode >> 3) & 0x07

	switch opcode >> 6 {
	case 0: // rotates, shifts and swap
		v := mc.operand(idx)
		switch bit {
		case 0:
			v = mc.rlc(v)
		case 1:
			v = mc.rrc(v)
		case 2:
			v = mc.rl(v)
		case 3:
			v = mc.rr(v)
		case 4:
			v = mc.sla(v)
		case 5:
			v = mc.sra(v)
		case 6:
			v = mc.swap(v)
		case 7:
			v = mc.srl(v)
		}
		mc.setOperand(idx, v)

	case 1: // BIT b,r
		mc.Regs.F.Zero = mc.operand(idx)&(1<<bit) == 0
		mc.Regs.F.Subtract = false
		mc.Regs.F.HalfCarry = true

	case 2: // RES b,r
		mc.setOperand(idx, mc.operand(idx)&^(1<<bit))

	case 3: // SET b,r
		mc.setOperand(idx, mc.operand(idx)|(1<<bit))
	}

	return defn.Cycles
}

// the eight ALU operations in opcode-encoding order.
const (
	aluADD = iota
	aluADC
	aluSUB
	aluSBC
	aluAND
	aluXOR
	aluOR
	aluCP
)

func (mc *CPU) alu(op uint8, v uint8) {
	r := mc.Regs
	switch op {
	case aluADD:
		mc.add(v, false)
	case aluADC:
		mc.add(v, r.F.Carry)
	case aluSUB:
		r.A = mc.sub(v, false)
	case aluSBC:
		r.A = mc.sub(v, r.F.Carry)
	case aluAND:
		r.A &= v
		r.F.Zero = r.A == 0
		r.F.Subtract = false
		r.F.HalfCarry = true
		r.F.Carry = false
	case aluXOR:
		r.A ^= v
		r.F.Zero = r.A == 0
		r.F.Subtract = false
		r.F.HalfCarry = false
		r.F.Carry = false
	case aluOR:
		r.A |= v
		r.F.Zero = r.A == 0
		r.F.Subtract = false
		r.F.HalfCarry = false
		r.F.Carry = false
	case aluCP:
		// compare is a subtraction with the result discarded
		mc.sub(v, false)
	}
}

// add to the accumulator. the half-carry flag records the carry out of
// the low nibble.
func (mc *CPU) add(v uint8, carry bool) {
	r := mc.Regs
	c := uint16(0)
	if carry {
		c = 1
	}
	sum := uint16(r.A) + uint16(v) + c
	r.F.HalfCarry = (r.A&0x0f)+(v&0x0f)+uint8(c) > 0x0f
	r.F.Carry = sum > 0xff
	r.F.Subtract = false
	r.A = uint8(sum)
	r.F.Zero = r.A == 0
}

// subtract from the accumulator, returning the result without storing
// it. SUB and SBC store the result; CP discards it.
func (mc *CPU) sub(v uint8, carry bool) uint8 {
	r := mc.Regs
	c := uint16(0)
	if carry {
		c = 1
	}
	diff := uint16(r.A) - uint16(v) - c
	r.F.HalfCarry = uint16(r.A&0x0f) < uint16(v&0x0f)+c
	r.F.Carry = uint16(r.A) < uint16(v)+c
	r.F.Subtract = true
	r.F.Zero = uint8(diff) == 0
	return uint8(diff)
}

// the increment/decrement instructions affect every flag except carry.
func (mc *CPU) inc8(v uint8) uint8 {
	v++
	mc.Regs.F.Zero = v == 0
	mc.Regs.F.Subtract = false
	mc.Regs.F.HalfCarry = v&0x0f == 0
	return v
}

func (mc *CPU) dec8(v uint8) uint8 {
	v--
	mc.Regs.F.Zero = v == 0
	mc.Regs.F.Subtract = true
	mc.Regs.F.HalfCarry = v&0x0f == 0x0f
	return v
}

// the 16-bit add into HL. the half-carry flag records the carry out of
// bit 11; the zero flag is untouched.
func (mc *CPU) addHL(v uint16) {
	r := mc.Regs
	hl := r.HL()
	r.F.HalfCarry = (hl&0x0fff)+(v&0x0fff) > 0x0fff
	r.F.Carry = uint32(hl)+uint32(v) > 0xffff
	r.F.Subtract = false
	r.SetHL(hl + v)
}

// addSigned adds a signed 8-bit displacement to a 16-bit value. used
// by ADD SP,r8 and LD HL,SP+r8. the half-carry and carry flags are
// taken from the unsigned addition of the low byte, a quirk of the
// hardware ALU.
func (mc *CPU) addSigned(v uint16, d uint8) uint16 {
	r := mc.Regs
	r.F.Zero = false
	r.F.Subtract = false
	r.F.HalfCarry = (v&0x000f)+uint16(d&0x0f) > 0x000f
	r.F.Carry = (v&0x00ff)+uint16(d) > 0x00ff
	return v + uint16(int8(d))
}

// rotates and shifts. the "circular" forms (rlc, rrc) rotate the
// shifted-out bit straight back in; the "through carry" forms (rl, rr)
// rotate it through the carry flag.
func (mc *CPU) rotFlags(v uint8, carry bool) uint8 {
	mc.Regs.F.Zero = v == 0
	mc.Regs.F.Subtract = false
	mc.Regs.F.HalfCarry = false
	mc.Regs.F.Carry = carry
	return v
}

func (mc *CPU) rlc(v uint8) uint8 {
	return mc.rotFlags(v<<1|v>>7, v&0x80 != 0)
}

func (mc *CPU) rrc(v uint8) uint8 {
	return mc.rotFlags(v>>1|v<<7, v&0x01 != 0)
}

func (mc *CPU) rl(v uint8) uint8 {
	c := uint8(0)
	if mc.Regs.F.Carry {
		c = 1
	}
	return mc.rotFlags(v<<1|c, v&0x80 != 0)
}

func (mc *CPU) rr(v uint8) uint8 {
	c := uint8(0)
	if mc.Regs.F.Carry {
		c = 0x80
	}
	return mc.rotFlags(v>>1|c, v&0x01 != 0)
}

func (mc *CPU) sla(v uint8) uint8 {
	return mc.rotFlags(v<<1, v&0x80 != 0)
}

// sra preserves the sign bit; srl does not.
func (mc *CPU) sra(v uint8) uint8 {
	return mc.rotFlags(v>>1|v&0x80, v&0x01 != 0)
}

func (mc *CPU) srl(v uint8) uint8 {
	return mc.rotFlags(v>>1, v&0x01 != 0)
}

func (mc *CPU) swap(v uint8) uint8 {
	return mc.rotFlags(v<<4|v>>4, false)
}

// daa adjusts the accumulator after a BCD addition or subtraction.
func (mc *CPU) daa() {
	r := mc.Regs
	a := r.A
	adjust := uint8(0)
	carry := r.F.Carry

	if r.F.HalfCarry || (!r.F.Subtract && a&0x0f > 0x09) {
		adjust |= 0x06
	}
	if carry || (!r.F.Subtract && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if r.F.Subtract {
		a -= adjust
	} else {
		a += adjust
	}

	r.A = a
	r.F.Zero = a == 0
	r.F.HalfCarry = false
	r.F.Carry = carry
}

func (mc *CPU) jumpRelative(d uint8) {
	mc.Regs.PC += uint16(int8(d))
}

func (mc *CPU) rst(vector uint16) {
	mc.push16(mc.Regs.PC)
	mc.Regs.PC = vector
}

// the conditional flow instructions. the operand is always fetched
// (advancing the PC past it) regardless of the condition; the taken
// cycle cost from the definition is returned only when the condition
// passes.
func (mc *CPU) branchRelative(cond bool, defn instructions.Definition) int {
	d := mc.fetch()
	if !cond {
		return defn.Cycles
	}
	mc.jumpRelative(d)
	return defn.CyclesTaken
}

func (mc *CPU) branchAbsolute(cond bool, defn instructions.Definition) int {
	a := mc.fetch16()
	if !cond {
		return defn.Cycles
	}
	mc.Regs.PC = a
	return defn.CyclesTaken
}

func (mc *CPU) branchCall(cond bool, defn instructions.Definition) int {
	a := mc.fetch16()
	if !cond {
		return defn.Cycles
	}
	mc.push16(mc.Regs.PC)
	mc.Regs.PC = a
	return defn.CyclesTaken
}

func (mc *CPU) branchReturn(cond bool, defn instructions.Definition) int {
	if !cond {
		return defn.Cycles
	}
	mc.Regs.PC = mc.pop16()
	return defn.CyclesTaken
}
