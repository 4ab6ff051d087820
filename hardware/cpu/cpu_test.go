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

package cpu_test

import (
	"testing"

	"dotmatrix/curated"
	"dotmatrix/hardware/cpu"
	"dotmatrix/hardware/interrupts"
	"dotmatrix/test"
)

// testMem is a flat 64KB backing store. the real console routes
// through the memory package but the CPU only requires the Memory
// interface.
type testMem struct {
	data [0x10000]uint8
}

func (m *testMem) Read(address uint16) uint8 {
	return m.data[address]
}

func (m *testMem) Write(address uint16, data uint8) {
	m.data[address] = data
}

func newTestCPU(program ...uint8) (*cpu.CPU, *testMem, *interrupts.Interrupts) {
	mem := &testMem{}
	irq := interrupts.NewInterrupts()
	mc := cpu.NewCPU(mem, irq)
	copy(mem.data[mc.Regs.PC:], program)
	return mc, mem, irq
}

func step(t *testing.T, mc *cpu.CPU) int {
	t.Helper()
	cycles, err := mc.ExecuteInstruction()
	test.ExpectedSuccess(t, err)
	return cycles
}

func TestNOP(t *testing.T) {
	mc, _, _ := newTestCPU(0x00)
	before := *mc.Regs

	cycles := step(t, mc)

	test.Equate(t, cycles, 4)
	test.Equate(t, mc.Regs.PC, before.PC+1)
	test.Equate(t, mc.Regs.AF(), before.AF())
	test.Equate(t, mc.Regs.BC(), before.BC())
	test.Equate(t, mc.Regs.DE(), before.DE())
	test.Equate(t, mc.Regs.HL(), before.HL())
	test.Equate(t, mc.Regs.SP, before.SP)
}

func TestAddFlags(t *testing.T) {
	// 0x3c + 0xc4 wraps to zero: zero, carry and half-carry all set
	mc, _, _ := newTestCPU(0x80) // ADD A,B
	mc.Regs.A = 0x3c
	mc.Regs.B = 0xc4
	step(t, mc)
	test.Equate(t, mc.Regs.A, 0x00)
	test.Equate(t, mc.Regs.F.Zero, true)
	test.Equate(t, mc.Regs.F.Carry, true)
	test.Equate(t, mc.Regs.F.HalfCarry, true)
	test.Equate(t, mc.Regs.F.Subtract, false)

	// 0x0f + 0x01 carries across the nibble boundary only
	mc, _, _ = newTestCPU(0x80)
	mc.Regs.A = 0x0f
	mc.Regs.B = 0x01
	step(t, mc)
	test.Equate(t, mc.Regs.A, 0x10)
	test.Equate(t, mc.Regs.F.Zero, false)
	test.Equate(t, mc.Regs.F.Carry, false)
	test.Equate(t, mc.Regs.F.HalfCarry, true)
}

func TestSubFlags(t *testing.T) {
	mc, _, _ := newTestCPU(0x90) // SUB B
	mc.Regs.A = 0x10
	mc.Regs.B = 0x01
	step(t, mc)
	test.Equate(t, mc.Regs.A, 0x0f)
	test.Equate(t, mc.Regs.F.Subtract, true)
	test.Equate(t, mc.Regs.F.HalfCarry, true)
	test.Equate(t, mc.Regs.F.Carry, false)

	// compare discards the result but sets the same flags
	mc, _, _ = newTestCPU(0xfe, 0x50) // CP d8
	mc.Regs.A = 0x40
	step(t, mc)
	test.Equate(t, mc.Regs.A, 0x40)
	test.Equate(t, mc.Regs.F.Carry, true)
}

func TestIllegalOpcode(t *testing.T) {
	mc, _, _ := newTestCPU(0xd3)
	_, err := mc.ExecuteInstruction()
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, cpu.IllegalOpcode))
}

func TestConditionalCycles(t *testing.T) {
	// JR NZ not taken
	mc, _, _ := newTestCPU(0x20, 0x05)
	mc.Regs.F.Zero = true
	cycles := step(t, mc)
	test.Equate(t, cycles, 8)
	test.Equate(t, mc.Regs.PC, 0x0102)

	// JR NZ taken
	mc, _, _ = newTestCPU(0x20, 0x05)
	mc.Regs.F.Zero = false
	cycles = step(t, mc)
	test.Equate(t, cycles, 12)
	test.Equate(t, mc.Regs.PC, 0x0107)

	// backwards displacement
	mc, _, _ = newTestCPU(0x18, 0xfe) // JR -2: tight loop
	cycles = step(t, mc)
	test.Equate(t, cycles, 12)
	test.Equate(t, mc.Regs.PC, 0x0100)
}

func TestCallAndReturn(t *testing.T) {
	mc, mem, _ := newTestCPU(0xcd, 0x00, 0x20) // CALL 0x2000
	mem.data[0x2000] = 0xc9                    // RET

	cycles := step(t, mc)
	test.Equate(t, cycles, 24)
	test.Equate(t, mc.Regs.PC, 0x2000)
	test.Equate(t, mc.Regs.SP, 0xfffc)

	cycles = step(t, mc)
	test.Equate(t, cycles, 16)
	test.Equate(t, mc.Regs.PC, 0x0103)
	test.Equate(t, mc.Regs.SP, 0xfffe)
}

func TestRotateDistinction(t *testing.T) {
	// RLCA is circular: bit 7 reappears as bit 0
	mc, _, _ := newTestCPU(0x07)
	mc.Regs.A = 0x80
	step(t, mc)
	test.Equate(t, mc.Regs.A, 0x01)
	test.Equate(t, mc.Regs.F.Carry, true)

	// RLA rotates through the carry flag instead
	mc, _, _ = newTestCPU(0x17)
	mc.Regs.A = 0x80
	mc.Regs.F.Carry = false
	step(t, mc)
	test.Equate(t, mc.Regs.A, 0x00)
	test.Equate(t, mc.Regs.F.Carry, true)

	// the accumulator forms never set the zero flag
	test.Equate(t, mc.Regs.F.Zero, false)
}

func TestExtendedOpcodes(t *testing.T) {
	// BIT 7,H
	mc, _, _ := newTestCPU(0xcb, 0x7c)
	mc.Regs.H = 0x80
	cycles := step(t, mc)
	test.Equate(t, cycles, 8)
	test.Equate(t, mc.Regs.F.Zero, false)
	test.Equate(t, mc.Regs.F.HalfCarry, true)

	// SWAP A
	mc, _, _ = newTestCPU(0xcb, 0x37)
	mc.Regs.A = 0xf1
	step(t, mc)
	test.Equate(t, mc.Regs.A, 0x1f)

	// SET 3,(HL)
	mc, mem, _ := newTestCPU(0xcb, 0xde)
	mc.Regs.SetHL(0xc000)
	cycles = step(t, mc)
	test.Equate(t, cycles, 16)
	test.Equate(t, mem.data[0xc000], 0x08)
}

func TestEnableInterruptsDelay(t *testing.T) {
	mc, _, irq := newTestCPU(0xfb, 0x00, 0x00) // EI; NOP; NOP
	irq.WriteEnable(0x1f)
	irq.Raise(interrupts.VBlank)

	// EI itself does not set the master enable flag
	step(t, mc)
	test.Equate(t, irq.MasterEnable, false)

	// the following instruction executes normally. the flag is set
	// once it completes
	cycles := step(t, mc)
	test.Equate(t, cycles, 4)
	test.Equate(t, irq.MasterEnable, true)

	// only now is the interrupt dispatched
	cycles = step(t, mc)
	test.Equate(t, cycles, cpu.InterruptCycles)
	test.Equate(t, mc.Regs.PC, 0x0040)
	test.Equate(t, irq.MasterEnable, false)
}

func TestDisableInterruptsCancelsPending(t *testing.T) {
	mc, _, irq := newTestCPU(0xfb, 0xf3, 0x00) // EI; DI; NOP
	step(t, mc)
	step(t, mc)
	test.Equate(t, irq.MasterEnable, false)
	step(t, mc)
	test.Equate(t, irq.MasterEnable, false)
}

func TestInterruptDispatch(t *testing.T) {
	mc, mem, irq := newTestCPU(0x00)
	irq.WriteEnable(0x1f)
	irq.Raise(interrupts.Timer)
	irq.MasterEnable = true

	cycles := step(t, mc)
	test.Equate(t, cycles, cpu.InterruptCycles)
	test.Equate(t, mc.Regs.PC, 0x0050)

	// the old program counter is on the stack
	test.Equate(t, mem.data[0xfffd], 0x01)
	test.Equate(t, mem.data[0xfffc], 0x00)

	// the request bit is cleared and the master enable flag is off
	test.Equate(t, irq.ReadRequest()&0x1f, 0x00)
	test.Equate(t, irq.MasterEnable, false)
}

func TestHaltResume(t *testing.T) {
	mc, _, irq := newTestCPU(0x76, 0x3c) // HALT; INC A
	irq.WriteEnable(0x1f)

	step(t, mc)
	test.Equate(t, mc.Halted, true)

	// halted steps idle
	cycles := step(t, mc)
	test.Equate(t, cycles, cpu.HaltCycles)
	test.Equate(t, mc.Regs.PC, 0x0101)

	// a requested interrupt resumes execution even with the master
	// enable flag off. no dispatch occurs
	irq.Raise(interrupts.Joypad)
	step(t, mc)
	test.Equate(t, mc.Halted, false)
	test.Equate(t, mc.Regs.PC, 0x0102)
	test.Equate(t, mc.Regs.A, 0x02)
}

func TestDAA(t *testing.T) {
	// 0x15 + 0x27 = 0x3c, adjusted to the BCD result 0x42
	mc, _, _ := newTestCPU(0x80, 0x27) // ADD A,B; DAA
	mc.Regs.A = 0x15
	mc.Regs.B = 0x27
	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.Regs.A, 0x42)
	test.Equate(t, mc.Regs.F.Carry, false)

	// 0x90 + 0x90 = 0x20 carry, adjusted to 0x80 with carry
	mc, _, _ = newTestCPU(0x80, 0x27)
	mc.Regs.A = 0x90
	mc.Regs.B = 0x90
	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.Regs.A, 0x80)
	test.Equate(t, mc.Regs.F.Carry, true)
}

func TestStackPointerArithmetic(t *testing.T) {
	// ADD SP,-1: flags come from the unsigned low-byte addition
	mc, _, _ := newTestCPU(0xe8, 0xff)
	mc.Regs.SP = 0x0000
	cycles := step(t, mc)
	test.Equate(t, cycles, 16)
	test.Equate(t, mc.Regs.SP, 0xffff)
	test.Equate(t, mc.Regs.F.Zero, false)

	// LD HL,SP+1
	mc, _, _ = newTestCPU(0xf8, 0x01)
	mc.Regs.SP = 0x00ff
	step(t, mc)
	test.Equate(t, mc.Regs.HL(), 0x0100)
	test.Equate(t, mc.Regs.F.Carry, true)
	test.Equate(t, mc.Regs.F.HalfCarry, true)
}

func TestLoadStoreIndirect(t *testing.T) {
	// LD (HL+),A
	mc, mem, _ := newTestCPU(0x22)
	mc.Regs.A = 0x5a
	mc.Regs.SetHL(0xc100)
	step(t, mc)
	test.Equate(t, mem.data[0xc100], 0x5a)
	test.Equate(t, mc.Regs.HL(), 0xc101)

	// LDH (a8),A
	mc, mem, _ = newTestCPU(0xe0, 0x80)
	mc.Regs.A = 0x12
	step(t, mc)
	test.Equate(t, mem.data[0xff80], 0x12)
}
