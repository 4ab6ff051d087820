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

package instructions_test

import (
	"testing"

	"dotmatrix/hardware/cpu/instructions"
	"dotmatrix/test"
)

func TestTableHoles(t *testing.T) {
	// the eleven opcodes with no definition
	holes := []uint8{0xd3, 0xdb, 0xdd, 0xe3, 0xe4, 0xeb, 0xec, 0xed, 0xf4, 0xfc, 0xfd}
	for _, op := range holes {
		_, ok := instructions.Primary(op)
		test.ExpectedFailure(t, ok)
	}

	// everything else is defined
	count := 0
	for op := 0; op <= 0xff; op++ {
		if _, ok := instructions.Primary(uint8(op)); ok {
			count++
		}
	}
	test.Equate(t, count, 256-len(holes))
}

func TestGeneratedBlocks(t *testing.T) {
	defn, ok := instructions.Primary(0x41)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, defn.Mnemonic, "LD B,C")
	test.Equate(t, defn.Cycles, 4)

	defn, ok = instructions.Primary(0x46)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, defn.Mnemonic, "LD B,(HL)")
	test.Equate(t, defn.Cycles, 8)

	defn, ok = instructions.Primary(0x76)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, defn.Mnemonic, "HALT")

	defn, ok = instructions.Primary(0x96)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, defn.Mnemonic, "SUB (HL)")
	test.Equate(t, defn.Cycles, 8)
}

func TestExtendedCycles(t *testing.T) {
	// register operand
	defn := instructions.Extended(0x00)
	test.Equate(t, defn.Mnemonic, "RLC B")
	test.Equate(t, defn.Cycles, 8)

	// memory operand
	defn = instructions.Extended(0x06)
	test.Equate(t, defn.Mnemonic, "RLC (HL)")
	test.Equate(t, defn.Cycles, 16)

	// BIT on a memory operand does not write back and is cheaper
	defn = instructions.Extended(0x46)
	test.Equate(t, defn.Mnemonic, "BIT 0,(HL)")
	test.Equate(t, defn.Cycles, 12)

	defn = instructions.Extended(0xff)
	test.Equate(t, defn.Mnemonic, "SET 7,A")
	test.Equate(t, defn.Cycles, 8)
}

func TestConditionalCycles(t *testing.T) {
	defn, _ := instructions.Primary(0x20)
	test.Equate(t, defn.Cycles, 8)
	test.Equate(t, defn.CyclesTaken, 12)

	defn, _ = instructions.Primary(0xc4)
	test.Equate(t, defn.Cycles, 12)
	test.Equate(t, defn.CyclesTaken, 24)
}
