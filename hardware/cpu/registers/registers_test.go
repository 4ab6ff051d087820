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

package registers_test

import (
	"testing"

	"dotmatrix/hardware/cpu/registers"
	"dotmatrix/test"
)

func TestPairs(t *testing.T) {
	r := registers.NewRegisters()

	r.SetBC(0x1234)
	test.Equate(t, r.B, 0x12)
	test.Equate(t, r.C, 0x34)
	test.Equate(t, r.BC(), 0x1234)

	r.SetDE(0xabcd)
	test.Equate(t, r.DE(), 0xabcd)

	r.H = 0x80
	r.L = 0x01
	test.Equate(t, r.HL(), 0x8001)
}

func TestFlagsPacking(t *testing.T) {
	r := registers.NewRegisters()

	// the low nibble of F does not exist in hardware
	r.SetAF(0xbeef)
	test.Equate(t, r.A, 0xbe)
	test.Equate(t, r.AF(), 0xbee0)

	r.F.Load(0xf0)
	test.Equate(t, r.F.Zero, true)
	test.Equate(t, r.F.Subtract, true)
	test.Equate(t, r.F.HalfCarry, true)
	test.Equate(t, r.F.Carry, true)
	test.Equate(t, r.F.Value(), 0xf0)
	test.Equate(t, r.F.String(), "ZNHC")

	r.F.Load(0x00)
	test.Equate(t, r.F.Value(), 0x00)
	test.Equate(t, r.F.String(), "znhc")
}

func TestBootState(t *testing.T) {
	r := registers.NewRegisters()
	test.Equate(t, r.AF(), 0x01b0)
	test.Equate(t, r.PC, 0x0100)
	test.Equate(t, r.SP, 0xfffe)
}
