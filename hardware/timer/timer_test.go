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

package timer_test

import (
	"testing"

	"dotmatrix/hardware/interrupts"
	"dotmatrix/hardware/timer"
	"dotmatrix/test"
)

func TestDividerReset(t *testing.T) {
	irq := interrupts.NewInterrupts()
	tmr := timer.NewTimer(irq)

	tmr.Step(1024)
	test.Equate(t, tmr.ReadDivider(), 0x04)

	// any write to the divider zeroes it, regardless of value
	tmr.WriteDivider(0xa7)
	test.Equate(t, tmr.ReadDivider(), 0x00)

	// after N further cycles the divider equals (N >> 8) & 0xff
	tmr.Step(0x0300)
	test.Equate(t, tmr.ReadDivider(), 0x03)
}

func TestOverflowTiming(t *testing.T) {
	irq := interrupts.NewInterrupts()
	tmr := timer.NewTimer(irq)

	const initial = 0xf0
	const reload = 0xa5

	tmr.WriteCounter(initial)
	tmr.WriteModulo(reload)
	tmr.WriteControl(0x07) // enabled, 256-cycle rate

	// just short of the overflow boundary
	tmr.Step(256*(256-initial) - 4)
	test.Equate(t, tmr.ReadCounter(), 0xff)
	test.Equate(t, irq.Request&(1<<uint(interrupts.Timer)), 0)

	// the overflow boundary. the interrupt is requested now but the
	// counter reads zero, not the reload value
	tmr.Step(4)
	test.Equate(t, tmr.ReadCounter(), 0x00)
	i, ok := irq.Pending()
	test.ExpectedFailure(t, ok) // not enabled in IE yet
	irq.WriteEnable(0x1f)
	i, ok = irq.Pending()
	test.ExpectedSuccess(t, ok)
	test.Equate(t, int(i), int(interrupts.Timer))

	// one machine cycle later the reload value appears
	tmr.Step(4)
	test.Equate(t, tmr.ReadCounter(), reload)
}

func TestRateSelect(t *testing.T) {
	irq := interrupts.NewInterrupts()
	tmr := timer.NewTimer(irq)

	// 16-cycle rate: the counter increments every 16 cycles
	tmr.WriteControl(0x05)
	tmr.Step(160)
	test.Equate(t, tmr.ReadCounter(), 10)

	// disabled: the overflow counter freezes but the divider runs on
	tmr.WriteControl(0x01)
	tmr.Step(1024)
	test.Equate(t, tmr.ReadCounter(), 10)
	test.Equate(t, tmr.ReadDivider(), 0x04)
}

func TestControlRegister(t *testing.T) {
	irq := interrupts.NewInterrupts()
	tmr := timer.NewTimer(irq)

	tmr.WriteControl(0xff)
	test.Equate(t, tmr.ReadControl(), 0xff)

	tmr.WriteControl(0x00)
	test.Equate(t, tmr.ReadControl(), 0xf8)
}
