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

package hardware

import (
	"dotmatrix/cartridgeloader"
	"dotmatrix/hardware/cpu"
	"dotmatrix/hardware/input"
	"dotmatrix/hardware/interrupts"
	"dotmatrix/hardware/memory"
	"dotmatrix/hardware/ppu"
	"dotmatrix/hardware/timer"
	"dotmatrix/lcd"
)

// DMG is the main container for the emulated components of the
// console.
type DMG struct {
	CPU *cpu.CPU
	Mem *memory.Memory
	PPU *ppu.PPU
	TMR *timer.Timer

	IRQ    *interrupts.Interrupts
	Joypad *input.Joypad
}

// NewDMG creates a new console and everything associated with the
// hardware. It is used for all aspects of emulation. The renderer may
// be nil, in which case video output is discarded.
func NewDMG(renderer lcd.FrameRenderer) *DMG {
	dmg := &DMG{}

	dmg.IRQ = interrupts.NewInterrupts()
	dmg.PPU = ppu.NewPPU(dmg.IRQ, renderer)
	dmg.TMR = timer.NewTimer(dmg.IRQ)
	dmg.Joypad = input.NewJoypad(dmg.IRQ)
	dmg.Mem = memory.NewMemory(dmg.IRQ, dmg.PPU, dmg.TMR, dmg.Joypad)
	dmg.CPU = cpu.NewCPU(dmg.Mem, dmg.IRQ)

	return dmg
}

// AttachCartridge to the console. An empty filename ejects the current
// cartridge. The console is reset either way.
func (dmg *DMG) AttachCartridge(cartload cartridgeloader.Loader) error {
	if cartload.Filename == "" {
		dmg.Mem.Cart.Eject()
	} else {
		err := dmg.Mem.Cart.Attach(cartload)
		if err != nil {
			return err
		}
	}

	dmg.Reset()

	return nil
}

// Reset the console to its power-on state. The attached cartridge is
// unaffected, as is any renderer plumbing.
func (dmg *DMG) Reset() {
	dmg.CPU.Reset()
	dmg.IRQ.Reset()
	dmg.PPU.Reset()
	dmg.TMR.Reset()
}

// Step the console by one CPU instruction, the unit of progress for
// the whole machine. The other chips catch up with however many cycles
// the instruction (or interrupt dispatch) consumed.
func (dmg *DMG) Step() error {
	cycles, err := dmg.CPU.ExecuteInstruction()
	if err != nil {
		return err
	}

	if err := dmg.PPU.Step(cycles); err != nil {
		return err
	}
	dmg.TMR.Step(cycles)

	return nil
}

// Run sets the console running. The continueCheck callback is polled
// after every instruction; the loop ends when it returns false or an
// error.
func (dmg *DMG) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	cont := true
	var err error

	for cont {
		if err = dmg.Step(); err != nil {
			return err
		}
		cont, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount runs the console until the stated number of
// further frames have been completed.
func (dmg *DMG) RunForFrameCount(numFrames int) error {
	target := dmg.PPU.FrameNum + numFrames
	return dmg.Run(func() (bool, error) {
		return dmg.PPU.FrameNum < target, nil
	})
}
