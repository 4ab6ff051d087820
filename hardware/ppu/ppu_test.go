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

package ppu_test

import (
	"testing"

	"dotmatrix/hardware/interrupts"
	"dotmatrix/hardware/memory/memorymap"
	"dotmatrix/hardware/ppu"
	"dotmatrix/lcd"
	"dotmatrix/test"
)

// recorder counts completed frames and keeps the most recent one.
type recorder struct {
	frames int
	last   lcd.Frame
}

func (r *recorder) NewFrame(f lcd.Frame) error {
	r.frames++
	r.last = f
	return nil
}

func step(t *testing.T, p *ppu.PPU, dots int) {
	t.Helper()
	test.ExpectedSuccess(t, p.Step(dots))
}

func vblankRequested(irq *interrupts.Interrupts) bool {
	return irq.Request&(1<<uint(interrupts.VBlank)) != 0
}

func TestFrameTiming(t *testing.T) {
	irq := interrupts.NewInterrupts()
	rec := &recorder{}
	p := ppu.NewPPU(irq, rec)

	// one full frame is 154 x 456 dots
	test.Equate(t, ppu.DotsPerFrame, 70224)

	// stop just before the vertical blank transition
	step(t, p, 144*ppu.DotsPerLine-4)
	test.ExpectedFailure(t, vblankRequested(irq))
	test.Equate(t, rec.frames, 0)

	// dot 0 of line 144: the request fires and the frame is handed
	// over
	step(t, p, 4)
	test.ExpectedSuccess(t, vblankRequested(irq))
	test.Equate(t, p.LY(), 144)
	test.Equate(t, p.Dot(), 0)
	test.Equate(t, rec.frames, 1)

	// the request is not repeated during the rest of the blank
	irq.WriteRequest(0)
	step(t, p, 10*ppu.DotsPerLine-4)
	test.ExpectedFailure(t, vblankRequested(irq))
	test.Equate(t, rec.frames, 1)

	// a second complete frame requests again
	step(t, p, 144*ppu.DotsPerLine+4)
	test.ExpectedSuccess(t, vblankRequested(irq))
	test.Equate(t, rec.frames, 2)
}

func TestModeSequence(t *testing.T) {
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(irq, nil)

	test.Equate(t, int(p.Mode()), int(ppu.SpriteSearch))

	step(t, p, 80)
	test.Equate(t, int(p.Mode()), int(ppu.PixelTransfer))

	step(t, p, 172)
	test.Equate(t, int(p.Mode()), int(ppu.HBlank))

	step(t, p, 456-80-172)
	test.Equate(t, int(p.Mode()), int(ppu.SpriteSearch))
	test.Equate(t, p.LY(), 1)
}

func TestAccessLocking(t *testing.T) {
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(irq, nil)

	// sprite search: sprite table locked, video memory open
	test.Equate(t, p.ReadOAM(memorymap.OriginOAM), memorymap.Sentinel)
	p.WriteVRAM(0x8000, 0x12)
	test.Equate(t, p.ReadVRAM(0x8000), 0x12)

	// pixel transfer: both locked
	step(t, p, 80)
	test.Equate(t, p.ReadVRAM(0x8000), memorymap.Sentinel)
	p.WriteVRAM(0x8000, 0x34) // ignored
	test.Equate(t, p.ReadOAM(memorymap.OriginOAM), memorymap.Sentinel)

	// horizontal blank: everything open again
	step(t, p, 172)
	test.Equate(t, p.ReadVRAM(0x8000), 0x12)
	p.WriteOAM(memorymap.OriginOAM, 0x56)
	test.Equate(t, p.ReadOAM(memorymap.OriginOAM), 0x56)
}

func TestStatusInterrupts(t *testing.T) {
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(irq, nil)

	statRequested := func() bool {
		return irq.Request&(1<<uint(interrupts.Status)) != 0
	}

	// horizontal blank entry, gated by its enable bit
	test.ExpectedFailure(t, statRequested())
	p.WriteRegister(memorymap.AddressSTAT, 0x08)
	step(t, p, 80+172)
	test.ExpectedSuccess(t, statRequested())

	// line compare
	irq.WriteRequest(0)
	p.WriteRegister(memorymap.AddressSTAT, 0x40)
	p.WriteRegister(memorymap.AddressLYC, 2)
	step(t, p, 456-80-172) // completes line 0
	test.ExpectedFailure(t, statRequested())
	step(t, p, 456) // completes line 1, entering line 2
	test.ExpectedSuccess(t, statRequested())

	// the line-compare match flag is visible in the status register
	test.Equate(t, p.ReadRegister(memorymap.AddressSTAT)&0x04, 0x04)
}

func TestDisplayDisable(t *testing.T) {
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(irq, nil)

	step(t, p, 3*456)
	test.Equate(t, p.LY(), 3)

	// disabling the display freezes the machine
	p.WriteRegister(memorymap.AddressLCDC, 0x11)
	test.Equate(t, p.LY(), 0)
	step(t, p, 10*456)
	test.Equate(t, p.LY(), 0)
	test.ExpectedFailure(t, vblankRequested(irq))

	// re-enabling restarts at sprite search of line 0
	p.WriteRegister(memorymap.AddressLCDC, 0x91)
	test.Equate(t, int(p.Mode()), int(ppu.SpriteSearch))
	step(t, p, 456)
	test.Equate(t, p.LY(), 1)
}

func TestBackgroundRendering(t *testing.T) {
	irq := interrupts.NewInterrupts()
	rec := &recorder{}
	p := ppu.NewPPU(irq, rec)

	// identity palette and a solid colour-3 tile 0. the tile map is
	// already all zeroes
	p.WriteRegister(memorymap.AddressBGP, 0xe4)
	for i := uint16(0); i < 16; i++ {
		p.WriteVRAM(0x8000+i, 0xff)
	}

	step(t, p, ppu.DotsPerFrame)
	test.Equate(t, rec.frames, 1)
	test.Equate(t, rec.last[0][0], 3)
	test.Equate(t, rec.last[143][159], 3)
}

func TestSpriteRendering(t *testing.T) {
	irq := interrupts.NewInterrupts()
	rec := &recorder{}
	p := ppu.NewPPU(irq, rec)

	// build state with the display off so nothing is locked
	p.WriteRegister(memorymap.AddressLCDC, 0x13)
	p.WriteRegister(memorymap.AddressBGP, 0xe4)
	p.WriteRegister(memorymap.AddressOBP0, 0xe4)

	// tile 1: solid colour 1 (low bitplane set, high clear)
	for i := uint16(0); i < 16; i += 2 {
		p.WriteVRAM(0x8010+i, 0xff)
		p.WriteVRAM(0x8010+i+1, 0x00)
	}
	// tile 2: solid colour 2
	for i := uint16(0); i < 16; i += 2 {
		p.WriteVRAM(0x8020+i, 0x00)
		p.WriteVRAM(0x8020+i+1, 0xff)
	}

	// sprite 0 at screen (4,0) with tile 1; sprite 1 at screen (0,0)
	// with tile 2. where they overlap the lower horizontal position
	// wins
	p.WriteOAM(memorymap.OriginOAM+0, 16)
	p.WriteOAM(memorymap.OriginOAM+1, 12)
	p.WriteOAM(memorymap.OriginOAM+2, 1)
	p.WriteOAM(memorymap.OriginOAM+3, 0)
	p.WriteOAM(memorymap.OriginOAM+4, 16)
	p.WriteOAM(memorymap.OriginOAM+5, 8)
	p.WriteOAM(memorymap.OriginOAM+6, 2)
	p.WriteOAM(memorymap.OriginOAM+7, 0)

	p.WriteRegister(memorymap.AddressLCDC, 0x93)
	step(t, p, ppu.DotsPerFrame)

	// sprite 1 covers x 0-7; sprite 0 covers x 4-11. sprite 1 wins the
	// overlap
	test.Equate(t, rec.last[0][0], 2)
	test.Equate(t, rec.last[0][6], 2)
	test.Equate(t, rec.last[0][8], 1)
	test.Equate(t, rec.last[0][12], 0)
}

func TestSpritePriority(t *testing.T) {
	irq := interrupts.NewInterrupts()
	rec := &recorder{}
	p := ppu.NewPPU(irq, rec)

	p.WriteRegister(memorymap.AddressLCDC, 0x13)
	p.WriteRegister(memorymap.AddressBGP, 0xe4)
	p.WriteRegister(memorymap.AddressOBP0, 0xe4)

	// background tile 0 is solid colour 3
	for i := uint16(0); i < 16; i++ {
		p.WriteVRAM(0x8000+i, 0xff)
	}
	// tile 1 is solid colour 1
	for i := uint16(0); i < 16; i += 2 {
		p.WriteVRAM(0x8010+i, 0xff)
	}

	// a sprite with the priority attribute defers to the
	// non-transparent background
	p.WriteOAM(memorymap.OriginOAM+0, 16)
	p.WriteOAM(memorymap.OriginOAM+1, 8)
	p.WriteOAM(memorymap.OriginOAM+2, 1)
	p.WriteOAM(memorymap.OriginOAM+3, 0x80)

	p.WriteRegister(memorymap.AddressLCDC, 0x93)
	step(t, p, ppu.DotsPerFrame)
	test.Equate(t, rec.last[0][0], 3)
}

func TestSpriteSearchLimit(t *testing.T) {
	irq := interrupts.NewInterrupts()
	rec := &recorder{}
	p := ppu.NewPPU(irq, rec)

	p.WriteRegister(memorymap.AddressLCDC, 0x13)
	p.WriteRegister(memorymap.AddressOBP0, 0xe4)

	// tile 1 is solid colour 1
	for i := uint16(0); i < 16; i += 2 {
		p.WriteVRAM(0x8010+i, 0xff)
	}

	// twelve sprites on line 0, at distinct positions. only the first
	// ten are retained by the sprite search
	for i := uint16(0); i < 12; i++ {
		p.WriteOAM(memorymap.OriginOAM+i*4+0, 16)
		p.WriteOAM(memorymap.OriginOAM+i*4+1, uint8(8+i*8))
		p.WriteOAM(memorymap.OriginOAM+i*4+2, 1)
		p.WriteOAM(memorymap.OriginOAM+i*4+3, 0)
	}

	p.WriteRegister(memorymap.AddressLCDC, 0x93)
	step(t, p, ppu.DotsPerFrame)

	test.Equate(t, rec.last[0][9*8], 1)  // tenth sprite drawn
	test.Equate(t, rec.last[0][10*8], 0) // eleventh not
}
