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

// Package ppu implements the picture processor: a per-scanline state
// machine that owns video memory and the sprite table, produces the
// frame buffer, and requests interrupts on mode transitions and
// line-compare matches.
//
// Each scanline is 456 dots: 80 dots of sprite search, a fixed 172
// dots of pixel transfer, and horizontal blank for the remainder.
// After line 143 the machine spends ten lines in vertical blank, for a
// frame of 154 x 456 = 70224 dots.
//
// The 172-dot pixel transfer is a documented simplification. On real
// hardware the length varies with sprite count and window fetch
// overhead; nothing in this emulation depends on the variation.
package ppu

import (
	"fmt"

	"dotmatrix/hardware/interrupts"
	"dotmatrix/hardware/memory/memorymap"
	"dotmatrix/lcd"
	"dotmatrix/logger"
)

// Mode identifies the state of the scanline machine. The numeric value
// is what appears in the low two bits of the status register.
type Mode int

// The four modes of the scanline machine.
const (
	HBlank Mode = iota
	VBlank
	SpriteSearch
	PixelTransfer
)

func (m Mode) String() string {
	switch m {
	case HBlank:
		return "horizontal blank"
	case VBlank:
		return "vertical blank"
	case SpriteSearch:
		return "sprite search"
	case PixelTransfer:
		return "pixel transfer"
	}
	return "undefined"
}

// Timing constants, in dots.
const (
	DotsPerLine       = 456
	LinesPerFrame     = 154
	VisibleLines      = 144
	spriteSearchDots  = 80
	pixelTransferDots = 172
)

// DotsPerFrame is the length of one complete frame.
const DotsPerFrame = DotsPerLine * LinesPerFrame

// control register bits.
const (
	lcdcDisplayEnable = 0x80
	lcdcWindowMap     = 0x40
	lcdcWindowEnable  = 0x20
	lcdcTileData      = 0x10
	lcdcBackgroundMap = 0x08
	lcdcSpriteSize    = 0x04
	lcdcSpriteEnable  = 0x02
	lcdcBackground    = 0x01
)

// status register bits. the low three bits are read-only views of
// machine state; bits 3-6 enable the four status interrupt sources.
const (
	statLineCompareIRQ   = 0x40
	statSpriteSearchIRQ  = 0x20
	statVBlankIRQ        = 0x10
	statHBlankIRQ        = 0x08
	statLineCompareMatch = 0x04
)

// sprite attribute bits.
const (
	attrPriority = 0x80
	attrFlipY    = 0x40
	attrFlipX    = 0x20
	attrPalette  = 0x10
)

// the maximum number of sprites retained by the sprite search.
const maxLineSprites = 10

// PPU is the picture processor. It owns video memory, the sprite
// table and the frame buffer; the memory bus routes CPU accesses here
// and rejects them when the current mode forbids access.
type PPU struct {
	irq      *interrupts.Interrupts
	renderer lcd.FrameRenderer

	vram [0x2000]uint8
	oam  [0xa0]uint8

	// registers. the mode lives in the low bits of stat; only the
	// interrupt-enable bits of stat are backed here
	lcdc uint8
	stat uint8
	scy  uint8
	scx  uint8
	ly   uint8
	lyc  uint8
	bgp  uint8
	obp0 uint8
	obp1 uint8
	wy   uint8
	wx   uint8

	mode Mode

	// intra-line dot counter
	dot int

	// the window keeps its own line counter, advancing only on lines
	// where the window was actually drawn
	windowLine int

	// sprite table indices retained by the sprite search for the
	// current line, in table order
	lineSprites []int

	frame lcd.Frame

	// number of completed frames since power-on
	FrameNum int
}

// NewPPU is the preferred method of initialisation for the PPU type.
func NewPPU(irq *interrupts.Interrupts, renderer lcd.FrameRenderer) *PPU {
	if renderer == nil {
		renderer = lcd.NilRenderer{}
	}
	return &PPU{
		irq:         irq,
		renderer:    renderer,
		lcdc:        0x91,
		bgp:         0xfc,
		mode:        SpriteSearch,
		lineSprites: make([]int, 0, maxLineSprites),
	}
}

// Reset returns the picture processor to its power-on state. The
// renderer plumbing is unaffected.
func (p *PPU) Reset() {
	irq := p.irq
	renderer := p.renderer
	*p = PPU{
		irq:         irq,
		renderer:    renderer,
		lcdc:        0x91,
		bgp:         0xfc,
		mode:        SpriteSearch,
		lineSprites: make([]int, 0, maxLineSprites),
	}
}

func (p *PPU) String() string {
	return fmt.Sprintf("LY=%d dot=%d %s", p.ly, p.dot, p.mode)
}

// Plumb a new FrameRenderer into the PPU.
func (p *PPU) Plumb(renderer lcd.FrameRenderer) {
	p.renderer = renderer
}

// Mode returns the current state of the scanline machine.
func (p *PPU) Mode() Mode {
	return p.mode
}

// Step advances the picture processor by the given number of dots.
// The frame buffer is handed to the renderer at the transition into
// vertical blank.
func (p *PPU) Step(dots int) error {
	if p.lcdc&lcdcDisplayEnable == 0 {
		// the machine is frozen while the display is disabled
		return nil
	}

	p.dot += dots

	for {
		switch p.mode {
		case SpriteSearch:
			if p.dot < spriteSearchDots {
				return nil
			}
			p.setMode(PixelTransfer)

		case PixelTransfer:
			if p.dot < spriteSearchDots+pixelTransferDots {
				return nil
			}
			p.renderLine()
			p.setMode(HBlank)

		case HBlank:
			if p.dot < DotsPerLine {
				return nil
			}
			p.dot -= DotsPerLine
			p.ly++
			p.lineCompare()

			if p.ly == VisibleLines {
				p.setMode(VBlank)

				// the frame is complete at this transition. this is
				// the single handoff point for external consumers
				p.FrameNum++
				if err := p.renderer.NewFrame(p.frame); err != nil {
					return err
				}
			} else {
				p.setMode(SpriteSearch)
			}

		case VBlank:
			if p.dot < DotsPerLine {
				return nil
			}
			p.dot -= DotsPerLine
			p.ly++
			if p.ly >= LinesPerFrame {
				p.ly = 0
				p.windowLine = 0
				p.setMode(SpriteSearch)
			}
			p.lineCompare()
		}
	}
}

// setMode performs a mode transition, raising the interrupts the
// transition calls for. Each status interrupt is edge triggered,
// firing exactly once per occurrence.
func (p *PPU) setMode(mode Mode) {
	p.mode = mode

	switch mode {
	case SpriteSearch:
		p.searchSprites()
		if p.stat&statSpriteSearchIRQ != 0 {
			p.irq.Raise(interrupts.Status)
		}
	case HBlank:
		if p.stat&statHBlankIRQ != 0 {
			p.irq.Raise(interrupts.Status)
		}
	case VBlank:
		// the vertical blank interrupt is requested exactly once per
		// frame, at dot zero of line 144. the status interrupt for
		// vertical blank entry is separately enabled
		p.irq.Raise(interrupts.VBlank)
		if p.stat&statVBlankIRQ != 0 {
			p.irq.Raise(interrupts.Status)
		}
	}
}

// lineCompare checks the line-compare register against the new
// scanline index.
func (p *PPU) lineCompare() {
	if p.ly == p.lyc {
		if p.stat&statLineCompareIRQ != 0 {
			p.irq.Raise(interrupts.Status)
		}
	}
}

// searchSprites scans the sprite table for entries intersecting the
// current line, retaining at most ten in table order.
func (p *PPU) searchSprites() {
	p.lineSprites = p.lineSprites[:0]

	height := 8
	if p.lcdc&lcdcSpriteSize != 0 {
		height = 16
	}

	// sprite Y is the screen line plus sixteen. a sprite at Y=0 is
	// entirely off the top of the display
	line := int(p.ly) + 16
	for i := 0; i < 40 && len(p.lineSprites) < maxLineSprites; i++ {
		y := int(p.oam[i*4])
		if line >= y && line < y+height {
			p.lineSprites = append(p.lineSprites, i)
		}
	}
}

// LY returns the current scanline index.
func (p *PPU) LY() uint8 {
	return p.ly
}

// Dot returns the intra-line dot counter.
func (p *PPU) Dot() int {
	return p.dot
}

// cpuAccessVRAM indicates whether the CPU can currently access video
// memory. Video memory is locked only during pixel transfer.
func (p *PPU) cpuAccessVRAM() bool {
	if p.lcdc&lcdcDisplayEnable == 0 {
		return true
	}
	return p.mode != PixelTransfer
}

// cpuAccessOAM indicates whether the CPU can currently access the
// sprite table. The table is locked during both sprite search and
// pixel transfer.
func (p *PPU) cpuAccessOAM() bool {
	if p.lcdc&lcdcDisplayEnable == 0 {
		return true
	}
	return p.mode != SpriteSearch && p.mode != PixelTransfer
}

// ReadVRAM services a CPU read of video memory. Reads during pixel
// transfer yield the sentinel.
func (p *PPU) ReadVRAM(address uint16) uint8 {
	if !p.cpuAccessVRAM() {
		return memorymap.Sentinel
	}
	return p.vram[address&memorymap.MaskVRAM]
}

// WriteVRAM services a CPU write of video memory. Writes during pixel
// transfer are ignored.
func (p *PPU) WriteVRAM(address uint16, data uint8) {
	if !p.cpuAccessVRAM() {
		return
	}
	p.vram[address&memorymap.MaskVRAM] = data
}

// ReadOAM services a CPU read of the sprite table.
func (p *PPU) ReadOAM(address uint16) uint8 {
	if !p.cpuAccessOAM() {
		return memorymap.Sentinel
	}
	return p.oam[address-memorymap.OriginOAM]
}

// WriteOAM services a CPU write of the sprite table.
func (p *PPU) WriteOAM(address uint16, data uint8) {
	if !p.cpuAccessOAM() {
		return
	}
	p.oam[address-memorymap.OriginOAM] = data
}

// WriteOAMDirect bypasses the mode lock. Used by the DMA transfer,
// which is not a CPU access.
func (p *PPU) WriteOAMDirect(offset uint16, data uint8) {
	p.oam[offset] = data
}

// ReadRegister services a CPU read of a picture processor register.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case memorymap.AddressLCDC:
		return p.lcdc
	case memorymap.AddressSTAT:
		// bit 7 is unused and reads as set. the low three bits are
		// views of machine state
		v := 0x80 | p.stat | uint8(p.mode)
		if p.ly == p.lyc {
			v |= statLineCompareMatch
		}
		return v
	case memorymap.AddressSCY:
		return p.scy
	case memorymap.AddressSCX:
		return p.scx
	case memorymap.AddressLY:
		return p.ly
	case memorymap.AddressLYC:
		return p.lyc
	case memorymap.AddressBGP:
		return p.bgp
	case memorymap.AddressOBP0:
		return p.obp0
	case memorymap.AddressOBP1:
		return p.obp1
	case memorymap.AddressWY:
		return p.wy
	case memorymap.AddressWX:
		return p.wx
	}
	return memorymap.Sentinel
}

// WriteRegister services a CPU write of a picture processor register.
func (p *PPU) WriteRegister(address uint16, data uint8) {
	switch address {
	case memorymap.AddressLCDC:
		wasEnabled := p.lcdc&lcdcDisplayEnable != 0
		p.lcdc = data
		enabled := p.lcdc&lcdcDisplayEnable != 0

		if wasEnabled && !enabled {
			// disabling the display freezes the machine and forces
			// blank output
			p.ly = 0
			p.dot = 0
			p.windowLine = 0
			p.mode = HBlank
			p.frame = lcd.Frame{}
			logger.Log("ppu", "display disabled")
		} else if !wasEnabled && enabled {
			// re-enabling restarts at sprite search of line zero
			p.ly = 0
			p.dot = 0
			p.windowLine = 0
			p.mode = SpriteSearch
			p.searchSprites()
			logger.Log("ppu", "display enabled")
		}
	case memorymap.AddressSTAT:
		// only the interrupt enable bits are writable
		p.stat = data & 0x78
	case memorymap.AddressSCY:
		p.scy = data
	case memorymap.AddressSCX:
		p.scx = data
	case memorymap.AddressLY:
		// read-only
	case memorymap.AddressLYC:
		p.lyc = data
	case memorymap.AddressBGP:
		p.bgp = data
	case memorymap.AddressOBP0:
		p.obp0 = data
	case memorymap.AddressOBP1:
		p.obp1 = data
	case memorymap.AddressWY:
		p.wy = data
	case memorymap.AddressWX:
		p.wx = data
	}
}

// Frame returns a copy of the frame buffer as it stands. External
// consumers should prefer the FrameRenderer handoff, which guarantees
// a completed frame.
func (p *PPU) Frame() lcd.Frame {
	return p.frame
}
