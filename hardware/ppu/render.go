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

package ppu

import "dotmatrix/lcd"

// tile map origins as offsets into video memory.
const (
	tileMapLow  = 0x1800 // 0x9800 in the address space
	tileMapHigh = 0x1c00 // 0x9c00 in the address space
)

// palette translates a raw 2-bit colour number through a palette
// register into a shade.
func palette(reg uint8, c uint8) uint8 {
	return reg >> (c * 2) & 0x03
}

// tileDataAddress returns the video memory offset of the first byte of
// a tile. With the low tile-data area selected the tile index is a
// signed displacement around 0x9000.
func (p *PPU) tileDataAddress(tile uint8) uint16 {
	if p.lcdc&lcdcTileData != 0 {
		return uint16(tile) * 16
	}
	return uint16(0x1000 + int(int8(tile))*16)
}

// tilePixel returns the raw colour number of a single pixel in the
// named tile map. x and y are pixel coordinates within the 256x256
// plane the map describes.
func (p *PPU) tilePixel(mapBase uint16, x, y int) uint8 {
	tile := p.vram[mapBase+uint16(y/8)*32+uint16(x/8)]
	addr := p.tileDataAddress(tile) + uint16(y%8)*2

	bit := uint(7 - x%8)
	lo := p.vram[addr] >> bit & 0x01
	hi := p.vram[addr+1] >> bit & 0x01
	return hi<<1 | lo
}

// renderLine composes one scanline of the frame buffer: background,
// optional window overlay, then the sprite layer.
func (p *PPU) renderLine() {
	y := int(p.ly)
	if y >= VisibleLines {
		return
	}

	// raw colour numbers for the background/window layer, before
	// palette translation. sprite priority decisions are made against
	// the raw colour, not the shade
	var raw [lcd.Width]uint8

	windowDrawn := false
	windowActive := p.lcdc&lcdcWindowEnable != 0 && y >= int(p.wy)

	bgMap := uint16(tileMapLow)
	if p.lcdc&lcdcBackgroundMap != 0 {
		bgMap = tileMapHigh
	}
	winMap := uint16(tileMapLow)
	if p.lcdc&lcdcWindowMap != 0 {
		winMap = tileMapHigh
	}

	for x := 0; x < lcd.Width; x++ {
		var c uint8

		if windowActive && x+7 >= int(p.wx) {
			// the window has its own line counter, advanced only on
			// lines where the window was drawn
			c = p.tilePixel(winMap, x+7-int(p.wx), p.windowLine)
			windowDrawn = true
		} else if p.lcdc&lcdcBackground != 0 {
			c = p.tilePixel(bgMap, (x+int(p.scx))&0xff, (y+int(p.scy))&0xff)
		}

		raw[x] = c
		p.frame[y][x] = palette(p.bgp, c)
	}

	if windowDrawn {
		p.windowLine++
	}

	if p.lcdc&lcdcSpriteEnable != 0 {
		p.renderSprites(y, &raw)
	}
}

// spritePixel returns the raw colour number of one pixel of a sprite
// table entry, accounting for size and flip attributes.
func (p *PPU) spritePixel(idx int, col, row int) uint8 {
	tile := p.oam[idx*4+2]
	attr := p.oam[idx*4+3]

	height := 8
	if p.lcdc&lcdcSpriteSize != 0 {
		height = 16
		// in 8x16 mode the low bit of the tile index is ignored; the
		// two tiles are contiguous
		tile &= 0xfe
	}

	if attr&attrFlipY != 0 {
		row = height - 1 - row
	}
	if attr&attrFlipX != 0 {
		col = 7 - col
	}

	addr := uint16(tile)*16 + uint16(row)*2
	bit := uint(7 - col)
	lo := p.vram[addr] >> bit & 0x01
	hi := p.vram[addr+1] >> bit & 0x01
	return hi<<1 | lo
}

// renderSprites overlays the sprite layer onto a completed
// background/window line. Among overlapping sprites the lower
// horizontal position wins, ties broken by lower table index; the
// winning pixel can still defer to a non-transparent background pixel
// through the priority attribute.
func (p *PPU) renderSprites(y int, raw *[lcd.Width]uint8) {
	for x := 0; x < lcd.Width; x++ {
		bestX := lcd.Width + 8
		var bestC uint8
		var bestAttr uint8
		found := false

		// lineSprites is in table order, so a strict comparison on
		// horizontal position gives earlier entries the tie
		for _, idx := range p.lineSprites {
			sx := int(p.oam[idx*4+1]) - 8
			if x < sx || x >= sx+8 || sx >= bestX {
				continue
			}

			sy := int(p.oam[idx*4]) - 16
			c := p.spritePixel(idx, x-sx, y-sy)
			if c == 0 {
				// colour zero is transparent and takes no part in
				// sprite-on-sprite selection
				continue
			}

			bestX = sx
			bestC = c
			bestAttr = p.oam[idx*4+3]
			found = true
		}

		if !found {
			continue
		}

		// the priority attribute gives a non-transparent background
		// pixel precedence over the sprite
		if bestAttr&attrPriority != 0 && raw[x] != 0 {
			continue
		}

		pal := p.obp0
		if bestAttr&attrPalette != 0 {
			pal = p.obp1
		}
		p.frame[y][x] = palette(pal, bestC)
	}
}
