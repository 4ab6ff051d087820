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

// Package memory implements the memory bus: a pure router from the
// 64KB address space to the chip that owns each region. The bus holds
// no behaviour of its own beyond work RAM, high RAM and the echo
// aliasing; everything else is delegated.
//
// Every access is total. Reads of unmapped or currently inaccessible
// addresses return the sentinel value and writes to them are
// discarded. There is no "bus error".
package memory

import (
	"dotmatrix/hardware/input"
	"dotmatrix/hardware/interrupts"
	"dotmatrix/hardware/memory/cartridge"
	"dotmatrix/hardware/memory/memorymap"
	"dotmatrix/hardware/ppu"
	"dotmatrix/hardware/timer"
)

// Memory is the memory bus of the emulated machine.
type Memory struct {
	Cart *cartridge.Cartridge

	irq    *interrupts.Interrupts
	ppu    *ppu.PPU
	timer  *timer.Timer
	joypad *input.Joypad

	wram [0x2000]uint8
	hram [0x7f]uint8

	// serial transfer registers. there is no link cable; the registers
	// hold their values and transfers complete silently
	sb uint8
	sc uint8

	// the last page written to the sprite-copy register. the register
	// is readable
	dmaPage uint8
}

// NewMemory is the preferred method of initialisation for the Memory
// type.
func NewMemory(irq *interrupts.Interrupts, p *ppu.PPU, t *timer.Timer, j *input.Joypad) *Memory {
	return &Memory{
		Cart:    cartridge.NewCartridge(),
		irq:     irq,
		ppu:     p,
		timer:   t,
		joypad:  j,
		dmaPage: memorymap.Sentinel,
	}
}

// Read is an implementation of the cpu.Memory interface.
func (m *Memory) Read(address uint16) uint8 {
	switch memorymap.MapAddress(address) {
	case memorymap.Cartridge:
		return m.Cart.Read(address)
	case memorymap.VRAM:
		return m.ppu.ReadVRAM(address)
	case memorymap.CartridgeRAM:
		return m.Cart.ReadRAM(address)
	case memorymap.WRAM, memorymap.Echo:
		// the echo region shares the work RAM backing array, making
		// the aliasing byte-exact
		return m.wram[address&memorymap.MaskWRAM]
	case memorymap.OAM:
		return m.ppu.ReadOAM(address)
	case memorymap.Unusable:
		return memorymap.Sentinel
	case memorymap.IO:
		return m.readIO(address)
	case memorymap.HRAM:
		return m.hram[address&memorymap.MaskHRAM]
	case memorymap.InterruptEnable:
		return m.irq.ReadEnable()
	}
	return memorymap.Sentinel
}

// Write is an implementation of the cpu.Memory interface.
func (m *Memory) Write(address uint16, data uint8) {
	switch memorymap.MapAddress(address) {
	case memorymap.Cartridge:
		m.Cart.Write(address, data)
	case memorymap.VRAM:
		m.ppu.WriteVRAM(address, data)
	case memorymap.CartridgeRAM:
		m.Cart.WriteRAM(address, data)
	case memorymap.WRAM, memorymap.Echo:
		m.wram[address&memorymap.MaskWRAM] = data
	case memorymap.OAM:
		m.ppu.WriteOAM(address, data)
	case memorymap.Unusable:
		// discarded
	case memorymap.IO:
		m.writeIO(address, data)
	case memorymap.HRAM:
		m.hram[address&memorymap.MaskHRAM] = data
	case memorymap.InterruptEnable:
		m.irq.WriteEnable(data)
	}
}

func (m *Memory) readIO(address uint16) uint8 {
	switch address {
	case memorymap.AddressJOYP:
		return m.joypad.ReadRegister()
	case memorymap.AddressSB:
		return m.sb
	case memorymap.AddressSC:
		return m.sc
	case memorymap.AddressDIV:
		return m.timer.ReadDivider()
	case memorymap.AddressTIMA:
		return m.timer.ReadCounter()
	case memorymap.AddressTMA:
		return m.timer.ReadModulo()
	case memorymap.AddressTAC:
		return m.timer.ReadControl()
	case memorymap.AddressIF:
		return m.irq.ReadRequest()
	case memorymap.AddressDMA:
		return m.dmaPage
	}

	if address >= memorymap.AddressLCDC && address <= memorymap.AddressWX {
		return m.ppu.ReadRegister(address)
	}

	return memorymap.Sentinel
}

func (m *Memory) writeIO(address uint16, data uint8) {
	switch address {
	case memorymap.AddressJOYP:
		m.joypad.WriteRegister(data)
		return
	case memorymap.AddressSB:
		m.sb = data
		return
	case memorymap.AddressSC:
		m.sc = data
		return
	case memorymap.AddressDIV:
		m.timer.WriteDivider(data)
		return
	case memorymap.AddressTIMA:
		m.timer.WriteCounter(data)
		return
	case memorymap.AddressTMA:
		m.timer.WriteModulo(data)
		return
	case memorymap.AddressTAC:
		m.timer.WriteControl(data)
		return
	case memorymap.AddressIF:
		m.irq.WriteRequest(data)
		return
	case memorymap.AddressDMA:
		m.dmaPage = data
		m.dma(data)
		return
	}

	if address >= memorymap.AddressLCDC && address <= memorymap.AddressWX {
		m.ppu.WriteRegister(address, data)
	}
}

// dma copies 160 bytes from the page named by the written value into
// the sprite table, bypassing the mode lock. On real hardware the copy
// takes 160 machine cycles during which only high RAM is usable; the
// copy here is immediate, which is transparent to programs following
// the usual busy-wait convention.
func (m *Memory) dma(page uint8) {
	src := uint16(page) << 8
	for i := uint16(0); i < 0xa0; i++ {
		m.ppu.WriteOAMDirect(i, m.Read(src+i))
	}
}
