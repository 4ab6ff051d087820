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

package cartridge

import "dotmatrix/hardware/memory/memorymap"

// the rom type implements the unbanked scheme: up to 32KB of ROM
// mapped linearly, with no registers. Writes to the ROM window are
// discarded.
type rom struct {
	data []uint8
	ram  []uint8
}

func newROM(data []uint8, ramSize int) *rom {
	m := &rom{data: data}
	if ramSize > 0 {
		m.ram = make([]uint8, ramSize)
	}
	return m
}

func (m *rom) ID() string {
	return "ROM"
}

func (m *rom) Read(address uint16) uint8 {
	if int(address) >= len(m.data) {
		return memorymap.Sentinel
	}
	return m.data[address]
}

func (m *rom) Write(_ uint16, _ uint8) {
}

func (m *rom) ReadRAM(address uint16) uint8 {
	idx := int(address - memorymap.OriginCartRAM)
	if idx >= len(m.ram) {
		return memorymap.Sentinel
	}
	return m.ram[idx]
}

func (m *rom) WriteRAM(address uint16, data uint8) {
	idx := int(address - memorymap.OriginCartRAM)
	if idx >= len(m.ram) {
		return
	}
	m.ram[idx] = data
}

func (m *rom) RAM() []uint8 {
	return m.ram
}
