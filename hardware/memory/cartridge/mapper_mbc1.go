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

import (
	"dotmatrix/hardware/memory/memorymap"
	"dotmatrix/logger"
)

// bank size in bytes, for both banking schemes.
const bankSize = 0x4000

// the mbc1 type implements the most common banking scheme: up to 2MB
// of ROM in 16KB banks and up to 32KB of external RAM. Writes to the
// ROM window land in one of four control registers.
type mbc1 struct {
	data []uint8
	ram  []uint8

	numBanks int

	// control registers. bankLow can never hold zero; writing zero
	// selects bank one
	ramEnabled bool
	bankLow    uint8
	bankHigh   uint8
	mode       uint8
}

func newMBC1(data []uint8, ramSize int) *mbc1 {
	m := &mbc1{
		data:     data,
		numBanks: len(data) / bankSize,
		bankLow:  1,
	}
	if ramSize > 0 {
		m.ram = make([]uint8, ramSize)
	}
	return m
}

func (m *mbc1) ID() string {
	return "MBC1"
}

// bank returns the ROM bank currently selected for the upper half of
// the ROM window. Banks beyond the physical ROM wrap around.
func (m *mbc1) bank() int {
	b := int(m.bankLow)
	if m.mode == 0 {
		b |= int(m.bankHigh) << 5
	}
	if b >= m.numBanks {
		o := b
		b %= m.numBanks
		logger.Logf("mbc1", "bank %d out of range, using bank %d", o, b)
	}
	return b
}

// ramBank returns the RAM bank currently selected, as an offset into
// the RAM slice.
func (m *mbc1) ramBank() int {
	if m.mode == 1 {
		return int(m.bankHigh) * 0x2000
	}
	return 0
}

func (m *mbc1) Read(address uint16) uint8 {
	if address < bankSize {
		return m.data[address]
	}
	return m.data[m.bank()*bankSize+int(address-bankSize)]
}

func (m *mbc1) Write(address uint16, data uint8) {
	switch address >> 13 {
	case 0: // 0x0000 to 0x1fff
		// any value with a low nibble of 0x0a enables RAM
		m.ramEnabled = data&0x0f == 0x0a
	case 1: // 0x2000 to 0x3fff
		m.bankLow = data & 0x1f
		if m.bankLow == 0 {
			m.bankLow = 1
		}
	case 2: // 0x4000 to 0x5fff
		m.bankHigh = data & 0x03
	case 3: // 0x6000 to 0x7fff
		m.mode = data & 0x01
	}
}

func (m *mbc1) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return memorymap.Sentinel
	}
	idx := m.ramBank() + int(address-memorymap.OriginCartRAM)
	if idx >= len(m.ram) {
		return memorymap.Sentinel
	}
	return m.ram[idx]
}

func (m *mbc1) WriteRAM(address uint16, data uint8) {
	if !m.ramEnabled {
		return
	}
	idx := m.ramBank() + int(address-memorymap.OriginCartRAM)
	if idx >= len(m.ram) {
		return
	}
	m.ram[idx] = data
}

func (m *mbc1) RAM() []uint8 {
	return m.ram
}
