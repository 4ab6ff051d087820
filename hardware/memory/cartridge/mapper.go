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

// mapper is the interface all banking schemes implement. Read and
// Write service the ROM window (0x0000 to 0x7fff); ReadRAM and
// WriteRAM service the external RAM window (0xa000 to 0xbfff).
// Addresses are bus addresses, not offsets.
//
// All operations are total. Reads of absent or disabled memory return
// the sentinel and writes to it are discarded.
type mapper interface {
	ID() string
	Read(address uint16) uint8
	Write(address uint16, data uint8)
	ReadRAM(address uint16) uint8
	WriteRAM(address uint16, data uint8)

	// RAM returns the external RAM as a slice, or nil if the scheme
	// carries none. The slice is the live backing store
	RAM() []uint8
}

// the ejected type stands in for a mapper when there is no cartridge
// attached.
type ejected struct{}

func (e *ejected) ID() string {
	return "ejected"
}

func (e *ejected) Read(_ uint16) uint8 {
	return memorymap.Sentinel
}

func (e *ejected) Write(_ uint16, _ uint8) {
}

func (e *ejected) ReadRAM(_ uint16) uint8 {
	return memorymap.Sentinel
}

func (e *ejected) WriteRAM(_ uint16, _ uint8) {
}

func (e *ejected) RAM() []uint8 {
	return nil
}
