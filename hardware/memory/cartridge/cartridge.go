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

// Package cartridge fulfils the cartridge end of the memory bus. The
// banking scheme is decided by the type byte in the cartridge header;
// the scheme implementations translate bus addresses into offsets in
// the ROM and RAM data.
package cartridge

import (
	"fmt"
	"strings"

	"dotmatrix/cartridgeloader"
	"dotmatrix/curated"
	"dotmatrix/hardware/memory/memorymap"
	"dotmatrix/logger"
)

// Sentinel errors for the cartridge package.
const (
	// UnsupportedCartType is returned when the header names a banking
	// scheme this emulation does not implement. It is not recoverable.
	UnsupportedCartType = "cartridge: unsupported cartridge type (%#02x)"

	badHeader = "cartridge: %v"
)

// sizes of external RAM indexed by the header's RAM size byte.
var ramSizes = []int{0x0000, 0x0800, 0x2000, 0x8000, 0x20000, 0x10000}

// Cartridge in the emulated machine.
type Cartridge struct {
	Filename string
	Hash     string

	// the title string from the cartridge header
	title string

	mapper mapper
}

// NewCartridge is the preferred method of initialisation for the
// Cartridge type. The cartridge is in the ejected state until
// Attach() is called.
func NewCartridge() *Cartridge {
	cart := &Cartridge{}
	cart.Eject()
	return cart
}

func (cart *Cartridge) String() string {
	return fmt.Sprintf("%s (%s)", cart.title, cart.mapper.ID())
}

// ID returns the identifier of the attached banking scheme.
func (cart *Cartridge) ID() string {
	return cart.mapper.ID()
}

// Title returns the title string from the cartridge header.
func (cart *Cartridge) Title() string {
	return cart.title
}

// Eject removes the cartridge. Reads of the cartridge windows return
// the sentinel until another cartridge is attached.
func (cart *Cartridge) Eject() {
	cart.Filename = "ejected"
	cart.Hash = ""
	cart.title = ""
	cart.mapper = &ejected{}
}

// Attach loads the data from the loader and decides on the banking
// scheme named by the header.
func (cart *Cartridge) Attach(cartload cartridgeloader.Loader) error {
	err := cartload.Load()
	if err != nil {
		return err
	}

	if len(cartload.Data) < 0x0150 {
		return curated.Errorf(badHeader, "data too small to carry a header")
	}

	cart.Filename = cartload.Filename
	cart.Hash = cartload.Hash
	cart.title = readTitle(cartload.Data)

	numBanks := 2 << cartload.Data[memorymap.CartROMSize]
	if len(cartload.Data) != numBanks*bankSize {
		return curated.Errorf(badHeader,
			fmt.Sprintf("header names %d ROM banks but data is %d bytes", numBanks, len(cartload.Data)))
	}

	ramSizeIdx := int(cartload.Data[memorymap.CartRAMSize])
	if ramSizeIdx >= len(ramSizes) {
		return curated.Errorf(badHeader, fmt.Sprintf("unknown RAM size byte (%#02x)", ramSizeIdx))
	}
	ramSize := ramSizes[ramSizeIdx]

	cartType := cartload.Data[memorymap.CartType]
	switch cartType {
	case 0x00:
		cart.mapper = newROM(cartload.Data, ramSize)
	case 0x01, 0x02, 0x03:
		cart.mapper = newMBC1(cartload.Data, ramSize)
	default:
		return curated.Errorf(UnsupportedCartType, cartType)
	}

	logger.Logf("cartridge", "attached %s %s", cart.mapper.ID(), cart.title)

	return nil
}

// readTitle extracts the title string from the header, dropping the
// zero padding.
func readTitle(data []uint8) string {
	title := data[memorymap.CartTitleStart : memorymap.CartTitleEnd+1]
	return strings.TrimRight(string(title), "\x00")
}

// Read services a CPU read of the ROM window.
func (cart *Cartridge) Read(address uint16) uint8 {
	return cart.mapper.Read(address)
}

// Write services a CPU write of the ROM window. For banked schemes the
// write lands in a control register.
func (cart *Cartridge) Write(address uint16, data uint8) {
	cart.mapper.Write(address, data)
}

// ReadRAM services a CPU read of the external RAM window.
func (cart *Cartridge) ReadRAM(address uint16) uint8 {
	return cart.mapper.ReadRAM(address)
}

// WriteRAM services a CPU write of the external RAM window.
func (cart *Cartridge) WriteRAM(address uint16, data uint8) {
	cart.mapper.WriteRAM(address, data)
}

// RAM returns the external RAM as a slice, or nil if the attached
// scheme carries none. Useful for implementing battery-backed saves.
func (cart *Cartridge) RAM() []uint8 {
	return cart.mapper.RAM()
}

// SetRAM overwrites the external RAM with previously saved content.
func (cart *Cartridge) SetRAM(data []uint8) {
	copy(cart.mapper.RAM(), data)
}
