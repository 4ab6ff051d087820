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

// Package memorymap names every region and hardware register in the
// 64KB address space. The bus package uses these values to route CPU
// accesses; other packages use them to avoid magic numbers.
package memorymap

// Area represents the different areas of memory.
type Area int

func (a Area) String() string {
	switch a {
	case Cartridge:
		return "Cartridge"
	case VRAM:
		return "VRAM"
	case CartridgeRAM:
		return "CartridgeRAM"
	case WRAM:
		return "WRAM"
	case Echo:
		return "Echo"
	case OAM:
		return "OAM"
	case Unusable:
		return "Unusable"
	case IO:
		return "IO"
	case HRAM:
		return "HRAM"
	case InterruptEnable:
		return "InterruptEnable"
	}
	return "undefined"
}

// The different areas in the address space.
const (
	Undefined Area = iota
	Cartridge
	VRAM
	CartridgeRAM
	WRAM
	Echo
	OAM
	Unusable
	IO
	HRAM
	InterruptEnable
)

// The origin and memtop for each area of memory. The MapAddress()
// function decides which area an address falls within.
const (
	OriginCart    = uint16(0x0000)
	MemtopCart    = uint16(0x7fff)
	OriginVRAM    = uint16(0x8000)
	MemtopVRAM    = uint16(0x9fff)
	OriginCartRAM = uint16(0xa000)
	MemtopCartRAM = uint16(0xbfff)
	OriginWRAM    = uint16(0xc000)
	MemtopWRAM    = uint16(0xdfff)
	OriginEcho    = uint16(0xe000)
	MemtopEcho    = uint16(0xfdff)
	OriginOAM     = uint16(0xfe00)
	MemtopOAM     = uint16(0xfe9f)
	OriginUnused  = uint16(0xfea0)
	MemtopUnused  = uint16(0xfeff)
	OriginIO      = uint16(0xff00)
	MemtopIO      = uint16(0xff7f)
	OriginHRAM    = uint16(0xff80)
	MemtopHRAM    = uint16(0xfffe)
	AddressIE     = uint16(0xffff)
)

// Masks to bring an address down into the range of the backing array
// for the area. WRAM and its echo share the same mask, which is what
// makes the echo aliasing byte-exact.
const (
	MaskWRAM = uint16(0x1fff)
	MaskVRAM = uint16(0x1fff)
	MaskHRAM = uint16(0x007f)
)

// Hardware register addresses in the IO area.
const (
	AddressJOYP = uint16(0xff00)
	AddressSB   = uint16(0xff01)
	AddressSC   = uint16(0xff02)
	AddressDIV  = uint16(0xff04)
	AddressTIMA = uint16(0xff05)
	AddressTMA  = uint16(0xff06)
	AddressTAC  = uint16(0xff07)
	AddressIF   = uint16(0xff0f)
	AddressLCDC = uint16(0xff40)
	AddressSTAT = uint16(0xff41)
	AddressSCY  = uint16(0xff42)
	AddressSCX  = uint16(0xff43)
	AddressLY   = uint16(0xff44)
	AddressLYC  = uint16(0xff45)
	AddressDMA  = uint16(0xff46)
	AddressBGP  = uint16(0xff47)
	AddressOBP0 = uint16(0xff48)
	AddressOBP1 = uint16(0xff49)
	AddressWY   = uint16(0xff4a)
	AddressWX   = uint16(0xff4b)
)

// Cartridge header offsets. The type byte selects the banking scheme;
// the size bytes select the physical bank counts.
const (
	CartTitleStart = 0x0134
	CartTitleEnd   = 0x0143
	CartType       = 0x0147
	CartROMSize    = 0x0148
	CartRAMSize    = 0x0149
)

// Entry is the address execution starts from after the boot sequence.
const Entry = uint16(0x0100)

// Sentinel is the value returned by any read of a region that is
// currently inaccessible (or simply not mapped to anything). All bus
// accesses are total; there is no "invalid address" error.
const Sentinel = uint8(0xff)

// MapAddress returns the area an address falls within.
func MapAddress(address uint16) Area {
	switch {
	case address <= MemtopCart:
		return Cartridge
	case address <= MemtopVRAM:
		return VRAM
	case address <= MemtopCartRAM:
		return CartridgeRAM
	case address <= MemtopWRAM:
		return WRAM
	case address <= MemtopEcho:
		return Echo
	case address <= MemtopOAM:
		return OAM
	case address <= MemtopUnused:
		return Unusable
	case address <= MemtopIO:
		return IO
	case address <= MemtopHRAM:
		return HRAM
	}
	return InterruptEnable
}
