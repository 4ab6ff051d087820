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

// Package hardware is the base package for the emulated console. The
// DMG type ties the chips together and drives them in lockstep: the
// CPU executes one instruction and the picture processor and timer
// catch up with however many cycles it consumed.
//
// The chip packages never import one another. They share only the
// interrupt controller, passed by reference at construction, and the
// memory bus routes CPU accesses to whichever chip owns the address.
package hardware
