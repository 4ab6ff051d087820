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

// Package curated is a helper package for the plain Go language error
// type. Curated errors are created with the Errorf() function, which
// takes a formatting pattern and placeholder values, like fmt.Errorf().
//
// The difference is that the pattern string can later be used to
// identify the error. The Is() function checks whether an error was
// created from a specific pattern; the Has() function checks whether
// the pattern occurs anywhere in the error chain; and the IsAny()
// function checks whether the error is curated at all.
//
// Sentinel patterns should be stored as const strings, suitably named
// and commented, alongside the package that raises them. For example,
// the cpu package defines:
//
//	const IllegalOpcode = "cpu: illegal opcode (%#02x) at %#04x"
//
// and a caller can test for it with:
//
//	if curated.Is(err, cpu.IllegalOpcode) {
//		...
//	}
//
// The Error() function normalises the message chain by removing
// duplicate adjacent parts, which alleviates the problem of when and
// how to wrap errors as they percolate up through the emulation.
package curated
