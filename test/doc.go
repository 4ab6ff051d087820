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

// Package test contains helper functions to remove common boilerplate
// to make testing easier.
//
// The Equate() function compares like-typed variables for equality.
// Some types (eg. uint8, uint16) can be compared against int for
// convenience, because a literal number value is of type int.
//
// The ExpectedFailure() and ExpectedSuccess() functions test a bool or
// error value for failure or success under the interpretation usual for
// that type. A nil value is considered a success.
package test
