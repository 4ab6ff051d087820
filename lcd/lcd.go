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

// Package lcd defines the boundary between the emulated picture
// processor and whatever is displaying its output. The core never owns
// a display surface; it hands a completed frame to a FrameRenderer
// exactly once per frame, at the entry to vertical blank. Partial
// frames are never exposed.
package lcd

// Dimensions of the visible display.
const (
	Width  = 160
	Height = 144
)

// Frame is a completed video frame: a grid of 2-bit shades, darkest
// (3) to lightest (0), after palette translation. Frames are passed by
// value so a renderer running on another goroutine never shares memory
// with the emulation.
type Frame [Height][Width]uint8

// FrameRenderer implementations display, or otherwise work with, the
// frames produced by the picture processor.
//
// NewFrame is called once per completed frame, at the horizontal-blank
// to vertical-blank transition. The renderer must not assume it is
// called on any particular goroutine but it is never called
// concurrently with itself.
type FrameRenderer interface {
	NewFrame(frame Frame) error
}

// The NilRenderer discards every frame. Useful as a placeholder and in
// tests that don't care about video output.
type NilRenderer struct{}

// NewFrame implements the FrameRenderer interface.
func (NilRenderer) NewFrame(_ Frame) error {
	return nil
}
