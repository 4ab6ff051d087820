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

// Package digest is an implementation of the FrameRenderer interface
// that produces a cryptographic hash of the video output instead of
// displaying it. The hash can be used to compare output from
// subsequent emulation executions - if a new hash differs from a
// previously recorded value then something has changed. Useful as the
// basis for regression tests.
package digest

import (
	"crypto/sha1"
	"fmt"

	"dotmatrix/lcd"
)

// Video is an implementation of the lcd.FrameRenderer interface. It
// generates a SHA-1 value, chained over every frame it has seen since
// the last reset.
//
// Note that the use of SHA-1 is fine for this application because this
// is not a cryptographic task.
type Video struct {
	digest   [sha1.Size]byte
	buffer   []byte
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video
// type.
func NewVideo() *Video {
	return &Video{
		buffer: make([]byte, sha1.Size+lcd.Width*lcd.Height),
	}
}

// Hash returns the current value of the chained fingerprint.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest resets the chained fingerprint to its starting value.
func (dig *Video) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.frameNum = 0
}

// FrameNum returns the number of frames hashed since the last reset.
func (dig *Video) FrameNum() int {
	return dig.frameNum
}

// NewFrame implements the lcd.FrameRenderer interface. Fingerprints
// are chained by hashing the previous fingerprint along with the new
// frame.
func (dig *Video) NewFrame(frame lcd.Frame) error {
	copy(dig.buffer, dig.digest[:])

	i := sha1.Size
	for y := 0; y < lcd.Height; y++ {
		for x := 0; x < lcd.Width; x++ {
			dig.buffer[i] = frame[y][x]
			i++
		}
	}

	dig.digest = sha1.Sum(dig.buffer)
	dig.frameNum++

	return nil
}
