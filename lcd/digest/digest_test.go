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

package digest_test

import (
	"testing"

	"dotmatrix/lcd"
	"dotmatrix/lcd/digest"
	"dotmatrix/test"
)

func TestChainedHash(t *testing.T) {
	dig := digest.NewVideo()
	start := dig.Hash()

	var frame lcd.Frame
	test.ExpectedSuccess(t, dig.NewFrame(frame))
	oneFrame := dig.Hash()
	test.ExpectedFailure(t, oneFrame == start)

	// the same frame again changes the chained value
	test.ExpectedSuccess(t, dig.NewFrame(frame))
	test.ExpectedFailure(t, dig.Hash() == oneFrame)
	test.Equate(t, dig.FrameNum(), 2)

	// identical sequences produce identical fingerprints
	other := digest.NewVideo()
	test.ExpectedSuccess(t, other.NewFrame(frame))
	test.ExpectedSuccess(t, other.NewFrame(frame))
	test.Equate(t, other.Hash(), dig.Hash())

	// differing content produces a different fingerprint
	frame[0][0] = 3
	test.ExpectedSuccess(t, other.NewFrame(frame))
	test.ExpectedSuccess(t, dig.NewFrame(lcd.Frame{}))
	test.ExpectedFailure(t, other.Hash() == dig.Hash())

	// reset returns to the starting value
	dig.ResetDigest()
	test.Equate(t, dig.Hash(), start)
	test.Equate(t, dig.FrameNum(), 0)
}
