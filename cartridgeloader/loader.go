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

// Package cartridgeloader is used to specify the cartridge to load
// into the emulated machine and to retrieve the cartridge data, either
// from the local file system or over HTTP.
package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"dotmatrix/curated"
)

// Loader is used to specify the cartridge to use when attaching to the
// emulated machine.
type Loader struct {
	// filename of cartridge to load.
	Filename string

	// expected hash of the loaded cartridge. empty string indicates that
	// the hash is unknown and need not be validated. after a load
	// operation the value will be the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() will return a
	// copy of this data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader
// type. The data is not read until Load() is called.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// FileExtensions is the list of file extensions that are recognised by
// the cartridgeloader package.
var FileExtensions = [...]string{".gb", ".dmg", ".bin", ".rom"}

// ShortName returns a shortened version of the Loader filename.
func (cl Loader) ShortName() string {
	shortCartName := path.Base(cl.Filename)
	shortCartName = strings.TrimSuffix(shortCartName, path.Ext(cl.Filename))
	return shortCartName
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the cartridge data. Loader filenames with a valid scheme will
// use that method to load the data. Currently supported schemes are
// HTTP and local files.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	scheme := "file"

	url, err := url.Parse(cl.Filename)
	if err == nil {
		scheme = url.Scheme
	}

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}
		defer resp.Body.Close()

		cl.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

	case "file":
		fallthrough

	case "":
		cl.Data, err = os.ReadFile(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

	default:
		return curated.Errorf("cartridgeloader: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	// generate hash
	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))

	// check for hash consistency
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf("cartridgeloader: %v", "unexpected hash value")
	}

	cl.Hash = hash

	return nil
}
