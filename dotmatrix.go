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

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"dotmatrix/cartridgeloader"
	"dotmatrix/curated"
	"dotmatrix/hardware"
	"dotmatrix/lcd/sdlscreen"
	"dotmatrix/logger"
	"dotmatrix/statsview"
	"dotmatrix/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	scale := flag.Int("scale", 4, "window scale factor")
	frames := flag.Int("frames", -1, "run for the stated number of frames and then quit")
	headless := flag.Bool("headless", false, "run without a display. useful with -frames")
	echoLog := flag.Bool("log", false, "echo log entries to stderr as they happen")
	stats := flag.Bool("statsview", false, "run stats server")
	showVersion := flag.Bool("version", false, "print version and quit")
	flag.Parse()

	if *showVersion {
		vers, rev, release := version.Version()
		if release {
			fmt.Printf("%s %s\n", version.ApplicationName, vers)
		} else {
			fmt.Printf("%s %s (%s)\n", version.ApplicationName, vers, rev)
		}
		return 0
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] cartridge\n", os.Args[0])
		flag.PrintDefaults()
		return 10
	}

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("statsview not available in this build. rebuild with '-tags statsview'")
			return 10
		}
	}

	dmg := hardware.NewDMG(nil)

	if !*headless {
		scr, err := sdlscreen.NewScreen("Dotmatrix", *scale, dmg.Joypad)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 10
		}
		defer scr.Destroy()
		dmg.PPU.Plumb(scr)
	}

	cartload := cartridgeloader.NewLoader(flag.Arg(0))
	if err := dmg.AttachCartridge(cartload); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 10
	}
	logger.Logf("dotmatrix", "%v", dmg.Mem.Cart)

	// ctrl-c ends the emulation cleanly
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	continueCheck := func() (bool, error) {
		select {
		case <-intChan:
			return false, nil
		default:
		}
		if *frames >= 0 && dmg.PPU.FrameNum >= *frames {
			return false, nil
		}
		return true, nil
	}

	err := dmg.Run(continueCheck)
	if err != nil && !curated.Is(err, sdlscreen.QuitRequest) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logger.Tail(os.Stderr, 10)
		return 10
	}

	return 0
}
