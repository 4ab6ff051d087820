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

// Package sdlscreen is the SDL implementation of the FrameRenderer
// interface. As well as displaying frames it services the SDL event
// queue, translating keyboard events into joypad input. Both happen
// on the NewFrame() call, so the emulation goroutine is the only one
// touching SDL.
package sdlscreen

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"dotmatrix/curated"
	"dotmatrix/hardware/input"
	"dotmatrix/lcd"
)

// QuitRequest is returned by NewFrame() when the user has closed the
// window. It is not an error condition in any meaningful sense; the
// caller should wind down the emulation.
const QuitRequest = "sdlscreen: quit requested"

// the four shades, darkest last, in RGB. the greenish tint of the
// original display.
var shades = [4][3]byte{
	{0xe0, 0xf8, 0xd0},
	{0x88, 0xc0, 0x70},
	{0x34, 0x68, 0x56},
	{0x08, 0x18, 0x20},
}

// frame period for the limiter. the console produces 4194304/70224
// frames per second, a little under sixty.
const framePeriod = time.Second * 70224 / 4194304

// Screen is the SDL implementation of the FrameRenderer interface.
type Screen struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixels []byte

	// joypad to receive translated keyboard events. may be nil
	joypad *input.Joypad

	// the time the last frame was rendered - used to limit frame rate
	lastFrameRender time.Time

	quit bool
}

// NewScreen initialises a new instance of an SDL display. The joypad
// may be nil, in which case keyboard events are discarded.
func NewScreen(title string, scale int, joypad *input.Joypad) (*Screen, error) {
	scr := &Screen{joypad: joypad}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf("sdlscreen: %v", err)
	}

	if scale < 1 {
		scale = 1
	}

	scr.window, err = sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(lcd.Width*scale), int32(lcd.Height*scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, curated.Errorf("sdlscreen: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return nil, curated.Errorf("sdlscreen: %v", err)
	}

	// the renderer scales the texture to the window size
	err = scr.renderer.SetLogicalSize(lcd.Width, lcd.Height)
	if err != nil {
		return nil, curated.Errorf("sdlscreen: %v", err)
	}

	scr.texture, err = scr.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, lcd.Width, lcd.Height)
	if err != nil {
		return nil, curated.Errorf("sdlscreen: %v", err)
	}

	scr.pixels = make([]byte, lcd.Width*lcd.Height*4)

	return scr, nil
}

// Destroy tears down the SDL assets.
func (scr *Screen) Destroy() {
	_ = scr.texture.Destroy()
	_ = scr.renderer.Destroy()
	_ = scr.window.Destroy()
	sdl.Quit()
}

// NewFrame implements the lcd.FrameRenderer interface.
func (scr *Screen) NewFrame(frame lcd.Frame) error {
	scr.serviceEvents()
	if scr.quit {
		return curated.Errorf(QuitRequest)
	}

	i := 0
	for y := 0; y < lcd.Height; y++ {
		for x := 0; x < lcd.Width; x++ {
			s := shades[frame[y][x]&0x03]
			scr.pixels[i] = s[0]
			scr.pixels[i+1] = s[1]
			scr.pixels[i+2] = s[2]
			scr.pixels[i+3] = 255
			i += 4
		}
	}

	err := scr.texture.Update(nil, scr.pixels, lcd.Width*4)
	if err != nil {
		return curated.Errorf("sdlscreen: %v", err)
	}
	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return curated.Errorf("sdlscreen: %v", err)
	}
	scr.renderer.Present()

	scr.limitFrameRate()

	return nil
}

// limitFrameRate sleeps until the current frame has occupied its full
// period. Relying on vsync alone ties the emulation speed to the host
// refresh rate.
func (scr *Screen) limitFrameRate() {
	next := scr.lastFrameRender.Add(framePeriod)
	if wait := time.Until(next); wait > 0 {
		time.Sleep(wait)
	}
	scr.lastFrameRender = time.Now()
}

// serviceEvents drains the SDL event queue.
func (scr *Screen) serviceEvents() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.quit = true
		case *sdl.KeyboardEvent:
			scr.serviceKeyboard(ev)
		}
	}
}

func (scr *Screen) serviceKeyboard(ev *sdl.KeyboardEvent) {
	if scr.joypad == nil || ev.Repeat != 0 {
		return
	}

	var button input.Button
	switch ev.Keysym.Sym {
	case sdl.K_z:
		button = input.ButtonA
	case sdl.K_x:
		button = input.ButtonB
	case sdl.K_RSHIFT:
		button = input.ButtonSelect
	case sdl.K_RETURN:
		button = input.ButtonStart
	case sdl.K_RIGHT:
		button = input.ButtonRight
	case sdl.K_LEFT:
		button = input.ButtonLeft
	case sdl.K_UP:
		button = input.ButtonUp
	case sdl.K_DOWN:
		button = input.ButtonDown
	case sdl.K_ESCAPE:
		if ev.Type == sdl.KEYDOWN {
			scr.quit = true
		}
		return
	default:
		return
	}

	scr.joypad.SetButton(button, ev.Type == sdl.KEYDOWN)
}
