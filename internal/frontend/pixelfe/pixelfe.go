//go:build !headless

// Package pixelfe implements a window frontend based on faiface/pixel.
package pixelfe

import (
	"context"

	"chip8go/internal/chip8"
	"chip8go/internal/frontend"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/colornames"
)

// Name is the registered frontend name.
const Name = "pixel"

func init() {
	frontend.Register(Name, New)
}

// Frontend renders the screen into a pixelgl window.
type Frontend struct {
	frontend.Screen

	cfg     frontend.Config
	buttons map[rune]pixelgl.Button
	win     *pixelgl.Window
	imd     *imdraw.IMDraw
}

// New returns a pixel frontend. The window is created by Run, as pixelgl
// requires all window calls to happen on the main thread.
func New(cfg frontend.Config) (frontend.Frontend, error) {
	buttons := make(map[rune]pixelgl.Button, len(cfg.Keymap))
	for _, r := range cfg.Keymap.Runes() {
		button, ok := keyButtons[r]
		if !ok {
			return nil, errors.Errorf("key '%c' is not supported", r)
		}
		buttons[r] = button
	}

	return &Frontend{
		cfg:     cfg,
		buttons: buttons,
	}, nil
}

// Run implements frontend.Frontend. It has to be called from the main
// goroutine.
func (f *Frontend) Run(ctx context.Context, frame func() error) error {
	var err error
	pixelgl.Run(func() {
		err = f.run(ctx, frame)
	})
	return err
}

func (f *Frontend) run(ctx context.Context, frame func() error) error {
	cfg := pixelgl.WindowConfig{
		Title:  f.cfg.Title,
		Bounds: pixel.R(0, 0, float64(chip8.ScreenWidth*f.cfg.Scale), float64(chip8.ScreenHeight*f.cfg.Scale)),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return errors.Wrap(err, "creating window")
	}
	f.win = win
	f.imd = imdraw.New(nil)
	defer f.win.Destroy()

	f.cfg.Logger.Debug("Window created",
		log.Int("width", chip8.ScreenWidth*f.cfg.Scale),
		log.Int("height", chip8.ScreenHeight*f.cfg.Scale))

	f.draw()
	return frontend.Loop(ctx, frontend.FrameInterval, frame, f.poll, f.render)
}

func (f *Frontend) poll() bool {
	if f.win.Closed() || f.win.JustPressed(pixelgl.KeyEscape) {
		return false
	}
	f.UpdateKeys(f.cfg.Keymap.KeyState(func(r rune) bool {
		return f.win.Pressed(f.buttons[r])
	}))
	return true
}

func (f *Frontend) render() {
	if f.Dirty() {
		f.draw()
	}
	f.win.Update()
}

func (f *Frontend) draw() {
	f.win.Clear(colornames.Black)
	f.imd.Clear()
	f.imd.Color = colornames.White

	scale := float64(f.cfg.Scale)
	for y := range chip8.ScreenHeight {
		for x := range chip8.ScreenWidth {
			if !f.Pixel(x, y) {
				continue
			}
			// pixel's origin is the bottom left corner
			top := float64(chip8.ScreenHeight - y)
			f.imd.Push(
				pixel.V(float64(x)*scale, (top-1)*scale),
				pixel.V(float64(x+1)*scale, top*scale),
			)
			f.imd.Rectangle(0)
		}
	}

	f.imd.Draw(f.win)
}

// Close implements frontend.Frontend.
func (f *Frontend) Close() error {
	return nil
}

var keyButtons = map[rune]pixelgl.Button{
	'0': pixelgl.Key0, '1': pixelgl.Key1, '2': pixelgl.Key2, '3': pixelgl.Key3,
	'4': pixelgl.Key4, '5': pixelgl.Key5, '6': pixelgl.Key6, '7': pixelgl.Key7,
	'8': pixelgl.Key8, '9': pixelgl.Key9,
	'a': pixelgl.KeyA, 'b': pixelgl.KeyB, 'c': pixelgl.KeyC, 'd': pixelgl.KeyD,
	'e': pixelgl.KeyE, 'f': pixelgl.KeyF, 'g': pixelgl.KeyG, 'h': pixelgl.KeyH,
	'i': pixelgl.KeyI, 'j': pixelgl.KeyJ, 'k': pixelgl.KeyK, 'l': pixelgl.KeyL,
	'm': pixelgl.KeyM, 'n': pixelgl.KeyN, 'o': pixelgl.KeyO, 'p': pixelgl.KeyP,
	'q': pixelgl.KeyQ, 'r': pixelgl.KeyR, 's': pixelgl.KeyS, 't': pixelgl.KeyT,
	'u': pixelgl.KeyU, 'v': pixelgl.KeyV, 'w': pixelgl.KeyW, 'x': pixelgl.KeyX,
	'y': pixelgl.KeyY, 'z': pixelgl.KeyZ,
}
