//go:build !headless

// Package sdlfe implements a window frontend based on SDL2.
package sdlfe

import (
	"context"
	"runtime"

	"chip8go/internal/chip8"
	"chip8go/internal/frontend"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/colornames"
)

// Name is the registered frontend name.
const Name = "sdl"

func init() {
	frontend.Register(Name, New)
}

// Frontend renders the screen with an SDL renderer.
type Frontend struct {
	frontend.Screen

	cfg      frontend.Config
	window   *sdl.Window
	renderer *sdl.Renderer

	closed bool
}

// New returns an SDL frontend. The window is created by Run.
func New(cfg frontend.Config) (frontend.Frontend, error) {
	for _, r := range cfg.Keymap.Runes() {
		if !supportedRune(r) {
			return nil, errors.Errorf("key '%c' is not supported", r)
		}
	}

	return &Frontend{
		cfg: cfg,
	}, nil
}

// SDL keycodes of printable keys are their lower case ASCII values.
func supportedRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z')
}

// Run implements frontend.Frontend. It has to be called from the main
// goroutine.
func (f *Frontend) Run(ctx context.Context, frame func() error) error {
	runtime.LockOSThread() // SDL calls have to stay on one thread
	defer runtime.UnlockOSThread()

	if err := f.open(); err != nil {
		return err
	}
	defer f.destroy()

	f.draw()
	return frontend.Loop(ctx, frontend.FrameInterval, frame, f.poll, f.render)
}

func (f *Frontend) open() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return errors.Wrap(err, "initializing SDL")
	}

	width := int32(chip8.ScreenWidth * f.cfg.Scale)
	height := int32(chip8.ScreenHeight * f.cfg.Scale)
	window, err := sdl.CreateWindow(f.cfg.Title, sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED, width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return errors.Wrap(err, "creating window")
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return errors.Wrap(err, "creating renderer")
	}

	f.window = window
	f.renderer = renderer
	f.cfg.Logger.Debug("Window created", log.Int("width", int(width)), log.Int("height", int(height)))
	return nil
}

func (f *Frontend) destroy() {
	if err := f.renderer.Destroy(); err != nil {
		f.cfg.Logger.Error("Destroying renderer failed", log.Err(err))
	}
	if err := f.window.Destroy(); err != nil {
		f.cfg.Logger.Error("Destroying window failed", log.Err(err))
	}
	sdl.Quit()
}

func (f *Frontend) poll() bool {
	f.BeginFrame()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			f.closed = true

		case *sdl.KeyboardEvent:
			if t.Repeat != 0 {
				continue
			}
			f.handleKey(t.Keysym.Sym, t.Type == sdl.KEYDOWN)
		}
	}
	return !f.closed
}

// handleKey forwards a key event to the keypad as it arrives, so a press
// and release between two frames still produces a key down event.
func (f *Frontend) handleKey(sym sdl.Keycode, down bool) {
	if sym == sdl.K_ESCAPE {
		f.closed = true
		return
	}

	key, ok := f.cfg.Keymap.Lookup(rune(sym))
	if !ok {
		return
	}
	if down {
		f.KeyDown(key)
	} else {
		f.KeyUp(key)
	}
}

func (f *Frontend) render() {
	if f.Dirty() {
		f.draw()
	}
}

func (f *Frontend) draw() {
	bg, fg := colornames.Black, colornames.White
	_ = f.renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	_ = f.renderer.Clear()
	_ = f.renderer.SetDrawColor(fg.R, fg.G, fg.B, fg.A)

	scale := int32(f.cfg.Scale)
	for y := range chip8.ScreenHeight {
		for x := range chip8.ScreenWidth {
			if !f.Pixel(x, y) {
				continue
			}
			rect := sdl.Rect{X: int32(x) * scale, Y: int32(y) * scale, W: scale, H: scale}
			_ = f.renderer.FillRect(&rect)
		}
	}

	f.renderer.Present()
}

// Close implements frontend.Frontend.
func (f *Frontend) Close() error {
	return nil
}
