//go:build !headless

// Package ebitenfe implements a window frontend based on ebiten.
package ebitenfe

import (
	"context"

	"chip8go/internal/chip8"
	"chip8go/internal/frontend"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// Name is the registered frontend name.
const Name = "ebiten"

func init() {
	frontend.Register(Name, New)
}

// Frontend renders the screen with ebiten. Ebiten calls Update at 60 ticks
// per second which drives one machine frame each.
type Frontend struct {
	frontend.Screen

	cfg  frontend.Config
	keys map[rune]ebiten.Key

	ctx    context.Context
	frame  func() error
	err    error
	pixels []byte // RGBA
}

// New returns an ebiten frontend.
func New(cfg frontend.Config) (frontend.Frontend, error) {
	keys := make(map[rune]ebiten.Key, len(cfg.Keymap))
	for _, r := range cfg.Keymap.Runes() {
		key, ok := keyCodes[r]
		if !ok {
			return nil, errors.Errorf("key '%c' is not supported", r)
		}
		keys[r] = key
	}

	return &Frontend{
		cfg:    cfg,
		keys:   keys,
		pixels: make([]byte, chip8.ScreenWidth*chip8.ScreenHeight*4),
	}, nil
}

// Run implements frontend.Frontend. It has to be called from the main
// goroutine.
func (f *Frontend) Run(ctx context.Context, frame func() error) error {
	f.ctx = ctx
	f.frame = frame
	f.err = nil

	ebiten.SetWindowSize(chip8.ScreenWidth*f.cfg.Scale, chip8.ScreenHeight*f.cfg.Scale)
	ebiten.SetWindowTitle(f.cfg.Title)
	ebiten.SetTPS(frontend.TicksPerSecond)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(f); err != nil {
		return errors.Wrap(err, "running game loop")
	}
	return f.err
}

// Update implements ebiten.Game.
func (f *Frontend) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if err := f.ctx.Err(); err != nil {
		f.err = err
		return ebiten.Termination
	}

	f.UpdateKeys(f.cfg.Keymap.KeyState(func(r rune) bool {
		return ebiten.IsKeyPressed(f.keys[r])
	}))

	if err := f.frame(); err != nil {
		f.err = err
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (f *Frontend) Draw(screen *ebiten.Image) {
	if f.Dirty() {
		on, off := colornames.White, colornames.Black
		for y := range chip8.ScreenHeight {
			for x := range chip8.ScreenWidth {
				c := off
				if f.Pixel(x, y) {
					c = on
				}
				i := (y*chip8.ScreenWidth + x) * 4
				f.pixels[i] = c.R
				f.pixels[i+1] = c.G
				f.pixels[i+2] = c.B
				f.pixels[i+3] = c.A
			}
		}
	}
	screen.WritePixels(f.pixels)
}

// Layout implements ebiten.Game, the logical screen is scaled to the window.
func (f *Frontend) Layout(_, _ int) (int, int) {
	return chip8.ScreenWidth, chip8.ScreenHeight
}

// Close implements frontend.Frontend.
func (f *Frontend) Close() error {
	return nil
}

var keyCodes = map[rune]ebiten.Key{
	'0': ebiten.KeyDigit0, '1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3,
	'4': ebiten.KeyDigit4, '5': ebiten.KeyDigit5, '6': ebiten.KeyDigit6, '7': ebiten.KeyDigit7,
	'8': ebiten.KeyDigit8, '9': ebiten.KeyDigit9,
	'a': ebiten.KeyA, 'b': ebiten.KeyB, 'c': ebiten.KeyC, 'd': ebiten.KeyD,
	'e': ebiten.KeyE, 'f': ebiten.KeyF, 'g': ebiten.KeyG, 'h': ebiten.KeyH,
	'i': ebiten.KeyI, 'j': ebiten.KeyJ, 'k': ebiten.KeyK, 'l': ebiten.KeyL,
	'm': ebiten.KeyM, 'n': ebiten.KeyN, 'o': ebiten.KeyO, 'p': ebiten.KeyP,
	'q': ebiten.KeyQ, 'r': ebiten.KeyR, 's': ebiten.KeyS, 't': ebiten.KeyT,
	'u': ebiten.KeyU, 'v': ebiten.KeyV, 'w': ebiten.KeyW, 'x': ebiten.KeyX,
	'y': ebiten.KeyY, 'z': ebiten.KeyZ,
}
