// Package headless provides a frontend without any window or terminal output.
// It keeps the picture in memory and can be fed scripted key input.
package headless

import (
	"context"
	"time"

	"chip8go/internal/chip8"
	"chip8go/internal/frontend"

	"github.com/retroenv/retrogolib/log"
)

// Name is the registered frontend name.
const Name = "headless"

func init() {
	frontend.Register(Name, func(cfg frontend.Config) (frontend.Frontend, error) {
		return New(cfg), nil
	})
}

// Input returns the keypad state for the given frame number.
type Input func(frame uint64) [chip8.KeyCount]bool

// Frontend is an in-memory frontend.
type Frontend struct {
	frontend.Screen

	logger   *log.Logger
	interval time.Duration
	input    Input
	limit    uint64
	frames   uint64
	presents uint64
}

// New returns a headless frontend running in real time.
func New(cfg frontend.Config) *Frontend {
	return &Frontend{
		logger:   cfg.Logger,
		interval: frontend.FrameInterval,
	}
}

// SetInterval sets the wall clock time between frames, 0 runs frames back
// to back.
func (f *Frontend) SetInterval(interval time.Duration) {
	f.interval = interval
}

// SetInput sets the source of the scripted key input.
func (f *Frontend) SetInput(input Input) {
	f.input = input
}

// SetFrameLimit stops Run after the given number of frames, 0 means no limit.
func (f *Frontend) SetFrameLimit(frames uint64) {
	f.limit = frames
}

// Frames returns the number of frames run.
func (f *Frontend) Frames() uint64 {
	return f.frames
}

// Presents returns the number of pictures shown.
func (f *Frontend) Presents() uint64 {
	return f.presents
}

// Run implements frontend.Frontend.
func (f *Frontend) Run(ctx context.Context, frame func() error) error {
	return frontend.Loop(ctx, f.interval, frame, f.poll, f.render)
}

func (f *Frontend) poll() bool {
	if f.limit > 0 && f.frames >= f.limit {
		f.logger.Debug("Frame limit reached", log.Int("frames", int(f.frames)))
		return false
	}

	var state [chip8.KeyCount]bool
	if f.input != nil {
		state = f.input(f.frames)
	}
	f.UpdateKeys(state)
	f.frames++
	return true
}

func (f *Frontend) render() {
	if f.Dirty() {
		f.presents++
	}
}

// String returns the visible picture, one line per row, '#' for lit pixels.
func (f *Frontend) String() string {
	buf := make([]byte, 0, (chip8.ScreenWidth+1)*chip8.ScreenHeight)
	for row := range chip8.ScreenHeight {
		for col := range chip8.ScreenWidth {
			if f.Pixel(col, row) {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// Close implements frontend.Frontend.
func (f *Frontend) Close() error {
	return nil
}
