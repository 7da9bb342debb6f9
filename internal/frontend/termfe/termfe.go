// Package termfe implements a terminal frontend based on termbox. Two screen
// rows share one character cell using half block characters.
package termfe

import (
	"context"
	"os"

	"chip8go/internal/chip8"
	"chip8go/internal/frontend"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Name is the registered frontend name.
const Name = "terminal"

// Terminals only report key presses, a key counts as held for this many
// frames after its last press or auto repeat.
const holdFrames = 10

// Terminal size needed to show the whole screen.
const (
	Columns = chip8.ScreenWidth
	Rows    = chip8.ScreenHeight / 2
)

func init() {
	frontend.Register(Name, New)
}

// Frontend renders the screen into the terminal.
type Frontend struct {
	frontend.Screen

	cfg    frontend.Config
	events chan termbox.Event
	held   [chip8.KeyCount]int // remaining hold frames per key
	closed bool
}

// New returns a terminal frontend. It fails if stdout is not a terminal or
// the terminal is too small.
func New(cfg frontend.Config) (frontend.Frontend, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdout is not a terminal")
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return nil, errors.Wrap(err, "getting terminal size")
	}
	if width < Columns || height < Rows {
		return nil, errors.Errorf("terminal size %dx%d is smaller than %dx%d", width, height, Columns, Rows)
	}

	return &Frontend{
		cfg:    cfg,
		events: make(chan termbox.Event, 64),
	}, nil
}

// Run implements frontend.Frontend.
func (f *Frontend) Run(ctx context.Context, frame func() error) error {
	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "initializing terminal")
	}

	done := make(chan struct{})
	go f.pollEvents(done)
	defer func() {
		termbox.Interrupt()
		<-done
		termbox.Close()
	}()

	f.draw()
	return frontend.Loop(ctx, frontend.FrameInterval, frame, f.poll, f.render)
}

func (f *Frontend) pollEvents(done chan<- struct{}) {
	defer close(done)
	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		// never block, Interrupt needs this goroutine back in PollEvent
		select {
		case f.events <- ev:
		default:
		}
	}
}

func (f *Frontend) poll() bool {
	for i := range f.held {
		if f.held[i] > 0 {
			f.held[i]--
		}
	}

drain:
	for {
		select {
		case ev := <-f.events:
			f.handleEvent(ev)
		default:
			break drain
		}
	}
	if f.closed {
		return false
	}

	var state [chip8.KeyCount]bool
	for i, frames := range f.held {
		state[i] = frames > 0
	}
	f.UpdateKeys(state)
	return true
}

func (f *Frontend) handleEvent(ev termbox.Event) {
	switch ev.Type {
	case termbox.EventKey:
		if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
			f.closed = true
			return
		}
		if key, ok := f.cfg.Keymap.Lookup(ev.Ch); ok {
			f.held[key] = holdFrames
		}

	case termbox.EventResize:
		f.draw()

	case termbox.EventError:
		f.cfg.Logger.Error("Terminal error", log.Err(ev.Err))
		f.closed = true
	}
}

func (f *Frontend) render() {
	if f.Dirty() {
		f.draw()
	}
}

func (f *Frontend) draw() {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for row := range Rows {
		for col := range Columns {
			ch := cell(f.Pixel(col, row*2), f.Pixel(col, row*2+1))
			termbox.SetCell(col, row, ch, termbox.ColorDefault, termbox.ColorDefault)
		}
	}
	if err := termbox.Flush(); err != nil {
		f.cfg.Logger.Error("Flushing terminal failed", log.Err(err))
	}
}

// cell returns the character showing an upper and a lower pixel.
func cell(upper, lower bool) rune {
	switch {
	case upper && lower:
		return '█'
	case upper:
		return '▀'
	case lower:
		return '▄'
	default:
		return ' '
	}
}

// Close implements frontend.Frontend.
func (f *Frontend) Close() error {
	return nil
}
