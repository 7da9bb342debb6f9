package termfe

import (
	"testing"

	"chip8go/internal/frontend"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestFrontend(t *testing.T) *Frontend {
	t.Helper()
	return &Frontend{
		cfg:    frontend.Config{Keymap: frontend.Cosmac, Logger: log.NewTestLogger(t)},
		events: make(chan termbox.Event, 8),
	}
}

func TestCell(t *testing.T) {
	assert.Equal(t, ' ', cell(false, false))
	assert.Equal(t, '▀', cell(true, false))
	assert.Equal(t, '▄', cell(false, true))
	assert.Equal(t, '█', cell(true, true))
}

func TestPoll_KeyHeldForFrames(t *testing.T) {
	f := newTestFrontend(t)
	f.events <- termbox.Event{Type: termbox.EventKey, Ch: 'W'}

	assert.True(t, f.poll())
	assert.True(t, f.IsPressed(0x5))
	key, ok := f.PollKeyDown()
	assert.True(t, ok)
	assert.Equal(t, byte(0x5), key)

	for range holdFrames - 1 {
		assert.True(t, f.poll())
		assert.True(t, f.IsPressed(0x5))
	}
	_, ok = f.PollKeyDown()
	assert.False(t, ok, "held key does not repeat the key down event")

	assert.True(t, f.poll())
	assert.False(t, f.IsPressed(0x5))
}

func TestPoll_UnmappedKey(t *testing.T) {
	f := newTestFrontend(t)
	f.events <- termbox.Event{Type: termbox.EventKey, Ch: 'p'}

	assert.True(t, f.poll())

	_, ok := f.PollKeyDown()
	assert.False(t, ok)
}

func TestPoll_Quit(t *testing.T) {
	tests := []termbox.Event{
		{Type: termbox.EventKey, Key: termbox.KeyEsc},
		{Type: termbox.EventKey, Key: termbox.KeyCtrlC},
		{Type: termbox.EventError, Err: errors.New("read failed")},
	}

	for _, ev := range tests {
		f := newTestFrontend(t)
		f.events <- ev
		assert.False(t, f.poll())
	}
}
