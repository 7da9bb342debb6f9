package frontend

import (
	"chip8go/internal/chip8"
)

// Screen is the display and keypad state shared by the frontends. The
// machine writes pixels into a back buffer, Present publishes it to the
// visible buffer that the frontend renders. Key state is fed by the frontend
// once per frame, either as sampled levels or as individual key events.
//
// Screen is not safe for concurrent use; frontends access it from their
// frame loop only.
type Screen struct {
	back    [chip8.ScreenWidth * chip8.ScreenHeight]bool
	visible [chip8.ScreenWidth * chip8.ScreenHeight]bool
	dirty   bool

	keys    [chip8.KeyCount]bool
	pressed []byte // key down events of the current frame
}

// SetPixel implements chip8.Display.
func (s *Screen) SetPixel(col, row int, on bool) {
	if col < 0 || col >= chip8.ScreenWidth || row < 0 || row >= chip8.ScreenHeight {
		return
	}
	s.back[row*chip8.ScreenWidth+col] = on
}

// Present implements chip8.Display.
func (s *Screen) Present() {
	s.visible = s.back
	s.dirty = true
}

// Pixel returns whether the visible pixel at col, row is lit.
func (s *Screen) Pixel(col, row int) bool {
	return s.visible[row*chip8.ScreenWidth+col]
}

// Dirty reports whether the picture was presented since the last call.
func (s *Screen) Dirty() bool {
	dirty := s.dirty
	s.dirty = false
	return dirty
}

// IsPressed implements chip8.Keypad.
func (s *Screen) IsPressed(key byte) bool {
	return s.keys[key&0xF]
}

// PollKeyDown implements chip8.Keypad. It returns the key down events of the
// current frame in the order they happened.
func (s *Screen) PollKeyDown() (byte, bool) {
	if len(s.pressed) == 0 {
		return 0, false
	}
	key := s.pressed[0]
	s.pressed = s.pressed[1:]
	return key, true
}

// BeginFrame starts a new input frame. Key down events that were not
// consumed in the previous frame are dropped.
func (s *Screen) BeginFrame() {
	s.pressed = s.pressed[:0]
}

// KeyDown marks key as held and queues a key down event if it was up.
func (s *Screen) KeyDown(key byte) {
	key &= 0xF
	if !s.keys[key] {
		s.pressed = append(s.pressed, key)
	}
	s.keys[key] = true
}

// KeyUp marks key as released. A queued key down event stays queued, so a
// tap within one frame is still seen by a waiting Fx0A.
func (s *Screen) KeyUp(key byte) {
	s.keys[key&0xF] = false
}

// UpdateKeys starts a new input frame from a sampled key state: a key down
// event is queued for every key that is pressed now but was not before.
// Frontends that only see levels use this, event driven ones call
// BeginFrame, KeyDown and KeyUp instead.
func (s *Screen) UpdateKeys(state [chip8.KeyCount]bool) {
	s.BeginFrame()
	for key, down := range state {
		if down {
			s.KeyDown(byte(key))
		} else {
			s.KeyUp(byte(key))
		}
	}
}

// KeyState collects the logical keypad state from a predicate that reports
// whether the host key for a character is held down.
func (k Keymap) KeyState(held func(r rune) bool) [chip8.KeyCount]bool {
	var state [chip8.KeyCount]bool
	for r, key := range k {
		if held(r) {
			state[key&0xF] = true
		}
	}
	return state
}
