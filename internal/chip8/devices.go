package chip8

// Display is the surface the framebuffer is mirrored into. The machine sets
// every pixel and then calls Present whenever the picture should be shown.
type Display interface {
	SetPixel(col, row int, on bool)
	Present()
}

// AudioGate switches the tone on and off. It is only called when the sound
// timer changes between zero and nonzero.
type AudioGate interface {
	SetTone(on bool)
}

// Keypad exposes the 16-key hexadecimal keypad, indexed by logical key 0x0-0xF.
type Keypad interface {
	IsPressed(key byte) bool
	// PollKeyDown returns the next key press event, if any.
	PollKeyDown() (byte, bool)
}

type nopDisplay struct{}

func (nopDisplay) SetPixel(int, int, bool) {}
func (nopDisplay) Present()                {}

type nopAudioGate struct{}

func (nopAudioGate) SetTone(bool) {}

type nopKeypad struct{}

func (nopKeypad) IsPressed(byte) bool       { return false }
func (nopKeypad) PollKeyDown() (byte, bool) { return 0, false }
