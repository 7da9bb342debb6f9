package chip8

import (
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeDisplay struct {
	pixels   [ScreenWidth * ScreenHeight]bool
	presents int
}

func (d *fakeDisplay) SetPixel(col, row int, on bool) {
	d.pixels[row*ScreenWidth+col] = on
}

func (d *fakeDisplay) Present() {
	d.presents++
}

type fakeAudio struct {
	calls []bool
}

func (a *fakeAudio) SetTone(on bool) {
	a.calls = append(a.calls, on)
}

type fakeKeypad struct {
	pressed [KeyCount]bool
	events  []byte
}

func (k *fakeKeypad) IsPressed(key byte) bool {
	return k.pressed[key]
}

func (k *fakeKeypad) PollKeyDown() (byte, bool) {
	if len(k.events) == 0 {
		return 0, false
	}
	key := k.events[0]
	k.events = k.events[1:]
	return key, true
}

type testMachine struct {
	*Chip8

	display  *fakeDisplay
	audio    *fakeAudio
	keypad   *fakeKeypad
	unknowns []uint16
}

// newTestMachine loads the given opcodes as a program and resets the machine.
func newTestMachine(t *testing.T, opcodes ...uint16) *testMachine {
	t.Helper()

	m := &testMachine{
		display: &fakeDisplay{},
		audio:   &fakeAudio{},
		keypad:  &fakeKeypad{},
	}
	m.Chip8 = New(
		WithDisplay(m.display),
		WithAudioGate(m.audio),
		WithKeypad(m.keypad),
		WithLogger(log.NewTestLogger(t)),
		WithRandSource(rand.NewPCG(1, 2)),
		WithUnknownOpcodeHandler(func(opcode, _ uint16) {
			m.unknowns = append(m.unknowns, opcode)
		}),
	)

	program := make([]byte, 0, 2*len(opcodes))
	for _, op := range opcodes {
		program = append(program, byte(op>>8), byte(op))
	}
	assert.NoError(t, m.LoadProgram(program))
	m.Reset()
	return m
}

// run steps until the machine halts or the step limit is hit.
func (m *testMachine) run(t *testing.T, limit int) error {
	t.Helper()

	for range limit {
		status, err := m.Step()
		if status == Halt {
			return err
		}
	}
	t.Fatalf("machine did not halt within %d steps", limit)
	return nil
}

// exec runs a single instruction at PC and asserts it did not halt.
func (m *testMachine) exec(t *testing.T) {
	t.Helper()

	status, err := m.Step()
	assert.NoError(t, err)
	assert.True(t, status != Halt, "unexpected halt")
}
