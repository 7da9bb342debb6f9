package headless

import (
	"context"
	"strings"
	"testing"

	"chip8go/internal/chip8"
	"chip8go/internal/frontend"
	"chip8go/internal/runner"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func program(opcodes ...uint16) []byte {
	var b []byte
	for _, op := range opcodes {
		b = append(b, byte(op>>8), byte(op))
	}
	return b
}

func newHeadless(t *testing.T) *Frontend {
	t.Helper()
	fe, err := frontend.Open(Name, frontend.Config{Scale: 1, Logger: log.NewTestLogger(t)})
	assert.NoError(t, err)
	h, ok := fe.(*Frontend)
	assert.True(t, ok)
	h.SetInterval(0)
	return h
}

func TestRun_DrawsAfterKeyPress(t *testing.T) {
	fe := newHeadless(t)
	fe.SetFrameLimit(10)
	fe.SetInput(func(frame uint64) [chip8.KeyCount]bool {
		var state [chip8.KeyCount]bool
		state[0x7] = frame >= 3
		return state
	})

	vm := chip8.New(
		chip8.WithLogger(log.NewTestLogger(t)),
		chip8.WithDisplay(fe),
		chip8.WithKeypad(fe),
		chip8.WithPresentEveryDraw(true),
	)
	assert.NoError(t, vm.LoadProgram(program(
		0x00E0, // CLS
		0xA000, // I = glyph 0
		0xD015, // draw at V0, V1
		0xF20A, // V2 = key
		0xF229, // I = glyph V2
		0x6008, // V0 = 8
		0xD015, // draw at V0, V1
		0x120E, // loop
	)))
	vm.Reset()

	r, err := runner.New(vm, log.NewTestLogger(t), runner.DefaultCPUHz)
	assert.NoError(t, err)

	assert.NoError(t, fe.Run(context.Background(), r.Frame))

	assert.Equal(t, uint64(10), fe.Frames())
	assert.Equal(t, byte(7), vm.V[2])
	lines := strings.Split(fe.String(), "\n")
	assert.Equal(t, "####....####", lines[0][:12])
	assert.Equal(t, "#..#.......#", lines[1][:12])
	assert.Equal(t, "####.....#..", lines[4][:12])
	assert.Equal(t, strings.Repeat(".", chip8.ScreenWidth), lines[5])
}

func TestRun_ProgramEnd(t *testing.T) {
	fe := newHeadless(t)

	vm := chip8.New(chip8.WithLogger(log.NewTestLogger(t)), chip8.WithDisplay(fe), chip8.WithKeypad(fe))
	assert.NoError(t, vm.LoadProgram(program(0x6001, 0x00E0)))
	vm.Reset()

	r, err := runner.New(vm, log.NewTestLogger(t), runner.DefaultCPUHz)
	assert.NoError(t, err)

	err = fe.Run(context.Background(), r.Frame)

	assert.True(t, chip8.IsHalt(err))
	assert.True(t, errors.Is(err, chip8.ErrEndOfProgram))
	assert.Equal(t, uint64(1), fe.Frames())
	assert.True(t, fe.Presents() >= 1)
}
