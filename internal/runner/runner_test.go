package runner

import (
	"testing"

	"chip8go/internal/chip8"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeMachine struct {
	steps   int
	ticks   int
	haltAt  int
	waiting bool
}

func (m *fakeMachine) Step() (chip8.Status, error) {
	m.steps++
	if m.haltAt > 0 && m.steps >= m.haltAt {
		return chip8.Halt, chip8.ErrEndOfProgram
	}
	if m.waiting {
		return chip8.WaitingForKey, nil
	}
	return chip8.Continue, nil
}

func (m *fakeMachine) TickTimers() {
	m.ticks++
}

func TestNew_InvalidFrequency(t *testing.T) {
	_, err := New(&fakeMachine{}, log.NewTestLogger(t), 0)
	assert.True(t, err != nil)
}

func TestFrame_Cadence(t *testing.T) {
	tests := []struct {
		name      string
		cpuHz     int
		frames    int
		wantSteps int
	}{
		{name: "default over one second", cpuHz: DefaultCPUHz, frames: TimerHz, wantSteps: DefaultCPUHz},
		{name: "default first frame", cpuHz: DefaultCPUHz, frames: 1, wantSteps: 8},
		{name: "default three frames", cpuHz: DefaultCPUHz, frames: 3, wantSteps: 25},
		{name: "slower than timers", cpuHz: 30, frames: 4, wantSteps: 2},
		{name: "exact multiple", cpuHz: 600, frames: 5, wantSteps: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMachine{}
			r, err := New(m, log.NewTestLogger(t), tt.cpuHz)
			assert.NoError(t, err)

			for range tt.frames {
				assert.NoError(t, r.Frame())
			}

			assert.Equal(t, tt.wantSteps, m.steps)
			assert.Equal(t, tt.frames, m.ticks)
			assert.Equal(t, uint64(tt.frames), r.Frames())
			assert.Equal(t, uint64(tt.wantSteps), r.Steps())
		})
	}
}

func TestFrame_HaltStopsFrame(t *testing.T) {
	m := &fakeMachine{haltAt: 3}
	r, err := New(m, log.NewTestLogger(t), DefaultCPUHz)
	assert.NoError(t, err)

	err = r.Frame()

	assert.True(t, errors.Is(err, chip8.ErrEndOfProgram))
	assert.Equal(t, 3, m.steps)
	assert.Equal(t, 0, m.ticks)
}

func TestFrame_TimersRunWhileWaiting(t *testing.T) {
	m := &fakeMachine{waiting: true}
	r, err := New(m, log.NewTestLogger(t), DefaultCPUHz)
	assert.NoError(t, err)

	for range 10 {
		assert.NoError(t, r.Frame())
	}

	assert.Equal(t, 10, m.ticks)
}

func TestFrame_WithMachine(t *testing.T) {
	vm := chip8.New(chip8.WithLogger(log.NewTestLogger(t)))
	// V0 = 60, DT = V0, loop: jump to self
	assert.NoError(t, vm.LoadProgram([]byte{0x60, 0x3C, 0xF0, 0x15, 0x12, 0x04}))
	vm.Reset()

	r, err := New(vm, log.NewTestLogger(t), DefaultCPUHz)
	assert.NoError(t, err)

	assert.NoError(t, r.Frame())
	assert.Equal(t, byte(59), vm.DelayTimer)

	for range 100 {
		assert.NoError(t, r.Frame())
	}
	assert.Equal(t, byte(0), vm.DelayTimer)
	assert.Equal(t, uint16(0x204), vm.PC)
}
