// Package runner implements the driver loop cadences: instructions run at a
// configurable CPU frequency and the timers tick at 60 Hz, both gated on the
// frame clock of the frontend.
package runner

import (
	"chip8go/internal/chip8"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// Default cadences.
const (
	DefaultCPUHz = 500
	TimerHz      = 60
)

// Machine is the part of the virtual machine the loop drives.
type Machine interface {
	Step() (chip8.Status, error)
	TickTimers()
}

// Runner runs a machine one 60 Hz frame at a time.
type Runner struct {
	machine Machine
	logger  *log.Logger
	cpuHz   int

	budget int // instruction credit in units of 1/TimerHz
	frames uint64
	steps  uint64
}

// New returns a runner executing cpuHz instructions per second.
func New(machine Machine, logger *log.Logger, cpuHz int) (*Runner, error) {
	if cpuHz <= 0 {
		return nil, errors.Errorf("invalid CPU frequency %d Hz", cpuHz)
	}
	return &Runner{
		machine: machine,
		logger:  logger,
		cpuHz:   cpuHz,
	}, nil
}

// Frame advances the machine by one timer period. It executes the
// instructions due in this period, then ticks the timers once. An error
// means the program ended, see chip8.IsHalt.
func (r *Runner) Frame() error {
	r.frames++

	r.budget += r.cpuHz
	for r.budget >= TimerHz {
		r.budget -= TimerHz
		r.steps++

		if _, err := r.machine.Step(); err != nil {
			r.logger.Debug("Machine halted",
				log.Int("frames", int(r.frames)),
				log.Int("steps", int(r.steps)))
			return err
		}
	}

	r.machine.TickTimers()
	return nil
}

// Frames returns the number of frames run so far.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Steps returns the number of instructions attempted so far.
func (r *Runner) Steps() uint64 {
	return r.steps
}
