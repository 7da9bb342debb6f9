// Package config handles application configuration and setup
package config

import (
	"chip8go/internal/frontend"
	"chip8go/internal/runner"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// Default option values.
const (
	DefaultCPUHz    = runner.DefaultCPUHz
	DefaultFrontend = frontend.DefaultName
	DefaultAudio    = "beep"
	DefaultScale    = 10
	DefaultKeymap   = frontend.DefaultKeymap

	MaxScale = 64
)

// Options of the emulator.
type Options struct {
	Program string // path of the program image

	CPUHz            int
	Frontend         string
	Audio            string
	Scale            int
	Keymap           string
	PresentEveryDraw bool
	Seed             uint64 // random generator seed, 0 seeds from the clock

	Debug bool
	Quiet bool
}

// Default returns the options used when no flags are given.
func Default() Options {
	return Options{
		CPUHz:    DefaultCPUHz,
		Frontend: DefaultFrontend,
		Audio:    DefaultAudio,
		Scale:    DefaultScale,
		Keymap:   DefaultKeymap,
	}
}

// Validate checks the numeric option ranges.
func (o Options) Validate() error {
	if o.CPUHz <= 0 {
		return errors.Errorf("invalid CPU frequency %d, must be positive", o.CPUHz)
	}
	if o.Scale < 1 || o.Scale > MaxScale {
		return errors.Errorf("invalid scale %d, must be between 1 and %d", o.Scale, MaxScale)
	}
	return nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
