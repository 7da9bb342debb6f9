// Package frontend contains the display and keypad adapters the machine runs
// against. Every frontend owns the wall clock of the program: it polls the
// host input, runs one machine frame and shows the picture, 60 times per
// second, until the program ends or the context is canceled.
package frontend

import (
	"context"
	"sort"
	"time"

	"chip8go/internal/chip8"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// DefaultName is the frontend used when none is selected.
const DefaultName = "pixel"

// TicksPerSecond is the frame rate of all frontends, matching the timer
// frequency of the machine.
const TicksPerSecond = 60

// FrameInterval is the wall clock period of one machine frame.
const FrameInterval = time.Second / TicksPerSecond

// Frontend is a display surface and keypad that drives the machine.
type Frontend interface {
	chip8.Display
	chip8.Keypad

	// Run calls frame once per FrameInterval until it returns an error, the
	// user closes the frontend or ctx is canceled. The error returned by
	// frame is passed through unchanged.
	Run(ctx context.Context, frame func() error) error
	Close() error
}

// Config contains the settings shared by all frontends.
type Config struct {
	Title  string
	Scale  int
	Keymap Keymap
	Logger *log.Logger
}

// Factory creates a frontend.
type Factory func(cfg Config) (Frontend, error)

var factories = map[string]Factory{}

// Register makes a frontend available by name. It panics if the name is
// registered twice.
func Register(name string, factory Factory) {
	if _, ok := factories[name]; ok {
		panic("frontend already registered: " + name)
	}
	factories[name] = factory
}

// Names returns the sorted names of all registered frontends.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates the frontend registered under name.
func Open(name string, cfg Config) (Frontend, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, errors.Errorf("unsupported frontend '%s'", name)
	}

	if cfg.Scale <= 0 {
		return nil, errors.Errorf("invalid scale %d", cfg.Scale)
	}
	if cfg.Keymap == nil {
		cfg.Keymap = Cosmac
	}
	if cfg.Title == "" {
		cfg.Title = "CHIP-8"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithConfig(log.DefaultConfig())
	}

	fe, err := factory(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "opening frontend '%s'", name)
	}
	return fe, nil
}
