//go:build headless

// Package sdlfe implements a window frontend based on SDL2.
// Headless builds register a stub that fails to open.
package sdlfe

import (
	"chip8go/internal/frontend"

	"github.com/pkg/errors"
)

// Name is the registered frontend name.
const Name = "sdl"

func init() {
	frontend.Register(Name, func(frontend.Config) (frontend.Frontend, error) {
		return nil, errors.New("not available in headless builds")
	})
}
