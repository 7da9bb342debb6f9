//go:build headless

// Package pixelfe implements a window frontend based on faiface/pixel.
// Headless builds register a stub that fails to open.
package pixelfe

import (
	"chip8go/internal/frontend"

	"github.com/pkg/errors"
)

// Name is the registered frontend name.
const Name = "pixel"

func init() {
	frontend.Register(Name, func(frontend.Config) (frontend.Frontend, error) {
		return nil, errors.New("not available in headless builds")
	})
}
