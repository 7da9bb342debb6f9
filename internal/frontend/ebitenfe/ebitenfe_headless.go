//go:build headless

// Package ebitenfe implements a window frontend based on ebiten.
// Headless builds register a stub that fails to open.
package ebitenfe

import (
	"chip8go/internal/frontend"

	"github.com/pkg/errors"
)

// Name is the registered frontend name.
const Name = "ebiten"

func init() {
	frontend.Register(Name, func(frontend.Config) (frontend.Frontend, error) {
		return nil, errors.New("not available in headless builds")
	})
}
