//go:build headless

package audio

import (
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

func newBeepTone(*log.Logger) (Gate, error) {
	return nil, errors.New("not available in headless builds")
}

func newOtoTone(*log.Logger) (Gate, error) {
	return nil, errors.New("not available in headless builds")
}
