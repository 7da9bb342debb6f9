// Package loader reads program images from disk.
package loader

import (
	"os"

	"chip8go/internal/chip8"

	"github.com/pkg/errors"
)

// ErrEmptyProgram is returned for files without content.
var ErrEmptyProgram = errors.New("program is empty")

// Load reads the raw program image at path. The image is loaded without any
// header and has to fit into the program area of the memory.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading program file")
	}

	if len(data) == 0 {
		return nil, errors.Wrapf(ErrEmptyProgram, "file '%s'", path)
	}
	if len(data) > chip8.MaxProgramSize {
		return nil, errors.Wrapf(chip8.ErrProgramTooLarge, "file '%s' has %d bytes, maximum is %d",
			path, len(data), chip8.MaxProgramSize)
	}
	return data, nil
}
