package chip8

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors that end a run. They are normal program-end conditions, not crashes.
var (
	ErrEndOfProgram   = errors.New("program counter ran past the end of the loaded program")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("no address to return to")
)

// ErrProgramTooLarge is returned when a program image does not fit between
// 0x200 and the end of memory.
var ErrProgramTooLarge = errors.New("program too large")

// IsHalt reports whether err is one of the conditions that end a run.
func IsHalt(err error) bool {
	return errors.Is(err, ErrEndOfProgram) ||
		errors.Is(err, ErrStackOverflow) ||
		errors.Is(err, ErrStackUnderflow)
}

func hex16(v uint16) string {
	return fmt.Sprintf("0x%04X", v)
}
