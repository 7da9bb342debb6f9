// Package chip8 implements the CHIP-8 virtual machine: 4 KiB of memory, the
// register file, the call stack, the delay and sound timers, the 64x32
// monochrome framebuffer and the standard instruction set.
//
// The machine owns all interpreter state. Presentation, sound and keyboard
// input are reached through the Display, AudioGate and Keypad interfaces so
// that any frontend can drive it.
package chip8

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// Memory layout and machine limits.
const (
	MemorySize            = 4096
	AddressMask           = 0x0FFF // all addresses are 12 bits wide
	InitialProgramCounter = 0x200
	MaxProgramSize        = MemorySize - InitialProgramCounter
	RegisterCount         = 16
	KeyCount              = 16
)

// Status is the outcome of a single Step.
type Status int

const (
	// Continue means the instruction executed and the next one can be fetched.
	Continue Status = iota
	// WaitingForKey means the machine is suspended in Fx0A until a key is pressed.
	WaitingForKey
	// Halt means the run is over, the error returned next to it tells why.
	Halt
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case WaitingForKey:
		return "waiting for key"
	case Halt:
		return "halt"
	default:
		return "unknown"
	}
}

// UnknownOpcodeHandler is called for every fetched opcode that matches no
// instruction. pc is the address the opcode was fetched from.
type UnknownOpcodeHandler func(opcode, pc uint16)

// Chip8 is a single CHIP-8 virtual machine instance.
type Chip8 struct {
	// VF is also used as a flag register for carry, borrow and collision,
	// several instructions overwrite it as a side effect.
	V [RegisterCount]byte

	Memory Memory

	I  uint16
	PC uint16

	// CHIP-8 allows for up to 16 nested subroutine calls
	Stack Stack

	DelayTimer byte
	SoundTimer byte

	Framebuffer Framebuffer

	programSize  int
	waiting      bool
	waitRegister byte

	display Display
	audio   AudioGate
	keypad  Keypad

	rng              *rand.Rand
	logger           *log.Logger
	onUnknown        UnknownOpcodeHandler
	presentEveryDraw bool
	trace            bool
}

// Option configures a Chip8 at construction time.
type Option func(*Chip8)

// WithDisplay sets the surface the framebuffer is mirrored into.
func WithDisplay(display Display) Option {
	return func(c *Chip8) { c.display = display }
}

// WithAudioGate sets the tone gate driven by the sound timer.
func WithAudioGate(audio AudioGate) Option {
	return func(c *Chip8) { c.audio = audio }
}

// WithKeypad sets the input source queried by the key instructions.
func WithKeypad(keypad Keypad) Option {
	return func(c *Chip8) { c.keypad = keypad }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Chip8) { c.logger = logger }
}

// WithRandSource sets the source for the Cxkk random instruction.
func WithRandSource(src rand.Source) Option {
	return func(c *Chip8) { c.rng = rand.New(src) }
}

// WithUnknownOpcodeHandler replaces the default handler, which logs a warning.
func WithUnknownOpcodeHandler(handler UnknownOpcodeHandler) Option {
	return func(c *Chip8) { c.onUnknown = handler }
}

// WithPresentEveryDraw presents the framebuffer after every sprite draw
// instead of only after draws that caused a collision.
func WithPresentEveryDraw(enabled bool) Option {
	return func(c *Chip8) { c.presentEveryDraw = enabled }
}

// WithTrace logs every executed instruction at debug level.
func WithTrace(enabled bool) Option {
	return func(c *Chip8) { c.trace = enabled }
}

// New creates a virtual machine with zeroed state and the font set installed.
func New(options ...Option) *Chip8 {
	seed := uint64(time.Now().UnixNano())
	c := &Chip8{
		PC:      InitialProgramCounter,
		display: nopDisplay{},
		audio:   nopAudioGate{},
		keypad:  nopKeypad{},
		rng:     rand.New(rand.NewPCG(seed, seed>>32)),
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = log.NewWithConfig(log.DefaultConfig())
	}
	if c.onUnknown == nil {
		c.onUnknown = c.logUnknownOpcode
	}

	c.loadFontset()
	return c
}

// LoadProgram copies the program image into memory starting at 0x200 and
// records its size. No other state is reset.
func (c *Chip8) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return errors.Wrapf(ErrProgramTooLarge, "%d bytes (max: %d)", len(program), MaxProgramSize)
	}

	c.Memory.Load(InitialProgramCounter, program)
	c.programSize = len(program)
	return nil
}

// ProgramSize returns the length of the loaded program image.
func (c *Chip8) ProgramSize() int {
	return c.programSize
}

// Reset prepares the machine to run the loaded program: PC, stack pointer,
// timers and the index register return to their initial values and the
// framebuffer is cleared. Registers and memory are left as they are.
func (c *Chip8) Reset() {
	c.PC = InitialProgramCounter
	c.Stack.Reset()
	c.DelayTimer = 0
	c.setSoundTimer(0)
	c.I = 0
	c.waiting = false

	// Some programs don't clear the screen themselves.
	c.clearScreen()
}

// Waiting reports whether the machine is suspended in a key wait.
func (c *Chip8) Waiting() bool {
	return c.waiting
}

// Close releases the display and audio gate if they hold resources.
func (c *Chip8) Close() error {
	var firstErr error
	for _, device := range []any{c.display, c.audio} {
		closer, ok := device.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "closing device")
		}
	}
	return firstErr
}

func (c *Chip8) logUnknownOpcode(opcode, pc uint16) {
	c.logger.Warn("Unknown opcode",
		log.String("opcode", hex16(opcode)),
		log.String("pc", hex16(pc)))
}
