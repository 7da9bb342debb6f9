// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chip8go/internal/config"
	"chip8go/internal/frontend"

	"github.com/pkg/errors"
)

// ParseFlags parses the command line flags and returns the program options.
func ParseFlags() (config.Options, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	opts := config.Default()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return opts, &UsageError{flags: flags}
	}
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	args := flags.Args()
	switch {
	case len(args) == 0:
		return opts, &UsageError{flags: flags}
	case len(args) > 1:
		return opts, &UsageError{
			flags: flags,
			msg: fmt.Sprintf("Unexpected argument %s found after program file, please pass the program file as last argument",
				args[1]),
		}
	}
	opts.Program = args[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information to stdout.
func (e *UsageError) ShowUsage() {
	e.flags.SetOutput(os.Stdout)
	fmt.Printf("usage: chip8go [options] <program file>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *config.Options) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	opts.Audio = strings.ToLower(opts.Audio)
	opts.Keymap = strings.ToLower(opts.Keymap)

	if _, err := frontend.KeymapByName(opts.Keymap); err != nil {
		return errors.Wrapf(err, "valid keymaps: %s", strings.Join(frontend.KeymapNames(), ", "))
	}
	return opts.Validate()
}

func readOptionFlags(flags *flag.FlagSet, opts *config.Options) {
	flags.IntVar(&opts.CPUHz, "hz", opts.CPUHz, "instructions executed per second")
	flags.StringVar(&opts.Frontend, "frontend", opts.Frontend, "display frontend (pixel/ebiten/sdl/terminal/headless)")
	flags.StringVar(&opts.Audio, "audio", opts.Audio, "audio output (beep/oto/none)")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "window pixels per screen pixel")
	flags.StringVar(&opts.Keymap, "keymap", opts.Keymap, "keyboard layout of the keypad (cosmac/hex)")
	flags.BoolVar(&opts.PresentEveryDraw, "present-every-draw", false, "show the screen after every sprite draw instead of only on collisions")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 picks one from the clock")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
