// Package main implements the command line entry point of the CHIP-8 emulator.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"chip8go/internal/audio"
	"chip8go/internal/chip8"
	"chip8go/internal/cli"
	"chip8go/internal/config"
	"chip8go/internal/frontend"
	"chip8go/internal/loader"
	"chip8go/internal/runner"

	_ "chip8go/internal/frontend/ebitenfe"
	_ "chip8go/internal/frontend/headless"
	_ "chip8go/internal/frontend/pixelfe"
	_ "chip8go/internal/frontend/sdlfe"
	_ "chip8go/internal/frontend/termfe"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if !errors.As(err, &usageErr) {
			logger.Fatal(err.Error())
		}

		printBanner(logger, opts)
		usageErr.ShowUsage()
		if msg := usageErr.Error(); msg != "" {
			logger.Error(msg)
			os.Exit(1)
		}
		return
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	err = run(ctx, logger, opts)

	switch {
	case err == nil:
		logger.Info("Window closed")
	case chip8.IsHalt(err):
		logger.Info("Program ended", log.String("reason", err.Error()))
	case errors.Is(err, context.Canceled):
		logger.Info("Operation cancelled")
	default:
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func printBanner(logger *log.Logger, opts config.Options) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8go", log.String("version", buildinfo.Version(version, commit, date)))
	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	logger.Info("Loading program", log.String("file", opts.Program))
	program, err := loader.Load(opts.Program)
	if err != nil {
		return err
	}

	keymap, err := frontend.KeymapByName(opts.Keymap)
	if err != nil {
		return err
	}
	fe, err := frontend.Open(opts.Frontend, frontend.Config{
		Title:  fmt.Sprintf("CHIP-8 - %s", filepath.Base(opts.Program)),
		Scale:  opts.Scale,
		Keymap: keymap,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	gate, err := audio.New(opts.Audio, logger)
	if err != nil {
		logger.Warn("Audio output not available, continuing without sound", log.Err(err))
		gate = audio.Silent{}
	}

	vm := chip8.New(machineOptions(logger, opts, fe, gate)...)
	defer func() {
		if err := vm.Close(); err != nil {
			logger.Error("Closing devices failed", log.Err(err))
		}
	}()

	if err := vm.LoadProgram(program); err != nil {
		return err
	}
	vm.Reset()

	r, err := runner.New(vm, logger, opts.CPUHz)
	if err != nil {
		return err
	}

	logger.Debug("Starting machine",
		log.String("frontend", opts.Frontend),
		log.String("audio", opts.Audio),
		log.Int("cpuHz", opts.CPUHz),
		log.Int("programSize", vm.ProgramSize()))

	err = fe.Run(ctx, r.Frame)

	logger.Debug("Machine stopped",
		log.Int("frames", int(r.Frames())),
		log.Int("steps", int(r.Steps())),
		log.String("pc", fmt.Sprintf("0x%03X", vm.PC)))
	return err
}

func machineOptions(logger *log.Logger, opts config.Options, fe frontend.Frontend, gate audio.Gate) []chip8.Option {
	options := []chip8.Option{
		chip8.WithDisplay(fe),
		chip8.WithKeypad(fe),
		chip8.WithAudioGate(gate),
		chip8.WithLogger(logger),
		chip8.WithTrace(opts.Debug),
		chip8.WithPresentEveryDraw(opts.PresentEveryDraw),
	}
	if opts.Seed != 0 {
		options = append(options, chip8.WithRandSource(rand.NewPCG(opts.Seed, opts.Seed)))
	}
	return options
}
