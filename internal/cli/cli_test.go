package cli

import (
	"os"
	"testing"

	"chip8go/internal/config"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = args
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		modify func(*config.Options)
	}{
		{
			name: "defaults",
			args: []string{"prog", "pong.ch8"},
		},
		{
			name:   "cpu frequency",
			args:   []string{"prog", "-hz", "700", "pong.ch8"},
			modify: func(o *config.Options) { o.CPUHz = 700 },
		},
		{
			name: "frontend and audio are lower cased",
			args: []string{"prog", "-frontend", "SDL", "-audio", "Oto", "pong.ch8"},
			modify: func(o *config.Options) {
				o.Frontend = "sdl"
				o.Audio = "oto"
			},
		},
		{
			name: "display options",
			args: []string{"prog", "-scale", "4", "-keymap", "hex", "-present-every-draw", "pong.ch8"},
			modify: func(o *config.Options) {
				o.Scale = 4
				o.Keymap = "hex"
				o.PresentEveryDraw = true
			},
		},
		{
			name: "logging and seed",
			args: []string{"prog", "-debug", "-q", "-seed", "42", "pong.ch8"},
			modify: func(o *config.Options) {
				o.Debug = true
				o.Quiet = true
				o.Seed = 42
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			want := config.Default()
			want.Program = "pong.ch8"
			if tt.modify != nil {
				tt.modify(&want)
			}

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseFlags_Usage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "no program", args: []string{"prog"}},
		{name: "only flags", args: []string{"prog", "-debug"}},
		{name: "help", args: []string{"prog", "-h"}},
		{name: "unknown flag", args: []string{"prog", "-turbo", "pong.ch8"}, wantMsg: "flag provided but not defined: -turbo"},
		{
			name:    "flag after program",
			args:    []string{"prog", "pong.ch8", "-debug"},
			wantMsg: "Unexpected argument -debug found after program file, please pass the program file as last argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, err := ParseFlags()

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.Equal(t, tt.wantMsg, usageErr.Error())
		})
	}
}

func TestParseFlags_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "keymap",
			args:    []string{"prog", "-keymap", "azerty", "pong.ch8"},
			wantErr: "valid keymaps: cosmac, hex: unsupported keymap 'azerty'",
		},
		{
			name:    "frequency",
			args:    []string{"prog", "-hz", "0", "pong.ch8"},
			wantErr: "invalid CPU frequency 0, must be positive",
		},
		{
			name:    "scale",
			args:    []string{"prog", "-scale", "100", "pong.ch8"},
			wantErr: "invalid scale 100, must be between 1 and 64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, err := ParseFlags()

			var usageErr *UsageError
			assert.False(t, errors.As(err, &usageErr))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
