// Package audio implements the tone output of the sound timer. A sine tone
// is generated while the gate is open and silence otherwise.
package audio

import (
	"io"
	"math"
	"sort"
	"sync/atomic"

	"chip8go/internal/chip8"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// Tone settings.
const (
	SampleRate    = 44100
	ToneFrequency = 659.25 // E5
	Volume        = 0.2
)

// Gate is an audio output that can be switched on and off by the machine.
type Gate interface {
	chip8.AudioGate
	io.Closer
}

type factory func(logger *log.Logger) (Gate, error)

var outputs = map[string]factory{
	"none": func(*log.Logger) (Gate, error) { return Silent{}, nil },
	"beep": newBeepTone,
	"oto":  newOtoTone,
}

// New opens the audio output registered under name.
func New(name string, logger *log.Logger) (Gate, error) {
	open, ok := outputs[name]
	if !ok {
		return nil, errors.Errorf("unsupported audio output '%s'", name)
	}
	gate, err := open(logger)
	if err != nil {
		return nil, errors.Wrapf(err, "opening audio output '%s'", name)
	}
	return gate, nil
}

// Names returns the sorted names of all audio outputs.
func Names() []string {
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Silent is a gate without any output.
type Silent struct{}

// SetTone implements chip8.AudioGate.
func (Silent) SetTone(bool) {}

// Close implements io.Closer.
func (Silent) Close() error { return nil }

// oscillator generates the tone samples. SetTone is called from the machine
// while the samples are read from the audio driver goroutine.
type oscillator struct {
	on    atomic.Bool
	phase float64 // position in the current period, 0 <= phase < 1
	step  float64
}

func newOscillator(sampleRate int) *oscillator {
	return &oscillator{
		step: ToneFrequency / float64(sampleRate),
	}
}

// SetTone implements chip8.AudioGate.
func (o *oscillator) SetTone(on bool) {
	o.on.Store(on)
}

// next returns the next sample in the range [-Volume, Volume].
func (o *oscillator) next() float64 {
	if !o.on.Load() {
		o.phase = 0
		return 0
	}

	sample := Volume * math.Sin(2*math.Pi*o.phase)
	o.phase += o.step
	if o.phase >= 1 {
		o.phase--
	}
	return sample
}
