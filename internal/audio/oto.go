//go:build !headless

package audio

import (
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// OtoTone plays the tone through an oto player.
type OtoTone struct {
	*oscillator
	player *oto.Player
}

func newOtoTone(logger *log.Logger) (Gate, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, errors.Wrap(err, "creating audio context")
	}
	<-ready

	tone := &OtoTone{
		oscillator: newOscillator(SampleRate),
	}
	tone.player = ctx.NewPlayer(tone)
	tone.player.Play()

	logger.Debug("Audio output initialized", log.String("output", "oto"), log.Int("sampleRate", SampleRate))
	return tone, nil
}

// Read implements io.Reader and returns mono float32 samples.
func (t *OtoTone) Read(p []byte) (int, error) {
	n := len(p) / 4
	for i := range n {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(float32(t.next())))
	}
	return n * 4, nil
}

// Close implements io.Closer.
func (t *OtoTone) Close() error {
	if err := t.player.Close(); err != nil {
		return errors.Wrap(err, "closing audio player")
	}
	return nil
}
