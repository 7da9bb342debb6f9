//go:build !headless

package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// BeepTone plays the tone through the beep speaker.
type BeepTone struct {
	*oscillator
}

func newBeepTone(logger *log.Logger) (Gate, error) {
	rate := beep.SampleRate(SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, errors.Wrap(err, "initializing speaker")
	}

	tone := &BeepTone{
		oscillator: newOscillator(SampleRate),
	}
	speaker.Play(beep.StreamerFunc(tone.stream))

	logger.Debug("Audio output initialized", log.String("output", "beep"), log.Int("sampleRate", SampleRate))
	return tone, nil
}

func (t *BeepTone) stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := t.next()
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

// Close implements io.Closer.
func (t *BeepTone) Close() error {
	speaker.Close()
	return nil
}
