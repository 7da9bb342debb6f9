package audio

import (
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestOscillator_SilentWhenOff(t *testing.T) {
	o := newOscillator(SampleRate)

	for range 100 {
		assert.Equal(t, 0.0, o.next())
	}
}

func TestOscillator_Frequency(t *testing.T) {
	o := newOscillator(SampleRate)
	o.SetTone(true)

	periods := 0
	peak := 0.0
	prev := o.next()
	for range SampleRate - 1 {
		v := o.next()
		if prev < 0 && v >= 0 {
			periods++
		}
		peak = math.Max(peak, math.Abs(v))
		prev = v
	}

	assert.True(t, periods >= 658 && periods <= 660)
	assert.True(t, peak <= Volume)
	assert.True(t, peak > Volume*0.99)
}

func TestOscillator_GateRestartsPhase(t *testing.T) {
	o := newOscillator(SampleRate)
	o.SetTone(true)
	first := []float64{o.next(), o.next(), o.next()}

	o.SetTone(false)
	assert.Equal(t, 0.0, o.next())

	o.SetTone(true)
	again := []float64{o.next(), o.next(), o.next()}
	assert.Equal(t, first, again)
}

func TestNew(t *testing.T) {
	gate, err := New("none", log.NewTestLogger(t))
	assert.NoError(t, err)
	gate.SetTone(true)
	assert.NoError(t, gate.Close())

	_, err = New("midi", log.NewTestLogger(t))
	assert.Equal(t, "unsupported audio output 'midi'", err.Error())

	assert.Equal(t, []string{"beep", "none", "oto"}, Names())
}
