package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-convolve/dsp/ring"
)

// Vibrato modulates the read position of a per-channel delay line
// with a sine LFO, read at a fractional offset via the ring buffer's
// linear interpolation.
//
// Delay and width are given in seconds and rounded to samples. The
// instantaneous delay is delay + width*lfo, so width must not exceed
// delay, and delay + width must fit the maximum allocated at
// construction. With width zero the effect degenerates to a pure
// delay, which the tests rely on.
type Vibrato struct {
	sampleRate float64
	lfo        *LFO

	delaySamples float64
	widthSamples float64
	maxSamples   float64

	lines []*ring.Buffer[float64]
}

// NewVibrato creates a vibrato with one delay line per channel.
// maxDelay bounds the largest delay + width this instance can be set
// to; it fixes the delay line allocation once.
func NewVibrato(sampleRate, maxDelay, delay, width, frequency float64, channels int) (*Vibrato, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return nil, fmt.Errorf("effects: sample rate must be > 0: %g", sampleRate)
	}
	if channels < 1 {
		return nil, fmt.Errorf("effects: channels must be >= 1: %d", channels)
	}
	if maxDelay <= 0 || math.IsNaN(maxDelay) {
		return nil, &ParamError{Param: ParamDelay, Value: maxDelay}
	}

	maxSamples := math.Round(maxDelay * sampleRate)
	if maxSamples < 1 {
		return nil, &ParamError{Param: ParamDelay, Value: maxDelay}
	}

	lfo, err := NewLFO(sampleRate, frequency, 1.0)
	if err != nil {
		return nil, err
	}

	v := &Vibrato{
		sampleRate: sampleRate,
		lfo:        lfo,
		maxSamples: maxSamples,
	}
	if err := v.SetParams(delay, width, frequency); err != nil {
		return nil, err
	}

	// Two slots of headroom: one for the interpolation neighbor, one
	// so the zero-delay read lands on the sample just pushed.
	capacity := int(maxSamples) + 2
	v.lines = make([]*ring.Buffer[float64], channels)
	for ch := range v.lines {
		line, err := ring.New[float64](capacity)
		if err != nil {
			return nil, err
		}
		v.lines[ch] = line
	}

	return v, nil
}

// SetParams updates delay, width (both seconds) and LFO frequency.
// Rejected values leave the previous parameters in place.
func (v *Vibrato) SetParams(delay, width, frequency float64) error {
	delaySamples := math.Round(delay * v.sampleRate)
	widthSamples := math.Round(width * v.sampleRate)

	if delay < 0 || math.IsNaN(delay) || delaySamples+widthSamples > v.maxSamples {
		return &ParamError{Param: ParamDelay, Value: delay}
	}
	if width < 0 || math.IsNaN(width) || widthSamples > delaySamples {
		return &ParamError{Param: ParamWidth, Value: width}
	}
	if err := v.lfo.SetFrequency(frequency); err != nil {
		return err
	}

	v.delaySamples = delaySamples
	v.widthSamples = widthSamples
	return nil
}

// Process applies the vibrato to a channel-major block. input and
// output must have the same shape; all channels must be the same
// length. The LFO advances once per sample frame, shared by all
// channels.
func (v *Vibrato) Process(output, input [][]float64) error {
	if len(input) != len(v.lines) || len(output) != len(v.lines) {
		return fmt.Errorf("effects: vibrato expects %d channels, got %d in / %d out",
			len(v.lines), len(input), len(output))
	}

	frames := 0
	if len(input) > 0 {
		frames = len(input[0])
	}
	for ch := range input {
		if len(input[ch]) != frames || len(output[ch]) < frames {
			return fmt.Errorf("effects: vibrato channel %d length mismatch", ch)
		}
	}

	for i := range frames {
		d := v.delaySamples + v.widthSamples*v.lfo.Sample()
		for ch, line := range v.lines {
			// Push first so a zero delay reads the current sample,
			// then pop to keep the cursors in lockstep.
			line.Push(input[ch][i])
			output[ch][i] = line.GetFrac(float64(line.Cap()) - d)
			line.Pop()
		}
	}

	return nil
}

// Reset clears all delay lines; parameters are unchanged.
func (v *Vibrato) Reset() {
	for _, line := range v.lines {
		line.Reset()
	}
}
