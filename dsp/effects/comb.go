package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-convolve/dsp/ring"
)

// FilterType selects the comb filter topology.
type FilterType int

const (
	// FIR feeds the delayed input forward: y[n] = x[n] + g*x[n-D].
	FIR FilterType = iota
	// IIR feeds the delayed output back: y[n] = x[n] + g*y[n-D].
	IIR
)

// CombFilter is a feedforward or feedback comb with one ring delay
// line per channel. The delay line is allocated for the maximum delay
// given at construction; SetParam can move the delay anywhere up to
// that maximum and rejects anything beyond it.
type CombFilter struct {
	typ        FilterType
	sampleRate float64

	gain         float64
	delaySeconds float64
	delaySamples int

	lines []*ring.Buffer[float64]
}

// NewComb creates a comb filter with the delay set to the allocated
// maximum and gain 0.
func NewComb(typ FilterType, maxDelay, sampleRate float64, channels int) (*CombFilter, error) {
	if typ != FIR && typ != IIR {
		return nil, fmt.Errorf("effects: unknown comb filter type %d", int(typ))
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return nil, fmt.Errorf("effects: sample rate must be > 0: %g", sampleRate)
	}
	if channels < 1 {
		return nil, fmt.Errorf("effects: channels must be >= 1: %d", channels)
	}

	maxSamples := int(sampleRate * maxDelay)
	if maxSamples < 1 {
		return nil, &ParamError{Param: ParamDelay, Value: maxDelay}
	}

	c := &CombFilter{
		typ:          typ,
		sampleRate:   sampleRate,
		delaySeconds: maxDelay,
		delaySamples: maxSamples,
	}

	c.lines = make([]*ring.Buffer[float64], channels)
	for ch := range c.lines {
		line, err := ring.New[float64](maxSamples)
		if err != nil {
			return nil, err
		}
		c.lines[ch] = line
	}

	return c, nil
}

// Process filters a channel-major block. input and output must have
// matching shapes.
func (c *CombFilter) Process(output, input [][]float64) error {
	if len(input) != len(c.lines) || len(output) != len(c.lines) {
		return fmt.Errorf("effects: comb expects %d channels, got %d in / %d out",
			len(c.lines), len(input), len(output))
	}

	for ch, line := range c.lines {
		if len(output[ch]) < len(input[ch]) {
			return fmt.Errorf("effects: comb channel %d output too short", ch)
		}

		for i, x := range input[ch] {
			delayed := line.Get(line.Cap() - c.delaySamples)
			y := x + delayed*c.gain

			// The line stores input for FIR, output for IIR.
			if c.typ == FIR {
				line.Push(x)
			} else {
				line.Push(y)
			}
			line.Pop()

			output[ch][i] = y
		}
	}

	return nil
}

// SetParam sets gain or delay (seconds). A delay above the allocated
// maximum or below one sample is rejected with a *ParamError and
// leaves the current delay in place.
func (c *CombFilter) SetParam(param Param, value float64) error {
	switch param {
	case ParamGain:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return &ParamError{Param: ParamGain, Value: value}
		}
		c.gain = value
		return nil

	case ParamDelay:
		samples := int(c.sampleRate * value)
		if math.IsNaN(value) || samples < 1 || samples > c.lines[0].Cap() {
			return &ParamError{Param: ParamDelay, Value: value}
		}
		c.delaySeconds = value
		c.delaySamples = samples
		return nil

	default:
		return &ParamError{Param: param, Value: value}
	}
}

// GetParam returns the current gain or delay (seconds); other
// parameters read as 0.
func (c *CombFilter) GetParam(param Param) float64 {
	switch param {
	case ParamGain:
		return c.gain
	case ParamDelay:
		return c.delaySeconds
	default:
		return 0
	}
}

// Reset clears all delay lines; parameters are unchanged.
func (c *CombFilter) Reset() {
	for _, line := range c.lines {
		line.Reset()
	}
}
