package effects

import (
	"math"

	"github.com/cwbudde/algo-convolve/dsp/ring"
)

// LFO is a wavetable low-frequency oscillator. One period of a sine
// is rendered into a ring buffer at construction; Sample rotates the
// table by one slot per call, so the oscillator is free of phase
// accumulation drift.
type LFO struct {
	sampleRate float64
	frequency  float64
	amplitude  float64
	table      *ring.Buffer[float64]
}

// NewLFO creates an oscillator. frequency must be positive and low
// enough for at least one table slot per period (frequency <=
// sampleRate).
func NewLFO(sampleRate, frequency, amplitude float64) (*LFO, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, &ParamError{Param: ParamFrequency, Value: sampleRate}
	}

	l := &LFO{sampleRate: sampleRate, amplitude: amplitude}
	if err := l.SetFrequency(frequency); err != nil {
		return nil, err
	}
	return l, nil
}

// SetFrequency changes the oscillation frequency by rebuilding the
// wavetable, restarting the phase at zero.
func (l *LFO) SetFrequency(frequency float64) error {
	if frequency <= 0 || frequency > l.sampleRate || math.IsNaN(frequency) {
		return &ParamError{Param: ParamFrequency, Value: frequency}
	}
	l.frequency = frequency
	return l.rebuild()
}

// SetAmplitude changes the output amplitude, restarting the phase at
// zero.
func (l *LFO) SetAmplitude(amplitude float64) error {
	if math.IsNaN(amplitude) || math.IsInf(amplitude, 0) {
		return &ParamError{Param: ParamGain, Value: amplitude}
	}
	l.amplitude = amplitude
	return l.rebuild()
}

// Sample returns the next oscillator value and advances the phase by
// one sample.
func (l *LFO) Sample() float64 {
	value := l.table.Peek()
	l.table.Pop()
	l.table.Push(value)
	return value
}

func (l *LFO) rebuild() error {
	size := int(l.sampleRate / l.frequency)
	table, err := ring.New[float64](size)
	if err != nil {
		return &ParamError{Param: ParamFrequency, Value: l.frequency}
	}
	for i := range size {
		table.Push(l.amplitude * math.Sin(2*math.Pi*float64(i)/float64(size)))
	}
	l.table = table
	return nil
}
