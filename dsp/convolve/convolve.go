package convolve

import (
	"errors"
	"fmt"
)

// Errors returned by the convolution engine.
var (
	ErrEmptyImpulseResponse = errors.New("convolve: empty impulse response")
	ErrInvalidBlockSize     = errors.New("convolve: invalid block size")
	ErrShortOutput          = errors.New("convolve: output shorter than input")
	ErrInvalidMode          = errors.New("convolve: invalid convolution mode")
)

// Mode selects the convolution strategy at construction time. It is a
// closed set: TimeDomain and FrequencyDomain are the only
// implementations, and the engine matches them exhaustively. Changing
// mode mid-stream is not supported; build a new Engine instead.
type Mode interface {
	convolutionMode()
}

// TimeDomain selects direct nested-sum convolution.
type TimeDomain struct{}

func (TimeDomain) convolutionMode() {}

// FrequencyDomain selects block-partitioned FFT convolution with the
// given block size (>= 1).
type FrequencyDomain struct {
	BlockSize int
}

func (FrequencyDomain) convolutionMode() {}

// StreamConvolver is the contract shared by both strategies.
//
// Process convolves one input block into output, which must be at
// least as long as input; only the first len(input) positions are
// written. Block sizes may change from call to call. Flush drains the
// remaining tail (up to RequiredFlushBufferSize samples, zero-padding
// a longer buffer) and clears all streaming state; it is meant to be
// called once, after the final Process. Reset discards all
// accumulated state without touching the impulse response.
type StreamConvolver interface {
	Process(output, input []float64) error
	Flush(output []float64)
	Reset()
	KernelLen() int
	RequiredFlushBufferSize() int
}

// Engine owns an impulse response and dispatches to the strategy
// chosen by its Mode.
//
// Calling Process after Flush is permitted and starts a fresh
// convolution from zero tail; no error is raised, matching a
// pull-based block pipeline where spurious faults are worse than a
// silent restart.
type Engine struct {
	mode Mode
	conv StreamConvolver
}

// New creates an engine for the given impulse response and mode. The
// impulse response is copied and must be non-empty.
func New(impulseResponse []float64, mode Mode) (*Engine, error) {
	var (
		conv StreamConvolver
		err  error
	)

	switch m := mode.(type) {
	case TimeDomain:
		conv, err = NewDirect(impulseResponse)
	case FrequencyDomain:
		conv, err = NewFourier(impulseResponse, m.BlockSize)
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrInvalidMode)
	default:
		// Unreachable for modes defined in this package.
		return nil, fmt.Errorf("%w: %T", ErrInvalidMode, mode)
	}
	if err != nil {
		return nil, err
	}

	return &Engine{mode: mode, conv: conv}, nil
}

// Process convolves input into output. See StreamConvolver.
func (e *Engine) Process(output, input []float64) error {
	return e.conv.Process(output, input)
}

// Flush drains the remaining convolution tail into output and clears
// streaming state. See StreamConvolver.
func (e *Engine) Flush(output []float64) {
	e.conv.Flush(output)
}

// Reset discards all accumulated tail and mid-transform state. The
// installed impulse response is unchanged.
func (e *Engine) Reset() {
	e.conv.Reset()
}

// Mode returns the mode selected at construction.
func (e *Engine) Mode() Mode {
	return e.mode
}

// KernelLen returns the impulse response length L.
func (e *Engine) KernelLen() int {
	return e.conv.KernelLen()
}

// RequiredFlushBufferSize returns L-1, the maximum number of
// meaningful samples Flush can produce.
func (e *Engine) RequiredFlushBufferSize() int {
	return e.conv.RequiredFlushBufferSize()
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
