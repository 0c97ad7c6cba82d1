package convolve

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-convolve/dsp/block"
)

// FourierConvolver is the frequency-domain strategy. The kernel is
// partitioned into blocks of size B at construction and each block's
// spectrum is precomputed at FFT size nextPow2(2B-1). Per call the
// input is partitioned the same way; each (input block, kernel block)
// pair is convolved by spectral multiplication and accumulated at
// offset (i+j)*B, and everything past the causal window goes through
// the same tail ring as the time-domain strategy.
//
// The partitioning bounds the transform size by B rather than the
// kernel length: O(B log B) per block instead of O(B*L).
type FourierConvolver struct {
	kernelLen  int
	blockSize  int
	fftSize    int
	plan       *algofft.Plan[complex128]
	kernelFFT  [][]complex128 // one spectrum per kernel block
	kernelLens []int          // original (unpadded) kernel block lengths

	tail *tailRing

	signalBuf []complex128 // input block, zero-padded, transformed in place
	product   []complex128 // spectral product / inverse transform scratch
	work      []float64    // overlap-add accumulator, grows to the largest block seen
}

var _ StreamConvolver = (*FourierConvolver)(nil)

// NewFourier creates a frequency-domain streaming convolver with the
// given partition block size. The kernel is copied and must be
// non-empty; blockSize must be >= 1.
func NewFourier(kernel []float64, blockSize int) (*FourierConvolver, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyImpulseResponse
	}
	if blockSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	// A pair of blocks of length <= B convolves to at most 2B-1
	// samples; the transform must hold all of them.
	fftSize := nextPowerOf2(2*blockSize - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("convolve: FFT plan: %w", err)
	}

	tail, err := newTailRing(len(kernel))
	if err != nil {
		return nil, err
	}

	c := &FourierConvolver{
		kernelLen: len(kernel),
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		tail:      tail,
		signalBuf: make([]complex128, fftSize),
		product:   make([]complex128, fftSize),
	}

	kernelBlocks, err := block.Partition(kernel, blockSize)
	if err != nil {
		return nil, err
	}

	c.kernelFFT = make([][]complex128, len(kernelBlocks))
	c.kernelLens = make([]int, len(kernelBlocks))
	for j, kb := range kernelBlocks {
		clear(c.signalBuf)
		for k, v := range kb {
			c.signalBuf[k] = complex(v, 0)
		}

		spectrum := make([]complex128, fftSize)
		if err := plan.Forward(spectrum, c.signalBuf); err != nil {
			return nil, fmt.Errorf("convolve: kernel block %d FFT: %w", j, err)
		}
		c.kernelFFT[j] = spectrum
		c.kernelLens[j] = len(kb)
	}

	return c, nil
}

// Process convolves one input block. Block length may differ between
// calls and need not relate to the partition size; a ragged final
// partition is zero-padded before transformation, never rejected.
func (c *FourierConvolver) Process(output, input []float64) error {
	if len(input) == 0 {
		return nil
	}
	if len(output) < len(input) {
		return fmt.Errorf("%w: output %d, input %d", ErrShortOutput, len(output), len(input))
	}

	n := len(input)
	inputBlocks, err := block.Partition(input, c.blockSize)
	if err != nil {
		return err
	}

	// The furthest any pairwise result can reach. Covers n+L-1, so
	// both the carried tail and the stash always fit.
	workLen := (len(inputBlocks)+len(c.kernelFFT))*c.blockSize - 1
	work := c.scratch(workLen)

	// Carried tail first, then the new block's contributions, in the
	// same summation order as an unsplit call.
	c.tail.addInto(work)

	for i, ib := range inputBlocks {
		clear(c.signalBuf)
		for k, v := range ib {
			c.signalBuf[k] = complex(v, 0)
		}
		if err := c.plan.Forward(c.signalBuf, c.signalBuf); err != nil {
			return fmt.Errorf("convolve: forward FFT: %w", err)
		}

		for j, spectrum := range c.kernelFFT {
			for k := range c.product {
				c.product[k] = c.signalBuf[k] * spectrum[k]
			}
			if err := c.plan.Inverse(c.product, c.product); err != nil {
				return fmt.Errorf("convolve: inverse FFT: %w", err)
			}

			// Overlap-add the pair's linear convolution at its phase
			// offset; past the true support the inverse transform
			// holds only round-off noise, so it is skipped.
			offset := (i + j) * c.blockSize
			span := len(ib) + c.kernelLens[j] - 1
			for k := range span {
				work[offset+k] += real(c.product[k])
			}
		}
	}

	copy(output[:n], work[:n])
	c.tail.stash(work[n : n+c.kernelLen-1])

	return nil
}

// Flush drains up to L-1 remaining tail samples into output,
// zero-padding past the tail, and clears streaming state.
func (c *FourierConvolver) Flush(output []float64) {
	c.tail.drain(output)
}

// Reset clears the tail ring. Kernel spectra are unchanged.
func (c *FourierConvolver) Reset() {
	c.tail.reset()
}

// KernelLen returns the impulse response length.
func (c *FourierConvolver) KernelLen() int {
	return c.kernelLen
}

// RequiredFlushBufferSize returns L-1.
func (c *FourierConvolver) RequiredFlushBufferSize() int {
	return c.kernelLen - 1
}

// BlockSize returns the partition size B.
func (c *FourierConvolver) BlockSize() int {
	return c.blockSize
}

// FFTSize returns the transform length used per block pair.
func (c *FourierConvolver) FFTSize() int {
	return c.fftSize
}

func (c *FourierConvolver) scratch(n int) []float64 {
	if cap(c.work) < n {
		c.work = make([]float64, n)
	}
	s := c.work[:n]
	clear(s)
	return s
}
