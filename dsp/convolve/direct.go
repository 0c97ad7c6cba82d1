package convolve

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Use the vecmath path for kernels >= 4 samples.
const directSIMDThreshold = 4

// DirectConvolver is the time-domain strategy: per input sample it
// scales the kernel and accumulates into a full-convolution scratch
// of length n+L-1, emits the causal n samples and carries the rest in
// the tail ring. Exact (no transform round-off), O(n*L) per block.
type DirectConvolver struct {
	kernel []float64
	tail   *tailRing

	work []float64 // full-convolution scratch, grows to the largest block seen
	temp []float64 // scaled-kernel scratch for the vecmath path
}

var _ StreamConvolver = (*DirectConvolver)(nil)

// NewDirect creates a time-domain streaming convolver. The kernel is
// copied and must be non-empty.
func NewDirect(kernel []float64) (*DirectConvolver, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyImpulseResponse
	}

	tail, err := newTailRing(len(kernel))
	if err != nil {
		return nil, err
	}

	c := &DirectConvolver{
		kernel: append([]float64(nil), kernel...),
		tail:   tail,
	}
	if len(kernel) >= directSIMDThreshold {
		c.temp = make([]float64, len(kernel))
	}
	return c, nil
}

// Process convolves one input block. Block length may differ between
// calls; continuity is preserved through the tail ring.
func (c *DirectConvolver) Process(output, input []float64) error {
	if len(input) == 0 {
		return nil
	}
	if len(output) < len(input) {
		return fmt.Errorf("%w: output %d, input %d", ErrShortOutput, len(output), len(input))
	}

	n := len(input)
	m := len(c.kernel)
	full := c.scratch(n + m - 1)

	// Seed the scratch with the carried tail before accumulating the
	// new block, so every output sample sums its contributions in the
	// same order as a single unsplit call and splitting a stream is
	// bit-exact.
	c.tail.addInto(full)

	if m >= directSIMDThreshold {
		for i, x := range input {
			vecmath.ScaleBlock(c.temp, c.kernel, x)
			vecmath.AddBlockInPlace(full[i:i+m], c.temp)
		}
	} else {
		for i, x := range input {
			for j, k := range c.kernel {
				full[i+j] += x * k
			}
		}
	}

	copy(output[:n], full[:n])
	c.tail.stash(full[n:])

	return nil
}

// Flush drains up to L-1 remaining tail samples into output,
// zero-padding past the tail, and clears streaming state.
func (c *DirectConvolver) Flush(output []float64) {
	c.tail.drain(output)
}

// Reset clears the tail ring. The kernel is unchanged.
func (c *DirectConvolver) Reset() {
	c.tail.reset()
}

// KernelLen returns the impulse response length.
func (c *DirectConvolver) KernelLen() int {
	return len(c.kernel)
}

// RequiredFlushBufferSize returns L-1.
func (c *DirectConvolver) RequiredFlushBufferSize() int {
	return len(c.kernel) - 1
}

// scratch returns a zeroed slice of length n backed by the reusable
// work buffer.
func (c *DirectConvolver) scratch(n int) []float64 {
	if cap(c.work) < n {
		c.work = make([]float64, n)
	}
	s := c.work[:n]
	clear(s)
	return s
}
