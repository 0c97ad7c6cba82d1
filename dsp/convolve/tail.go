package convolve

import "github.com/cwbudde/algo-convolve/dsp/ring"

// tailRing carries the unresolved convolution tail between calls: the
// trailing L-1 samples of each block's full convolution, owed to the
// next Process call or to Flush.
//
// The ring has capacity L-1 and is always either empty or completely
// full, which makes its cursor-distance Len ambiguous (head == tail
// in both states). pending tracks the meaningful sample count
// explicitly. A kernel of length 1 has no tail; buf stays nil.
type tailRing struct {
	buf     *ring.Buffer[float64]
	pending int
}

func newTailRing(kernelLen int) (*tailRing, error) {
	tr := &tailRing{}
	if kernelLen > 1 {
		buf, err := ring.New[float64](kernelLen - 1)
		if err != nil {
			return nil, err
		}
		tr.buf = buf
	}
	return tr, nil
}

// addInto pops the pending tail and accumulates it into the head of
// work. work must be at least pending samples long, which holds for
// any full-convolution scratch of length n+L-1 with n >= 1.
func (tr *tailRing) addInto(work []float64) {
	for i := range tr.pending {
		work[i] += tr.buf.Pop()
	}
	tr.pending = 0
}

// stash pushes the trailing tail samples of the current block. Must
// be called with exactly L-1 samples after addInto has emptied the
// ring.
func (tr *tailRing) stash(tail []float64) {
	for _, v := range tail {
		tr.buf.Push(v)
	}
	tr.pending = len(tail)
}

// drain pops up to len(output) pending samples into output and
// zero-pads the remainder, then clears all state. Draining into a
// buffer shorter than the pending tail discards the excess.
func (tr *tailRing) drain(output []float64) {
	n := min(len(output), tr.pending)
	for i := range n {
		output[i] = tr.buf.Pop()
	}
	clear(output[n:])
	tr.reset()
}

func (tr *tailRing) reset() {
	if tr.buf != nil {
		tr.buf.Reset()
	}
	tr.pending = 0
}
