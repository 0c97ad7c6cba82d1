// Package convolve applies an arbitrary-length impulse response to a
// continuous, block-delivered audio stream.
//
// Two strategies are available behind a common facade:
//
//   - Time domain: direct nested-sum convolution, best for short
//     impulse responses
//   - Frequency domain: block-partitioned FFT convolution with
//     overlap-add, O(B log B) per block independent of the impulse
//     response length
//
// Both keep exact numerical continuity across block boundaries of
// arbitrary, changing size: the not-yet-emitted tail of each call
// (up to L-1 samples for an impulse response of length L) is carried
// in a ring buffer and either consumed by the next Process call or
// drained by Flush.
//
// # Usage
//
//	eng, err := convolve.New(impulseResponse, convolve.FrequencyDomain{BlockSize: 1024})
//	if err != nil {
//		// handle error
//	}
//
//	out := make([]float64, len(in))
//	for eachBlock {
//		err = eng.Process(out, in)
//	}
//
//	tail := make([]float64, eng.RequiredFlushBufferSize())
//	eng.Flush(tail)
//
// An Engine is single-threaded and owns its state exclusively; use
// one Engine per audio channel and process channels independently.
package convolve
