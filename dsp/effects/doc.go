// Package effects provides delay-line based audio effects built on
// the ring buffer from dsp/ring: a FIR/IIR comb filter, an
// LFO-modulated vibrato, and the wavetable LFO driving it.
//
// All effects are channel-agnostic in the same sense as the
// convolution engine: one delay line per channel, no state shared
// between instances, no locking. Parameter changes are validated and
// rejected with a *ParamError; state is never mutated by a rejected
// change.
package effects
