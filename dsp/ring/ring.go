// Package ring implements a fixed-capacity circular buffer with
// independent read and write cursors.
//
// The buffer never grows: all cursor movement is modular arithmetic
// over the allocated capacity. It backs the convolver tail state in
// dsp/convolve and the delay lines in dsp/effects.
package ring

import (
	"fmt"
	"math"
)

// Element is the set of sample types a Buffer can hold.
type Element interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Buffer is a circular buffer of fixed capacity.
//
// head is the write cursor, tail the read cursor; both stay within
// [0, capacity). Len is the modular distance from tail to head, so a
// buffer that has been pushed exactly capacity times reads as empty
// again; callers that fill the buffer completely must track occupancy
// themselves.
type Buffer[T Element] struct {
	data []T
	head int
	tail int
}

// New returns a zero-filled buffer of the given capacity with both
// cursors at 0.
func New[T Element](capacity int) (*Buffer[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring: capacity must be > 0: %d", capacity)
	}
	return &Buffer[T]{data: make([]T, capacity)}, nil
}

// Reset zeroes all slots and returns both cursors to 0. The capacity
// is unchanged.
func (b *Buffer[T]) Reset() {
	clear(b.data)
	b.head = 0
	b.tail = 0
}

// Put writes value at the write cursor without advancing it.
func (b *Buffer[T]) Put(value T) {
	b.data[b.head] = value
}

// Peek reads the value at the read cursor without advancing it.
func (b *Buffer[T]) Peek() T {
	return b.data[b.tail]
}

// Push writes value at the write cursor and advances it.
func (b *Buffer[T]) Push(value T) {
	b.data[b.head] = value
	b.head = (b.head + 1) % len(b.data)
}

// Pop reads the value at the read cursor and advances it.
func (b *Buffer[T]) Pop() T {
	value := b.data[b.tail]
	b.tail = (b.tail + 1) % len(b.data)
	return value
}

// Get reads the value offset slots past the read cursor without
// moving either cursor. Offsets beyond the capacity wrap around.
func (b *Buffer[T]) Get(offset int) T {
	return b.data[(b.tail+offset)%len(b.data)]
}

// GetFrac reads at a fractional offset past the read cursor, linearly
// interpolating between the two neighboring slots. Defined for
// offset >= 0; at integer offsets it equals Get exactly. The result
// is computed in float64, so integer element types truncate.
func (b *Buffer[T]) GetFrac(offset float64) T {
	whole, frac := math.Modf(offset)
	lo := float64(b.Get(int(whole)))
	hi := float64(b.Get(int(whole) + 1))
	return T(lo*(1-frac) + hi*frac)
}

// ReadIndex returns the current read cursor.
func (b *Buffer[T]) ReadIndex() int {
	return b.tail
}

// SetReadIndex moves the read cursor. Out-of-range values are reduced
// modulo the capacity, never rejected.
func (b *Buffer[T]) SetReadIndex(index int) {
	b.tail = mod(index, len(b.data))
}

// WriteIndex returns the current write cursor.
func (b *Buffer[T]) WriteIndex() int {
	return b.head
}

// SetWriteIndex moves the write cursor. Out-of-range values are
// reduced modulo the capacity, never rejected.
func (b *Buffer[T]) SetWriteIndex(index int) {
	b.head = mod(index, len(b.data))
}

// Len returns the number of values currently between the read and
// write cursors.
func (b *Buffer[T]) Len() int {
	if b.head >= b.tail {
		return b.head - b.tail
	}
	return b.head + len(b.data) - b.tail
}

// Cap returns the allocated capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.data)
}

// mod reduces index into [0, n) for possibly negative index.
func mod(index, n int) int {
	m := index % n
	if m < 0 {
		m += n
	}
	return m
}
