// Package block splits signals into fixed-size processing blocks.
package block

import "errors"

// Errors returned by the partitioner.
var (
	ErrEmptySignal      = errors.New("block: empty signal")
	ErrInvalidBlockSize = errors.New("block: block size must be >= 1")
)

// Partition splits signal into consecutive blocks of size samples.
// The final block carries the remainder and may be shorter; it is not
// zero-padded, callers pad when a fixed transform length is needed.
// The returned blocks are subslices of signal, no samples are copied.
func Partition(signal []float64, size int) ([][]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}
	if size < 1 {
		return nil, ErrInvalidBlockSize
	}

	count := (len(signal) + size - 1) / size
	blocks := make([][]float64, 0, count)

	for start := 0; start < len(signal); start += size {
		end := min(start+size, len(signal))
		blocks = append(blocks, signal[start:end])
	}

	return blocks, nil
}
