// Package wavio reads and writes PCM WAV files as per-channel
// float64 slices normalized to [-1, 1], the block format the
// convolution engine and effects consume.
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Errors returned by the WAV glue.
var (
	ErrNotWavFile     = errors.New("wavio: not a valid WAV file")
	ErrEmptyFile      = errors.New("wavio: file contains no samples")
	ErrRaggedChannels = errors.New("wavio: channels differ in length")
	ErrNoChannels     = errors.New("wavio: no channels")
)

// Read decodes a PCM WAV file into channel-major float64 samples in
// [-1, 1] and returns them with the file's sample rate.
func Read(path string) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotWavFile, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: decode %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotWavFile, path)
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	bitDepth := int(buf.SourceBitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := 1.0 / float64(int(1)<<(bitDepth-1))

	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range out {
			out[ch][i] = float64(buf.Data[i*channels+ch]) * scale
		}
	}

	return out, buf.Format.SampleRate, nil
}

// Write interleaves channel-major float64 samples, de-normalizes them
// to the given bit depth with clipping, and encodes a PCM WAV file.
// All channels must have the same length.
func Write(path string, channels [][]float64, sampleRate, bitDepth int) error {
	if len(channels) == 0 {
		return ErrNoChannels
	}
	frames := len(channels[0])
	for ch := range channels {
		if len(channels[ch]) != frames {
			return fmt.Errorf("%w: channel %d has %d samples, want %d",
				ErrRaggedChannels, ch, len(channels[ch]), frames)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, len(channels), 1)

	limit := float64(int(1) << (bitDepth - 1))
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           make([]int, frames*len(channels)),
		SourceBitDepth: bitDepth,
	}
	for i := range frames {
		for ch := range channels {
			buf.Data[i*len(channels)+ch] = quantize(channels[ch][i], limit)
		}
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize %s: %w", path, err)
	}

	return nil
}

// quantize maps a normalized sample to the integer range of the
// target bit depth, clipping out-of-range values.
func quantize(v, limit float64) int {
	s := math.Round(v * limit)
	if s > limit-1 {
		s = limit - 1
	}
	if s < -limit {
		s = -limit
	}
	return int(s)
}
