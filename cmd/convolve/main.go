// Command convolve applies an impulse response to a WAV file.
//
// Usage:
//
//	convolve -ir room.wav [flags] input.wav output.wav
//
// The input is streamed through one convolution engine per channel;
// the output carries the full reverb tail, so it is L-1 samples
// longer than the input for an impulse response of length L.
//
// Examples:
//
//	convolve -ir hall.wav in.wav out.wav
//	convolve -ir hall.wav -mode time in.wav out.wav
//	convolve -ir hall.wav -block 2048 -wet 0.4 in.wav out.wav
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-convolve/dsp/convolve"
	"github.com/cwbudde/algo-convolve/internal/wavio"
)

func main() {
	irPath := flag.String("ir", "", "impulse response WAV file (required)")
	mode := flag.String("mode", "freq", "convolution mode: time or freq")
	blockSize := flag.Int("block", 1024, "partition block size for freq mode")
	chunk := flag.Int("chunk", 4096, "streaming chunk size in samples")
	wet := flag.Float64("wet", 1.0, "wet/dry mix in [0, 1]; 1 is fully convolved")
	bits := flag.Int("bits", 16, "output bit depth")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: convolve -ir <ir.wav> [flags] <input.wav> <output.wav>\n\n")
		fmt.Fprintf(os.Stderr, "Applies an impulse response to a WAV file by streaming convolution.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *irPath == "" || flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	if *wet < 0 || *wet > 1 {
		fmt.Fprintf(os.Stderr, "convolve: -wet must be in [0, 1]: %g\n", *wet)
		os.Exit(2)
	}
	if *chunk < 1 {
		fmt.Fprintf(os.Stderr, "convolve: -chunk must be >= 1: %d\n", *chunk)
		os.Exit(2)
	}

	if err := run(*irPath, flag.Arg(0), flag.Arg(1), *mode, *blockSize, *chunk, *wet, *bits); err != nil {
		fmt.Fprintf(os.Stderr, "convolve: %v\n", err)
		os.Exit(1)
	}
}

func run(irPath, inPath, outPath, mode string, blockSize, chunk int, wet float64, bits int) error {
	irChannels, irRate, err := wavio.Read(irPath)
	if err != nil {
		return err
	}

	input, inRate, err := wavio.Read(inPath)
	if err != nil {
		return err
	}
	if irRate != inRate {
		return fmt.Errorf("sample rate mismatch: impulse response %d Hz, input %d Hz", irRate, inRate)
	}

	var convMode convolve.Mode
	switch mode {
	case "time":
		convMode = convolve.TimeDomain{}
	case "freq":
		convMode = convolve.FrequencyDomain{BlockSize: blockSize}
	default:
		return fmt.Errorf("unknown mode %q (want time or freq)", mode)
	}

	output := make([][]float64, len(input))
	for ch := range input {
		// A multichannel impulse response is applied channel by
		// channel; a mono one is shared across all channels.
		ir := irChannels[0]
		if len(irChannels) == len(input) {
			ir = irChannels[ch]
		}

		out, err := convolveChannel(input[ch], ir, convMode, chunk)
		if err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}
		mix(out, input[ch], wet)
		output[ch] = out
	}

	return wavio.Write(outPath, output, inRate, bits)
}

// convolveChannel streams one channel through a fresh engine and
// appends the flushed tail, returning len(input)+L-1 samples.
func convolveChannel(input, ir []float64, mode convolve.Mode, chunk int) ([]float64, error) {
	eng, err := convolve.New(ir, mode)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(input)+eng.RequiredFlushBufferSize())
	for pos := 0; pos < len(input); pos += chunk {
		end := min(pos+chunk, len(input))
		if err := eng.Process(out[pos:end], input[pos:end]); err != nil {
			return nil, err
		}
	}
	eng.Flush(out[len(input):])

	return out, nil
}

// mix blends the dry signal back into the convolved one in place:
// out = wet*out + (1-wet)*dry. The tail past the dry signal stays
// purely wet.
func mix(out, dry []float64, wet float64) {
	if wet == 1 {
		return
	}

	vecmath.ScaleBlockInPlace(out, wet)

	scaledDry := make([]float64, len(dry))
	vecmath.ScaleBlock(scaledDry, dry, 1-wet)
	vecmath.AddBlockInPlace(out[:len(dry)], scaledDry)
}
