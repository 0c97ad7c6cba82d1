package wavio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	const sampleRate = 44100

	left := make([]float64, 200)
	right := make([]float64, 200)
	for i := range left {
		left[i] = 0.5 * math.Sin(2*math.Pi*float64(i)/50)
		right[i] = -0.25 * math.Cos(2*math.Pi*float64(i)/25)
	}

	path := filepath.Join(t.TempDir(), "roundtrip.wav")
	if err := Write(path, [][]float64{left, right}, sampleRate, 16); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, gotRate, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if gotRate != sampleRate {
		t.Errorf("sample rate = %d, want %d", gotRate, sampleRate)
	}
	if len(got) != 2 {
		t.Fatalf("channels = %d, want 2", len(got))
	}

	// One LSB of 16-bit quantization.
	const eps = 1.0 / 32768
	for ch, want := range [][]float64{left, right} {
		if len(got[ch]) != len(want) {
			t.Fatalf("channel %d: %d frames, want %d", ch, len(got[ch]), len(want))
		}
		for i := range want {
			if math.Abs(got[ch][i]-want[i]) > eps {
				t.Fatalf("channel %d sample %d: got %v, want %v", ch, i, got[ch][i], want[i])
			}
		}
	}
}

func TestWriteClipsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := Write(path, [][]float64{{1.5, -1.5, 0}}, 8000, 16); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, _, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if got[0][0] < 0.99 {
		t.Errorf("positive overdrive read back as %v, want ~1", got[0][0])
	}
	if got[0][1] > -0.99 {
		t.Errorf("negative overdrive read back as %v, want ~-1", got[0][1])
	}
}

func TestWriteRejectsRaggedChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.wav")
	err := Write(path, [][]float64{make([]float64, 4), make([]float64, 3)}, 8000, 16)
	if !errors.Is(err, ErrRaggedChannels) {
		t.Errorf("err = %v, want ErrRaggedChannels", err)
	}
}

func TestWriteRejectsNoChannels(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "none.wav"), nil, 8000, 16)
	if !errors.Is(err, ErrNoChannels) {
		t.Errorf("err = %v, want ErrNoChannels", err)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("definitely not RIFF data"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, _, err := Read(path); err == nil {
		t.Error("Read of non-WAV data should fail")
	}
}
