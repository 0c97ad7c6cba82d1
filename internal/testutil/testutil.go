// Package testutil provides tolerance assertions and deterministic
// test signals shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
	"testing"
)

// RequireNear fails t if got and want differ in length or any element
// pair differs by more than eps.
func RequireNear(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireAllFinite fails t if any element is NaN or Inf.
func RequireAllFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute elementwise difference.
// Both slices must have the same length.
func MaxAbsDiff(t *testing.T, a, b []float64) float64 {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

// Impulse returns a length-n signal that is zero except for a unit
// sample at position at.
func Impulse(n, at int) []float64 {
	s := make([]float64, n)
	s[at] = 1
	return s
}

// Noise returns n samples of deterministic uniform noise in [-1, 1).
func Noise(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	s := make([]float64, n)
	for i := range s {
		s[i] = 2*rng.Float64() - 1
	}
	return s
}
