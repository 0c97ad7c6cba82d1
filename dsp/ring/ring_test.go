package ring

import (
	"math"
	"testing"
)

func TestWrapping(t *testing.T) {
	// The buffer must behave as a ring once more than capacity
	// elements have passed through it.
	const capacity = 17
	const delay = 5

	rb, err := New[float64](capacity)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := range delay {
		rb.Push(float64(i))
	}

	for i := delay; i < capacity+13; i++ {
		if rb.Len() != delay {
			t.Fatalf("Len() = %d, want %d", rb.Len(), delay)
		}
		if got := rb.Pop(); got != float64(i-delay) {
			t.Fatalf("Pop() = %v, want %v", got, float64(i-delay))
		}
		rb.Push(float64(i))
	}
}

func TestAPIWalk(t *testing.T) {
	const capacity = 3

	rb, err := New[int](capacity)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if rb.Cap() != capacity {
		t.Fatalf("Cap() = %d, want %d", rb.Cap(), capacity)
	}

	rb.Put(3)
	if rb.Peek() != 3 {
		t.Errorf("Peek() = %d, want 3", rb.Peek())
	}

	rb.SetWriteIndex(1)
	if rb.WriteIndex() != 1 {
		t.Errorf("WriteIndex() = %d, want 1", rb.WriteIndex())
	}

	rb.Push(17)
	if rb.WriteIndex() != 2 {
		t.Errorf("WriteIndex() = %d, want 2", rb.WriteIndex())
	}

	if rb.ReadIndex() != 0 {
		t.Errorf("ReadIndex() = %d, want 0", rb.ReadIndex())
	}
	if rb.Get(1) != 17 {
		t.Errorf("Get(1) = %d, want 17", rb.Get(1))
	}
	if rb.Pop() != 3 {
		t.Error("Pop() should return the value put at index 0")
	}
	if rb.ReadIndex() != 1 {
		t.Errorf("ReadIndex() = %d, want 1", rb.ReadIndex())
	}

	if rb.Len() != 1 {
		t.Errorf("Len() = %d, want 1", rb.Len())
	}
	rb.Push(42)
	if rb.Len() != 2 {
		t.Errorf("Len() = %d, want 2", rb.Len())
	}

	if rb.WriteIndex() != 0 {
		t.Errorf("WriteIndex() = %d, want 0 after wrap", rb.WriteIndex())
	}
	if rb.Cap() != capacity {
		t.Errorf("Cap() changed to %d", rb.Cap())
	}
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		if _, err := New[float64](capacity); err == nil {
			t.Errorf("New(%d) should fail", capacity)
		}
	}
}

func TestReset(t *testing.T) {
	rb, err := New[float64](512)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Initial state.
	if rb.ReadIndex() != 0 || rb.WriteIndex() != 0 {
		t.Fatal("cursors not at 0 after construction")
	}
	for i := range rb.Cap() {
		if rb.Get(i) != 0 {
			t.Fatalf("Get(%d) = %v, want 0", i, rb.Get(i))
		}
	}

	// Fill and disturb the cursors.
	const fill = 123.456
	for i := range rb.Cap() {
		rb.Push(fill)
		if rb.Get(i) != fill {
			t.Fatalf("Get(%d) = %v, want %v", i, rb.Get(i), fill)
		}
	}
	rb.SetWriteIndex(17)
	rb.SetReadIndex(42)

	rb.Reset()
	if rb.ReadIndex() != 0 || rb.WriteIndex() != 0 {
		t.Error("cursors not at 0 after Reset")
	}
	for i := range rb.Cap() {
		if rb.Get(i) != 0 {
			t.Errorf("Get(%d) = %v, want 0 after Reset", i, rb.Get(i))
		}
	}
}

func TestCursorNormalization(t *testing.T) {
	const capacity = 5

	rb, err := New[float64](capacity)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cases := []struct {
		set  int
		want int
	}{
		{capacity, 0},
		{capacity*2 + 3, 3},
		{-1, capacity - 1},
		{-capacity - 2, capacity - 2},
	}
	for _, tc := range cases {
		rb.SetWriteIndex(tc.set)
		if rb.WriteIndex() != tc.want {
			t.Errorf("SetWriteIndex(%d): index = %d, want %d", tc.set, rb.WriteIndex(), tc.want)
		}
		rb.SetReadIndex(tc.set)
		if rb.ReadIndex() != tc.want {
			t.Errorf("SetReadIndex(%d): index = %d, want %d", tc.set, rb.ReadIndex(), tc.want)
		}
	}
}

func TestGetFrac(t *testing.T) {
	const capacity = 5

	rb, err := New[float64](capacity)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := range capacity {
		rb.Push(float64(i))
	}

	// With the buffer holding 0..4, a fractional offset reads back
	// its own value.
	for _, offset := range []float64{0, 0.5, 1, 1.75, 2.9} {
		if got := rb.GetFrac(offset); math.Abs(got-offset) > 1e-12 {
			t.Errorf("GetFrac(%v) = %v, want %v", offset, got, offset)
		}
	}
}

func TestGetFracIntegerIdentity(t *testing.T) {
	rb, err := New[float64](8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	values := []float64{0.3, -1.5, 2.25, 0, 7.125, -0.5, 3, 9.75}
	for _, v := range values {
		rb.Push(v)
	}

	for k := range len(values) {
		if rb.GetFrac(float64(k)) != rb.Get(k) {
			t.Errorf("GetFrac(%d) = %v, Get(%d) = %v", k, rb.GetFrac(float64(k)), k, rb.Get(k))
		}
	}
}

func TestRingInvariantUnderChurn(t *testing.T) {
	// Pseudo-random push/pop sequence: Len never exceeds Cap and the
	// cursors stay within [0, capacity).
	const capacity = 11

	rb, err := New[float64](capacity)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	state := uint64(1)
	for range 10000 {
		state = state*6364136223846793005 + 1442695040888963407
		if state&1 == 0 {
			rb.Push(float64(state % 97))
		} else {
			rb.Pop()
		}

		if rb.Len() < 0 || rb.Len() > rb.Cap() {
			t.Fatalf("Len() = %d outside [0, %d]", rb.Len(), rb.Cap())
		}
		if rb.ReadIndex() < 0 || rb.ReadIndex() >= capacity {
			t.Fatalf("ReadIndex() = %d outside [0, %d)", rb.ReadIndex(), capacity)
		}
		if rb.WriteIndex() < 0 || rb.WriteIndex() >= capacity {
			t.Fatalf("WriteIndex() = %d outside [0, %d)", rb.WriteIndex(), capacity)
		}
	}
}

func TestGetWrapsBeyondCapacity(t *testing.T) {
	rb, err := New[int](4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := range 4 {
		rb.Push(10 + i)
	}

	if rb.Get(5) != rb.Get(1) {
		t.Errorf("Get(5) = %d, want Get(1) = %d", rb.Get(5), rb.Get(1))
	}
	if rb.Get(9) != rb.Get(1) {
		t.Errorf("Get(9) = %d, want Get(1) = %d", rb.Get(9), rb.Get(1))
	}
}
