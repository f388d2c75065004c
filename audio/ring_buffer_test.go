// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"sync"
	"testing"
)

func TestRingBuffer_FIFO(t *testing.T) {
	t.Parallel()

	rb := NewRingBuffer(64)

	// Interleave pushes and pops so the indices wrap several times.
	next, want := int16(0), int16(0)
	for round := range 50 {
		for range round%7 + 1 {
			if !rb.Push(next) {
				t.Fatalf("Push(%d) failed with %d free", next, rb.AvailableToWrite())
			}
			next++
		}
		for rb.AvailableToRead() > round%3 {
			if got := rb.Pop(); got != want {
				t.Fatalf("Pop() = %d, want %d", got, want)
			}
			want++
		}
	}
	for rb.AvailableToRead() > 0 {
		if got := rb.Pop(); got != want {
			t.Fatalf("Pop() = %d, want %d", got, want)
		}
		want++
	}
	if want != next {
		t.Errorf("popped %d values, pushed %d", want, next)
	}
}

func TestRingBuffer_CapacityInvariant(t *testing.T) {
	t.Parallel()

	rb := NewRingBuffer(16)

	check := func(step string) {
		t.Helper()
		if got := rb.AvailableToRead() + rb.AvailableToWrite(); got != rb.Cap()-1 {
			t.Fatalf("%s: read+write = %d, want %d", step, got, rb.Cap()-1)
		}
	}

	check("empty")
	for i := range 40 {
		rb.Push(int16(i))
		check("push")
		if i%3 == 0 {
			rb.Pop()
			check("pop")
		}
	}
	rb.Clear()
	check("clear")
}

func TestRingBuffer_FullRejectsPush(t *testing.T) {
	t.Parallel()

	rb := NewRingBuffer(8)
	for i := range 7 {
		if !rb.Push(int16(i + 1)) {
			t.Fatalf("Push(%d) failed before full", i+1)
		}
	}
	if rb.AvailableToWrite() != 0 {
		t.Fatalf("AvailableToWrite() = %d, want 0", rb.AvailableToWrite())
	}

	readBefore := rb.read.Load()
	if rb.Push(99) {
		t.Fatal("Push() on full buffer returned true")
	}
	if rb.read.Load() != readBefore {
		t.Error("Push() on full buffer moved the read index")
	}

	for i := range 7 {
		if got := rb.Pop(); got != int16(i+1) {
			t.Errorf("Pop() = %d, want %d", got, i+1)
		}
	}
}

func TestRingBuffer_PopEmpty(t *testing.T) {
	t.Parallel()

	rb := NewRingBuffer(4)
	if got := rb.Pop(); got != 0 {
		t.Errorf("Pop() on empty = %d, want 0", got)
	}
	if rb.AvailableToRead() != 0 {
		t.Errorf("AvailableToRead() = %d after empty pop, want 0", rb.AvailableToRead())
	}
}

func TestRingBuffer_Clear(t *testing.T) {
	t.Parallel()

	rb := NewRingBuffer(8)
	rb.Push(1)
	rb.Push(2)
	rb.Pop()
	rb.Clear()

	if rb.AvailableToRead() != 0 {
		t.Errorf("AvailableToRead() = %d after Clear, want 0", rb.AvailableToRead())
	}
	if rb.AvailableToWrite() != 7 {
		t.Errorf("AvailableToWrite() = %d after Clear, want 7", rb.AvailableToWrite())
	}
	if rb.read.Load() != 0 || rb.write.Load() != 0 {
		t.Error("Clear() did not reset both indices to zero")
	}
}

func TestRingBuffer_InvalidSize(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("NewRingBuffer(1) did not panic")
		}
	}()
	NewRingBuffer(1)
}

// TestRingBuffer_Concurrent runs one producer and one consumer goroutine and
// checks the consumer sees every value in order.
func TestRingBuffer_Concurrent(t *testing.T) {
	t.Parallel()

	const total = 200000
	rb := NewRingBuffer(1024)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; {
			if rb.Push(int16(i)) {
				i++
			}
		}
	}()

	for want := 0; want < total; {
		if rb.AvailableToRead() == 0 {
			continue
		}
		if got := rb.Pop(); got != int16(want) {
			t.Fatalf("Pop() = %d, want %d", got, int16(want))
		}
		want++
	}
	wg.Wait()
}

func TestRingBuffer_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	rb := NewRingBuffer(256)
	allocs := testing.AllocsPerRun(1000, func() {
		rb.Push(1)
		rb.Push(2)
		_ = rb.AvailableToRead()
		rb.Pop()
		rb.Pop()
	})

	if allocs > 0 {
		t.Errorf("RingBuffer push/pop allocated %v times, want 0", allocs)
	}
}

func BenchmarkRingBuffer_PushPop(b *testing.B) {
	rb := NewRingBuffer(DefaultRingSize)

	b.ReportAllocs()

	for i := range b.N {
		rb.Push(int16(i))
		rb.Pop()
	}
}
