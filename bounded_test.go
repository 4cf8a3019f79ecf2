// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/bq"
)

// =============================================================================
// Bounded - Basic Operations
// =============================================================================

func TestBoundedBasic(t *testing.T) {
	q := bq.NewBounded[int](4)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}
	if q.HasItem() {
		t.Fatal("HasItem on fresh queue: got true, want false")
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if q.Len() != 4 {
		t.Fatalf("Len: got %d, want 4", q.Len())
	}
	if !q.HasItem() {
		t.Fatal("HasItem on full queue: got false, want true")
	}

	// Dequeue in FIFO order
	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("Len after drain: got %d, want 0", q.Len())
	}
}

func TestBoundedTryOperations(t *testing.T) {
	q := bq.NewBounded[int](2)

	for i := range 2 {
		v := i
		if err := q.TryEnqueue(&v); err != nil {
			t.Fatalf("TryEnqueue(%d): %v", i, err)
		}
	}

	// Full queue returns ErrWouldBlock
	v := 999
	err := q.TryEnqueue(&v)
	if !errors.Is(err, bq.ErrWouldBlock) {
		t.Fatalf("TryEnqueue on full: got %v, want ErrWouldBlock", err)
	}
	if !bq.IsWouldBlock(err) {
		t.Fatal("IsWouldBlock(full): got false, want true")
	}
	if !bq.IsNonFailure(err) {
		t.Fatal("IsNonFailure(full): got false, want true")
	}

	for i := range 2 {
		val, err := q.TryDequeue()
		if err != nil {
			t.Fatalf("TryDequeue(%d): %v", i, err)
		}
		if val != i {
			t.Fatalf("TryDequeue(%d): got %d, want %d", i, val, i)
		}
	}

	// Empty queue returns ErrEmpty
	_, err = q.TryDequeue()
	if !errors.Is(err, bq.ErrEmpty) {
		t.Fatalf("TryDequeue on empty: got %v, want ErrEmpty", err)
	}
	if !bq.IsEmpty(err) {
		t.Fatal("IsEmpty(empty): got false, want true")
	}
}

func TestBoundedCapacityPanic(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("NewBounded(%d): expected panic", capacity)
				}
			}()
			bq.NewBounded[int](capacity)
		}()
	}
}

// =============================================================================
// Bounded - Blocking Correctness
// =============================================================================

// TestBoundedBlockingDequeue proves a Dequeue on an empty queue does not
// return until a concurrent Enqueue occurs.
func TestBoundedBlockingDequeue(t *testing.T) {
	q := bq.NewBounded[int](4)

	started := make(chan struct{})
	got := make(chan int, 1)
	go func() {
		close(started)
		v, _ := q.Dequeue()
		got <- v
	}()

	<-started
	select {
	case v := <-got:
		t.Fatalf("Dequeue returned %d on empty queue", v)
	case <-time.After(50 * time.Millisecond):
		// Still blocked, as required.
	}

	v := 7
	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	select {
	case val := <-got:
		if val != 7 {
			t.Fatalf("Dequeue: got %d, want 7", val)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Dequeue did not return after Enqueue")
	}
}

// TestBoundedBlockingEnqueue proves an Enqueue on a full queue does not
// return until a concurrent Dequeue occurs.
func TestBoundedBlockingEnqueue(t *testing.T) {
	q := bq.NewBounded[int](2)
	for i := range 2 {
		v := i
		q.Enqueue(&v)
	}

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		v := 99
		q.Enqueue(&v)
		close(done)
	}()

	<-started
	select {
	case <-done:
		t.Fatal("Enqueue returned on full queue")
	case <-time.After(50 * time.Millisecond):
		// Still blocked, as required.
	}

	if _, err := q.Dequeue(); err != nil {
		t.Fatalf("Dequeue: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue did not return after Dequeue")
	}

	if q.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", q.Len())
	}
}

// =============================================================================
// Bounded - Ordering and Capacity Invariants
// =============================================================================

// TestBoundedFIFO checks that a single producer and single consumer see
// the exact produced sequence, in order.
func TestBoundedFIFO(t *testing.T) {
	const total = 10000
	q := bq.NewBounded[int](64)

	go func() {
		for i := range total {
			v := i
			q.Enqueue(&v)
		}
	}()

	for i := range total {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i)
		}
	}
}

// TestBoundedCapacityInvariant drives multiple producers and consumers
// while sampling Len; the resident count must never exceed the capacity.
func TestBoundedCapacityInvariant(t *testing.T) {
	const (
		capacity     = 8
		producers    = 4
		itemsPerProd = 2000
	)
	q := bq.NewBounded[int](capacity)

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range itemsPerProd {
				v := id*itemsPerProd + i
				q.Enqueue(&v)
			}
		}(p)
	}

	done := make(chan struct{})
	violation := make(chan int, 1)
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			if n := q.Len(); n > capacity {
				select {
				case violation <- n:
				default:
				}
				return
			}
		}
	}()

	consumed := 0
	for consumed < producers*itemsPerProd {
		if _, err := q.Dequeue(); err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
		consumed++
	}
	wg.Wait()
	close(done)

	select {
	case n := <-violation:
		t.Fatalf("resident count %d exceeded capacity %d", n, capacity)
	default:
	}
}
