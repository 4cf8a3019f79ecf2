// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import "sync"

// DefaultGrowableCapacity is the conventional initial capacity for
// Growable queues.
const DefaultGrowableCapacity = 8

// shrinkFloor is the capacity below which auto-shrink never compacts.
const shrinkFloor = 8

// lockMode selects how a Growable queue serializes its two sides.
type lockMode uint8

const (
	// lockSplit uses independent read and write mutexes. Producers and
	// consumers never contend with each other, at the cost of the
	// check-then-act gap between HasItem and Dequeue.
	lockSplit lockMode = iota
	// lockUnified uses one mutex for both sides. No gap, no concurrency
	// between producers and consumers.
	lockUnified
	// lockNone takes no locks at all. Demonstration only.
	lockNone
)

// Growable is a FIFO queue backed by a resizable contiguous array.
//
// The live window of the buffer is [readPos, writePos). Enqueue appends
// at writePos and doubles the buffer when it is exhausted, compacting the
// window back to index 0. Dequeue reads at readPos. With auto-shrink
// enabled, the buffer is halved when it is at most half full and above
// the floor capacity.
//
// In split-lock mode (the default) the write mutex serializes producers
// and the read mutex serializes consumers, but the sides do not exclude
// each other. Resize mutates readPos and writePos, which both lock
// classes protect, so grow and shrink take both mutexes.
//
// Lock order: grow locks write then read; shrink locks read then write.
// Running both resize directions concurrently in split mode can
// therefore deadlock, which is one reason auto-shrink is off by default.
type Growable[T any] struct {
	// rMu and wMu point at the same mutex in unified mode. In unlocked
	// mode they exist but are never acquired.
	rMu  *sync.Mutex
	wMu  *sync.Mutex
	mode lockMode

	autoShrink bool

	buffer   []T
	capacity int
	readPos  int
	writePos int
}

// NewGrowable creates a Growable queue with independent read and write
// locks. Panics if capacity < 1. Capacity is never clamped.
func NewGrowable[T any](capacity int) *Growable[T] {
	return newGrowable[T](capacity, lockSplit, false)
}

// NewGrowableUnified creates a Growable queue guarded by a single mutex.
// Panics if capacity < 1.
func NewGrowableUnified[T any](capacity int) *Growable[T] {
	return newGrowable[T](capacity, lockUnified, false)
}

// NewGrowableUnlocked creates a Growable queue with no locking at all.
// Any concurrent use is a data race; the variant exists so harnesses can
// contrast locked and unlocked behavior. Panics if capacity < 1.
func NewGrowableUnlocked[T any](capacity int) *Growable[T] {
	return newGrowable[T](capacity, lockNone, false)
}

func newGrowable[T any](capacity int, mode lockMode, autoShrink bool) *Growable[T] {
	if capacity < 1 {
		panic("bq: capacity must be >= 1")
	}

	q := &Growable[T]{
		mode:       mode,
		autoShrink: autoShrink,
		buffer:     make([]T, capacity),
		capacity:   capacity,
	}
	if mode == lockUnified {
		mu := &sync.Mutex{}
		q.rMu, q.wMu = mu, mu
	} else {
		q.rMu, q.wMu = &sync.Mutex{}, &sync.Mutex{}
	}
	return q
}

func (q *Growable[T]) lock(mu *sync.Mutex) {
	if q.mode != lockNone {
		mu.Lock()
	}
}

func (q *Growable[T]) unlock(mu *sync.Mutex) {
	if q.mode != lockNone {
		mu.Unlock()
	}
}

// Enqueue adds an element, doubling the capacity if the write position
// has reached the end of the buffer. Never blocks, always returns nil.
func (q *Growable[T]) Enqueue(elem *T) error {
	q.lock(q.wMu)
	defer q.unlock(q.wMu)

	if q.writePos == q.capacity {
		q.grow()
	}
	q.buffer[q.writePos] = *elem
	q.writePos++
	return nil
}

// grow doubles the capacity and compacts the live window to index 0.
// Called with the write side held. Resize rewrites readPos, so the read
// side must be excluded as well.
func (q *Growable[T]) grow() {
	if q.mode == lockSplit {
		q.rMu.Lock()
		defer q.rMu.Unlock()
	}

	q.capacity *= 2
	next := make([]T, q.capacity)
	n := copy(next, q.buffer[q.readPos:q.writePos])
	q.buffer = next
	q.readPos, q.writePos = 0, n
}

// Dequeue removes and returns the front element. Never blocks.
// Returns (zero-value, ErrEmpty) when the queue is empty at the moment
// of the call — on a split-lock queue this is the expected outcome of
// losing the HasItem/Dequeue race to another consumer.
func (q *Growable[T]) Dequeue() (T, error) {
	q.lock(q.rMu)
	defer q.unlock(q.rMu)

	if q.readPos == q.writePos {
		var zero T
		return zero, ErrEmpty
	}
	if q.autoShrink && q.capacity > shrinkFloor && q.writePos-q.readPos <= q.capacity/2 {
		q.shrink()
	}
	elem := q.buffer[q.readPos]
	var zero T
	q.buffer[q.readPos] = zero
	q.readPos++
	return elem, nil
}

// shrink halves the capacity and compacts the live window to index 0.
// Called with the read side held. Resize rewrites writePos, so the write
// side must be excluded as well.
func (q *Growable[T]) shrink() {
	if q.mode == lockSplit {
		q.wMu.Lock()
		defer q.wMu.Unlock()
	}

	q.capacity /= 2
	next := make([]T, q.capacity)
	n := copy(next, q.buffer[q.readPos:q.writePos])
	q.buffer = next
	q.readPos, q.writePos = 0, n
}

// HasItem reports whether the queue appeared non-empty at some instant
// during the call. The read lock is released before HasItem returns, so
// the observation may be stale by the time the caller dequeues.
func (q *Growable[T]) HasItem() bool {
	q.lock(q.rMu)
	defer q.unlock(q.rMu)
	return q.writePos > q.readPos
}

// Len returns the number of resident items.
func (q *Growable[T]) Len() int {
	q.lock(q.rMu)
	defer q.unlock(q.rMu)
	return q.writePos - q.readPos
}

// Cap returns the current capacity.
func (q *Growable[T]) Cap() int {
	q.lock(q.rMu)
	defer q.unlock(q.rMu)
	return q.capacity
}
