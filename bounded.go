// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"sync"

	"github.com/eapache/queue"
)

// DefaultBoundedCapacity is the conventional capacity for Bounded queues
// when the caller has no better number.
const DefaultBoundedCapacity = 64

// Bounded is a fixed-capacity blocking FIFO queue.
//
// One mutex guards the backing deque; two condition variables (not-full,
// not-empty) park producers and consumers. Enqueue suspends the calling
// goroutine while the queue is full, Dequeue while it is empty, so the
// resident item count never exceeds the capacity at any observable
// instant.
//
// A single notification can be consumed by a goroutine that enqueues
// twice before another waiter runs, so waiters must never trust the wake
// count: both wait loops re-check their predicate after every wakeup.
//
// Memory: O(capacity), allocated lazily by the backing ring deque.
type Bounded[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	items    *queue.Queue
	capacity int
}

// NewBounded creates a new Bounded queue.
// Panics if capacity < 1. Capacity is never clamped.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity < 1 {
		panic("bq: capacity must be >= 1")
	}

	q := &Bounded[T]{
		items:    queue.New(),
		capacity: capacity,
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Enqueue adds an element to the queue, blocking while the queue is full.
// Always returns nil.
//
// Blocking is unbounded: there is no timeout and no cancellation path.
// Callers that need a deadline must layer it externally.
func (q *Bounded[T]) Enqueue(elem *T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Re-check after every wakeup: another producer woken for the same
	// freed slot may have already claimed it.
	for q.items.Length() >= q.capacity {
		q.notFull.Wait()
	}
	q.items.Add(*elem)
	q.notEmpty.Signal()
	return nil
}

// Dequeue removes and returns the front element, blocking while the
// queue is empty. The error is always nil.
func (q *Bounded[T]) Dequeue() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Length() == 0 {
		q.notEmpty.Wait()
	}
	elem := q.items.Remove().(T)
	q.notFull.Signal()
	return elem, nil
}

// TryEnqueue adds an element without blocking.
// Returns ErrWouldBlock if the queue is full.
func (q *Bounded[T]) TryEnqueue(elem *T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Length() >= q.capacity {
		return ErrWouldBlock
	}
	q.items.Add(*elem)
	q.notEmpty.Signal()
	return nil
}

// TryDequeue removes and returns the front element without blocking.
// Returns (zero-value, ErrEmpty) if the queue is empty.
func (q *Bounded[T]) TryDequeue() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Length() == 0 {
		var zero T
		return zero, ErrEmpty
	}
	elem := q.items.Remove().(T)
	q.notFull.Signal()
	return elem, nil
}

// HasItem reports whether the queue held at least one item at some
// instant during the call.
func (q *Bounded[T]) HasItem() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length() > 0
}

// Len returns the number of resident items.
func (q *Bounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// Cap returns the queue capacity.
func (q *Bounded[T]) Cap() int {
	return q.capacity
}
