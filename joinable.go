// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import "sync"

// Joinable is a Bounded queue with completion tracking.
//
// Every successful Enqueue increments an unfinished-work counter; every
// TaskDone decrements it. Join blocks until the counter reaches zero,
// giving a coordinator a barrier that releases only once all enqueued
// work has been processed — not merely dequeued.
//
// Invariant: unfinished ≥ resident item count. Equality holds exactly
// when no consumer currently holds a dequeued-but-unacknowledged item.
type Joinable[T any] struct {
	*Bounded[T]

	// Guarded by Bounded.mu.
	unfinished int
	allDone    *sync.Cond
}

// NewJoinable creates a new Joinable queue.
// Panics if capacity < 1. Capacity is never clamped.
func NewJoinable[T any](capacity int) *Joinable[T] {
	b := NewBounded[T](capacity)
	return &Joinable[T]{
		Bounded: b,
		allDone: sync.NewCond(&b.mu),
	}
}

// Enqueue adds an element and counts it as unfinished work.
// Blocks while the queue is full. Always returns nil.
func (q *Joinable[T]) Enqueue(elem *T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Length() >= q.capacity {
		q.notFull.Wait()
	}
	q.items.Add(*elem)
	q.unfinished++
	q.notEmpty.Signal()
	return nil
}

// TryEnqueue adds an element without blocking, counting it as unfinished
// work on success. Returns ErrWouldBlock if the queue is full.
func (q *Joinable[T]) TryEnqueue(elem *T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Length() >= q.capacity {
		return ErrWouldBlock
	}
	q.items.Add(*elem)
	q.unfinished++
	q.notEmpty.Signal()
	return nil
}

// TaskDone marks one previously dequeued item as fully processed.
//
// Panics if called more times than items were enqueued, in the same way
// sync.WaitGroup panics on a negative counter. A silently saturating
// counter would mask the caller bug and release Join early.
func (q *Joinable[T]) TaskDone() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.unfinished == 0 {
		panic("bq: TaskDone called more times than items enqueued")
	}
	q.unfinished--
	if q.unfinished == 0 {
		q.allDone.Broadcast()
	}
}

// Join blocks until every enqueued item has had a matching TaskDone.
// Returns immediately when no work is outstanding.
//
// Join never drains or inspects the queue. A process that calls Join
// after all producers have finished enqueueing and all consumers call
// TaskDone for every consumed item is guaranteed to return.
func (q *Joinable[T]) Join() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.unfinished > 0 {
		q.allDone.Wait()
	}
}

// Unfinished returns the number of enqueued items not yet acknowledged
// with TaskDone.
func (q *Joinable[T]) Unfinished() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.unfinished
}
