// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

// Queue is the combined producer-consumer interface for a FIFO queue.
//
// Every variant in this package implements Queue, so harnesses and tests
// can run against any of them interchangeably:
//
//	func drive(q bq.Queue[int]) {
//	    v := 1
//	    q.Enqueue(&v)
//	    if q.HasItem() {
//	        elem, err := q.Dequeue()
//	        ...
//	    }
//	}
//
// Blocking behavior differs per variant and is documented on the
// constructors: Bounded and Joinable block in Enqueue/Dequeue, Growable
// never blocks and reports ErrEmpty instead.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// Len returns the number of items currently resident in the queue.
	// The value is a snapshot; under concurrency it may be stale by the
	// time the caller acts on it.
	Len() int

	// Cap returns the current capacity. Fixed for Bounded and Joinable;
	// Growable capacity changes as the queue resizes.
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue.
	//
	// Bounded and Joinable block while the queue is full and always
	// return nil. Growable never blocks: it doubles its capacity when
	// full and always returns nil. The error return exists so
	// non-blocking implementations can report ErrWouldBlock.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value (copied out of the queue's buffer).
// The vacated slot is cleared to allow garbage collection of referenced
// objects.
type Consumer[T any] interface {
	// Dequeue removes and returns the front element.
	//
	// Bounded and Joinable block while the queue is empty and always
	// return a nil error. Growable returns (zero-value, ErrEmpty) when
	// the queue is empty at the moment of the call.
	Dequeue() (T, error)

	// HasItem reports whether the queue appeared non-empty at some
	// instant during the call. The observation is released before
	// HasItem returns: on a split-lock Growable queue a subsequent
	// Dequeue may still find the queue empty.
	HasItem() bool
}

// Joiner tracks completion of enqueued work.
//
// Joinable implements this interface. Coordinators that accept a generic
// Queue can discover completion tracking by type assertion, in the same
// way lfq callers discover Drainer:
//
//	if j, ok := q.(bq.Joiner); ok {
//	    j.Join()
//	}
type Joiner interface {
	// TaskDone marks one previously dequeued item as fully processed.
	// Calling TaskDone more times than items were enqueued panics.
	TaskDone()

	// Join blocks until every enqueued item has had a matching TaskDone.
	// Join never drains or inspects the queue; it is purely a completion
	// barrier.
	Join()
}
