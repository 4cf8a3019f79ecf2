// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bq provides lock-based bounded FIFO queue implementations.
//
// bq is the blocking companion to the lock-free queues in
// [code.hybscloud.com/lfq]. Where lfq queues never block and push
// backpressure onto the caller, bq queues suspend the calling goroutine
// until the operation can proceed.
//
// The package offers three queue variants:
//
//   - Bounded: fixed-capacity blocking queue (mutex + condition variables)
//   - Joinable: Bounded plus completion tracking (TaskDone/Join barrier)
//   - Growable: resizable array queue with independent read/write locks
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := bq.NewBounded[Event](64)
//	q := bq.NewJoinable[*Task](64)
//	q := bq.NewGrowable[int](8)
//
// Builder API selects the variant based on configuration:
//
//	q := bq.Build[Event](bq.New(64))                         // → Bounded
//	q := bq.Build[Event](bq.New(64).Joinable())              // → Joinable
//	q := bq.Build[Event](bq.New(8).Growable())               // → Growable, split locks
//	q := bq.Build[Event](bq.New(8).Growable().UnifiedLock()) // → Growable, one mutex
//
// # Basic Usage
//
// All variants share the same [Queue] interface:
//
//	q := bq.NewBounded[int](64)
//
//	// Enqueue blocks while the queue is full (backpressure)
//	value := 42
//	q.Enqueue(&value)
//
//	// Dequeue blocks while the queue is empty
//	elem, _ := q.Dequeue()
//
// Non-blocking probes are available on Bounded:
//
//	if err := q.TryEnqueue(&value); bq.IsWouldBlock(err) {
//	    // Queue is full right now
//	}
//
// # Completion Tracking
//
// Joinable counts outstanding work. Every enqueued item must be
// acknowledged with TaskDone; Join blocks until the count reaches zero:
//
//	q := bq.NewJoinable[Task](64)
//
//	go func() { // Worker
//	    for {
//	        task, _ := q.Dequeue()
//	        task.Run()
//	        q.TaskDone()
//	    }
//	}()
//
//	for t := range tasks {
//	    q.Enqueue(&t)
//	}
//	q.Join() // Returns once every task has been acknowledged
//
// Join is purely a completion barrier: it never inspects or drains the
// queue. TaskDone without a matching prior Enqueue panics.
//
// # Growable Queues and the Check-Then-Act Gap
//
// Growable trades a single global lock for independent read-side and
// write-side mutexes so producers and consumers do not contend with each
// other. The cost is that HasItem and Dequeue are separate critical
// sections: a consumer may observe a non-empty queue, release the read
// lock, and find the queue drained by another consumer when it calls
// Dequeue. Dequeue then returns [ErrEmpty]. This is an expected outcome
// of the split-lock design, not a failure:
//
//	if q.HasItem() {
//	    elem, err := q.Dequeue()
//	    if bq.IsEmpty(err) {
//	        // Another consumer won the race. Skip this cycle.
//	    }
//	}
//
// Growable never blocks. Enqueue doubles the backing array instead of
// waiting, and Dequeue reports ErrEmpty instead of waiting. Use Bounded
// when blocking semantics are wanted.
//
// Three lock modes are available through the builder:
//
//	.Growable()               // split read/write locks (default)
//	.Growable().UnifiedLock() // one mutex guards both sides
//	.Growable().Unlocked()    // no locking at all (demonstration only)
//
// The unified mode removes every unsynchronized cross-side access, but
// the check-then-act gap is a property of the two-call API and remains
// in every mode: with more than one consumer, Dequeue can report
// ErrEmpty after a positive HasItem. Consumers that cannot tolerate
// ErrEmpty should use a Bounded queue instead.
//
// # Error Handling
//
// Blocking operations have no error path. Non-blocking operations return
// [ErrWouldBlock] (full) or [ErrEmpty] (empty). Both are control flow
// signals sourced from [code.hybscloud.com/iox], not failures:
//
//	bq.IsEmpty(err)       // true if a dequeue found no item
//	bq.IsWouldBlock(err)  // true if the operation would block
//	bq.IsNonFailure(err)  // true for nil or any would-block signal
//
// Construction with a non-positive capacity panics. Capacity is never
// silently clamped.
//
// # Thread Safety
//
// Bounded and Joinable are safe for any number of producer and consumer
// goroutines; a single mutex with not-full/not-empty condition variables
// serializes access, and wait predicates are re-checked in a loop so
// multiple or spurious wakeups never over-admit items.
//
// Growable in split-lock mode is safe per side (producers serialize on
// the write lock, consumers on the read lock) but the two sides do not
// exclude each other; see the check-then-act discussion above. The
// unlocked mode provides no safety whatsoever.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// [github.com/eapache/queue] as the ring deque backing the Bounded
// variants.
package bq
