// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"sync"

	"code.hybscloud.com/atomix"
	"golang.org/x/exp/constraints"
)

// results collects consumed values in arrival order together with
// experiment counters. The value slice is mutex-guarded; the counters
// are atomic so hot loops never take the results lock just to count.
type results[T constraints.Integer] struct {
	mu       sync.Mutex
	consumed []T

	produced    atomix.Int64
	dequeued    atomix.Int64
	emptyMisses atomix.Int64
}

// record runs dequeue and records its value in one critical section.
// Recording after releasing the queue would let two consumers swap
// their append order and spuriously break per-producer ordering; the
// check-then-act window under observation is before the dequeue, not
// after it, so coupling dequeue and record loses nothing.
func (r *results[T]) record(dequeue func() (T, error)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := dequeue()
	if err != nil {
		return v, err
	}
	r.consumed = append(r.consumed, v)
	r.dequeued.Add(1)
	return v, nil
}

// Report is an immutable snapshot of a finished experiment.
type Report[T constraints.Integer] struct {
	// Produced is the number of values enqueued by all producers.
	Produced int64
	// Consumed is the number of values successfully dequeued.
	Consumed int64
	// EmptyMisses counts Dequeue calls that lost the check-then-act
	// race and observed an empty queue. Zero or more misses is a normal
	// outcome, not a failure.
	EmptyMisses int64
	// Values holds the consumed values in arrival order.
	Values []T
}

func (r *results[T]) report() *Report[T] {
	r.mu.Lock()
	values := make([]T, len(r.consumed))
	copy(values, r.consumed)
	r.mu.Unlock()

	return &Report[T]{
		Produced:    r.produced.Load(),
		Consumed:    r.dequeued.Load(),
		EmptyMisses: r.emptyMisses.Load(),
		Values:      values,
	}
}
