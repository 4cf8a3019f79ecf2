// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For TryEnqueue: the queue is full (backpressure)
// For TryDequeue: the queue is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later, or use the blocking Enqueue/Dequeue forms.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrEmpty indicates a dequeue found the queue empty at the moment of the
// call.
//
// On a Growable queue this is the expected, tolerated outcome of the
// check-then-act gap between HasItem and Dequeue: another consumer may
// drain the last item after the check is released. Catch it at the call
// site and treat it as "no item this cycle":
//
//	elem, err := q.Dequeue()
//	if bq.IsEmpty(err) {
//	    continue // another consumer won the race
//	}
//
// ErrEmpty wraps [iox.ErrWouldBlock], so iox classification helpers and
// errors.Is(err, bq.ErrWouldBlock) both recognize it.
var ErrEmpty = fmt.Errorf("bq: queue empty: %w", iox.ErrWouldBlock)

// IsEmpty reports whether err indicates a dequeue on an empty queue.
// Narrower than IsWouldBlock: a full-queue TryEnqueue signal is a
// would-block condition but not an empty one.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmpty)
}

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil and any would-block signal.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
