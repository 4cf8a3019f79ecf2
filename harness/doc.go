// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package harness drives bq queues with concurrent producers and
// consumers to observe ordering properties under contention.
//
// A Harness wires P producers and C consumers against one queue and one
// shared termination deadline. Each producer emits bursts of
// monotonically increasing integers from its own starting offset; each
// consumer busy-polls HasItem and dequeues, tolerating ErrEmpty as the
// expected outcome of the split-lock check-then-act gap. Consumed values
// are collected in arrival order and can be checked with
// [VerifySequences]: every value must be the next expected value of
// exactly one producer, and values from one producer must arrive in that
// producer's original order. Interleaving between producers is
// unspecified and timing-dependent.
//
//	q := bq.NewGrowable[int64](8)
//	h := harness.New(q, harness.Config[int64]{
//	    Starts:   []int64{10, 1},
//	    Consumers: 2,
//	    Duration: 2 * time.Second,
//	})
//	report, err := h.Run(context.Background())
//	...
//	err = harness.VerifySequences(report.Values, []int64{10, 1})
package harness
