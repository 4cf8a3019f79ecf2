// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import "time"

// Controller is a shared, monotonically resolving termination deadline.
//
// Producer and consumer loops observe it cooperatively, re-checking once
// per iteration. There is no forced preemption: a goroutine blocked
// inside a single queue operation will not observe termination until
// that operation returns.
type Controller struct {
	deadline time.Time
}

// NewController creates a Controller whose deadline is now + d.
func NewController(d time.Duration) *Controller {
	return &Controller{deadline: time.Now().Add(d)}
}

// ShouldTerminate reports whether the deadline has passed.
// Pure function of the current time; no mutation.
func (c *Controller) ShouldTerminate() bool {
	return time.Now().After(c.deadline)
}
