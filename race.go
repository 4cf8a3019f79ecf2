// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package bq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip scenarios that exercise the split-lock and
// unlocked Growable modes, whose cross-side accesses are deliberately
// unsynchronized and would be reported as races.
const RaceEnabled = true
