// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

// VerifySequences checks the sequencing contract of a finished run:
// every consumed value must equal the next expected value of exactly one
// producer's monotonic sequence, and values from one producer must
// appear in that producer's original order. Interleaving between
// producers is unconstrained.
//
// starts must be the same per-producer start values the run was
// configured with. Returns nil when the contract holds.
func VerifySequences[T constraints.Integer](values []T, starts []T) error {
	next := slices.Clone(starts)

	for i, v := range values {
		matched := false
		for j := range next {
			if v == next[j] {
				next[j]++
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf(
				"harness: value %v at index %d matches no producer's expected next value %v",
				v, i, next,
			)
		}
	}
	return nil
}
