// SPDX-License-Identifier: MIT
package tree

import "errors"

var (
	// ErrInternal reports a violated invariant: a winning split that fails
	// its re-evaluation at commit time (spec §7 InternalError). An infinite
	// weight does not raise it: Aggregation rejects such a candidate the same
	// way it rejects a NaN one.
	ErrInternal = errors.New("tree: internal invariant violated")

	// ErrNotFitted indicates Transform was called on a tree whose Fit never
	// completed (spec §7 NotFitted).
	ErrNotFitted = errors.New("tree: not fitted")
)

// InternalError wraps ErrInternal with the specific invariant text that
// failed, matching spec §7's "reported with the invariant text".
type InternalError struct {
	Invariant string
}

func (e *InternalError) Error() string { return "tree: internal error: " + e.Invariant }
func (e *InternalError) Unwrap() error { return ErrInternal }
