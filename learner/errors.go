// SPDX-License-Identifier: MIT
package learner

import "errors"

var (
	// ErrNotFitted indicates Transform was called on a FeatureLearner whose
	// Fit never completed successfully (spec §7 NotFitted).
	ErrNotFitted = errors.New("learner: not fitted")

	// ErrIo is the class sentinel behind IoError (spec §7 IoError).
	ErrIo = errors.New("learner: io error")
)

// InternalError wraps an invariant violation surfaced above the tree/
// ensemble layer — a round whose tree returned a row count mismatched
// against the match buffer, for instance (spec §7 InternalError).
type InternalError struct {
	Invariant string
}

func (e *InternalError) Error() string { return "learner: internal error: " + e.Invariant }

// IoError reports a failure reading or writing a learner's persisted state
// or an ingested file (spec §7 "pool resize failed, file not found, disk
// full"). Op names the attempted operation; Path the file involved, if any.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	if e.Path == "" {
		return "learner: io: " + e.Op + ": " + e.Err.Error()
	}

	return "learner: io: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IoError) Unwrap() error { return e.Err }

// Is reports ErrIo as a match in addition to e.Err's own chain, so callers
// can branch on errors.Is(err, learner.ErrIo) regardless of the wrapped
// cause (table's SchemaError/MissingColumnError follow the same
// sentinel-plus-struct convention).
func (e *IoError) Is(target error) bool { return target == ErrIo }
