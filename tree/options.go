// SPDX-License-Identifier: MIT
package tree

// Options configures one DecisionTreeNode fit (spec §4.3).
type Options struct {
	// MaxDepth bounds recursion; a node deeper than MaxDepth is forced to a leaf.
	MaxDepth int

	// Gamma is the minimum loss_reduction a split must clear to be taken
	// (spec §4.3 "Tie-break and gate"); candidates at or below Gamma leave
	// the node a leaf.
	Gamma float64

	// MinNumSamples gates split search: a node with fewer than
	// 2*MinNumSamples matches is not searched and becomes a leaf. The
	// Aggregation's own balance-rule floor is the one given to aggregation.New.
	MinNumSamples int

	// MaxCriticalValues bounds how many candidate thresholds a numerical
	// split considers (spec §4.3 step 3).
	MaxCriticalValues int
}

// DefaultOptions returns the spec's suggested defaults: at most 64 critical
// values per split (DefaultMaxCriticalValues), a single required sample per side, and
// a depth of 4 — a conservative default matching the tsp package's
// "deterministic, explicit" posture rather than an unbounded tree.
func DefaultOptions() Options {
	return Options{
		MaxDepth:          4,
		Gamma:             1e-7,
		MinNumSamples:     1,
		MaxCriticalValues: 64,
	}
}
