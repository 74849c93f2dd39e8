// SPDX-License-Identifier: MIT
//
// Package lossfn defines the LossSite contract the tree algorithm programs
// against at every level of the aggregation chain, and the terminal
// square-loss implementation that sits at the bottom of that chain (spec
// §9: "prefer a LossSite trait with step/commit/revert/evaluate/weights
// methods and a Chain combinator whose Aggregate variant transforms the
// input... into the child's input").
//
// Where lvlath/flow tracks residual capacity along a path and commits a
// bottleneck augmentation once found, a LossSite tracks residual loss
// gradient per row and commits a weight update once a split is chosen: the
// same "propose, evaluate without mutating, commit the winner" discipline.
package lossfn

// Weights is the closed-form leaf-weight triplet a candidate split proposes:
// an intercept plus the greater/smaller-branch weights (spec §4.2: "the
// operator evaluates at most three closed-form leaf-weight triplets").
type Weights struct {
	Intercept, Greater, Smaller float64
}

// RowDelta resolves the per-row prediction change a candidate implies, for
// one row index. Aggregation's deltaFunc builds one of these from η1/η2
// and the candidate Weights before forwarding to its child LossSite — this
// is the "match stream transformed into row-indexed η" §9 describes.
type RowDelta func(row int) float64

// LossSite is the contract an Aggregation's child loss satisfies
// (aggregation.GradientSite embeds it); the terminal SquareLoss implements
// it directly over population rows. Aggregation itself does not implement
// LossSite, and there is no Chain type: the tree calls the Aggregation's
// own CalcWeights/Commit/RevertToCommit methods.
type LossSite interface {
	// Commit freezes the current state as the new baseline.
	Commit()

	// RevertToCommit undoes every change since the last Commit.
	RevertToCommit()

	// EvaluateDelta reports the loss reduction achieved by replacing each
	// touched row's contribution with delta(row), without mutating any
	// state (spec §4.2 evaluate_split: "must be side-effect-free so it can
	// be called for every candidate without disturbing state").
	EvaluateDelta(touched []int, delta RowDelta) float64

	// CommitDelta permanently applies delta to every touched row, advancing
	// the committed baseline (used once per tree, after the best split at
	// each node is chosen).
	CommitDelta(touched []int, delta RowDelta)

	// CalcUpdateRate runs the line search that chooses a tree's shrinkage
	// factor against this loss site (spec §4.4).
	CalcUpdateRate(treePrediction []float64) float64
}
