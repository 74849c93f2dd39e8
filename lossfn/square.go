// SPDX-License-Identifier: MIT
package lossfn

import "math"

// SquareLoss is the terminal LossSite: squared error over population rows,
// (yhat-y)^2. Residual returns y-yhat, the negative gradient direction, so
// the closed-form leaf weight that minimizes it is the mean residual over a
// leaf's rows.
type SquareLoss struct {
	target     []float64
	prediction []float64 // current committed yhat per row (intercept + all committed trees)
}

// NewSquareLoss returns a SquareLoss over target, with every row's initial
// prediction set to init (the ensemble's global intercept before any trees
// are fit).
func NewSquareLoss(target []float64, init float64) *SquareLoss {
	pred := make([]float64, len(target))
	for i := range pred {
		pred[i] = init
	}

	return &SquareLoss{target: target, prediction: pred}
}

// NewSquareLossFromPrediction returns a SquareLoss over target, seeded with
// a per-row baseline prediction rather than a uniform scalar (spec §4.4: a
// tree fits against "the current residual loss", i.e. the ensemble's
// cumulative prediction so far, not a fresh intercept). The baseline is
// copied; mutating prediction afterward does not affect the caller's slice.
func NewSquareLossFromPrediction(target, prediction []float64) *SquareLoss {
	pred := append([]float64(nil), prediction...)

	return &SquareLoss{target: target, prediction: pred}
}

// NRows reports the population row count.
func (l *SquareLoss) NRows() int { return len(l.target) }

// Residual returns the negative gradient for row i: target[i] - yhat[i],
// the value an aggregation's weight should move the prediction towards.
func (l *SquareLoss) Residual(i int) float64 { return l.target[i] - l.prediction[i] }

// Prediction returns the current committed prediction for row i.
func (l *SquareLoss) Prediction(i int) float64 { return l.prediction[i] }

// EvaluateDelta computes Σ (oldSqErr - newSqErr) over touched rows, where
// newSqErr uses prediction[i]+delta(i) (spec §4.2 evaluate_split contract).
func (l *SquareLoss) EvaluateDelta(touched []int, delta RowDelta) float64 {
	var reduction float64
	for _, i := range touched {
		old := l.target[i] - l.prediction[i]
		neu := l.target[i] - (l.prediction[i] + delta(i))
		reduction += old*old - neu*neu
	}

	return reduction
}

// CommitDelta permanently applies delta to the committed prediction.
func (l *SquareLoss) CommitDelta(touched []int, delta RowDelta) {
	for _, i := range touched {
		l.prediction[i] += delta(i)
	}
}

// Commit is a no-op for SquareLoss: CommitDelta already advances the
// baseline directly (there is no separate "old" shadow copy to rebase).
func (l *SquareLoss) Commit() {}

// RevertToCommit is a no-op for SquareLoss for the same reason: nothing is
// mutated by EvaluateDelta, so there is nothing to undo.
func (l *SquareLoss) RevertToCommit() {}

// CalcUpdateRate runs a closed-form line search for the shrinkage factor
// that minimizes Σ (residual[i] - rate*treePrediction[i])^2 over all rows,
// i.e. rate = Σ(residual·treePrediction) / Σ(treePrediction^2) (spec §4.4:
// "compute an update rate η_k by a line search"). Returns 0 if the tree's
// prediction is identically zero (a pure-leaf no-op tree).
func (l *SquareLoss) CalcUpdateRate(treePrediction []float64) float64 {
	var num, den float64
	for i, tp := range treePrediction {
		num += l.Residual(i) * tp
		den += tp * tp
	}
	if den == 0 || math.IsNaN(den) {
		return 0
	}

	return num / den
}

// SSE returns the current total sum of squared error over the rows being
// fit, the score the ensemble's patience check compares between rounds.
func (l *SquareLoss) SSE() float64 {
	var sse float64
	for i := range l.target {
		d := l.target[i] - l.prediction[i]
		sse += d * d
	}

	return sse
}
