// SPDX-License-Identifier: MIT
package aggregation

import (
	"math"

	"github.com/katalvlaran/relboost/lossfn"
	"github.com/katalvlaran/relboost/splitenum"
)

// Kind selects the AggregationImpl variant (spec §4.2).
type Kind int

const (
	// Sum presents a linear aggregation: ŷ_i = count1[i]·w1 + count2[i]·w2.
	Sum Kind = iota
	// Avg presents a normalized aggregation: ŷ_i = (count1[i]·w1 + count2[i]·w2) / countCommitted[i].
	Avg
)

// UpdateMode selects between a from-scratch recompute and an incremental
// difference update (spec §4.2 calc_weights contract).
type UpdateMode int

const (
	// CalcAll recomputes η1, η2 and counts from scratch over all matches.
	CalcAll UpdateMode = iota
	// CalcDiff only processes the strip of matches whose side changed.
	CalcDiff
)

// GradientSite is the narrower contract Aggregation needs from its child to
// compute closed-form leaf weights: a LossSite that also exposes the
// per-row negative gradient (residual). lossfn.SquareLoss satisfies this;
// it is the only terminal loss this port implements (spec §1 scope is the
// weight-per-leaf relational GBDT, not the multi-target linear-leaf sibling).
type GradientSite interface {
	lossfn.LossSite
	Residual(row int) float64
}

// Aggregation sits between the tree and a child GradientSite, forwarding
// each candidate's per-row delta to the child after transforming the
// per-row weight (spec §4.2, §9 "Aggregation as loss function"). The tree
// calls its CalcWeights/Commit/RevertToCommit methods directly; Aggregation
// does not itself implement lossfn.LossSite.
type Aggregation struct {
	kind          Kind
	state         *LossState
	child         GradientSite
	minNumSamples int

	lastW lossfn.Weights // most recently solved candidate, for FixedWeights
}

// New returns an Aggregation of the given kind over nrows output rows,
// forwarding to child, gated by the balance rule minNumSamples (spec §4.2
// "Balance rule").
func New(kind Kind, nrows int, child GradientSite, minNumSamples int) *Aggregation {
	return &Aggregation{
		kind:          kind,
		state:         NewLossState(nrows),
		child:         child,
		minNumSamples: minNumSamples,
	}
}

// Kind reports the aggregation variant.
func (a *Aggregation) Kind() Kind { return a.kind }

// Residual exposes the child loss's per-row residual, chiefly for callers
// (e.g. tree's categorical first-pass weighting) that need the raw gradient
// signal without going through a candidate-split evaluation.
func (a *Aggregation) Residual(row int) float64 { return a.child.Residual(row) }

// State exposes the underlying LossState, chiefly for tests asserting
// spec §8's quantified invariants directly.
func (a *Aggregation) State() *LossState { return a.state }

// eta1At and eta2At compute the sufficient statistic for row i from its
// current counts, per spec §4.2's SUM/AVG formulas.
func (a *Aggregation) eta1At(i int) float64 {
	if a.kind == Sum {
		return float64(a.state.Count1[i])
	}
	if a.state.CountCommitted[i] == 0 {
		return 0
	}

	return float64(a.state.Count1[i]) / float64(a.state.CountCommitted[i])
}

func (a *Aggregation) eta2At(i int) float64 {
	if a.kind == Sum {
		return float64(a.state.Count2[i])
	}
	if a.state.CountCommitted[i] == 0 {
		return 0
	}

	return float64(a.state.Count2[i]) / float64(a.state.CountCommitted[i])
}

// CalcWeights implements spec §4.2's incremental update contract.
//
//   - mode == CalcAll: recompute η1, η2, counts from scratch over
//     ms[begin:end], classifying each match by greater(m).
//   - mode == CalcDiff: only ms[splitBegin:splitEnd] changed side since the
//     previous call; move their contribution from smaller to greater.
//   - revert == true: after computing the candidate's weights, undo the
//     [splitBegin, splitEnd) delta (for CalcAll, the whole [begin, end)
//     recount) before returning, restoring the counts this call started
//     from; the rows it touched stay in the dirty set until the next Commit
//     or RevertToCommit.
//
// A split-family sweep over many candidate thresholds chains CalcDiff calls
// with revert == false, each one only paying for the strip that changed
// side since the previous call (spec §4.3 steps 3-4), then reverts the
// whole chain in one O(|touched|) RevertToCommit call once the sweep ends
// rather than per candidate.
//
// Returns the candidate (loss_reduction, weights) and whether the candidate
// passed the balance rule and produced finite weights. A NaN weight (e.g.
// both sides empty) causes the candidate to be skipped silently, matching
// spec §4.3 "Failure semantics".
func (a *Aggregation) CalcWeights(
	ms splitenum.Matches,
	begin, splitBegin, splitEnd, end int,
	mode UpdateMode,
	revert bool,
	greater func(m int) bool,
) (weights lossfn.Weights, touchedOutputRows []int, reduction float64, ok bool) {
	switch mode {
	case CalcAll:
		for i := begin; i < end; i++ {
			row := ms[i].IxPopulation
			if greater(i) {
				a.state.Count1[row]++
			} else {
				a.state.Count2[row]++
			}
			a.state.touch(row)
		}
	case CalcDiff:
		for i := splitBegin; i < splitEnd; i++ {
			row := ms[i].IxPopulation
			a.state.Count2[row]--
			a.state.Count1[row]++
			a.state.touch(row)
		}
	}

	touched := append([]int(nil), a.state.indices.Items()...)

	w, ok := a.solveWeights(touched)
	if !ok {
		if revert {
			a.undoDiff(mode, ms, splitBegin, splitEnd, begin, end, greater)
		}

		return lossfn.Weights{}, nil, 0, false
	}

	a.lastW = w
	delta := a.deltaFunc(w)
	reduction = a.child.EvaluateDelta(touched, delta)

	if revert {
		a.undoDiff(mode, ms, splitBegin, splitEnd, begin, end, greater)
	}

	return w, touched, reduction, true
}

// undoDiff reverts the side assignment performed by CalcWeights when
// revert==true, without touching the committed baseline (spec §4.3 "each
// candidate category is tried independently from the baseline").
func (a *Aggregation) undoDiff(mode UpdateMode, ms splitenum.Matches, splitBegin, splitEnd, begin, end int, greater func(m int) bool) {
	switch mode {
	case CalcAll:
		for i := begin; i < end; i++ {
			row := ms[i].IxPopulation
			if greater(i) {
				a.state.Count1[row]--
			} else {
				a.state.Count2[row]--
			}
		}
	case CalcDiff:
		for i := splitBegin; i < splitEnd; i++ {
			row := ms[i].IxPopulation
			a.state.Count2[row]++
			a.state.Count1[row]--
		}
	}
}

// deltaFunc builds the RowDelta the child loss evaluates/commits: the
// predicted update at row i under weights w (spec §4.2's ŷ_i formulas).
func (a *Aggregation) deltaFunc(w lossfn.Weights) lossfn.RowDelta {
	return func(row int) float64 {
		return w.Intercept + a.eta1At(row)*w.Greater + a.eta2At(row)*w.Smaller
	}
}

// solveWeights computes the closed-form (intercept, wGreater, wSmaller)
// triplet minimizing the child's squared-error loss over touched rows,
// gated by the balance rule (spec §4.2 "Balance rule", "at most three
// closed-form leaf-weight triplets").
//
// Intercept is fixed at 0: the parent node's already-committed weight is
// the baseline this candidate's delta is added on top of, so only the two
// side weights need solving here. This reduces to an ordinary 2-variable
// weighted least squares: minimize Σ (residual_i - η1_i·w1 - η2_i·w2)^2.
func (a *Aggregation) solveWeights(touched []int) (lossfn.Weights, bool) {
	var n1, n2 int
	var sumA, sumB, sumC, sumR1, sumR2 float64
	for _, i := range touched {
		if a.state.Count1[i] > 0 {
			n1 += a.state.Count1[i]
		}
		if a.state.Count2[i] > 0 {
			n2 += a.state.Count2[i]
		}
		e1, e2 := a.eta1At(i), a.eta2At(i)
		r := a.child.Residual(i)
		sumA += e1 * e1
		sumB += e1 * e2
		sumC += e2 * e2
		sumR1 += e1 * r
		sumR2 += e2 * r
	}

	if n1 < a.minNumSamples || n2 < a.minNumSamples {
		return lossfn.Weights{}, false
	}

	det := sumA*sumC - sumB*sumB
	var w1, w2 float64
	if math.Abs(det) < 1e-12 {
		// Degenerate (rank-deficient) system: fall back to the independent
		// per-side least squares solution, ignoring the cross term.
		if sumA > 1e-12 {
			w1 = sumR1 / sumA
		}
		if sumC > 1e-12 {
			w2 = sumR2 / sumC
		}
	} else {
		w1 = (sumR1*sumC - sumR2*sumB) / det
		w2 = (sumA*sumR2 - sumB*sumR1) / det
	}

	if math.IsNaN(w1) || math.IsNaN(w2) {
		return lossfn.Weights{}, false
	}
	if math.IsInf(w1, 0) || math.IsInf(w2, 0) {
		// An infinite weight is rejected the same way as a NaN one:
		// Aggregation returns !ok, split search discards the candidate,
		// and no InternalError is raised for it.
		return lossfn.Weights{}, false
	}

	return lossfn.Weights{Intercept: 0, Greater: w1, Smaller: w2}, true
}

// Commit freezes the current state as the new baseline and commits the
// delta implied by w into the child loss (spec §4.2 commit/revert_to_commit).
func (a *Aggregation) Commit(touched []int, w lossfn.Weights) {
	a.child.CommitDelta(touched, a.deltaFunc(w))
	a.state.Commit()
	a.child.Commit()
}

// RevertToCommit restores η from η_old for every row touched since the last
// commit (spec §8 property 3).
func (a *Aggregation) RevertToCommit() {
	a.state.RevertToCommit()
	a.child.RevertToCommit()
}

// FixedWeights returns the most recently solved (w1, w2) triplet's two side
// weights, the fallback a row with no matches on one side uses so that a
// degenerate split still predicts sensibly rather than folding to zero
// (spec original_source/ supplement: Avg.hpp's w_fixed_1/w_fixed_2). This
// simplified port tracks only the latest solve rather than the source's
// full per-row fixed-weight vectors, since eta1At/eta2At already return 0
// for a row with no committed matches on a side, which is the only case
// FixedWeights needs to correct for in this port's row-scoped design.
func (a *Aggregation) FixedWeights() (w1, w2 float64) {
	return a.lastW.Greater, a.lastW.Smaller
}

// LeafContribution computes a leaf's aggregated contribution to a
// population row's prediction at transform time, given the leaf's scalar
// weight and how many of that row's matches reached this leaf (spec §4.3
// Transform, §4.2 SUM/AVG semantics). This is stateless: transform-time data
// is independent of whatever table the tree was fit against, so it cannot
// reuse fit-time counts (spec §7 "mismatched... between fit-time schema and
// transform-time data" is exactly the case this keeps decoupled from).
func (a *Aggregation) LeafContribution(weight float64, countAtLeaf int) float64 {
	return LeafContribution(a.kind, weight, countAtLeaf)
}

// LeafContribution is the kind-only, state-free form of the method above,
// usable by callers (e.g. a fitted ensemble at inference time) that only
// know a tree's AggregationImpl kind and no longer hold a live Aggregation.
func LeafContribution(kind Kind, weight float64, countAtLeaf int) float64 {
	if kind == Sum {
		return weight * float64(countAtLeaf)
	}
	if countAtLeaf == 0 {
		return 0
	}

	return weight
}
