// SPDX-License-Identifier: MIT
package aggregation

import (
	"math"

	"github.com/katalvlaran/relboost/splitenum"
)

// CalcLeafWeight computes the single closed-form scalar weight minimizing the
// child loss over ms[begin:end] when no further split is taken: every match
// in range counts toward the row's "greater" side (spec §4.3 "a node that
// stops splitting commits its whole range as one leaf"). Unlike CalcWeights,
// there is no second side to balance, so minNumSamples is not consulted here.
func (a *Aggregation) CalcLeafWeight(ms splitenum.Matches, begin, end int) (weight float64, touched []int, ok bool) {
	for i := begin; i < end; i++ {
		row := ms[i].IxPopulation
		a.state.Count1[row]++
		a.state.touch(row)
	}
	touched = append([]int(nil), a.state.indices.Items()...)

	var sumEE, sumER float64
	for _, i := range touched {
		e := a.eta1At(i)
		r := a.child.Residual(i)
		sumEE += e * e
		sumER += e * r
	}

	if sumEE < 1e-12 {
		return 0, touched, false
	}
	weight = sumER / sumEE
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, touched, false
	}

	return weight, touched, true
}

// CommitLeaf commits a leaf weight computed by CalcLeafWeight: the child
// loss receives the one-sided delta, and the LossState baseline advances.
func (a *Aggregation) CommitLeaf(touched []int, weight float64) {
	delta := func(row int) float64 { return a.eta1At(row) * weight }
	a.child.CommitDelta(touched, delta)
	a.state.Commit()
	a.child.Commit()
}

// UndoLeaf reverts the Count1 bookkeeping CalcLeafWeight performed, for
// callers that evaluate a leaf weight speculatively and decide not to take it.
func (a *Aggregation) UndoLeaf(ms splitenum.Matches, begin, end int) {
	for i := begin; i < end; i++ {
		a.state.Count1[ms[i].IxPopulation]--
	}
	a.state.indices.Clear()
}
