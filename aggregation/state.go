// SPDX-License-Identifier: MIT
//
// Package aggregation implements the AVG and SUM AggregationImpl variants
// (spec §4.2): incremental per-output-row sufficient statistics that present
// themselves to the DecisionTreeNode as a LossFunction, forwarding residual
// updates to a child lossfn.LossSite after transforming the per-row weight.
//
// The incremental CalcDiff path is the performance-critical piece the spec
// calls out (§8 property 4, §9): enumerating K candidate critical values
// costs O(N_matches) total, not O(K·N_matches), because each call only
// processes the strip of matches whose side changed since the previous call.
package aggregation

import "github.com/katalvlaran/relboost/internal/dirtyset"

// LossState holds, per output row, the running sufficient statistics for
// the current evaluated candidate split (spec §3 LossState).
//
// Invariant: Count1[i] + Count2[i] == CountCommitted[i] for every row i
// reached (spec §8 property 1, count conservation).
type LossState struct {
	Eta1, Eta2       []float64 // greater/smaller η slots; Aggregation derives η from the counts and never writes these
	Eta1Old, Eta2Old []float64 // values as of the last commit
	Count1, Count2   []int     // greater/smaller match counts for the current candidate
	CountCommitted   []int     // total matches for row i as of the last commit

	// indices tracks rows touched since the last commit (tree-local): a
	// "sparse dirty-index" set (spec §3, §9) that Commit/RevertToCommit walk
	// to do O(|indices|) work instead of O(nrows). It accumulates across an
	// entire chain of CalcWeights calls (e.g. a CalcDiff sweep over several
	// candidate thresholds), which is what lets solveWeights/EvaluateDelta
	// see every row touched so far in the sweep, not just the latest step.
	indices *dirtyset.Set
}

// NewLossState allocates a LossState sized for nrows output rows, all
// sufficient statistics zeroed (spec §3 "Lifecycles: LossState vectors...
// resized to nrows(output), cleared between candidate splits").
func NewLossState(nrows int) *LossState {
	return &LossState{
		Eta1:           make([]float64, nrows),
		Eta2:           make([]float64, nrows),
		Eta1Old:        make([]float64, nrows),
		Eta2Old:        make([]float64, nrows),
		Count1:         make([]int, nrows),
		Count2:         make([]int, nrows),
		CountCommitted: make([]int, nrows),
		indices:        dirtyset.New(nrows),
	}
}

// NRows reports the output row count this state is sized for.
func (s *LossState) NRows() int { return len(s.Eta1) }

// touch marks row i dirty in the tree-local set.
func (s *LossState) touch(i int) {
	s.indices.Add(i)
}

// Commit rebases Eta_old <- Eta for every touched row and clears the
// tree-local dirty set, fixing the current partition as the new baseline
// (spec §4.2 "commit... fixing the current split's partition as the new
// baseline"; §8 property 2, commit idempotence: calling this twice without
// an intervening CalcWeights is a no-op because `indices` is already empty).
func (s *LossState) Commit() {
	for _, i := range s.indices.Items() {
		s.Eta1Old[i] = s.Eta1[i]
		s.Eta2Old[i] = s.Eta2[i]
		s.CountCommitted[i] = s.Count1[i] + s.Count2[i]
	}
	s.indices.Clear()
}

// RevertToCommit restores Eta from Eta_old for every row in the tree-local
// dirty set, in O(|indices|) rather than O(nrows) (spec §4.2, §8 property 3).
func (s *LossState) RevertToCommit() {
	for _, i := range s.indices.Items() {
		s.Eta1[i] = s.Eta1Old[i]
		s.Eta2[i] = s.Eta2Old[i]
		s.Count1[i] = s.CountCommitted[i]
		s.Count2[i] = 0
	}
	s.indices.Clear()
}
