// SPDX-License-Identifier: MIT
package ensemble

import (
	"github.com/katalvlaran/relboost/aggregation"
	"github.com/katalvlaran/relboost/lossfn"
	"github.com/katalvlaran/relboost/splitenum"
	"github.com/katalvlaran/relboost/table"
	"github.com/katalvlaran/relboost/tree"
)

// round is one committed boosting iteration: a tree structure plus the
// update rate it was scaled by before being folded into the ensemble score.
type round struct {
	root *tree.Node
	rate float64
}

// Ensemble is the additively-boosted sequence of relational decision trees
// produced by Fit (spec §4.4).
type Ensemble struct {
	kind         aggregation.Kind
	initialScore float64
	rounds       []round
}

// Kind reports the AggregationImpl variant every round's tree was fit under.
func (e *Ensemble) Kind() aggregation.Kind { return e.kind }

// NumTrees reports how many boosting rounds were committed.
func (e *Ensemble) NumTrees() int { return len(e.rounds) }

// Fit grows an Ensemble against target (population row labels), using ms as
// the match buffer joining population to peripheral (spec §4.4).
//
// Each round fits a tree.Node against a throwaway SquareLoss seeded with the
// ensemble's current cumulative prediction (so descendant splits within that
// tree see the residual as of this round, per §4.2/§4.3's chained-commit
// design), then folds the tree's prediction into the REAL running score only
// after scaling it by the child loss's closed-form update rate — matching
// §4.4's "fit against residual, line-search a rate, then commit" sequencing
// without re-deriving per-tree internal recursion against two separate
// losses.
func Fit(population, peripheral *table.Table, ms splitenum.Matches, target []float64, kind aggregation.Kind, minNumSamples int, opts ...Option) (*Ensemble, float64, error) {
	cfg := newConfig()
	for _, o := range opts {
		o(cfg)
	}

	nrows := len(target)
	realLoss := lossfn.NewSquareLoss(target, cfg.initialScore)

	ens := &Ensemble{kind: kind, initialScore: cfg.initialScore}

	noImprove := 0
	bestSSE := realLoss.SSE()

	for iteration := 0; iteration < cfg.numTrees; iteration++ {
		baseline := make([]float64, nrows)
		for i := 0; i < nrows; i++ {
			baseline[i] = realLoss.Prediction(i)
		}
		treeLoss := lossfn.NewSquareLossFromPrediction(target, baseline)
		agg := aggregation.New(kind, nrows, treeLoss, minNumSamples)

		working := append(splitenum.Matches(nil), ms...)
		root, err := tree.Fit(population, peripheral, working, 0, len(working), agg, cfg.treeOptions)
		if err != nil {
			return ens, realLoss.SSE(), err
		}

		treePred, err := tree.Transform(root, population, peripheral, ms, agg)
		if err != nil {
			return ens, realLoss.SSE(), err
		}

		rate := realLoss.CalcUpdateRate(treePred)
		reduction := realLoss.EvaluateDelta(allRows(nrows), func(row int) float64 { return rate * treePred[row] })
		if rate == 0 || reduction <= cfg.minReduction {
			break
		}

		realLoss.CommitDelta(allRows(nrows), func(row int) float64 { return rate * treePred[row] })
		realLoss.Commit()
		ens.rounds = append(ens.rounds, round{root: root, rate: rate})

		sse := realLoss.SSE()
		if sse < bestSSE-1e-12 {
			bestSSE = sse
			noImprove = 0
		} else {
			noImprove++
			if noImprove >= cfg.patience {
				break
			}
		}
	}

	return ens, realLoss.SSE(), nil
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}

	return rows
}

// Transform predicts every population row by summing each round's rate
// times that round's leaf contribution, plus the initial score (spec §4.4,
// §4.3 Transform).
func Transform(e *Ensemble, population, peripheral *table.Table, ms splitenum.Matches) ([]float64, error) {
	predictions := make([]float64, population.NRows())
	for i := range predictions {
		predictions[i] = e.initialScore
	}

	for _, r := range e.rounds {
		agg := aggregation.New(e.kind, 0, nil, 0)
		treePred, err := tree.Transform(r.root, population, peripheral, ms, agg)
		if err != nil {
			return nil, err
		}
		for i, p := range treePred {
			predictions[i] += r.rate * p
		}
	}

	return predictions, nil
}
