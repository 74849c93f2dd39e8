// SPDX-License-Identifier: MIT
package tree

import (
	"github.com/katalvlaran/relboost/aggregation"
	"github.com/katalvlaran/relboost/match"
	"github.com/katalvlaran/relboost/splitenum"
	"github.com/katalvlaran/relboost/table"
)

// Transform routes every match in ms down root and returns one prediction
// per population row: the sum, over every leaf that row's matches reached,
// of agg.LeafContribution(leaf.Weight, matchesAtThatLeaf) (spec §4.3
// Transform, §4.2 SUM/AVG semantics).
//
// ms need not be grouped by IxPopulation globally, but matches sharing a
// population row must be contiguous (the guarantee match.MakeMatches makes);
// rows with no matches at all receive a zero prediction.
func Transform(root *Node, population, peripheral *table.Table, ms splitenum.Matches, agg *aggregation.Aggregation) ([]float64, error) {
	if root == nil {
		return nil, ErrNotFitted
	}

	predictions := make([]float64, population.NRows())
	for i := 0; i < len(ms); {
		row := ms[i].IxPopulation
		j := i + 1
		for j < len(ms) && ms[j].IxPopulation == row {
			j++
		}

		counts := make(map[*Node]int)
		routeMatches(root, ms[i:j], population, peripheral, counts)

		var sum float64
		for leaf, count := range counts {
			sum += agg.LeafContribution(leaf.Weight, count)
		}
		predictions[row] = sum

		i = j
	}

	return predictions, nil
}

// routeMatches partitions ms by node.Split (recursing into both children)
// until every match reaches a leaf, tallying per-leaf match counts.
func routeMatches(node *Node, ms []match.Match, population, peripheral *table.Table, counts map[*Node]int) {
	if node.IsLeaf {
		counts[node] += len(ms)

		return
	}

	valueGreater := splitValueGreater(population, peripheral, node.Split)

	var greaterMs, smallerMs []match.Match
	for _, m := range ms {
		if valueGreater(m) {
			greaterMs = append(greaterMs, m)
		} else {
			smallerMs = append(smallerMs, m)
		}
	}

	if len(greaterMs) > 0 {
		routeMatches(node.ChildGreater, greaterMs, population, peripheral, counts)
	}
	if len(smallerMs) > 0 {
		routeMatches(node.ChildSmaller, smallerMs, population, peripheral, counts)
	}
}

// splitValueGreater builds the greater-branch predicate for an already-fit
// Split, dispatching on categorical vs value-based families.
func splitValueGreater(population, peripheral *table.Table, s splitenum.Split) func(m match.Match) bool {
	if s.DataUsed == splitenum.Categorical {
		cf := splitenum.NewCodeFunc(population, peripheral, s)

		return func(m match.Match) bool { return s.IsGreaterCode(cf(m)) }
	}

	vf := splitenum.NewValueFunc(population, peripheral, s)

	return func(m match.Match) bool { return s.IsGreaterValue(vf(m)) }
}
