// SPDX-License-Identifier: MIT
package propositionalization

import (
	"github.com/katalvlaran/relboost/match"
	"github.com/katalvlaran/relboost/table"
)

// EvaluateFeature computes f's value for every population row from ms (spec
// §4.5 Transform: "per population row, compute matches, apply the
// condition, apply the aggregation"). ms must group matches by IxPopulation
// contiguously, the guarantee match.MakeMatches makes; rows with no
// surviving matches receive 0.
func EvaluateFeature(population, peripheral *table.Table, ms []match.Match, f AbstractFeature) []float64 {
	out := make([]float64, population.NRows())
	evaluateGroups(peripheral, ms, f, func(row int, v float64) { out[row] = v })

	return out
}

// evaluateGroups groups ms by contiguous IxPopulation and invokes write(row,
// value) once per group, shared by EvaluateFeature and the shard dispatch
// so that neither allocates a full nrows-sized slice when only a row subset
// is in play.
func evaluateGroups(peripheral *table.Table, ms []match.Match, f AbstractFeature, write func(row int, v float64)) {
	cols := peripheral.Columns()
	var valueCol, condA, condB *table.Column
	if f.InputColumn >= 0 && f.InputColumn < len(cols) {
		valueCol = cols[f.InputColumn]
	}
	if f.Condition != nil {
		condA, condB = cols[f.Condition.ColumnA], cols[f.Condition.ColumnB]
	}

	for i := 0; i < len(ms); {
		row := ms[i].IxPopulation
		j := i + 1
		for j < len(ms) && ms[j].IxPopulation == row {
			j++
		}
		write(row, aggregateGroup(f, valueCol, condA, condB, ms[i:j]))
		i = j
	}
}

// aggregateGroup closes one population row's matches over f's condition and
// aggregation (spec §4.5 "identical closed forms to §4.2 but non-learned").
func aggregateGroup(f AbstractFeature, valueCol, condA, condB *table.Column, group []match.Match) float64 {
	var values []float64
	distinct := make(map[int32]struct{})
	var count int

	for _, m := range group {
		if condA != nil {
			a, b := condA.Floats[m.IxPeripheral], condB.Floats[m.IxPeripheral]
			if (f.Condition.Greater && !(a > b)) || (!f.Condition.Greater && !(a < b)) {
				continue
			}
		}
		count++
		switch {
		case f.Aggregation.IsCategorical():
			distinct[valueCol.Codes[m.IxPeripheral]] = struct{}{}
		case valueCol != nil:
			values = append(values, valueCol.Floats[m.IxPeripheral])
		}
	}

	switch f.Aggregation {
	case Sum:
		var s float64
		for _, v := range values {
			s += v
		}

		return s
	case Avg:
		if len(values) == 0 {
			return 0
		}
		var s float64
		for _, v := range values {
			s += v
		}

		return s / float64(len(values))
	case Min:
		if len(values) == 0 {
			return 0
		}
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}

		return m
	case Max:
		if len(values) == 0 {
			return 0
		}
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}

		return m
	case Count:
		return float64(count)
	case CountDistinct:
		return float64(len(distinct))
	case CountMinusCountDistinct:
		return float64(count - len(distinct))
	default:
		return 0
	}
}
