// SPDX-License-Identifier: MIT
package propositionalization

import "github.com/katalvlaran/relboost/table"

// numericalAggregations is the default set tried against every Numerical/
// Discrete peripheral column (spec §4.5).
var numericalAggregations = []Aggregation{Sum, Avg, Min, Max, Count}

// Enumerate mechanically derives every compatible (aggregation, data-used,
// column) AbstractFeature over peripheral's columns, plus two Count features
// per equal-unit column pair, one under each direction of a same-unit
// condition (spec §4.5). Columns whose unit is marked "comparison only" get
// no value aggregations, only Count. peripheralIx
// identifies which peripheral table this enumeration is over, for
// AbstractFeature.PeripheralIx.
func Enumerate(peripheral *table.Table, peripheralIx int) []AbstractFeature {
	var features []AbstractFeature

	cols := peripheral.Columns()
	for i, c := range cols {
		for _, agg := range numericalAggregations {
			if !acceptsColumn(agg, c.Role) || (agg != Count && !c.Aggregatable()) {
				continue
			}
			features = append(features, AbstractFeature{
				Aggregation: agg, PeripheralIx: peripheralIx, InputColumn: i, OutputColumn: c.Name,
			})
		}
		if c.Role == table.RoleCategorical && c.Aggregatable() {
			for _, agg := range categoricalAggregations {
				features = append(features, AbstractFeature{
					Aggregation: agg, PeripheralIx: peripheralIx, InputColumn: i, OutputColumn: c.Name,
				})
			}
		}
	}

	features = append(features, sameUnitConditionFeatures(cols, peripheralIx)...)

	return features
}

// sameUnitConditionFeatures synthesizes two Count features per equal-unit
// numeric column pair, one filtered by ColumnA > ColumnB and one by
// ColumnA < ColumnB (spec
// §4.5 "For same-unit categorical conditions, one conjunctive filter per
// equal-unit pair is synthesized").
func sameUnitConditionFeatures(cols []*table.Column, peripheralIx int) []AbstractFeature {
	var features []AbstractFeature

	for i := 0; i < len(cols); i++ {
		if !isNumericRole(cols[i].Role) || cols[i].Unit == "" || table.IsComparisonOnly(cols[i].Unit) {
			continue
		}
		for j := i + 1; j < len(cols); j++ {
			if !isNumericRole(cols[j].Role) || cols[j].Unit != cols[i].Unit {
				continue
			}
			features = append(features,
				AbstractFeature{
					Aggregation: Count, PeripheralIx: peripheralIx, InputColumn: -1,
					OutputColumn: cols[i].Name + "_gt_" + cols[j].Name,
					Condition:    &Condition{ColumnA: i, ColumnB: j, Greater: true},
				},
				AbstractFeature{
					Aggregation: Count, PeripheralIx: peripheralIx, InputColumn: -1,
					OutputColumn: cols[i].Name + "_lt_" + cols[j].Name,
					Condition:    &Condition{ColumnA: i, ColumnB: j, Greater: false},
				},
			)
		}
	}

	return features
}

func isNumericRole(r table.Role) bool {
	return r == table.RoleNumerical || r == table.RoleDiscrete
}
