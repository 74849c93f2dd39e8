// SPDX-License-Identifier: MIT
//
// Package propositionalization implements the mechanical, non-learned
// feature enumerator (spec §4.5, "DFS"): given a population table, a list
// of peripheral tables, and an aggregation set, it enumerates one
// AbstractFeature per compatible (aggregation, data-used, column) triple
// and evaluates them all, writing one output column per feature.
//
// Unlike tree's learned splits, nothing here is fit: every feature's
// definition is derived purely from the input schemas, and its value is a
// deterministic closed-form aggregate over each population row's matches.
package propositionalization

import "github.com/katalvlaran/relboost/table"

// Aggregation names a mechanical aggregate function (spec §4.5). Numerical
// aggregations accept RoleNumerical/RoleDiscrete columns; categorical
// aggregations accept RoleCategorical columns and read their codes through
// InputColumn.
type Aggregation int

const (
	Sum Aggregation = iota
	Avg
	Min
	Max
	Count
	CountDistinct
	CountMinusCountDistinct
)

// IsCategorical reports whether this aggregation belongs to the categorical
// family (COUNT DISTINCT / COUNT MINUS COUNT DISTINCT), which consults only
// the match count and the number of distinct codes in InputColumn.
func (a Aggregation) IsCategorical() bool {
	return a == CountDistinct || a == CountMinusCountDistinct
}

// String renders a human-readable aggregation name for feature labeling.
func (a Aggregation) String() string {
	switch a {
	case Sum:
		return "sum"
	case Avg:
		return "avg"
	case Min:
		return "min"
	case Max:
		return "max"
	case Count:
		return "count"
	case CountDistinct:
		return "count_distinct"
	case CountMinusCountDistinct:
		return "count_minus_count_distinct"
	default:
		return "unknown"
	}
}

// Condition is a conjunctive same-unit filter applied before aggregation
// (spec §4.5 "For same-unit categorical conditions, one conjunctive filter
// per equal-unit pair is synthesized"): matches are kept iff
// peripheral[ColumnA] OP peripheral[ColumnB] holds.
type Condition struct {
	ColumnA, ColumnB int
	Greater          bool // true: ColumnA > ColumnB; false: ColumnA < ColumnB
}

// AbstractFeature names one mechanically-enumerated feature (spec §4.5
// AbstractFeature): which aggregation, over which peripheral's which input
// column, written to which output column, under which row-filter condition.
type AbstractFeature struct {
	Aggregation  Aggregation
	PeripheralIx int
	InputColumn  int // index into the peripheral table's columns; -1 when the aggregation takes none
	OutputColumn string
	Condition    *Condition // nil: no extra filter beyond the join-key/ts match
}

// Name renders a deterministic, human-readable feature name for the output
// table's column header.
func (f AbstractFeature) Name(peripheralName string) string {
	return f.Aggregation.String() + "(" + peripheralName + "." + f.OutputColumn + ")"
}

// acceptsColumn reports whether role is a valid InputColumn role for
// aggregation (spec §4.5 "aggregations are classified numerical or
// categorical... and gate which columns they accept").
func acceptsColumn(agg Aggregation, role table.Role) bool {
	if agg.IsCategorical() {
		return role == table.RoleCategorical
	}

	switch agg {
	case Count:
		return true // Count needs no column; any role is vacuously accepted
	default:
		return role == table.RoleNumerical || role == table.RoleDiscrete
	}
}
