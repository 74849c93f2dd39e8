// SPDX-License-Identifier: MIT
package tree

import (
	"github.com/katalvlaran/relboost/splitenum"
	"github.com/katalvlaran/relboost/table"
)

// splitSpec names one column family to try a split against — everything a
// Split needs except its learned threshold/greater-set (spec §4.3's per-
// try_* enumeration, collapsed to data here rather than sixteen routines).
type splitSpec struct {
	dataUsed splitenum.DataUsed
	side     splitenum.ColumnSide
	col      int
	colB     int // only meaningful for sameUnit/tsDiff
}

// enumerateSpecs walks population and peripheral's columns and returns every
// splitSpec worth trying at a node (spec §4.3: "enumerate all candidate
// splits via the sixteen try_* routines").
func enumerateSpecs(population, peripheral *table.Table) []splitSpec {
	var specs []splitSpec

	specs = append(specs, numericSpecs(peripheral, splitenum.SideInput)...)
	specs = append(specs, numericSpecs(population, splitenum.SideOutput)...)
	specs = append(specs, categoricalSpecs(peripheral, splitenum.SideInput)...)
	specs = append(specs, categoricalSpecs(population, splitenum.SideOutput)...)
	specs = append(specs, sameUnitSpecs(peripheral, splitenum.SideInput)...)
	specs = append(specs, sameUnitSpecs(population, splitenum.SideOutput)...)
	specs = append(specs, tsDiffSpecs(population, peripheral)...)

	return specs
}

func numericSpecs(t *table.Table, side splitenum.ColumnSide) []splitSpec {
	var specs []splitSpec
	for i, c := range t.Columns() {
		switch c.Role {
		case table.RoleNumerical:
			specs = append(specs, splitSpec{dataUsed: splitenum.Numerical, side: side, col: i})
		case table.RoleDiscrete:
			specs = append(specs, splitSpec{dataUsed: splitenum.Discrete, side: side, col: i})
		}
	}

	return specs
}

func categoricalSpecs(t *table.Table, side splitenum.ColumnSide) []splitSpec {
	var specs []splitSpec
	for i, c := range t.Columns() {
		if c.Role == table.RoleCategorical {
			specs = append(specs, splitSpec{dataUsed: splitenum.Categorical, side: side, col: i})
		}
	}

	return specs
}

// sameUnitSpecs pairs distinct numerical/discrete columns sharing a non-empty
// unit (spec §4.3 "Same-unit splits additionally require unit strings on
// both columns to be equal and non-empty, and reject comparison-only-flagged
// columns"). This is a same-unit-specific exclusion layered on top of the
// general rule that comparison-only disables aggregation, not comparison
// (table.IsComparisonOnly) — both columns are checked here.
func sameUnitSpecs(t *table.Table, side splitenum.ColumnSide) []splitSpec {
	var specs []splitSpec
	cols := t.Columns()
	for i := 0; i < len(cols); i++ {
		if !isNumericRole(cols[i].Role) || cols[i].Unit == "" || table.IsComparisonOnly(cols[i].Unit) {
			continue
		}
		for j := i + 1; j < len(cols); j++ {
			if !isNumericRole(cols[j].Role) || cols[j].Unit != cols[i].Unit || table.IsComparisonOnly(cols[j].Unit) {
				continue
			}
			specs = append(specs, splitSpec{dataUsed: splitenum.SameUnit, side: side, col: i, colB: j})
		}
	}

	return specs
}

func isNumericRole(r table.Role) bool {
	return r == table.RoleNumerical || r == table.RoleDiscrete
}

// tsDiffSpecs produces one spec per (population time-stamp, peripheral
// time-stamp) pair, the "time-stamp difference" family (spec §4.1 Match).
func tsDiffSpecs(population, peripheral *table.Table) []splitSpec {
	var specs []splitSpec
	for i, pc := range population.Columns() {
		if pc.Role != table.RoleTimeStamp {
			continue
		}
		for j, qc := range peripheral.Columns() {
			if qc.Role != table.RoleTimeStamp {
				continue
			}
			specs = append(specs, splitSpec{dataUsed: splitenum.TimeStampDiff, side: splitenum.SideOutput, col: i, colB: j})
		}
	}

	return specs
}
