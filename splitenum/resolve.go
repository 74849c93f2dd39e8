// SPDX-License-Identifier: MIT
package splitenum

import (
	"math"

	"github.com/katalvlaran/relboost/match"
	"github.com/katalvlaran/relboost/table"
)

// ValueFunc resolves the numeric split value for one match, under a given
// Split (spec §4.3: numerical/discrete/same-unit/time-stamp-diff columns of
// "both input and output tables and of their time-stamp difference").
type ValueFunc func(m match.Match) float64

// CodeFunc resolves the categorical code for one match.
type CodeFunc func(m match.Match) int32

// NewValueFunc builds the ValueFunc for s against the given population
// (output) and peripheral (input) tables. Panics if s.DataUsed is
// Categorical; use NewCodeFunc for that family.
func NewValueFunc(population, peripheral *table.Table, s Split) ValueFunc {
	switch s.DataUsed {
	case Numerical, Discrete:
		col := sideColumn(population, peripheral, s.Side, s.Column)
		return func(m match.Match) float64 { return col.Floats[rowFor(m, s.Side)] }
	case SameUnit:
		a := sideColumn(population, peripheral, s.Side, s.Column)
		b := sideColumn(population, peripheral, s.Side, s.ColumnB)
		return func(m match.Match) float64 {
			r := rowFor(m, s.Side)
			return a.Floats[r] - b.Floats[r]
		}
	case TimeStampDiff:
		popTS := population.MustColumn(population.Columns()[s.Column].Name)
		perTS := peripheral.MustColumn(peripheral.Columns()[s.ColumnB].Name)
		return func(m match.Match) float64 {
			return popTS.Floats[m.IxPopulation] - perTS.Floats[m.IxPeripheral]
		}
	default:
		panic("splitenum: NewValueFunc called with categorical DataUsed")
	}
}

// NewCodeFunc builds the CodeFunc for a Categorical split.
func NewCodeFunc(population, peripheral *table.Table, s Split) CodeFunc {
	col := sideColumn(population, peripheral, s.Side, s.Column)
	return func(m match.Match) int32 { return col.Codes[rowFor(m, s.Side)] }
}

func rowFor(m match.Match, side ColumnSide) int {
	if side == SideOutput {
		return m.IxPopulation
	}
	return m.IxPeripheral
}

func sideColumn(population, peripheral *table.Table, side ColumnSide, colIdx int) *table.Column {
	if side == SideOutput {
		return population.Columns()[colIdx]
	}
	return peripheral.Columns()[colIdx]
}

// IsNaN reports whether f is NaN, used to move missing-value matches to the
// end of the buffer before sorting (spec §4.3 step 1).
func IsNaN(f float64) bool { return math.IsNaN(f) }
