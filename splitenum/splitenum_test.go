// SPDX-License-Identifier: MIT
package splitenum_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/relboost/match"
	"github.com/katalvlaran/relboost/splitenum"
	"github.com/stretchr/testify/require"
)

func TestPartitionNaN(t *testing.T) {
	ms := splitenum.Matches{{IxPeripheral: 0}, {IxPeripheral: 1}, {IxPeripheral: 2}, {IxPeripheral: 3}}
	vals := []float64{1, math.NaN(), 3, math.NaN()}
	vf := func(m match.Match) float64 { return vals[m.IxPeripheral] }

	nanBegin := splitenum.PartitionNaN(ms, 0, 4, vf)
	require.Equal(t, 2, nanBegin)
	for i := 0; i < nanBegin; i++ {
		require.False(t, splitenum.IsNaN(vf(ms[i])))
	}
	for i := nanBegin; i < 4; i++ {
		require.True(t, splitenum.IsNaN(vf(ms[i])))
	}
}

func TestSortDescendingAndFinder(t *testing.T) {
	ms := splitenum.Matches{{IxPeripheral: 0}, {IxPeripheral: 1}, {IxPeripheral: 2}, {IxPeripheral: 3}}
	vals := []float64{1, 4, 2, 3}
	vf := func(m match.Match) float64 { return vals[m.IxPeripheral] }

	splitenum.SortDescending(ms, 0, 4, vf)
	want := []float64{4, 3, 2, 1}
	for i, m := range ms {
		require.Equal(t, want[i], vf(m))
	}

	crit := splitenum.CriticalValues(ms, 0, 4, vf, 10)
	require.Equal(t, []float64{3, 2, 1}, crit)

	f := splitenum.NewFinder(ms, 0, 4, vf)
	require.Equal(t, 1, f.NextSplit(3))
	require.Equal(t, 2, f.NextSplit(2))
	require.Equal(t, 3, f.NextSplit(1))
}

func TestPartitionClosure(t *testing.T) {
	ms := splitenum.Matches{{IxPeripheral: 0}, {IxPeripheral: 1}, {IxPeripheral: 2}, {IxPeripheral: 3}}
	vals := []float64{1, 4, 2, 3}
	vf := func(m match.Match) float64 { return vals[m.IxPeripheral] }

	pivot := splitenum.Partition(ms, 0, 4, func(m match.Match) bool { return vf(m) > 2 })
	for i := 0; i < pivot; i++ {
		require.Greater(t, vf(ms[i]), 2.0)
	}
	for i := pivot; i < 4; i++ {
		require.LessOrEqual(t, vf(ms[i]), 2.0)
	}
}

func TestCategoryIndex(t *testing.T) {
	ms := splitenum.Matches{{IxPeripheral: 0}, {IxPeripheral: 1}, {IxPeripheral: 2}, {IxPeripheral: 3}}
	codes := []int32{2, 1, 2, 1}
	cf := func(m match.Match) int32 { return codes[m.IxPeripheral] }

	idx := splitenum.SortByCategory(ms, 0, 4, cf)
	require.Len(t, idx.Codes(), 2)
	for _, c := range idx.Codes() {
		r := idx.Range(c)
		for i := r.Begin; i < r.End; i++ {
			require.Equal(t, c, cf(ms[i]))
		}
	}

	order := idx.OrderByWeight(map[int32]float64{1: 0.9, 2: 0.1})
	require.Equal(t, []int32{2, 1}, order)

	set := splitenum.GreaterSetForPrefix(order, 1)
	require.Contains(t, set, int32(2))
	require.NotContains(t, set, int32(1))
}
