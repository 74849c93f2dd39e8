// SPDX-License-Identifier: MIT
package propositionalization_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/relboost/match"
	"github.com/katalvlaran/relboost/propositionalization"
	"github.com/katalvlaran/relboost/table"
	"github.com/stretchr/testify/require"
)

func buildPeripheral(t *testing.T) *table.Table {
	t.Helper()
	peripheral := table.NewTable("orders", nil)
	require.NoError(t, peripheral.AddColumn(&table.Column{
		Name: "amount", Role: table.RoleNumerical, Floats: []float64{10, 20, 5},
	}))
	require.NoError(t, peripheral.AddColumn(&table.Column{
		Name: "category", Role: table.RoleCategorical, Codes: []int32{1, 1, 2},
	}))

	return peripheral
}

func TestEnumerate_ProducesNumericalAndCategoricalFeatures(t *testing.T) {
	peripheral := buildPeripheral(t)
	features := propositionalization.Enumerate(peripheral, 0)

	var haveSum, haveAvg, haveCountDistinct bool
	for _, f := range features {
		switch f.Aggregation {
		case propositionalization.Sum:
			haveSum = true
		case propositionalization.Avg:
			haveAvg = true
		case propositionalization.CountDistinct:
			haveCountDistinct = true
		}
	}
	require.True(t, haveSum)
	require.True(t, haveAvg)
	require.True(t, haveCountDistinct)
}

func TestEvaluateFeature_Sum(t *testing.T) {
	peripheral := buildPeripheral(t)
	population := table.NewTable("customers", nil)
	require.NoError(t, population.AddColumn(&table.Column{
		Name: "id", Role: table.RoleUnused, Strings: []string{"a", "b"},
	}))

	ms := []match.Match{
		{IxPopulation: 0, IxPeripheral: 0},
		{IxPopulation: 0, IxPeripheral: 1},
		{IxPopulation: 1, IxPeripheral: 2},
	}

	f := propositionalization.AbstractFeature{
		Aggregation: propositionalization.Sum, PeripheralIx: 0, InputColumn: 0, OutputColumn: "amount",
	}
	values := propositionalization.EvaluateFeature(population, peripheral, ms, f)
	require.Equal(t, []float64{30, 5}, values)
}

func TestEvaluateFeature_CountDistinct(t *testing.T) {
	peripheral := buildPeripheral(t)
	population := table.NewTable("customers", nil)
	require.NoError(t, population.AddColumn(&table.Column{
		Name: "id", Role: table.RoleUnused, Strings: []string{"a"},
	}))

	ms := []match.Match{
		{IxPopulation: 0, IxPeripheral: 0},
		{IxPopulation: 0, IxPeripheral: 1},
		{IxPopulation: 0, IxPeripheral: 2},
	}

	f := propositionalization.AbstractFeature{
		Aggregation: propositionalization.CountMinusCountDistinct, PeripheralIx: 0, InputColumn: 1, OutputColumn: "category",
	}
	values := propositionalization.EvaluateFeature(population, peripheral, ms, f)
	// 3 matches, 2 distinct categories (1 and 2) -> 3-2=1.
	require.Equal(t, []float64{1}, values)
}

func TestBuildRows_ShardsAgreeWithSingleShard(t *testing.T) {
	peripheral := buildPeripheral(t)
	population := table.NewTable("customers", nil)
	require.NoError(t, population.AddColumn(&table.Column{
		Name: "id", Role: table.RoleUnused, Strings: []string{"a", "b", "c"},
	}))

	ms := []match.Match{
		{IxPopulation: 0, IxPeripheral: 0},
		{IxPopulation: 1, IxPeripheral: 1},
		{IxPopulation: 2, IxPeripheral: 2},
	}
	features := propositionalization.Enumerate(peripheral, 0)

	single, err := propositionalization.BuildRows(context.Background(), population, peripheral, ms, features, 1)
	require.NoError(t, err)
	sharded, err := propositionalization.BuildRows(context.Background(), population, peripheral, ms, features, 3)
	require.NoError(t, err)

	require.Equal(t, single, sharded)
}
