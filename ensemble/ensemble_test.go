// SPDX-License-Identifier: MIT
package ensemble_test

import (
	"testing"

	"github.com/katalvlaran/relboost/aggregation"
	"github.com/katalvlaran/relboost/ensemble"
	"github.com/katalvlaran/relboost/splitenum"
	"github.com/katalvlaran/relboost/table"
	"github.com/stretchr/testify/require"
)

func buildTables(t *testing.T) (*table.Table, *table.Table, splitenum.Matches, []float64) {
	t.Helper()

	target := []float64{1.0, 1.0, 0.0, 0.0}
	population := table.NewTable("population", nil)
	require.NoError(t, population.AddColumn(&table.Column{
		Name: "target", Role: table.RoleTarget, Floats: target,
	}))

	peripheral := table.NewTable("peripheral", nil)
	require.NoError(t, peripheral.AddColumn(&table.Column{
		Name: "amount", Role: table.RoleNumerical, Floats: []float64{10.0, 8.0, 1.0, 2.0},
	}))

	ms := splitenum.Matches{
		{IxPopulation: 0, IxPeripheral: 0},
		{IxPopulation: 1, IxPeripheral: 1},
		{IxPopulation: 2, IxPeripheral: 2},
		{IxPopulation: 3, IxPeripheral: 3},
	}

	return population, peripheral, ms, target
}

func TestFit_ReducesSSEAndTransformAgrees(t *testing.T) {
	population, peripheral, ms, target := buildTables(t)

	ens, finalSSE, err := ensemble.Fit(population, peripheral, ms, target, aggregation.Sum, 1,
		ensemble.WithNumTrees(5),
		ensemble.WithMinReduction(1e-9),
		ensemble.WithPatience(3),
	)
	require.NoError(t, err)
	require.Greater(t, ens.NumTrees(), 0)

	var initialSSE float64
	for _, y := range target {
		initialSSE += y * y
	}
	require.Less(t, finalSSE, initialSSE)

	preds, err := ensemble.Transform(ens, population, peripheral, ms)
	require.NoError(t, err)
	require.Len(t, preds, 4)
	require.Greater(t, preds[0], preds[2])
}

func TestFit_StopsWithoutFittingBeyondNumTrees(t *testing.T) {
	population, peripheral, ms, target := buildTables(t)

	ens, _, err := ensemble.Fit(population, peripheral, ms, target, aggregation.Sum, 1,
		ensemble.WithNumTrees(2),
	)
	require.NoError(t, err)
	require.LessOrEqual(t, ens.NumTrees(), 2)
}
