// SPDX-License-Identifier: MIT
package tree_test

import (
	"testing"

	"github.com/katalvlaran/relboost/aggregation"
	"github.com/katalvlaran/relboost/lossfn"
	"github.com/katalvlaran/relboost/splitenum"
	"github.com/katalvlaran/relboost/table"
	"github.com/katalvlaran/relboost/tree"
	"github.com/stretchr/testify/require"
)

// buildTables returns a 4-row population with a target and a peripheral
// table with one numerical column ("amount") that perfectly separates the
// target by a threshold at 5: rows matched to amount>5 push target toward 1,
// rows matched to amount<=5 push it toward 0.
func buildTables(t *testing.T) (*table.Table, *table.Table, splitenum.Matches) {
	t.Helper()

	population := table.NewTable("population", nil)
	require.NoError(t, population.AddColumn(&table.Column{
		Name: "target", Role: table.RoleTarget, Floats: []float64{1.0, 1.0, 0.0, 0.0},
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

	return population, peripheral, ms
}

func TestFit_SplitsOnNumericalColumn(t *testing.T) {
	population, peripheral, ms := buildTables(t)
	target := population.MustColumn("target").Floats

	child := lossfn.NewSquareLoss(target, 0.0)
	agg := aggregation.New(aggregation.Sum, len(target), child, 1)

	opts := tree.DefaultOptions()
	opts.MaxDepth = 2
	opts.Gamma = 1e-9

	root, err := tree.Fit(population, peripheral, ms, 0, len(ms), agg, opts)
	require.NoError(t, err)
	require.False(t, root.IsLeaf)
	require.Equal(t, splitenum.Numerical, root.Split.DataUsed)
	require.Equal(t, splitenum.SideInput, root.Split.Side)
}

func TestFit_TooFewMatchesStaysLeaf(t *testing.T) {
	population := table.NewTable("population", nil)
	require.NoError(t, population.AddColumn(&table.Column{
		Name: "target", Role: table.RoleTarget, Floats: []float64{1.0},
	}))
	peripheral := table.NewTable("peripheral", nil)
	require.NoError(t, peripheral.AddColumn(&table.Column{
		Name: "amount", Role: table.RoleNumerical, Floats: []float64{10.0},
	}))
	ms := splitenum.Matches{{IxPopulation: 0, IxPeripheral: 0}}

	child := lossfn.NewSquareLoss([]float64{1.0}, 0.0)
	agg := aggregation.New(aggregation.Sum, 1, child, 1)

	root, err := tree.Fit(population, peripheral, ms, 0, len(ms), agg, tree.DefaultOptions())
	require.NoError(t, err)
	require.True(t, root.IsLeaf)
}

func TestTransform_RoutesMatchesAndSumsLeafContribution(t *testing.T) {
	population, peripheral, ms := buildTables(t)
	target := population.MustColumn("target").Floats

	child := lossfn.NewSquareLoss(target, 0.0)
	agg := aggregation.New(aggregation.Sum, len(target), child, 1)

	opts := tree.DefaultOptions()
	opts.MaxDepth = 2
	opts.Gamma = 1e-9

	root, err := tree.Fit(population, peripheral, ms, 0, len(ms), agg, opts)
	require.NoError(t, err)

	preds, err := tree.Transform(root, population, peripheral, ms, agg)
	require.NoError(t, err)
	require.Len(t, preds, 4)

	// Rows 0 and 1 (amount 10, 8) should predict higher than rows 2 and 3
	// (amount 1, 2), since the split separates them by amount.
	require.Greater(t, preds[0], preds[2])
	require.Greater(t, preds[1], preds[3])
}

func TestTransform_NotFittedOnNilRoot(t *testing.T) {
	population, peripheral, ms := buildTables(t)
	child := lossfn.NewSquareLoss(population.MustColumn("target").Floats, 0.0)
	agg := aggregation.New(aggregation.Sum, 4, child, 1)

	_, err := tree.Transform(nil, population, peripheral, ms, agg)
	require.ErrorIs(t, err, tree.ErrNotFitted)
}
