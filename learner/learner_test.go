// SPDX-License-Identifier: MIT
package learner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relboost/aggregation"
	"github.com/katalvlaran/relboost/ensemble"
	"github.com/katalvlaran/relboost/learner"
	"github.com/katalvlaran/relboost/match"
	"github.com/katalvlaran/relboost/table"
)

func buildSchema(t *testing.T) (*table.Table, []learner.Peripheral) {
	t.Helper()

	interner := table.NewStringInterner()

	population := table.NewTable("customers", interner)
	popJK := make([]int32, 4)
	for i, jk := range []string{"c1", "c2", "c3", "c4"} {
		popJK[i] = interner.Intern(jk)
	}
	require.NoError(t, population.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: popJK}))
	require.NoError(t, population.AddColumn(&table.Column{
		Name: "target", Role: table.RoleTarget, Floats: []float64{1.0, 1.0, 0.0, 0.0},
	}))

	orders := table.NewTable("orders", interner)
	orderJK := make([]int32, 4)
	for i, jk := range []string{"c1", "c2", "c3", "c4"} {
		orderJK[i] = interner.Intern(jk)
	}
	require.NoError(t, orders.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: orderJK}))
	require.NoError(t, orders.AddColumn(&table.Column{
		Name: "amount", Role: table.RoleNumerical, Floats: []float64{10.0, 8.0, 1.0, 2.0},
	}))
	require.NoError(t, orders.AddColumn(&table.Column{
		Name: "notes", Role: table.RoleText, Strings: []string{"fast shipping", "slow; refund", "ok", "great item"},
	}))

	peripherals := []learner.Peripheral{
		{Name: "orders", Table: orders, Match: match.Options{PopulationJoinKey: "jk", PeripheralJoinKey: "jk"}},
	}

	return population, peripherals
}

func TestFeatureLearner_FitAndTransform(t *testing.T) {
	population, peripherals := buildSchema(t)

	fl := learner.New(
		learner.WithAggregation(aggregation.Sum),
		learner.WithEnsembleOptions(ensemble.WithNumTrees(5), ensemble.WithMinReduction(1e-9)),
	)

	sse, err := fl.Fit(population, peripherals, "target")
	require.NoError(t, err)
	require.GreaterOrEqual(t, sse, 0.0)

	features, err := fl.Transform(context.Background(), population, peripherals)
	require.NoError(t, err)
	require.Len(t, features, 4)
	for _, row := range features {
		require.Greater(t, len(row), 1)
		for _, v := range row {
			require.False(t, v != v) // never NaN after coercion
		}
	}
}

func TestFeatureLearner_TransformBeforeFit(t *testing.T) {
	fl := learner.New()
	_, err := fl.Transform(context.Background(), nil, nil)
	require.ErrorIs(t, err, learner.ErrNotFitted)
}

func TestFeatureLearner_EmptyPopulation(t *testing.T) {
	fl := learner.New()
	empty := table.NewTable("empty", nil)
	_, err := fl.Fit(empty, nil, "target")
	require.Error(t, err)
}
