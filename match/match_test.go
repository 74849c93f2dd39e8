// SPDX-License-Identifier: MIT
package match_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/relboost/match"
	"github.com/katalvlaran/relboost/table"
	"github.com/stretchr/testify/require"
)

func buildPopPeripheral(t *testing.T, lowerTS float64) (*table.Table, *table.Table) {
	t.Helper()
	si := table.NewStringInterner()
	jk := si.Intern("1")

	pop := table.NewTable("population", si)
	require.NoError(t, pop.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: []int32{jk}}))
	require.NoError(t, pop.AddColumn(&table.Column{Name: "ts", Role: table.RoleTimeStamp, Floats: []float64{10.0}}))
	require.NoError(t, pop.AddColumn(&table.Column{Name: "y", Role: table.RoleTarget, Floats: []float64{2.0}}))

	per := table.NewTable("peripheral", si)
	require.NoError(t, per.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: []int32{jk}}))
	require.NoError(t, per.AddColumn(&table.Column{Name: "lower_ts", Role: table.RoleTimeStamp, Floats: []float64{lowerTS}}))
	require.NoError(t, per.AddColumn(&table.Column{Name: "x", Role: table.RoleNumerical, Floats: []float64{3.0}}))

	return pop, per
}

func opts() match.Options {
	return match.Options{
		PopulationJoinKey: "jk",
		PeripheralJoinKey: "jk",
		PopulationTS:      "ts",
		PeripheralLowerTS: "lower_ts",
		UseTimestamps:     true,
	}
}

// TestMakeMatches_SingleMatch covers spec S2: one population row, one
// peripheral row within the ts window.
func TestMakeMatches_SingleMatch(t *testing.T) {
	pop, per := buildPopPeripheral(t, 5.0)

	matches, err := match.MakeMatches(pop, per, opts())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, match.Match{IxPopulation: 0, IxPeripheral: 0}, matches[0])
}

// TestMakeMatches_TimestampFilter covers spec S3: the peripheral row's
// lower_ts lies after the population ts, so no match is produced.
func TestMakeMatches_TimestampFilter(t *testing.T) {
	pop, per := buildPopPeripheral(t, 15.0)

	matches, err := match.MakeMatches(pop, per, opts())
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestMakeMatches_EmptyPeripheral(t *testing.T) {
	si := table.NewStringInterner()
	jk := si.Intern("1")
	pop := table.NewTable("population", si)
	require.NoError(t, pop.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: []int32{jk}}))
	require.NoError(t, pop.AddColumn(&table.Column{Name: "ts", Role: table.RoleTimeStamp, Floats: []float64{0.0}}))

	per := table.NewTable("peripheral", si)
	require.NoError(t, per.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: []int32{}}))
	require.NoError(t, per.AddColumn(&table.Column{Name: "lower_ts", Role: table.RoleTimeStamp, Floats: []float64{}}))

	matches, err := match.MakeMatches(pop, per, opts())
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestMakeMatches_MissingColumn(t *testing.T) {
	pop, per := buildPopPeripheral(t, 5.0)
	o := opts()
	o.PopulationJoinKey = "missing"

	_, err := match.MakeMatches(pop, per, o)
	require.ErrorIs(t, err, match.ErrSchema)
}

func TestMakeMatches_NaNTimestampNeverMatches(t *testing.T) {
	si := table.NewStringInterner()
	jk := si.Intern("1")
	pop := table.NewTable("population", si)
	require.NoError(t, pop.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: []int32{jk}}))
	require.NoError(t, pop.AddColumn(&table.Column{Name: "ts", Role: table.RoleTimeStamp, Floats: []float64{math.NaN()}}))

	per := table.NewTable("peripheral", si)
	require.NoError(t, per.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: []int32{jk}}))
	require.NoError(t, per.AddColumn(&table.Column{Name: "lower_ts", Role: table.RoleTimeStamp, Floats: []float64{0.0}}))

	matches, err := match.MakeMatches(pop, per, opts())
	require.NoError(t, err)
	require.Empty(t, matches)
}
