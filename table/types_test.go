// SPDX-License-Identifier: MIT
package table_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/relboost/table"
	"github.com/stretchr/testify/require"
)

func TestTable_AddColumn_RowCountMismatch(t *testing.T) {
	tb := table.NewTable("population", nil)
	require.NoError(t, tb.AddColumn(&table.Column{Name: "y", Role: table.RoleTarget, Floats: []float64{1, 2, 3}}))

	err := tb.AddColumn(&table.Column{Name: "ts", Role: table.RoleTimeStamp, Floats: []float64{1, 2}})
	require.ErrorIs(t, err, table.ErrRowCountMismatch)
}

func TestTable_AddColumn_Validation(t *testing.T) {
	tb := table.NewTable("t", nil)

	require.ErrorIs(t, tb.AddColumn(nil), table.ErrNilColumn)
	require.ErrorIs(t, tb.AddColumn(&table.Column{Role: table.RoleNumerical, Floats: []float64{1}}), table.ErrEmptyColumnName)
	require.ErrorIs(t, tb.AddColumn(&table.Column{Name: "x", Role: 99, Floats: []float64{1}}), table.ErrInvalidRole)

	require.NoError(t, tb.AddColumn(&table.Column{Name: "x", Role: table.RoleNumerical, Floats: []float64{1}}))
	require.ErrorIs(t, tb.AddColumn(&table.Column{Name: "x", Role: table.RoleNumerical, Floats: []float64{2}}), table.ErrDuplicateColumn)
}

func TestTable_ColumnNotFound(t *testing.T) {
	tb := table.NewTable("t", nil)
	_, err := tb.Column("missing")
	require.ErrorIs(t, err, table.ErrColumnNotFound)
}

func TestColumn_ComparisonOnly(t *testing.T) {
	c := &table.Column{Name: "age_rank", Unit: "rank (comparison only)"}
	require.False(t, c.Aggregatable())

	c2 := &table.Column{Name: "amount", Unit: "USD"}
	require.True(t, c2.Aggregatable())
}

func TestStringInterner(t *testing.T) {
	si := table.NewStringInterner()
	a := si.Intern("alice")
	b := si.Intern("bob")
	a2 := si.Intern("alice")

	require.Equal(t, a, a2)
	require.NotEqual(t, a, b)
	require.Equal(t, "alice", si.Value(a))
	require.Equal(t, 2, si.Len())

	_, ok := si.Lookup("carol")
	require.False(t, ok)
}

func TestJoinKeyIndex(t *testing.T) {
	si := table.NewStringInterner()
	tb := table.NewTable("peripheral", si)
	codes := []int32{si.Intern("a"), si.Intern("b"), si.Intern("a")}
	require.NoError(t, tb.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: codes}))

	idx, err := table.BuildJoinKeyIndex(tb, "jk")
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, idx.Rows(codes[0]))
	require.Equal(t, []int{1}, idx.Rows(codes[1]))
	require.Nil(t, idx.Rows(999))

	_, err = table.BuildJoinKeyIndex(tb, "missing")
	require.ErrorIs(t, err, table.ErrColumnNotFound)

	require.NoError(t, tb.AddColumn(&table.Column{Name: "x", Role: table.RoleNumerical, Floats: []float64{1, 2, 3}}))
	_, err = table.BuildJoinKeyIndex(tb, "x")
	require.ErrorIs(t, err, table.ErrInvalidRole)
}

func TestSchema_RoundtripAndValidate(t *testing.T) {
	si := table.NewStringInterner()
	tb := table.NewTable("population", si)
	require.NoError(t, tb.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Unit: "", Codes: []int32{0}}))
	require.NoError(t, tb.AddColumn(&table.Column{Name: "ts", Role: table.RoleTimeStamp, Unit: "seconds", Floats: []float64{1.0}}))
	require.NoError(t, tb.AddColumn(&table.Column{Name: "y", Role: table.RoleTarget, Floats: []float64{1.0}}))

	s1 := table.SchemaOf(tb)
	require.True(t, s1.Equal(table.SchemaOf(tb)))

	tb2 := table.NewTable("transform", si)
	require.NoError(t, tb2.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: []int32{0}}))
	require.NoError(t, tb2.AddColumn(&table.Column{Name: "ts", Role: table.RoleTimeStamp, Floats: []float64{2.0}}))
	require.NoError(t, tb2.AddColumn(&table.Column{Name: "extra", Role: table.RoleUnused, Strings: []string{"x"}}))

	// target is not required at transform time
	require.NoError(t, s1.Validate(tb2))

	tb3 := table.NewTable("broken", si)
	require.NoError(t, tb3.AddColumn(&table.Column{Name: "jk", Role: table.RoleJoinKey, Codes: []int32{0}}))
	err := s1.Validate(tb3)
	var mc *table.MissingColumnError
	require.True(t, errors.As(err, &mc))
	require.Equal(t, "ts", mc.Name)
}
