// SPDX-License-Identifier: MIT
package ingest_test

import (
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relboost/ingest"
	"github.com/katalvlaran/relboost/table"
)

func buildRecord(t *testing.T) arrow.Record {
	t.Helper()
	pool := memory.DefaultAllocator

	fields := []arrow.Field{
		{Name: "amount", Type: arrow.PrimitiveTypes.Float64},
		{Name: "category", Type: arrow.BinaryTypes.String},
	}
	schema := arrow.NewSchema(fields, nil)

	amountB := array.NewFloat64Builder(pool)
	amountB.AppendValues([]float64{1.5, 2.5, 3.5}, nil)
	amount := amountB.NewArray()
	defer amount.Release()

	categoryB := array.NewStringBuilder(pool)
	categoryB.AppendValues([]string{"a", "b", "a"}, nil)
	category := categoryB.NewArray()
	defer category.Release()

	return array.NewRecord(schema, []arrow.Array{amount, category}, 3)
}

func TestFromArrow_ConvertsFloatAndCategoricalColumns(t *testing.T) {
	rec := buildRecord(t)
	defer rec.Release()

	schema := &table.Schema{
		Numericals:   []string{"amount"},
		Categoricals: []string{"category"},
		Units:        map[string]string{"amount": "usd", "category": ""},
	}

	out, err := ingest.FromArrow(rec, "orders", nil, ingest.SchemaRoleOf(schema))
	require.NoError(t, err)
	require.Equal(t, 3, out.NRows())

	amount, err := out.Column("amount")
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 2.5, 3.5}, amount.Floats)
	require.Equal(t, "usd", amount.Unit)

	category, err := out.Column("category")
	require.NoError(t, err)
	require.Equal(t, table.RoleCategorical, category.Role)
	require.Equal(t, category.Codes[0], category.Codes[2])
	require.NotEqual(t, category.Codes[0], category.Codes[1])
}

func TestFromArrow_IgnoresFieldsNotInSchema(t *testing.T) {
	rec := buildRecord(t)
	defer rec.Release()

	schema := &table.Schema{Numericals: []string{"amount"}, Units: map[string]string{"amount": ""}}
	out, err := ingest.FromArrow(rec, "orders", nil, ingest.SchemaRoleOf(schema))
	require.NoError(t, err)
	require.False(t, out.HasColumn("category"))
}
