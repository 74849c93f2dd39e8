// SPDX-License-Identifier: MIT
//
// Package ingest adapts Arrow Tables and Parquet files into the internal
// table.Table column layout the core consumes (spec §6 "External
// Interfaces"), and is an out-of-scope external collaborator per spec §1
// ("the Arrow/Parquet/ODBC ingestion handlers... produce the in-memory
// tables the core consumes").
package ingest

import (
	"fmt"
	"math"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"

	"github.com/katalvlaran/relboost/table"
)

// RoleOf resolves the destination table.Role for a named field, as declared
// by a target Schema (spec §6 "depending on declared role"). A field with
// no corresponding schema entry is skipped by FromArrow.
type RoleOf func(fieldName string) (table.Role, unit string, ok bool)

// SchemaRoleOf builds a RoleOf from a table.Schema, looking the field name
// up across every role bucket. Units default to "".
func SchemaRoleOf(schema *table.Schema) RoleOf {
	roles := make(map[string]table.Role)
	add := func(names []string, r table.Role) {
		for _, n := range names {
			roles[n] = r
		}
	}
	add(schema.Categoricals, table.RoleCategorical)
	add(schema.JoinKeys, table.RoleJoinKey)
	add(schema.Numericals, table.RoleNumerical)
	add(schema.Discretes, table.RoleDiscrete)
	add(schema.TimeStamps, table.RoleTimeStamp)
	add(schema.Targets, table.RoleTarget)
	add(schema.Text, table.RoleText)
	add(schema.Unused, table.RoleUnused)

	return func(fieldName string) (table.Role, string, bool) {
		r, ok := roles[fieldName]

		return r, schema.Units[fieldName], ok
	}
}

// FromArrow converts one Arrow record's columns into a *table.Table named
// name, sharing interner for categorical/join-key code interning. roleOf
// resolves each Arrow field's destination role; fields it does not
// recognize are ignored (spec §6 "extra columns are ignored").
func FromArrow(rec arrow.Record, name string, interner *table.StringInterner, roleOf RoleOf) (*table.Table, error) {
	t := table.NewTable(name, interner)
	schema := rec.Schema()

	for i, field := range schema.Fields() {
		role, unit, ok := roleOf(field.Name)
		if !ok {
			continue
		}

		col, err := convertColumn(t.Interner, field, rec.Column(i), role)
		if err != nil {
			return nil, err
		}
		col.Unit = unit

		if err := t.AddColumn(col); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// convertColumn converts one Arrow array into a table.Column of the given
// role, per spec §6's type-mapping table.
func convertColumn(interner *table.StringInterner, field arrow.Field, arr arrow.Array, role table.Role) (*table.Column, error) {
	n := arr.Len()
	col := &table.Column{Name: field.Name, Role: role}

	switch {
	case role.IsFloatBacked():
		floats := make([]float64, n)
		for i := 0; i < n; i++ {
			v, err := valueAsFloat(arr, i, field.Name)
			if err != nil {
				return nil, err
			}
			floats[i] = v
		}
		col.Floats = floats
	case role.IsCodeBacked():
		codes := make([]int32, n)
		for i := 0; i < n; i++ {
			s, err := valueAsString(arr, i, field.Name)
			if err != nil {
				return nil, err
			}
			codes[i] = interner.Intern(s)
		}
		col.Codes = codes
	default:
		strs := make([]string, n)
		for i := 0; i < n; i++ {
			s, err := valueAsString(arr, i, field.Name)
			if err != nil {
				return nil, err
			}
			strs[i] = s
		}
		col.Strings = strs
	}

	return col, nil
}

// timeUnitSeconds converts an arrow.TimeUnit count to seconds.
func timeUnitSeconds(unit arrow.TimeUnit, v int64) float64 {
	switch unit {
	case arrow.Second:
		return float64(v)
	case arrow.Millisecond:
		return float64(v) / 1e3
	case arrow.Microsecond:
		return float64(v) / 1e6
	case arrow.Nanosecond:
		return float64(v) / 1e9
	default:
		return float64(v)
	}
}

// valueAsFloat extracts row i of arr as a float64 (NaN where null), per
// spec §6: integer widths, floats, bool coerce directly; timestamp/time32/
// time64/date32/date64/duration coerce to seconds since epoch.
func valueAsFloat(arr arrow.Array, i int, field string) (float64, error) {
	if arr.IsNull(i) {
		return math.NaN(), nil
	}

	switch a := arr.(type) {
	case *array.Int8:
		return float64(a.Value(i)), nil
	case *array.Int16:
		return float64(a.Value(i)), nil
	case *array.Int32:
		return float64(a.Value(i)), nil
	case *array.Int64:
		return float64(a.Value(i)), nil
	case *array.Uint8:
		return float64(a.Value(i)), nil
	case *array.Uint16:
		return float64(a.Value(i)), nil
	case *array.Uint32:
		return float64(a.Value(i)), nil
	case *array.Uint64:
		return float64(a.Value(i)), nil
	case *array.Float32:
		return float64(a.Value(i)), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.Boolean:
		if a.Value(i) {
			return 1, nil
		}

		return 0, nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return timeUnitSeconds(unit, int64(a.Value(i))), nil
	case *array.Time32:
		unit := a.DataType().(*arrow.Time32Type).Unit
		return timeUnitSeconds(unit, int64(a.Value(i))), nil
	case *array.Time64:
		unit := a.DataType().(*arrow.Time64Type).Unit
		return timeUnitSeconds(unit, int64(a.Value(i))), nil
	case *array.Date32:
		return float64(a.Value(i)) * 86400, nil
	case *array.Date64:
		return float64(a.Value(i)) / 1000, nil
	case *array.Duration:
		unit := a.DataType().(*arrow.DurationType).Unit
		return timeUnitSeconds(unit, int64(a.Value(i))), nil
	default:
		return 0, &UnsupportedArrowType{Field: field, TypeName: arr.DataType().Name()}
	}
}

// valueAsString extracts row i of arr as a string (literal "NULL" where
// null), per spec §6: utf8/large_utf8/binary/large_binary/fixed-size-binary/
// dictionary(int32,utf8)/null coerce directly; other scalar types fall back
// to their Go string representation so a numeric column may still be
// requested under a categorical/text role.
func valueAsString(arr arrow.Array, i int, field string) (string, error) {
	if arr.IsNull(i) {
		return "NULL", nil
	}

	switch a := arr.(type) {
	case *array.String:
		return a.Value(i), nil
	case *array.LargeString:
		return a.Value(i), nil
	case *array.Binary:
		return string(a.Value(i)), nil
	case *array.LargeBinary:
		return string(a.Value(i)), nil
	case *array.FixedSizeBinary:
		return string(a.Value(i)), nil
	case *array.Dictionary:
		values, ok := a.Dictionary().(*array.String)
		if !ok {
			return "", &UnsupportedArrowType{Field: field, TypeName: "dictionary(" + a.Dictionary().DataType().Name() + ")"}
		}

		return values.Value(a.GetValueIndex(i)), nil
	case *array.Null:
		return "NULL", nil
	default:
		v, err := valueAsFloat(arr, i, field)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%v", v), nil
	}
}
