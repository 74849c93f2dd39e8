// SPDX-License-Identifier: MIT
// Package table: sentinel error set.
//
// Error policy (explicit and strict, following lvlath convention):
//   - Only sentinel variables are exposed at package level.
//   - Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   - Sentinels are never wrapped with formatted strings at definition site.
//   - Typed errors (SchemaError, MissingColumnError) wrap a sentinel via
//     Unwrap so errors.Is still matches while carrying structured fields.
package table

import (
	"errors"
	"fmt"
)

var (
	// ErrNilColumn indicates a nil *Column was passed to a constructor.
	ErrNilColumn = errors.New("table: column is nil")

	// ErrEmptyColumnName indicates a column with an empty name.
	ErrEmptyColumnName = errors.New("table: column name is empty")

	// ErrDuplicateColumn indicates two columns share a name within one table.
	ErrDuplicateColumn = errors.New("table: duplicate column name")

	// ErrRowCountMismatch indicates a column's row count does not match the
	// table's established row count (§3 invariant: every column in a table
	// has the same row count).
	ErrRowCountMismatch = errors.New("table: row count mismatch")

	// ErrColumnNotFound indicates a referenced column name is absent.
	ErrColumnNotFound = errors.New("table: column not found")

	// ErrInvalidRole indicates a role outside the closed role set.
	ErrInvalidRole = errors.New("table: invalid column role")

	// ErrEmptyTable indicates a population table with zero rows (spec §7 EmptyTable).
	ErrEmptyTable = errors.New("table: table is empty")

	// ErrSchema is the class sentinel behind SchemaError (spec §7 SchemaError).
	ErrSchema = errors.New("table: schema mismatch")

	// ErrMissingColumn is the class sentinel behind MissingColumnError.
	ErrMissingColumn = errors.New("table: missing column")
)

// SchemaError reports a mismatch between the fit-time and transform-time
// schema of a table (spec §7: "mismatched column counts/names... invalid role").
type SchemaError struct {
	Table  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table: schema error in %q: %s", e.Table, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// MissingColumnError reports a required column absent at transform time
// (spec §6: "missing non-target columns raise MissingColumn{name}").
type MissingColumnError struct {
	Name string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table: missing column %q", e.Name)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
