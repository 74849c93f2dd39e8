// SPDX-License-Identifier: MIT
//
// Package table provides the typed columnar Table used by the relational
// feature engine: fixed-role, fixed-width columns sharing one row count,
// joinable via interned categorical codes and filterable by float
// time-stamps (spec §3 Data Model).
//
// Unlike lvlath/core's Graph, a Table has no notion of incremental mutation
// under concurrent writers: it is built once by ingestion (§6) and held
// read-only for the full fit, so there is no per-table mutex in the hot
// path — only the shared StringInterner needs synchronization, and only
// during the (single-threaded) fit.
package table

// Column is one named, typed, role-tagged vector of values, all rows long.
//
// Exactly one of Floats, Codes, Strings is populated, selected by Role:
//   - RoleNumerical/RoleDiscrete/RoleTimeStamp/RoleTarget -> Floats
//   - RoleCategorical/RoleJoinKey                         -> Codes (via Interner)
//   - RoleText/RoleUnused(string variant)                 -> Strings
type Column struct {
	Name string
	Role Role
	Unit string // semantic tag; equal non-empty units enable same-unit splits

	Floats  []float64
	Codes   []int32
	Strings []string
}

// Len returns the column's row count, regardless of backing store.
func (c *Column) Len() int {
	switch {
	case c.Role.IsFloatBacked():
		return len(c.Floats)
	case c.Role.IsCodeBacked():
		return len(c.Codes)
	default:
		return len(c.Strings)
	}
}

// Aggregatable reports whether this column may appear as an aggregation
// input (spec §3: "comparison only" disables aggregation but not comparison).
func (c *Column) Aggregatable() bool {
	return !IsComparisonOnly(c.Unit)
}

// Table is a named collection of same-length Columns plus the shared
// interner backing its categorical/join-key codes.
type Table struct {
	Name     string
	Interner *StringInterner

	order   []string
	columns map[string]*Column
	nrows   int
}

// NewTable returns an empty, named table sharing the given interner.
// Pass a fresh *StringInterner per fit unless two tables are meant to share
// a categorical vocabulary (e.g. population.join_key and peripheral.join_key
// must share one, so MatchMaker sees identical codes for identical values).
func NewTable(name string, interner *StringInterner) *Table {
	if interner == nil {
		interner = NewStringInterner()
	}

	return &Table{
		Name:     name,
		Interner: interner,
		columns:  make(map[string]*Column),
	}
}

// AddColumn appends col to the table. Returns ErrNilColumn, ErrEmptyColumnName,
// ErrDuplicateColumn, ErrInvalidRole, or ErrRowCountMismatch (against the row
// count established by the first column added).
func (t *Table) AddColumn(col *Column) error {
	if col == nil {
		return ErrNilColumn
	}
	if col.Name == "" {
		return ErrEmptyColumnName
	}
	if !validRole(col.Role) {
		return ErrInvalidRole
	}
	if _, exists := t.columns[col.Name]; exists {
		return ErrDuplicateColumn
	}

	n := col.Len()
	if len(t.columns) == 0 {
		t.nrows = n
	} else if n != t.nrows {
		return ErrRowCountMismatch
	}

	t.columns[col.Name] = col
	t.order = append(t.order, col.Name)

	return nil
}

// Column returns the named column, or ErrColumnNotFound.
func (t *Table) Column(name string) (*Column, error) {
	c, ok := t.columns[name]
	if !ok {
		return nil, ErrColumnNotFound
	}

	return c, nil
}

// MustColumn returns the named column or panics. Reserved for hot paths
// where the column's presence was already validated against the Schema.
func (t *Table) MustColumn(name string) *Column {
	c, ok := t.columns[name]
	if !ok {
		panic("table: MustColumn on absent column " + name)
	}

	return c
}

// Columns returns the table's columns in insertion order. The returned
// slice is owned by the caller; mutating it does not affect the table.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.order))
	for i, name := range t.order {
		out[i] = t.columns[name]
	}

	return out
}

// NRows returns the row count shared by every column (0 for an empty table).
func (t *Table) NRows() int { return t.nrows }

// HasColumn reports whether name is present.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]

	return ok
}
