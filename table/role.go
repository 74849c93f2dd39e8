// SPDX-License-Identifier: MIT
package table

import "strings"

// Role classifies the semantic use of a Column within a Table.
//
// The role set is closed (spec §3): a column is exactly one of these at any
// time. Role determines which physical backing store (Floats/Strings/Codes)
// a Column uses and which split/aggregation families may touch it.
type Role int

const (
	// RoleUnused marks a column carried for round-trip fidelity but ignored
	// by every operator (matches, splits, aggregations).
	RoleUnused Role = iota

	// RoleCategorical holds hashed string values, stored as interned int32 codes.
	RoleCategorical

	// RoleJoinKey holds hashed string values used to link population rows to
	// peripheral rows via a JoinKeyIndex.
	RoleJoinKey

	// RoleNumerical holds float64 values eligible for numerical and same-unit splits.
	RoleNumerical

	// RoleDiscrete holds integer-valued float64 values (e.g. counts), eligible
	// for the same split families as RoleNumerical, with thresholds chosen
	// the same way.
	RoleDiscrete

	// RoleTimeStamp holds float64 seconds since the Unix epoch; NaN means
	// "unknown" and always fails the (lower_ts, upper_ts) inequality test.
	RoleTimeStamp

	// RoleTarget holds the float64 supervised label; only present on
	// population tables.
	RoleTarget

	// RoleText holds raw strings tokenized on demand (spec §6).
	RoleText
)

// String renders a human-readable role name, used in error messages and logs.
func (r Role) String() string {
	switch r {
	case RoleUnused:
		return "unused"
	case RoleCategorical:
		return "categorical"
	case RoleJoinKey:
		return "join_key"
	case RoleNumerical:
		return "numerical"
	case RoleDiscrete:
		return "discrete"
	case RoleTimeStamp:
		return "time_stamp"
	case RoleTarget:
		return "target"
	case RoleText:
		return "text"
	default:
		return "unknown"
	}
}

// validRole reports whether r is a member of the closed role set.
func validRole(r Role) bool {
	return r >= RoleUnused && r <= RoleText
}

// IsFloatBacked reports whether values of this role live in Column.Floats.
func (r Role) IsFloatBacked() bool {
	switch r {
	case RoleNumerical, RoleDiscrete, RoleTimeStamp, RoleTarget:
		return true
	default:
		return false
	}
}

// IsCodeBacked reports whether values of this role live in Column.Codes
// (interned via the table's StringInterner).
func (r Role) IsCodeBacked() bool {
	return r == RoleCategorical || r == RoleJoinKey
}

// comparisonOnlyMarker disables a column from being aggregated while still
// allowing it to be compared in a split (spec §3: a unit containing the
// literal "comparison only").
const comparisonOnlyMarker = "comparison only"

// IsComparisonOnly reports whether a unit string carries the "comparison
// only" marker (case-sensitive literal match, per spec §3).
func IsComparisonOnly(unit string) bool {
	return strings.Contains(unit, comparisonOnlyMarker)
}
