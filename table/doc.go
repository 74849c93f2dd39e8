// Package table provides the typed columnar storage the relational feature
// engine builds every other component on: roles, units, an interned
// categorical/join-key code space, and the join-key index MatchMaker walks.
//
//	table.NewTable       — construct an empty, named table
//	table.Column         — one role-tagged, unit-tagged vector of values
//	table.Schema         — column-name-to-role/unit grouping, for round-trip checks
//	table.JoinKeyIndex    — code -> ordered row offsets, built once per fit
//	table.StringInterner  — shared categorical/join-key vocabulary
package table
