// SPDX-License-Identifier: MIT
//
// Package match builds the Match buffer linking population rows to
// peripheral rows under a join-key and an optional time-stamp window
// (spec §4.1 MatchMaker).
//
// The time-stamp test is a one-sided Sakoe–Chiba-style band: a peripheral
// row matches iff its validity interval [lower_ts, upper_ts) contains the
// population row's timestamp. Where lvlath/dtw bounds how far two sequence
// indices may drift apart, MatchMaker bounds how far a peripheral event may
// lie from the population timestamp it is being joined against — the same
// "is this pairing within the allowed window" shape, applied to a single
// instant rather than a warping path.
package match

import (
	"github.com/katalvlaran/relboost/table"
)

// Match is an ordered pair (IxPopulation, IxPeripheral): peripheral row
// IxPeripheral is joinable to population row IxPopulation under the active
// join-key pair and, if timestamps are enabled, the ts-range test (spec §3).
type Match struct {
	IxPopulation int
	IxPeripheral int
}

// Options configures one MatchMaker run.
type Options struct {
	// PopulationJoinKey / PeripheralJoinKey name the join-key columns.
	PopulationJoinKey string
	PeripheralJoinKey string
	PopulationTS      string // population time-stamp column name
	PeripheralLowerTS string // peripheral lower-bound time-stamp column name
	PeripheralUpperTS string // peripheral upper-bound time-stamp column name (optional: "" disables the upper bound)
	UseTimestamps     bool
}

// MakeMatches produces the set of (population, peripheral) row pairs
// admitted by the join-key and, if UseTimestamps, the ts-range filter
// (spec §4.1).
//
// Guarantees:
//   - Output size equals the sum of matched peripheral rows across
//     population rows.
//   - Ordering groups matches by IxPopulation (not IxPeripheral).
//
// Errors: ErrSchema if a required column is absent; ErrRoleMismatch if a
// named column exists under the wrong role.
func MakeMatches(population, peripheral *table.Table, opts Options) ([]Match, error) {
	popJK, err := roleColumn(population, opts.PopulationJoinKey, table.RoleJoinKey)
	if err != nil {
		return nil, err
	}
	if _, err = roleColumn(peripheral, opts.PeripheralJoinKey, table.RoleJoinKey); err != nil {
		return nil, err
	}

	index, err := table.BuildJoinKeyIndex(peripheral, opts.PeripheralJoinKey)
	if err != nil {
		return nil, err
	}

	var (
		popTS, lowerTS, upperTS *table.Column
	)
	if opts.UseTimestamps {
		popTS, err = roleColumn(population, opts.PopulationTS, table.RoleTimeStamp)
		if err != nil {
			return nil, err
		}
		lowerTS, err = roleColumn(peripheral, opts.PeripheralLowerTS, table.RoleTimeStamp)
		if err != nil {
			return nil, err
		}
		if opts.PeripheralUpperTS != "" {
			upperTS, err = roleColumn(peripheral, opts.PeripheralUpperTS, table.RoleTimeStamp)
			if err != nil {
				return nil, err
			}
		}
	}

	matches := make([]Match, 0, population.NRows())
	for r := 0; r < population.NRows(); r++ {
		for _, p := range index.Rows(popJK.Codes[r]) {
			if opts.UseTimestamps && !tsAdmits(popTS.Floats[r], lowerTS, upperTS, p) {
				continue
			}
			matches = append(matches, Match{IxPopulation: r, IxPeripheral: p})
		}
	}

	return matches, nil
}

// tsAdmits reports whether peripheral row p's validity window [lower, upper)
// contains ts (spec §4.1). NaN on either side of the comparison always fails
// it (spec §6: "NaN means unknown and always fails the inequality test").
func tsAdmits(ts float64, lower, upper *table.Column, p int) bool {
	lo := lower.Floats[p]
	if isNaN(ts) || isNaN(lo) || ts < lo {
		return false
	}
	if upper == nil {
		return true
	}
	up := upper.Floats[p]
	if isNaN(up) {
		return true // null upper bound means "open-ended"
	}

	return up > ts
}

func isNaN(f float64) bool { return f != f }

// roleColumn fetches name from t and verifies it carries role want.
func roleColumn(t *table.Table, name string, want table.Role) (*table.Column, error) {
	if name == "" {
		return nil, ErrSchema
	}
	col, err := t.Column(name)
	if err != nil {
		return nil, ErrSchema
	}
	if col.Role != want {
		return nil, ErrRoleMismatch
	}

	return col, nil
}
