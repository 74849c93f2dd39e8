// SPDX-License-Identifier: MIT
package table

import "sort"

// JoinKeyIndex maps an interned join-key code to the ordered list of row
// offsets in one table carrying that code (spec §3). Built once per table
// and held immutable for the fit; MatchMaker does one map lookup per
// population row via Rows.
//
// This stands in for the on-disk B-tree index described in
// original_source/memmap/BTreeNode.hpp: the fit-time working set comfortably
// fits in memory, so an in-memory sorted bucket is the faithful equivalent
// without reproducing the disk paging machinery (out of scope, spec §1).
type JoinKeyIndex struct {
	buckets map[int32][]int
}

// BuildJoinKeyIndex scans the named join-key column of t and groups row
// offsets by code. Returns ErrColumnNotFound if the column is absent, or
// ErrInvalidRole if it is not RoleJoinKey.
func BuildJoinKeyIndex(t *Table, column string) (*JoinKeyIndex, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if col.Role != RoleJoinKey {
		return nil, ErrInvalidRole
	}

	idx := &JoinKeyIndex{buckets: make(map[int32][]int)}
	for row, code := range col.Codes {
		idx.buckets[code] = append(idx.buckets[code], row)
	}
	// Row offsets are appended in scan order (already ascending); sort
	// defensively so Rows' contract ("ordered list of row offsets") holds
	// even if a future caller builds the index from an unordered source.
	for code := range idx.buckets {
		sort.Ints(idx.buckets[code])
	}

	return idx, nil
}

// Rows returns the ordered row offsets carrying the given join-key code,
// or nil if the code never occurs.
func (idx *JoinKeyIndex) Rows(code int32) []int {
	return idx.buckets[code]
}

// Len reports the number of distinct join-key codes indexed.
func (idx *JoinKeyIndex) Len() int { return len(idx.buckets) }
