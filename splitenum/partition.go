// SPDX-License-Identifier: MIT
package splitenum

import (
	"sort"

	"github.com/katalvlaran/relboost/match"
)

// PartitionNaN moves every match in ms[begin:end] whose split value is NaN
// to the tail of the range and returns the boundary "nanBegin": matches in
// [begin, nanBegin) all have a finite value, matches in [nanBegin, end) are
// all NaN (spec §4.3 step 1).
func PartitionNaN(ms Matches, begin, end int, vf ValueFunc) int {
	nanBegin := end
	for i := begin; i < nanBegin; {
		if IsNaN(vf(ms[i])) {
			nanBegin--
			ms[i], ms[nanBegin] = ms[nanBegin], ms[i]
			continue
		}
		i++
	}

	return nanBegin
}

// SortDescending sorts ms[begin:end] in descending order of vf (spec §4.3
// step 2). Uses sort.Slice; tree fits are not on a per-candidate hot path
// for sorting (it runs once per try_* enumeration), so this need not be the
// specialized introsort the source hand-rolls.
func SortDescending(ms Matches, begin, end int, vf ValueFunc) {
	sub := ms[begin:end]
	sort.SliceStable(sub, func(i, j int) bool { return vf(sub[i]) > vf(sub[j]) })
}

// Partition reorders ms[begin:end] in place so every match satisfying
// greater(m) precedes every match that does not, and returns the pivot
// boundary (spec §3 property 6: partition closure).
func Partition(ms Matches, begin, end int, greater func(m match.Match) bool) int {
	pivot := begin
	for i := begin; i < end; i++ {
		if greater(ms[i]) {
			ms[i], ms[pivot] = ms[pivot], ms[i]
			pivot++
		}
	}

	return pivot
}
