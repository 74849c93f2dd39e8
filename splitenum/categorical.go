// SPDX-License-Identifier: MIT
package splitenum

import "sort"

// CategoryIndex maps a categorical code to its contiguous [begin, end) range
// within a Matches buffer sorted by code (spec §4.3: "build a CategoryIndex
// (hash -> contiguous range of matches)").
type CategoryIndex struct {
	order  []int32 // distinct codes in the order they appear after sorting
	ranges map[int32]Range
}

// SortByCategory sorts ms[begin:end] by categorical code and returns the
// resulting CategoryIndex (spec §4.3 categorical step 1).
func SortByCategory(ms Matches, begin, end int, cf CodeFunc) *CategoryIndex {
	sub := ms[begin:end]
	sort.SliceStable(sub, func(i, j int) bool { return cf(sub[i]) < cf(sub[j]) })

	idx := &CategoryIndex{ranges: make(map[int32]Range)}
	i := begin
	for i < end {
		code := cf(ms[i])
		j := i + 1
		for j < end && cf(ms[j]) == code {
			j++
		}
		idx.order = append(idx.order, code)
		idx.ranges[code] = Range{Begin: i, End: j}
		i = j
	}

	return idx
}

// Codes returns the distinct categorical codes present, in the order
// SortByCategory encountered them.
func (c *CategoryIndex) Codes() []int32 { return c.order }

// Range returns the [begin, end) span of matches carrying code.
func (c *CategoryIndex) Range(code int32) Range { return c.ranges[code] }

// OrderByWeight returns the categories sorted ascending by a per-category
// score (spec §4.3 categorical step 2: "sort the categories by their
// first-pass weight"), implementing the Breiman-Friedman optimal-partition
// trick: trying prefixes of this order as the "greater" set is provably
// optimal for a convex per-side loss (spec §9 "Categorical-split optimality").
func (c *CategoryIndex) OrderByWeight(weight map[int32]float64) []int32 {
	sorted := make([]int32, len(c.order))
	copy(sorted, c.order)
	sort.SliceStable(sorted, func(i, j int) bool { return weight[sorted[i]] < weight[sorted[j]] })

	return sorted
}

// GreaterSetForPrefix builds the GreaterSet for trying the first k categories
// of sorted (by OrderByWeight) as the "greater" branch.
func GreaterSetForPrefix(sorted []int32, k int) map[int32]struct{} {
	set := make(map[int32]struct{}, k)
	for i := 0; i < k; i++ {
		set[sorted[i]] = struct{}{}
	}

	return set
}
