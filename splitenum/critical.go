// SPDX-License-Identifier: MIT
package splitenum

// DefaultMaxCriticalValues bounds how many candidate thresholds a numerical
// split considers when the column has many distinct values (spec §4.3 step 3:
// "roughly an equispaced subset... plus all unique values if the count is
// small").
const DefaultMaxCriticalValues = 64

// CriticalValues returns the ordered list of candidate thresholds for
// ms[begin:nanBegin), which must already be sorted descending by vf. Each
// threshold t means "matches with value > t go to the greater branch";
// thresholds are returned in the order the Finder must consume them so that
// the greater-side boundary advances monotonically (spec §4.3 step 3-4,
// §8 property 4's "O(N) total rather than O(K·N)").
func CriticalValues(ms Matches, begin, nanBegin int, vf ValueFunc, maxCandidates int) []float64 {
	n := nanBegin - begin
	if n < 2 {
		return nil
	}
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCriticalValues
	}

	// Collect group-boundary values: the distinct values in descending order,
	// excluding the first (largest) group: a threshold equal to the largest
	// value would leave nothing on the "greater" side, while a threshold
	// equal to the smallest value still leaves that group on the "smaller" side.
	distinct := make([]float64, 0, n)
	prev := vf(ms[begin])
	distinct = append(distinct, prev)
	for i := begin + 1; i < nanBegin; i++ {
		v := vf(ms[i])
		if v != prev {
			distinct = append(distinct, v)
			prev = v
		}
	}
	if len(distinct) <= 1 {
		return nil // single distinct value: no non-trivial split exists
	}
	candidates := distinct[1:]

	if len(candidates) <= maxCandidates {
		return candidates
	}

	// Too many distinct values: pick an equispaced subset by index position
	// rather than by value, matching spec's "roughly an equispaced subset".
	out := make([]float64, 0, maxCandidates)
	step := float64(len(candidates)) / float64(maxCandidates)
	for i := 0; i < maxCandidates; i++ {
		idx := int(float64(i) * step)
		if idx >= len(candidates) {
			idx = len(candidates) - 1
		}
		out = append(out, candidates[idx])
	}

	return out
}

// Finder advances the greater/smaller boundary across a monotonically
// decreasing sequence of thresholds in O(total matches scanned), rather than
// O(K · N) (spec §4.3 step 4, §8 property 4).
type Finder struct {
	ms       Matches
	nanBegin int
	vf       ValueFunc
	boundary int
}

// NewFinder returns a Finder over ms[begin:nanBegin), sorted descending by vf.
func NewFinder(ms Matches, begin, nanBegin int, vf ValueFunc) *Finder {
	return &Finder{ms: ms, nanBegin: nanBegin, vf: vf, boundary: begin}
}

// NextSplit advances (never retreats) the boundary so that every match in
// [originalBegin, boundary) has value > threshold, and returns the new
// boundary. Callers must present thresholds in descending order.
func (f *Finder) NextSplit(threshold float64) int {
	for f.boundary < f.nanBegin && f.vf(f.ms[f.boundary]) > threshold {
		f.boundary++
	}

	return f.boundary
}

// Boundary returns the current boundary without advancing it.
func (f *Finder) Boundary() int { return f.boundary }
