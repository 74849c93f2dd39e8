// SPDX-License-Identifier: MIT
package propositionalization

import (
	"context"
	"errors"
	"runtime"

	"github.com/katalvlaran/relboost/match"
	"github.com/katalvlaran/relboost/table"
	"golang.org/x/sync/errgroup"
)

// DefaultShards returns half of hardware concurrency, the spec's default
// shard count (spec §5 "N is a hyperparameter (default: half of hardware
// concurrency)"), never less than 1.
func DefaultShards() int {
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		n = 1
	}

	return n
}

// BuildRows evaluates every feature in features over ms and writes the
// results into a freshly-allocated row-major matrix, sized
// population.NRows() x len(features), computed by sharding the population
// row range across numShards goroutines (spec §5 "the population is
// partitioned into N shards... each shard runs the same build_rows function
// independently, writing to disjoint row ranges").
//
// Unlike the source's "only shard 0's exception propagates" behavior (spec
// §9 design note, flagged as a bug), every shard's error is collected and
// joined: a single failing shard does not silently swallow its neighbors'
// failures.
func BuildRows(ctx context.Context, population, peripheral *table.Table, ms []match.Match, features []AbstractFeature, numShards int) ([][]float64, error) {
	if numShards < 1 {
		numShards = DefaultShards()
	}

	nrows := population.NRows()
	matrix := make([][]float64, nrows)
	for i := range matrix {
		matrix[i] = make([]float64, len(features))
	}

	shards := shardRanges(ms, nrows, numShards)

	// errgroup.Group.Wait reports only the first error; spec §5 requires
	// every shard's error to surface, so each shard's result is recorded
	// into its own slot rather than relied on from Wait's return value.
	shardErrs := make([]error, len(shards))
	g, gctx := errgroup.WithContext(ctx)
	for i, rng := range shards {
		i, rng := i, rng
		g.Go(func() error {
			shardErrs[i] = buildShard(gctx, peripheral, ms[rng.begin:rng.end], features, matrix)

			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(shardErrs...); err != nil {
		return nil, err
	}

	return matrix, nil
}

type matchRange struct{ begin, end int }

// shardRanges splits ms into contiguous ranges of about nrows/numShards
// population rows each (so the number of ranges can differ from numShards),
// each holding every match for a contiguous block of population rows — never splitting one
// population row's matches across two shards, so each shard writes disjoint
// output rows with no cross-shard dependency (spec §5 "writing to disjoint
// row ranges").
func shardRanges(ms []match.Match, nrows, numShards int) []matchRange {
	if nrows == 0 || len(ms) == 0 {
		return nil
	}

	rowsPerShard := nrows / numShards
	if rowsPerShard < 1 {
		rowsPerShard = 1
	}

	var ranges []matchRange
	begin := 0
	nextRowBoundary := rowsPerShard
	for i := 0; i < len(ms); i++ {
		if ms[i].IxPopulation >= nextRowBoundary && i > begin {
			ranges = append(ranges, matchRange{begin: begin, end: i})
			begin = i
			nextRowBoundary += rowsPerShard
		}
	}
	ranges = append(ranges, matchRange{begin: begin, end: len(ms)})

	return ranges
}

// buildShard evaluates every feature over one shard's matches, writing
// directly into matrix's rows touched by this shard. It reports no
// progress; only its error, if any, reaches the caller.
func buildShard(ctx context.Context, peripheral *table.Table, shardMatches []match.Match, features []AbstractFeature, matrix [][]float64) error {
	for col, f := range features {
		if err := ctx.Err(); err != nil {
			return err
		}
		col := col
		evaluateGroups(peripheral, shardMatches, f, func(row int, v float64) { matrix[row][col] = v })
	}

	return nil
}
