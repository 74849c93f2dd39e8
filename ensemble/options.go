// SPDX-License-Identifier: MIT
//
// Package ensemble implements the additive boosting driver (spec §4.4): fit
// one DecisionTreeNode per round against the current residual, scale it by
// a closed-form update rate, commit that scaled delta into the running
// prediction, and early-stop on a reduction floor or on patience over the
// training SSE (there is no separate validation set).
//
// Grounded on builder's functional-options discipline (builder/options.go):
// Option constructors validate and panic on programmer error; the boosting
// loop itself never panics.
package ensemble

import "github.com/katalvlaran/relboost/tree"

// Option customizes an Ensemble fit by mutating a config before boosting
// begins (builder/options.go's BuilderOption pattern).
type Option func(*config)

type config struct {
	numTrees     int
	minReduction float64
	patience     int
	initialScore float64
	treeOptions  tree.Options
}

func newConfig() *config {
	return &config{
		numTrees:     100,
		minReduction: 1e-6,
		patience:     10,
		initialScore: 0,
		treeOptions:  tree.DefaultOptions(),
	}
}

// WithNumTrees sets the maximum boosting rounds. Panics if n<=0.
func WithNumTrees(n int) Option {
	if n <= 0 {
		panic("ensemble: WithNumTrees(n<=0)")
	}

	return func(c *config) { c.numTrees = n }
}

// WithMinReduction sets the absolute loss-reduction floor below which a
// fitted tree is discarded and boosting stops (spec §4.4 "evaluated tree's
// reduction is below an absolute floor"). Panics if floor<0.
func WithMinReduction(floor float64) Option {
	if floor < 0 {
		panic("ensemble: WithMinReduction(floor<0)")
	}

	return func(c *config) { c.minReduction = floor }
}

// WithPatience sets how many consecutive committed rounds that fail to lower
// the training SSE are tolerated before early-stopping. The score is the SSE
// over the rows being fit; no held-out validation set is scored. Panics if n<0.
func WithPatience(n int) Option {
	if n < 0 {
		panic("ensemble: WithPatience(n<0)")
	}

	return func(c *config) { c.patience = n }
}

// WithInitialScore sets the ensemble's global intercept before any tree is
// fit (the baseline every tree's residual is measured against at round 0).
func WithInitialScore(score float64) Option {
	return func(c *config) { c.initialScore = score }
}

// WithTreeOptions overrides the per-tree fit options every round uses.
func WithTreeOptions(opts tree.Options) Option {
	return func(c *config) { c.treeOptions = opts }
}
