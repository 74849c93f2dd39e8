// SPDX-License-Identifier: MIT
package learner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/relboost/aggregation"
	"github.com/katalvlaran/relboost/ensemble"
	"github.com/katalvlaran/relboost/match"
)

// Option customizes a FeatureLearner before Fit begins (builder/options.go's
// functional-options discipline, already followed by ensemble.Option).
type Option func(*config)

type config struct {
	kind          aggregation.Kind
	minNumSamples int
	ensembleOpts  []ensemble.Option
	matchOpts     match.Options
	logger        zerolog.Logger
	registerer    prometheus.Registerer
	numShards     int
	primary       string
}

func newConfig() *config {
	return &config{
		kind:          aggregation.Avg,
		minNumSamples: 1,
		logger:        zerolog.Nop(),
		registerer:    prometheus.NewRegistry(),
		numShards:     0, // 0 defers to propositionalization.DefaultShards
	}
}

// WithAggregation selects AVG or SUM as the AggregationImpl every round's
// tree is fit under (spec §4.2).
func WithAggregation(kind aggregation.Kind) Option {
	return func(c *config) { c.kind = kind }
}

// WithMinNumSamples sets the balance-rule floor forwarded to every
// Aggregation the ensemble constructs (spec §4.2 "Balance rule"). Panics if
// n<1, since a zero-sample side is never a meaningful split.
func WithMinNumSamples(n int) Option {
	if n < 1 {
		panic("learner: WithMinNumSamples(n<1)")
	}

	return func(c *config) { c.minNumSamples = n }
}

// WithEnsembleOptions forwards additional ensemble.Option values (numTrees,
// minReduction, patience, tree.Options, ...) to ensemble.Fit.
func WithEnsembleOptions(opts ...ensemble.Option) Option {
	return func(c *config) { c.ensembleOpts = append(c.ensembleOpts, opts...) }
}

// WithMatchOptions stores a join-key/time-stamp configuration on the
// learner. Fit and Transform do not read it: the MatchMaker for each
// peripheral table is configured by that Peripheral's own Match field.
func WithMatchOptions(opts match.Options) Option {
	return func(c *config) { c.matchOpts = opts }
}

// WithLogger injects the zerolog.Logger that receives one event when Fit
// completes and one when Transform completes; DFS shards report no progress
// through it. The zero value (zerolog.Nop()) discards
// every event, keeping the learner silent unless a caller opts in — no
// ambient/global logger is ever consulted (spec §9 "Global/ambient state:
// None inside the core").
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRegisterer injects the prometheus.Registerer metrics are registered
// against. Passing nil disables metric registration entirely. A caller that
// never supplies one gets a private registry (newConfig's default), never
// the global DefaultRegisterer, so two learners in one process never
// collide (spec §9 "injected, not statically linked").
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) { c.registerer = reg }
}

// WithNumShards overrides the propositionalization worker-shard count.
// Zero (the default) defers to propositionalization.DefaultShards.
func WithNumShards(n int) Option {
	if n < 0 {
		panic("learner: WithNumShards(n<0)")
	}

	return func(c *config) { c.numShards = n }
}

// WithPrimaryPeripheral names which peripheral table the ensemble's
// relational decision trees are fit against, when Fit is given more than
// one (a snowflake schema's remaining peripherals still contribute
// mechanical DFS features; §1's core component pairs exactly one input
// table against the output table per tree). The empty string (the
// default) selects whichever peripheral is listed first.
func WithPrimaryPeripheral(name string) Option {
	return func(c *config) { c.primary = name }
}
