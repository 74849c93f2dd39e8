// SPDX-License-Identifier: MIT
package cli

import (
	"context"

	"github.com/katalvlaran/relboost/ensemble"
	"github.com/katalvlaran/relboost/ingest"
	"github.com/katalvlaran/relboost/learner"
	"github.com/katalvlaran/relboost/match"
	"github.com/katalvlaran/relboost/table"
	"github.com/katalvlaran/relboost/tree"
)

const peripheralName = "peripheral"

// buildLearner translates a validated Config into a configured, unfitted
// learner.FeatureLearner (spec §5: every hyperparameter is injected via
// functional options, never read from ambient/global state).
func buildLearner(cfg *Config) *learner.FeatureLearner {
	kind, _ := aggregationKind(cfg.Ensemble.Aggregation)

	treeOpts := tree.Options{
		MaxDepth:          cfg.Tree.MaxDepth,
		Gamma:             cfg.Tree.Gamma,
		MinNumSamples:     cfg.Ensemble.MinNumSamples,
		MaxCriticalValues: cfg.Tree.MaxCriticalValues,
	}

	matchOpts := match.Options{
		PopulationJoinKey: cfg.Match.PopulationJoinKey,
		PeripheralJoinKey: cfg.Match.PeripheralJoinKey,
		PopulationTS:      cfg.Match.PopulationTS,
		PeripheralLowerTS: cfg.Match.PeripheralLowerTS,
		PeripheralUpperTS: cfg.Match.PeripheralUpperTS,
		UseTimestamps:     cfg.Match.UseTimestamps,
	}

	return learner.New(
		learner.WithAggregation(kind),
		learner.WithMinNumSamples(cfg.Ensemble.MinNumSamples),
		learner.WithMatchOptions(matchOpts),
		learner.WithLogger(newLogger(cfg.Logging.Level)),
		learner.WithPrimaryPeripheral(peripheralName),
		learner.WithEnsembleOptions(
			ensemble.WithNumTrees(cfg.Ensemble.NumTrees),
			ensemble.WithMinReduction(cfg.Ensemble.MinReduction),
			ensemble.WithPatience(cfg.Ensemble.Patience),
			ensemble.WithTreeOptions(treeOpts),
		),
	)
}

// loadTables reads the population and peripheral Parquet files named by
// populationPath/peripheralPath under cfg's declared schemas, sharing one
// StringInterner so join-key codes line up between the two tables (table's
// NewTable doc: "two tables meant to share a categorical vocabulary... must
// share one interner").
func loadTables(ctx context.Context, cfg *Config, populationPath, peripheralPath string) (population *table.Table, peripherals []learner.Peripheral, err error) {
	interner := table.NewStringInterner()

	population, err = ingest.ReadParquet(ctx, populationPath, "population", interner, ingest.SchemaRoleOf(cfg.Population.toSchema()))
	if err != nil {
		return nil, nil, err
	}

	if peripheralPath == "" {
		return population, nil, nil
	}

	peripheral, err := ingest.ReadParquet(ctx, peripheralPath, peripheralName, interner, ingest.SchemaRoleOf(cfg.Peripheral.toSchema()))
	if err != nil {
		return nil, nil, err
	}

	matchOpts := match.Options{
		PopulationJoinKey: cfg.Match.PopulationJoinKey,
		PeripheralJoinKey: cfg.Match.PeripheralJoinKey,
		PopulationTS:      cfg.Match.PopulationTS,
		PeripheralLowerTS: cfg.Match.PeripheralLowerTS,
		PeripheralUpperTS: cfg.Match.PeripheralUpperTS,
		UseTimestamps:     cfg.Match.UseTimestamps,
	}

	return population, []learner.Peripheral{{Name: peripheralName, Table: peripheral, Match: matchOpts}}, nil
}
