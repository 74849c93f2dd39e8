// Package relboost is a relational gradient-boosted feature engineering
// engine: it fits an additive ensemble of shallow decision trees against a
// population table joined to a star-/snowflake-shaped set of peripheral
// tables, then emits a dense Features matrix combining the ensemble's
// learned prediction with mechanical deep-feature-synthesis
// propositionalization and bag-of-words text-vocabulary counts.
//
// Under the hood, everything is organized under purpose-built subpackages:
//
//	table/                — typed, role-tagged columnar Table and Schema
//	match/                — population<->peripheral row matching under a join key
//	splitenum/             — candidate split enumeration (categorical, numerical, critical-value)
//	aggregation/           — GradientSite leaf weighting (Sum/Avg variants)
//	tree/                  — one round's relational decision tree fit/transform
//	ensemble/              — additive boosting driver, early stopping
//	propositionalization/  — mechanical deep-feature-synthesis over peripherals
//	learner/               — FeatureLearner façade binding schema to both learners
//	ingest/                — Arrow/Parquet I/O into table.Table
//	internal/poolref/      — page-addressed, relocation-safe memory pool
//	cmd/relboost/          — thin cobra/viper CLI driver for manual smoke tests
//
//	go get github.com/katalvlaran/relboost
package relboost
