// SPDX-License-Identifier: MIT
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/katalvlaran/relboost/aggregation"
	"github.com/katalvlaran/relboost/table"
)

// Sentinel validation errors for a loaded Config.
var (
	ErrInvalidNumTrees     = errors.New("num_trees must be positive")
	ErrInvalidMaxDepth     = errors.New("max_depth must be positive")
	ErrInvalidMinSamples   = errors.New("min_num_samples must be positive")
	ErrInvalidAggregation  = errors.New("aggregation must be \"sum\" or \"avg\"")
	ErrInvalidCodec        = errors.New("codec must be one of snappy, gzip, brotli, lz4, zstd")
	ErrMissingPopulationJK = errors.New("match.population_join_key is required")
	ErrMissingPeripheralJK = errors.New("match.peripheral_join_key is required")
)

// Default configuration values (ensemble.newConfig / tree.DefaultOptions).
const (
	defaultNumTrees      = 100
	defaultMinReduction  = 1e-6
	defaultPatience      = 10
	defaultMaxDepth      = 4
	defaultGamma         = 1e-7
	defaultMinNumSamples = 1
	defaultMaxCritical   = 64
	defaultAggregation   = "avg"
	defaultCodec         = "snappy"
	defaultLogLevel      = "info"
)

// Config holds every knob relboost's fit/transform subcommands expose,
// bound from a config file plus RELBOOST_-prefixed environment variables
// (grounded on pkg/config/config.go's mapstructure-tagged nested-struct
// pattern).
type Config struct {
	Ensemble   EnsembleConfig `mapstructure:"ensemble"`
	Tree       TreeConfig     `mapstructure:"tree"`
	Match      MatchConfig    `mapstructure:"match"`
	Parquet    ParquetConfig  `mapstructure:"parquet"`
	Logging    LoggingConfig  `mapstructure:"logging"`
	Population SchemaConfig   `mapstructure:"population"`
	Peripheral SchemaConfig   `mapstructure:"peripheral"`
}

// SchemaConfig declares one table's column roles (spec §6 "Arrow <->
// table.Table"'s RoleOf callback needs a declared role per field, since
// Arrow/Parquet files carry no table.Role of their own). Field names mirror
// table.Schema so ingest.SchemaRoleOf can drive directly off the converted
// *table.Schema.
type SchemaConfig struct {
	Categoricals []string          `mapstructure:"categoricals"`
	JoinKeys     []string          `mapstructure:"join_keys"`
	Numericals   []string          `mapstructure:"numericals"`
	Discretes    []string          `mapstructure:"discretes"`
	TimeStamps   []string          `mapstructure:"time_stamps"`
	Targets      []string          `mapstructure:"targets"`
	Text         []string          `mapstructure:"text"`
	Unused       []string          `mapstructure:"unused"`
	Units        map[string]string `mapstructure:"units"`
}

// toSchema converts a SchemaConfig into the *table.Schema ingest.SchemaRoleOf
// expects.
func (s SchemaConfig) toSchema() *table.Schema {
	units := s.Units
	if units == nil {
		units = map[string]string{}
	}

	return &table.Schema{
		Categoricals: s.Categoricals,
		JoinKeys:     s.JoinKeys,
		Numericals:   s.Numericals,
		Discretes:    s.Discretes,
		TimeStamps:   s.TimeStamps,
		Targets:      s.Targets,
		Text:         s.Text,
		Unused:       s.Unused,
		Units:        units,
	}
}

// EnsembleConfig configures the boosting driver (package ensemble).
type EnsembleConfig struct {
	NumTrees      int     `mapstructure:"num_trees"`
	MinReduction  float64 `mapstructure:"min_reduction"`
	Patience      int     `mapstructure:"patience"`
	Aggregation   string  `mapstructure:"aggregation"`
	MinNumSamples int     `mapstructure:"min_num_samples"`
}

// TreeConfig configures each round's relational decision tree (package tree).
type TreeConfig struct {
	MaxDepth          int     `mapstructure:"max_depth"`
	Gamma             float64 `mapstructure:"gamma"`
	MaxCriticalValues int     `mapstructure:"max_critical_values"`
}

// MatchConfig configures how population rows join to a single peripheral
// table (package match). relboost's CLI scope is one population/peripheral
// pair per invocation; multi-peripheral fits are a library-only capability.
type MatchConfig struct {
	PopulationJoinKey string `mapstructure:"population_join_key"`
	PeripheralJoinKey string `mapstructure:"peripheral_join_key"`
	PopulationTS      string `mapstructure:"population_ts"`
	PeripheralLowerTS string `mapstructure:"peripheral_lower_ts"`
	PeripheralUpperTS string `mapstructure:"peripheral_upper_ts"`
	UseTimestamps     bool   `mapstructure:"use_timestamps"`
}

// ParquetConfig configures Parquet I/O (package ingest).
type ParquetConfig struct {
	Codec string `mapstructure:"codec"`
}

// LoggingConfig configures the zerolog.Logger forwarded to learner.New.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// loadConfig reads configPath (if non-empty) plus RELBOOST_-prefixed
// environment variables into a validated Config.
func loadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("RELBOOST")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ensemble.num_trees", defaultNumTrees)
	v.SetDefault("ensemble.min_reduction", defaultMinReduction)
	v.SetDefault("ensemble.patience", defaultPatience)
	v.SetDefault("ensemble.aggregation", defaultAggregation)
	v.SetDefault("ensemble.min_num_samples", defaultMinNumSamples)

	v.SetDefault("tree.max_depth", defaultMaxDepth)
	v.SetDefault("tree.gamma", defaultGamma)
	v.SetDefault("tree.max_critical_values", defaultMaxCritical)

	v.SetDefault("match.use_timestamps", false)

	v.SetDefault("parquet.codec", defaultCodec)

	v.SetDefault("logging.level", defaultLogLevel)
}

func validateConfig(cfg *Config) error {
	if cfg.Ensemble.NumTrees <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNumTrees, cfg.Ensemble.NumTrees)
	}
	if cfg.Ensemble.MinNumSamples <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMinSamples, cfg.Ensemble.MinNumSamples)
	}
	if _, err := aggregationKind(cfg.Ensemble.Aggregation); err != nil {
		return err
	}
	if cfg.Tree.MaxDepth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxDepth, cfg.Tree.MaxDepth)
	}
	if _, err := codecFor(cfg.Parquet.Codec); err != nil {
		return err
	}
	if cfg.Match.PopulationJoinKey == "" {
		return ErrMissingPopulationJK
	}
	if cfg.Match.PeripheralJoinKey == "" {
		return ErrMissingPeripheralJK
	}

	return nil
}

func aggregationKind(s string) (aggregation.Kind, error) {
	switch s {
	case "sum":
		return aggregation.Sum, nil
	case "avg", "":
		return aggregation.Avg, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAggregation, s)
	}
}
