// SPDX-License-Identifier: MIT
//
// Package cli wires relboost's thin cobra/viper command-line driver: a root
// command plus fit/transform subcommands, each a few lines of glue around
// package learner and package ingest (spec §1 Non-goals: the CLI is an
// external collaborator, "present only so the module has a runnable
// entrypoint for manual smoke tests").
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var configPath string

// NewRootCommand returns relboost's root cobra.Command.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "relboost",
		Short: "Relational gradient-boosted feature engineering",
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a relboost config file (yaml/json/toml)")

	root.AddCommand(newFitCommand())
	root.AddCommand(newTransformCommand())

	return root
}

// newLogger builds the zerolog.Logger passed to learner.New, leveled by
// Config.Logging.Level (spec §5's logger is injected, never ambient).
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}
