// SPDX-License-Identifier: MIT
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newFitCommand returns the "fit" subcommand: fit a FeatureLearner against a
// population/peripheral Parquet pair and report the ensemble's final SSE.
// Model state is not persisted (spec §1 Non-goals: "Persistence format is
// not frozen and is not part of this spec") — "transform" re-fits from its
// own --fit-population/--fit-peripheral flags.
func newFitCommand() *cobra.Command {
	var populationPath, peripheralPath, target string

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a relational feature learner and report its final loss",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			population, peripherals, err := loadTables(ctx, cfg, populationPath, peripheralPath)
			if err != nil {
				return fmt.Errorf("load tables: %w", err)
			}

			l := buildLearner(cfg)
			sse, err := l.Fit(population, peripherals, target)
			if err != nil {
				return fmt.Errorf("fit: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "fit complete: sse=%.6f aggregation=%d\n", sse, l.Kind())

			return nil
		},
	}

	cmd.Flags().StringVar(&populationPath, "population", "", "path to the population Parquet file")
	cmd.Flags().StringVar(&peripheralPath, "peripheral", "", "path to the peripheral Parquet file (optional)")
	cmd.Flags().StringVar(&target, "target", "", "name of the population's target column")
	_ = cmd.MarkFlagRequired("population")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
