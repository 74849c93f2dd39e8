// SPDX-License-Identifier: MIT
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/relboost/ingest"
	"github.com/katalvlaran/relboost/table"
)

// newTransformCommand returns the "transform" subcommand: re-fit a
// FeatureLearner against a training population/peripheral pair, then emit
// the combined Features matrix for a second (apply) population/peripheral
// pair as a Parquet file, one float column per feature.
func newTransformCommand() *cobra.Command {
	var fitPopulationPath, fitPeripheralPath string
	var populationPath, peripheralPath, target, outputPath string

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Fit against training data and emit features for apply data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			fitPopulation, fitPeripherals, err := loadTables(ctx, cfg, fitPopulationPath, fitPeripheralPath)
			if err != nil {
				return fmt.Errorf("load fit tables: %w", err)
			}

			l := buildLearner(cfg)
			if _, err := l.Fit(fitPopulation, fitPeripherals, target); err != nil {
				return fmt.Errorf("fit: %w", err)
			}

			population, peripherals, err := loadTables(ctx, cfg, populationPath, peripheralPath)
			if err != nil {
				return fmt.Errorf("load apply tables: %w", err)
			}

			rows, err := l.Transform(ctx, population, peripherals)
			if err != nil {
				return fmt.Errorf("transform: %w", err)
			}

			codec, _ := codecFor(cfg.Parquet.Codec)
			out := featuresTable(rows)
			if err := ingest.WriteParquet(out, outputPath, codec); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "transform complete: rows=%d cols=%d -> %s\n", len(rows), len(out.Columns()), outputPath)

			return nil
		},
	}

	cmd.Flags().StringVar(&fitPopulationPath, "fit-population", "", "path to the training population Parquet file")
	cmd.Flags().StringVar(&fitPeripheralPath, "fit-peripheral", "", "path to the training peripheral Parquet file (optional)")
	cmd.Flags().StringVar(&populationPath, "population", "", "path to the apply population Parquet file")
	cmd.Flags().StringVar(&peripheralPath, "peripheral", "", "path to the apply peripheral Parquet file (optional)")
	cmd.Flags().StringVar(&target, "target", "", "name of the training population's target column")
	cmd.Flags().StringVar(&outputPath, "output", "features.parquet", "path to write the emitted Features matrix")
	_ = cmd.MarkFlagRequired("fit-population")
	_ = cmd.MarkFlagRequired("population")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

// featuresTable packs a dense [][]float64 Features matrix into a
// *table.Table with one RoleNumerical column per feature, named "f0", "f1",
// ..., so ingest.WriteParquet can serialize it without a declared schema.
func featuresTable(rows [][]float64) *table.Table {
	out := table.NewTable("features", table.NewStringInterner())
	if len(rows) == 0 {
		return out
	}

	width := len(rows[0])
	for j := 0; j < width; j++ {
		col := make([]float64, len(rows))
		for i, row := range rows {
			col[i] = row[j]
		}
		_ = out.AddColumn(&table.Column{Name: fmt.Sprintf("f%d", j), Role: table.RoleNumerical, Floats: col})
	}

	return out
}
