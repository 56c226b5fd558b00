package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/easelhq/easel"
	"github.com/easelhq/easel/internal/log"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var (
		envFile    string
		datasetDir string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the Joy of Painting dataset CSV files",
		Long: `Import the Joy of Painting dataset CSV files into the catalog.

Expects the three published dataset files in the dataset directory:
  The Joy Of Painting - Colors Used.csv
  The Joy Of Painting - Subject Matter.csv
  The Joy Of Painting - Episode Dates.csv

The import is idempotent: episodes dedupe on season and episode number,
colors and subjects on name, and links on the pair.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), envFile, datasetDir)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&datasetDir, "dataset-dir", "", "Directory holding the dataset CSV files (default: {data_dir}/datasets)")

	return cmd
}

func runImport(ctx context.Context, envFile, datasetDir string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return err
	}
	if datasetDir == "" {
		datasetDir = cfg.DatasetDir()
	}

	logger := log.NewLogger(cfg)
	slogger := logger.Slog()

	client, err := easel.New(
		easel.WithDatabaseURL(cfg.DBURL()),
		easel.WithLogger(slogger),
	)
	if err != nil {
		return fmt.Errorf("create easel client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close easel client", slog.Any("error", err))
		}
	}()

	summary, err := client.Import(ctx, datasetDir)
	if err != nil {
		return fmt.Errorf("import dataset: %w", err)
	}

	fmt.Printf("imported %d episodes, %d colors, %d subject matters (%d color links, %d subject links, %d rows skipped)\n",
		summary.Episodes, summary.Colors, summary.SubjectMatters,
		summary.ColorLinks, summary.SubjectLinks, summary.SkippedRows)
	return nil
}
