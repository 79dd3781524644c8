package main

import (
	"apartment-geo-enrich/internal/config"
	"apartment-geo-enrich/internal/platform/obs"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geoenrich",
	Short: "Enrich apartment listings with distances, crime and rent data",
	Long: `Batch jobs that read a CSV, call a geocoding, routing or listing backend
and write a derived CSV: pairwise distance tables, landmark travel times,
geocoded and severity-rated crime reports, discovered places and scraped rents.

Configuration comes from config.yaml, .env and GEOENRICH_* variables.
Interrupting a job aborts it without writing the output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		ctx := obs.WithRunID(cmd.Context())
		cmd.SetContext(ctx)
		obs.Logger(ctx).Debug("starting job", zap.String("command", cmd.Name()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}
