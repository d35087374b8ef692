// Command reconcile checks that every product's stock counter equals the sum
// of its stock movements. It exits 1 when drift is found, so it can gate a
// cron job or deployment.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"tokopos/internal/config"
	"tokopos/internal/infra"
	"tokopos/internal/repository"
	"tokopos/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 when consistent, 1 on drift or failure.
func run() int {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return 1
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to postgres")
		return 1
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	inventory := service.NewInventoryService(
		repository.NewProductRepository(db),
		repository.NewStockMovementRepository(db),
		nil,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := inventory.Reconcile(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconciliation failed")
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Error().Err(err).Msg("failed to write report")
		return 1
	}

	if !report.Consistent {
		log.Error().Int("mismatches", len(report.Mismatches)).Msg("stock drift detected")
		return 1
	}
	log.Info().Msg("stock counters match the movement log")
	return 0
}
