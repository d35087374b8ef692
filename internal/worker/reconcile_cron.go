package worker

// reconcile_cron.go
// Background goroutine that periodically checks stock = Σ movements for every
// product and stores the last report in Redis for the health endpoint.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tokopos/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const LastReconcileKey = "reconcile:last"

// Reconciler is satisfied by service.InventoryService.
type Reconciler interface {
	Reconcile(ctx context.Context) (*dto.ReconcileResponse, error)
}

// ReconcileCronConfig holds all dependencies for the reconcile goroutine.
type ReconcileCronConfig struct {
	Reconciler Reconciler
	RDB        *redis.Client // optional; the report is only logged when nil
	Interval   time.Duration
}

// StartReconcileCron launches a background goroutine that ticks every
// cfg.Interval. A zero interval disables it. It respects the context for
// graceful shutdown.
func StartReconcileCron(ctx context.Context, cfg ReconcileCronConfig) {
	if cfg.Interval <= 0 {
		log.Info().Msg("reconcile_cron: disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("reconcile_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reconcile_cron: shutting down")
				return
			case <-ticker.C:
				runReconcile(ctx, cfg)
			}
		}
	}()
}

func runReconcile(ctx context.Context, cfg ReconcileCronConfig) {
	report, err := cfg.Reconciler.Reconcile(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconcile_cron: reconciliation failed")
		return
	}
	if !report.Consistent {
		log.Error().Int("mismatches", len(report.Mismatches)).Msg("reconcile_cron: stock drift detected")
	}
	if cfg.RDB == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := cfg.RDB.Set(ctx, LastReconcileKey, data, 0).Err(); err != nil {
		log.Warn().Err(err).Msg("reconcile_cron: failed to store report")
	}
}

// LastReconcile returns the most recent stored report, or nil if none yet.
func LastReconcile(ctx context.Context, rdb *redis.Client) (*dto.ReconcileResponse, error) {
	data, err := rdb.Get(ctx, LastReconcileKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report dto.ReconcileResponse
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
