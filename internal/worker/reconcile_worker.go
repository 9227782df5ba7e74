package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/aks1489/icstconnect-sub000/internal/config"
	"github.com/aks1489/icstconnect-sub000/internal/service"
)

// ReconcileWorker consumes the materialize retry queue and re-runs the
// materializer for rules whose eager insert partially failed. Each item is
// a rule UUID; Rematerialize inserts only the missing sessions, so the job
// is safe to replay.
type ReconcileWorker struct {
	schedules *service.ScheduleService
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewReconcileWorker creates a new ReconcileWorker.
func NewReconcileWorker(schedules *service.ScheduleService, rdb *redis.Client, log zerolog.Logger) *ReconcileWorker {
	return &ReconcileWorker{
		schedules: schedules,
		rdb:       rdb,
		log:       log.With().Str("component", "reconcile_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *ReconcileWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *ReconcileWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.MaterializeRetryQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			if err.Error() != "redis: nil" {
				w.log.Error().Err(err).Msg("BLPop error")
			}
		}
		return
	}

	if len(result) < 2 {
		return
	}

	if err := w.reconcile(ctx, result[1]); err != nil {
		w.log.Error().Err(err).Str("rule_id", result[1]).Msg("Reconcile error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.WorkerKey.MaterializeRetryQueue, result[1])
		time.Sleep(5 * time.Second)
	}
}

func (w *ReconcileWorker) reconcile(ctx context.Context, raw string) error {
	ruleID, err := uuid.Parse(raw)
	if err != nil {
		// Malformed item, drop it.
		w.log.Warn().Str("item", raw).Msg("Dropping malformed queue item")
		return nil
	}

	created, err := w.schedules.Rematerialize(ctx, ruleID)
	if err != nil {
		if err == service.ErrRuleNotFound {
			// Rule was discarded while queued, nothing to repair.
			return nil
		}
		return err
	}

	if created > 0 {
		w.log.Info().Str("rule_id", ruleID.String()).Int("created", created).Msg("Rule reconciled")
	}
	return nil
}

// drain processes all remaining items in the queue before shutdown.
func (w *ReconcileWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.MaterializeRetryQueue).Result()
		if err != nil {
			break
		}

		if err := w.reconcile(ctx, result); err != nil {
			w.log.Error().Err(err).Msg("Drain reconcile error")
			w.rdb.RPush(ctx, config.WorkerKey.MaterializeRetryQueue, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
