package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
)

// staleSearchBatchLimit caps how many searching orders the watchdog
// inspects per run.
const staleSearchBatchLimit = 200

// StaleSearchWatchdogJob warns operators about orders stuck in search.
// Runs every minute, lists orders currently InSearch, and logs a structured
// warning for every order whose search started longer ago than the
// configured threshold. Read-only: it never drives transitions.
type StaleSearchWatchdogJob struct {
	handler   queries.GetOrdersByStateQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleSearchWatchdogJob creates the watchdog with the given staleness
// threshold.
func NewStaleSearchWatchdogJob(
	handler queries.GetOrdersByStateQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleSearchWatchdogJob {
	return &StaleSearchWatchdogJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_search_watchdog_job"),
	}
}

// Start begins the watchdog job to run every minute.
func (j *StaleSearchWatchdogJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale search watchdog started (running every minute)",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the watchdog job.
func (j *StaleSearchWatchdogJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale search watchdog stopped")
}

func (j *StaleSearchWatchdogJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetOrdersByStateQuery(order.InSearch, staleSearchBatchLimit, "")
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale search watchdog failed to build query", "error", err)
		return
	}

	orders, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale search watchdog failed to list searching orders", "error", err)
		return
	}

	cutoff := time.Now().UTC().Add(-j.threshold)
	for _, projection := range orders {
		if projection.Ledger == nil || projection.Ledger.SearchingAt == nil {
			continue
		}
		if projection.Ledger.SearchingAt.After(cutoff) {
			continue
		}

		j.logger.WarnContext(ctx, "Order stuck in search",
			"orderId", projection.ID,
			"orderNumber", projection.OrderNumber,
			"searchingAt", projection.Ledger.SearchingAt.Format(time.RFC3339),
		)
	}
}
