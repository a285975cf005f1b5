package jobs

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

const (
	reconcileBaseDelay = 5 * time.Second
	reconcileMaxDelay  = 2 * time.Minute
)

// retrySchedule tracks the poll backoff for one shipment. Attempts reset
// when the purchase resolves; the entry is dropped from the job's map.
type retrySchedule struct {
	attempts    int
	nextAttempt time.Time
}

// LabelReconciliationJob resolves purchases the provider accepted
// asynchronously. It scans for shipments that are pending with a provider
// shipment id and no label id, and re-polls each one on an exponential
// per-shipment backoff so a stuck shipment does not hammer the provider.
type LabelReconciliationJob struct {
	handler    commands.RefreshLabelStatusCommandHandler
	uowFactory commands.ShipmentUoWFactory
	cron       *cron.Cron
	logger     *slog.Logger

	mu        sync.Mutex
	schedules map[string]*retrySchedule
}

// NewLabelReconciliationJob creates the reconciliation job. The handler must
// share its lock instance with the purchase handler so a poll never races a
// manual buy attempt.
func NewLabelReconciliationJob(
	handler commands.RefreshLabelStatusCommandHandler,
	uowFactory commands.ShipmentUoWFactory,
	logger *slog.Logger,
) *LabelReconciliationJob {
	return &LabelReconciliationJob{
		handler:    handler,
		uowFactory: uowFactory,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "label_reconciliation_job"),
		schedules:  make(map[string]*retrySchedule),
	}
}

// Start begins the reconciliation job to scan every five seconds.
func (j *LabelReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		j.runOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Label reconciliation job started (scanning every 5 seconds)")
	return nil
}

// Stop stops the reconciliation job.
func (j *LabelReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Label reconciliation job stopped")
}

// runOnce scans for unresolved purchases and polls the ones whose backoff
// window has elapsed.
func (j *LabelReconciliationJob) runOnce(ctx context.Context) {
	uow := j.uowFactory.Create()
	shipments, err := uow.ShipmentRepository().GetAllAwaitingStatusRefresh(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to scan shipments awaiting status refresh", "error", err)
		return
	}

	now := time.Now().UTC()
	awaiting := make(map[string]struct{}, len(shipments))

	for _, s := range shipments {
		id := s.ID().String()
		awaiting[id] = struct{}{}

		if !j.shouldAttempt(id, now) {
			continue
		}

		cmd, err := commands.NewRefreshLabelStatusCommand(s.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build refresh command", "shipment_id", id, "error", err)
			continue
		}

		result, err := j.handler.Handle(ctx, cmd)
		switch {
		case err == nil && result.Refreshed:
			j.clearSchedule(id)
			j.logger.InfoContext(ctx, "Label purchase resolved", "shipment_id", id)

		case err == nil && result.PendingRefresh:
			delay := j.recordAttempt(id, now)
			j.logger.InfoContext(ctx, "Label still generating, backing off",
				"shipment_id", id, "next_attempt_in", delay)

		case err == nil:
			// Nothing to refresh anymore; drop the schedule.
			j.clearSchedule(id)

		case errors.Is(err, commands.ErrPurchaseAttemptInFlight):
			// A manual attempt holds the lock; leave the schedule alone.

		case errors.Is(err, errs.ErrProviderRejected):
			j.clearSchedule(id)
			j.logger.WarnContext(ctx, "Label purchase rejected by provider", "shipment_id", id, "error", err)

		case errs.IsRetryable(err):
			delay := j.recordAttempt(id, now)
			j.logger.WarnContext(ctx, "Provider unavailable during status poll, backing off",
				"shipment_id", id, "next_attempt_in", delay, "error", err)

		default:
			delay := j.recordAttempt(id, now)
			j.logger.ErrorContext(ctx, "Status poll failed",
				"shipment_id", id, "next_attempt_in", delay, "error", err)
		}
	}

	j.pruneSchedules(awaiting)
}

// shouldAttempt reports whether the shipment's backoff window has elapsed.
// A shipment with no schedule yet is polled immediately.
func (j *LabelReconciliationJob) shouldAttempt(shipmentID string, now time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	schedule, ok := j.schedules[shipmentID]
	if !ok {
		return true
	}
	return !now.Before(schedule.nextAttempt)
}

// recordAttempt bumps the shipment's attempt count and computes the next
// poll time. Returns the applied delay.
func (j *LabelReconciliationJob) recordAttempt(shipmentID string, now time.Time) time.Duration {
	j.mu.Lock()
	defer j.mu.Unlock()

	schedule, ok := j.schedules[shipmentID]
	if !ok {
		schedule = &retrySchedule{}
		j.schedules[shipmentID] = schedule
	}

	delay := jitteredDelay(schedule.attempts)
	schedule.attempts++
	schedule.nextAttempt = now.Add(delay)
	return delay
}

func (j *LabelReconciliationJob) clearSchedule(shipmentID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.schedules, shipmentID)
}

// pruneSchedules drops schedules for shipments no longer awaiting a refresh,
// e.g. resolved through the HTTP surface between scans.
func (j *LabelReconciliationJob) pruneSchedules(awaiting map[string]struct{}) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for id := range j.schedules {
		if _, ok := awaiting[id]; !ok {
			delete(j.schedules, id)
		}
	}
}

// jitteredDelay computes an exponential backoff with jitter: the base delay
// doubles per attempt up to the cap, and up to half the delay is added at
// random so polls for many shipments spread out.
func jitteredDelay(attempts int) time.Duration {
	delay := reconcileBaseDelay
	for i := 0; i < attempts && delay < reconcileMaxDelay; i++ {
		delay *= 2
	}
	if delay > reconcileMaxDelay {
		delay = reconcileMaxDelay
	}
	return delay + rand.N(delay/2)
}
