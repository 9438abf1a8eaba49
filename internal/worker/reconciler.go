package worker

import (
	"context"
	"time"

	"game-review/internal/usecase"
	"game-review/pkg/utils"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Reconciler periodically recomputes the rating aggregate for every
// game with recent comment activity. A comment insert whose
// post-insert refresh failed leaves a stale aggregate; the sweep
// recomputes from the authoritative comment rows, so every insert is
// eventually reflected.
type Reconciler struct {
	comments  usecase.CommentService
	interval  time.Duration
	scheduler gocron.Scheduler
	lastSweep time.Time
	log       *zap.Logger
}

func NewReconciler(comments usecase.CommentService, config utils.ReconcileConfig, log *zap.Logger) *Reconciler {
	interval := time.Duration(config.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Reconciler{
		comments: comments,
		interval: interval,
		log:      log.With(zap.String("worker", "reconciler")),
	}
}

// Start schedules the sweep. Safe to call once.
func (r *Reconciler) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	r.scheduler = sched
	r.lastSweep = time.Now()

	_, err = sched.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(r.sweep),
	)
	if err != nil {
		return err
	}

	sched.Start()
	r.log.Info("Aggregate reconciler started", zap.Duration("interval", r.interval))
	return nil
}

func (r *Reconciler) Stop() {
	if r.scheduler != nil {
		_ = r.scheduler.Shutdown()
	}
}

func (r *Reconciler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// One extra interval of overlap so a refresh that failed right
	// before the previous sweep is still picked up.
	since := r.lastSweep.Add(-r.interval)
	r.lastSweep = time.Now()

	if err := r.comments.RefreshStaleAggregates(ctx, since); err != nil {
		r.log.Warn("Reconciliation sweep incomplete, will retry next interval", zap.Error(err))
	}
}
