package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taskcore/task-tracker-api/internal/repo"
)

// Reminder periodically scans for overdue, unfinished tasks and logs a
// structured reminder for each. It never mutates the store.
type Reminder struct {
	tasks    repo.TaskRepository
	logger   *zap.Logger
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
}

func NewReminder(tasks repo.TaskRepository, logger *zap.Logger, interval time.Duration) *Reminder {
	return &Reminder{
		tasks:    tasks,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (r *Reminder) Start(ctx context.Context) {
	r.logger.Info("Starting due-date reminder", zap.Duration("interval", r.interval))
	r.wg.Add(1)
	go r.run(ctx)
}

func (r *Reminder) Stop() {
	r.logger.Info("Stopping due-date reminder...")
	close(r.stop)
	r.wg.Wait()
	r.logger.Info("Due-date reminder stopped")
}

func (r *Reminder) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.sweep(ctx); err != nil {
				r.logger.Error("reminder sweep failed", zap.Error(err))
			}
		}
	}
}

func (r *Reminder) sweep(ctx context.Context) error {
	overdue, err := r.tasks.ListDueBefore(ctx, time.Now())
	if err != nil {
		return err
	}
	for _, t := range overdue {
		r.logger.Info("task overdue",
			zap.String("task_id", t.ID),
			zap.String("title", t.Title),
			zap.String("owner", t.CreatedBy),
			zap.Time("due", *t.DueDate),
		)
	}
	return nil
}
