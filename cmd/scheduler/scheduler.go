package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepLockPrefix = "progress:sweep:slot:"

// Locker claims a schedule slot so only one scheduler replica enqueues it
type Locker interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// SweepEnqueuer enqueues reconciliation sweeps
type SweepEnqueuer interface {
	EnqueueSweep(ctx context.Context, batchSize int) error
}

// Scheduler enqueues a reconciliation sweep at every slot of a cron schedule
type Scheduler struct {
	locker    Locker
	tasks     SweepEnqueuer
	logger    *zap.Logger
	schedule  cron.Schedule
	batchSize int
	ticker    *time.Ticker
	stopChan  chan struct{}
	next      time.Time
	now       func() time.Time
}

// NewScheduler creates a new scheduler instance for the standard cron expression "cronExpr"
func NewScheduler(locker Locker, taskClient SweepEnqueuer, logger *zap.Logger, cronExpr string, batchSize int) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cron expression: %w", err)
	}

	s := &Scheduler{
		locker:    locker,
		tasks:     taskClient,
		logger:    logger,
		schedule:  schedule,
		batchSize: batchSize,
		stopChan:  make(chan struct{}),
		now:       time.Now,
	}
	s.next = schedule.Next(s.now())
	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.ticker = time.NewTicker(10 * time.Second)
	s.logger.Info("Scheduler started", zap.Time("next_sweep", s.next))
	go s.run()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.ticker.Stop()
	close(s.stopChan)
	s.logger.Info("Scheduler stopped")
}

// run executes the scheduler loop
func (s *Scheduler) run() {
	ctx := context.Background()

	for {
		select {
		case <-s.ticker.C:
			s.tick(ctx)
		case <-s.stopChan:
			return
		}
	}
}

// tick enqueues the sweep of the current slot once it is due.
// Reports whether this replica enqueued it.
func (s *Scheduler) tick(ctx context.Context) bool {
	now := s.now()
	if now.Before(s.next) {
		return false
	}
	slot := s.next
	s.next = s.schedule.Next(now)

	key := sweepLockPrefix + slot.UTC().Format(time.RFC3339)
	acquired, err := s.locker.SetNX(ctx, key, now.Unix(), 24*time.Hour).Result()
	if err != nil {
		s.logger.Error("Failed to claim sweep slot", zap.Time("slot", slot), zap.Error(err))
		return false
	}
	if !acquired {
		s.logger.Debug("Sweep slot claimed by another scheduler", zap.Time("slot", slot))
		return false
	}

	if err := s.tasks.EnqueueSweep(ctx, s.batchSize); err != nil {
		s.logger.Error("Failed to enqueue sweep", zap.Time("slot", slot), zap.Error(err))
		return false
	}

	s.logger.Info("Enqueued reconciliation sweep", zap.Time("slot", slot), zap.Time("next_sweep", s.next))
	return true
}
