// Package jobs runs the background maintenance tasks.
package jobs

import (
	"context"

	"github.com/BloggingApp/world-service/internal/service"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Scheduler struct {
	logger *zap.Logger
	cron *cron.Cron
	services *service.Service
}

func NewScheduler(logger *zap.Logger, services *service.Service) *Scheduler {
	return &Scheduler{
		logger: logger,
		cron: cron.New(),
		services: services,
	}
}

// Start registers the hourly snapshot re-warm. Snapshots are invalidated on
// every mutation anyway; the job only keeps idle worlds' caches from
// expiring under read-heavy traffic.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.AddFunc("0 * * * *", func() {
		s.services.World.RefreshSnapshots(ctx)
	})

	s.cron.Start()
	s.logger.Info("Scheduler started")
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}
