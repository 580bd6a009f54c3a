/**
 * @description
 * Cron scheduler that runs the monitoring pass on a configurable schedule.
 * The manual HTTP trigger and the scheduled run funnel through the same
 * MonitorService, which serializes per-website work when they overlap.
 */
package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/hostforge/payment-monitor-service/internal/config"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron    *cron.Cron
	service *MonitorService
	logger  *slog.Logger
	config  config.Config
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(service *MonitorService, logger *slog.Logger, cfg config.Config) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:    c,
		service: service,
		logger:  logger,
		config:  cfg,
	}
}

// Start registers the monitoring job and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.config.MonitorSchedule, s.runMonitoringPass); err != nil {
		s.logger.Error("failed to schedule payment monitoring job", "error", err)
	} else {
		s.logger.Info("scheduled payment monitoring job", "schedule", s.config.MonitorSchedule)
	}

	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runMonitoringPass() {
	if _, err := s.service.RunPass(context.Background()); err != nil {
		s.logger.Error("scheduled payment monitoring pass failed", "error", err)
	}
}
